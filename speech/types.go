// Package speech turns text into hosted audio artifacts, deciding per
// request whether to reuse cached audio, whether the spend fits the
// configured ceilings, and which provider performs the synthesis.
package speech

import "time"

// Format is the audio container a request produces.
type Format string

// Supported audio formats.
const (
	FormatMP3  Format = "mp3"
	FormatWAV  Format = "wav"
	FormatFLAC Format = "flac"
	FormatOpus Format = "opus"
)

// Formats lists the supported audio formats.
func Formats() []Format {
	return []Format{FormatMP3, FormatWAV, FormatFLAC, FormatOpus}
}

// Valid reports whether f is a supported format.
func (f Format) Valid() bool {
	switch f {
	case FormatMP3, FormatWAV, FormatFLAC, FormatOpus:
		return true
	}
	return false
}

// Quality is the synthesis quality tier.
type Quality string

// Supported quality tiers.
const (
	QualityLow    Quality = "low"
	QualityMedium Quality = "medium"
	QualityHigh   Quality = "high"
	QualityHD     Quality = "hd"
)

// Valid reports whether q is a supported quality tier.
func (q Quality) Valid() bool {
	switch q {
	case QualityLow, QualityMedium, QualityHigh, QualityHD:
		return true
	}
	return false
}

// Request describes one synthesis call. Zero-valued fields default from
// the engine configuration.
type Request struct {
	Text     string
	Voice    string
	Provider string
	Format   Format
	Quality  Quality
	Speed    float64
	Pitch    float64
}

// Result describes synthesized audio and how it was produced.
type Result struct {
	AudioURL        string
	SizeBytes       int64
	DurationSeconds int
	Format          Format
	Quality         Quality
	Voice           string
	Provider        string
	Cost            float64
	ProcessingTime  time.Duration
	ContentHash     string
	Cached          bool
}
