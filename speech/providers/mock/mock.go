// Package mock provides a controllable Provider for tests: deterministic
// audio bytes, injectable failures, and call counting.
package mock

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/castkit/castkit/speech"
)

// Provider is a fake synthesis backend. Safe for concurrent use.
type Provider struct {
	name string

	mu        sync.Mutex
	callCount int
	delay     time.Duration
	failErr   error

	maxTextLength int
	formats       []speech.Format
	rates         map[speech.Quality]float64
}

// New creates a mock provider registered under name, priced like the
// OpenAI adapter so cost assertions carry over.
func New(name string) *Provider {
	return &Provider{
		name:          name,
		maxTextLength: 4096,
		formats: []speech.Format{
			speech.FormatMP3, speech.FormatWAV, speech.FormatFLAC, speech.FormatOpus,
		},
		rates: map[speech.Quality]float64{
			speech.QualityLow:    0.015,
			speech.QualityMedium: 0.015,
			speech.QualityHigh:   0.030,
			speech.QualityHD:     0.030,
		},
	}
}

// Name returns the mock's registry name.
func (p *Provider) Name() string {
	return p.name
}

// Capabilities returns the configured limits and rates.
func (p *Provider) Capabilities() speech.Capabilities {
	p.mu.Lock()
	defer p.mu.Unlock()
	return speech.Capabilities{
		MaxTextLength:    p.maxTextLength,
		SupportedFormats: p.formats,
		RatePer1KChars:   p.rates,
	}
}

// Synthesize returns deterministic bytes sized by the input text, or the
// injected failure.
func (p *Provider) Synthesize(ctx context.Context, text string, opts speech.SynthesisOptions) ([]byte, error) {
	p.mu.Lock()
	p.callCount++
	delay := p.delay
	failErr := p.failErr
	p.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if failErr != nil {
		return nil, failErr
	}

	// 64 bytes of fake audio per input character keeps sizes proportional
	// without being large.
	return bytes.Repeat([]byte{0xFA}, 64*len(text)), nil
}

// SetFailure makes every subsequent Synthesize call return err.
func (p *Provider) SetFailure(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failErr = err
}

// ClearFailure restores normal operation.
func (p *Provider) ClearFailure() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failErr = nil
}

// SetDelay makes Synthesize sleep before responding.
func (p *Provider) SetDelay(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.delay = d
}

// SetSupportedFormats overrides the advertised format list.
func (p *Provider) SetSupportedFormats(formats []speech.Format) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.formats = formats
}

// SetMaxTextLength overrides the text length limit.
func (p *Provider) SetMaxTextLength(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.maxTextLength = n
}

// CallCount reports how many times Synthesize was invoked.
func (p *Provider) CallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.callCount
}
