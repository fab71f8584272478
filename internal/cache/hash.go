package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// SummaryKey computes the content hash for a summarization request.
// The text is trimmed and lowercased first so that trivially different
// submissions of the same content share a cache entry.
func SummaryKey(text string) string {
	return digest(normalize(text))
}

// AudioKey computes the content hash for a synthesis request. Every field
// that changes the produced audio participates in the key; two requests
// differing only in voice (or speed, pitch, ...) must never collide.
func AudioKey(text, voice, provider, format, quality string, speed, pitch float64) string {
	canonical := strings.Join([]string{
		normalize(text),
		voice,
		provider,
		format,
		quality,
		fmt.Sprintf("%.2f", speed),
		fmt.Sprintf("%.2f", pitch),
	}, "|")
	return digest(canonical)
}

func normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

func digest(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
