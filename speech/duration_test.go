package speech

import (
	"strings"
	"testing"
)

func TestEstimateDuration(t *testing.T) {
	tests := []struct {
		name  string
		words int
		speed float64
		want  int
	}{
		{"one word rounds up", 1, 1.0, 1},
		{"155 words at 1x is a minute", 155, 1.0, 60},
		{"155 words at 2x is half a minute", 155, 2.0, 30},
		{"310 words at 1x is two minutes", 310, 1.0, 120},
		{"slow speech stretches duration", 155, 0.5, 120},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := strings.TrimSpace(strings.Repeat("word ", tt.words))
			if got := estimateDuration(text, tt.speed); got != tt.want {
				t.Errorf("estimateDuration(%d words, %.2fx) = %d, want %d",
					tt.words, tt.speed, got, tt.want)
			}
		})
	}
}

func TestEstimateDurationEmptyText(t *testing.T) {
	if got := estimateDuration("", 1.0); got != 0 {
		t.Errorf("estimateDuration(empty) = %d, want 0", got)
	}
}

func TestEstimateCost(t *testing.T) {
	caps := Capabilities{RatePer1KChars: map[Quality]float64{
		QualityMedium: 0.015,
		QualityHD:     0.030,
	}}

	text := strings.Repeat("a", 1000)

	if got := estimateCost(text, caps, QualityMedium); got != 0.015 {
		t.Errorf("1000 chars at medium = %f, want 0.015", got)
	}
	if got := estimateCost(text, caps, QualityHD); got != 0.030 {
		t.Errorf("1000 chars at hd = %f, want 0.030", got)
	}
	if got := estimateCost(text, caps, QualityLow); got != 0 {
		t.Errorf("unpriced tier should cost 0, got %f", got)
	}
}
