package cache

import "testing"

func TestSummaryKey_Normalization(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		same bool
	}{
		{"identical", "Hello world", "Hello world", true},
		{"surrounding whitespace", "Hello world", "  Hello world \n", true},
		{"case folded", "Hello World", "hello world", true},
		{"different text", "Hello world", "Goodbye world", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ka, kb := SummaryKey(tt.a), SummaryKey(tt.b)
			if (ka == kb) != tt.same {
				t.Errorf("SummaryKey(%q) == SummaryKey(%q) is %v, want %v", tt.a, tt.b, ka == kb, tt.same)
			}
		})
	}
}

func TestAudioKey_FieldSensitivity(t *testing.T) {
	base := AudioKey("Hello world", "alloy", "openai", "mp3", "medium", 1.0, 0)

	variants := map[string]string{
		"voice":    AudioKey("Hello world", "nova", "openai", "mp3", "medium", 1.0, 0),
		"provider": AudioKey("Hello world", "alloy", "google", "mp3", "medium", 1.0, 0),
		"format":   AudioKey("Hello world", "alloy", "openai", "wav", "medium", 1.0, 0),
		"quality":  AudioKey("Hello world", "alloy", "openai", "mp3", "hd", 1.0, 0),
		"speed":    AudioKey("Hello world", "alloy", "openai", "mp3", "medium", 1.25, 0),
		"pitch":    AudioKey("Hello world", "alloy", "openai", "mp3", "medium", 1.0, 0.5),
	}

	for field, key := range variants {
		if key == base {
			t.Errorf("changing %s did not change the audio key", field)
		}
	}

	// The same request must always hash identically.
	again := AudioKey("  hello WORLD ", "alloy", "openai", "mp3", "medium", 1.0, 0)
	if again != base {
		t.Error("normalized identical request produced a different key")
	}
}
