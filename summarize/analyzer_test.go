package summarize

import (
	"strings"
	"testing"
)

func TestAnalyzeComplexity_SimpleText(t *testing.T) {
	analysis := AnalyzeComplexity("Hello world")

	if analysis.Score > 4 {
		t.Errorf("Score = %d, want <= 4 for trivial text", analysis.Score)
	}
	if analysis.RecommendedModel != ModelEconomy {
		t.Errorf("RecommendedModel = %q, want %q", analysis.RecommendedModel, ModelEconomy)
	}
}

func TestAnalyzeComplexity_DenseTechnicalText(t *testing.T) {
	sentence := "Quantum encryption algorithms and distributed database architectures " +
		"improve throughput and latency because asynchronous microservice frameworks " +
		"and neural optimization protocols scale, therefore concurrency and " +
		"cryptography infrastructure matters. "
	text := strings.Repeat(sentence, 20)

	analysis := AnalyzeComplexity(text)

	if analysis.Score <= 7 {
		t.Errorf("Score = %d, want > 7 for dense technical text", analysis.Score)
	}
	if analysis.RecommendedModel != ModelPremium {
		t.Errorf("RecommendedModel = %q, want %q", analysis.RecommendedModel, ModelPremium)
	}
	if analysis.Factors.Reasoning != 10 {
		t.Errorf("Reasoning factor = %d, want saturated at 10", analysis.Factors.Reasoning)
	}
	if analysis.Factors.TopicDepth != 10 {
		t.Errorf("TopicDepth factor = %d, want saturated at 10", analysis.Factors.TopicDepth)
	}
}

func TestAnalyzeComplexity_ScoreAlwaysInRange(t *testing.T) {
	inputs := []string{
		"",
		"word",
		"One short sentence.",
		strings.Repeat("a ", 5000),
		strings.Repeat("algorithm protocol latency throughput encryption. ", 200),
		"no terminal punctuation at all just words running on and on",
	}

	for _, text := range inputs {
		analysis := AnalyzeComplexity(text)
		if analysis.Score < 0 || analysis.Score > 10 {
			t.Errorf("Score for %.30q = %d, want within [0,10]", text, analysis.Score)
		}

		// Tier must agree with the documented thresholds.
		want := ModelEconomy
		if analysis.Score > 7 {
			want = ModelPremium
		} else if analysis.Score > 4 {
			want = ModelStandard
		}
		if analysis.RecommendedModel != want {
			t.Errorf("model for score %d = %q, want %q", analysis.Score, analysis.RecommendedModel, want)
		}

		for _, factor := range []int{
			analysis.Factors.TechnicalTerms,
			analysis.Factors.SentenceComplexity,
			analysis.Factors.TopicDepth,
			analysis.Factors.Reasoning,
		} {
			if factor < 0 || factor > 10 {
				t.Errorf("factor out of range for %.30q: %+v", text, analysis.Factors)
			}
		}
	}
}

func TestAnalyzeComplexity_NoSentencePunctuation(t *testing.T) {
	// A run-on with no terminal punctuation counts as one sentence rather
	// than dividing by zero.
	text := strings.Repeat("word ", 120)

	analysis := AnalyzeComplexity(text)
	if analysis.Factors.SentenceComplexity != 10 {
		t.Errorf("SentenceComplexity = %d, want 10 for a 120-word run-on",
			analysis.Factors.SentenceComplexity)
	}
}

func TestAnalyzeComplexity_Deterministic(t *testing.T) {
	text := "The database framework uses an algorithm. Therefore latency drops."

	first := AnalyzeComplexity(text)
	second := AnalyzeComplexity(text)
	if first != second {
		t.Errorf("repeated analysis differs: %+v vs %+v", first, second)
	}
}

func TestEstimateCost_TierOrdering(t *testing.T) {
	text := strings.Repeat("some content ", 100)

	economy := EstimateCost(text, ModelEconomy)
	standard := EstimateCost(text, ModelStandard)
	premium := EstimateCost(text, ModelPremium)

	if !(economy < standard && standard < premium) {
		t.Errorf("cost ordering broken: economy=%f standard=%f premium=%f",
			economy, standard, premium)
	}
	if economy <= 0 {
		t.Errorf("economy cost = %f, want > 0", economy)
	}

	// Unknown models price at the premium tier.
	if EstimateCost(text, "mystery-model") != premium {
		t.Error("unknown model did not fall back to premium pricing")
	}
}
