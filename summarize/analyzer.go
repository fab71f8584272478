// Package summarize decides whether and how to spend money on text
// summarization: it scores content complexity, picks a cost/quality
// model tier, checks the budget, and reuses cached summaries.
package summarize

import (
	"math"
	"strings"
)

// ComplexityFactors are the four sub-scores (0-10 each) behind an overall
// complexity score. Computed fresh per request, never persisted.
type ComplexityFactors struct {
	TechnicalTerms     int // density of domain vocabulary
	SentenceComplexity int // average sentence length
	TopicDepth         int // overall content length
	Reasoning          int // density of reasoning cues
}

// Analysis is the outcome of scoring one piece of text.
type Analysis struct {
	Factors          ComplexityFactors
	Score            int // weighted overall score, 0-10
	RecommendedModel string
}

// technicalVocabulary are the terms whose presence marks text as technical.
var technicalVocabulary = []string{
	"algorithm", "api", "architecture", "asynchronous", "bandwidth",
	"compiler", "concurrency", "cryptography", "database", "distributed",
	"encryption", "framework", "infrastructure", "kernel", "latency",
	"machine learning", "microservice", "neural", "optimization",
	"protocol", "quantum", "regression", "scalability", "throughput",
}

// reasoningCues mark argumentative or causal structure.
var reasoningCues = []string{
	"because", "therefore", "however", "consequently", "as a result",
	"due to", "which means", "this implies", "thus", "hence",
	"in contrast", "on the other hand", "it follows that", "given that",
}

// AnalyzeComplexity scores text and recommends a processing tier.
// Deterministic, no side effects, no external calls.
func AnalyzeComplexity(text string) Analysis {
	lower := strings.ToLower(text)
	words := strings.Fields(lower)

	factors := ComplexityFactors{
		TechnicalTerms:     technicalTermScore(words),
		SentenceComplexity: sentenceComplexityScore(len(words), countSentences(text)),
		TopicDepth:         topicDepthScore(len(text)),
		Reasoning:          reasoningScore(lower),
	}

	weighted := 0.3*float64(factors.TechnicalTerms) +
		0.2*float64(factors.SentenceComplexity) +
		0.2*float64(factors.TopicDepth) +
		0.3*float64(factors.Reasoning)
	score := clampScore(int(math.Round(weighted)))

	return Analysis{
		Factors:          factors,
		Score:            score,
		RecommendedModel: modelForScore(score),
	}
}

// modelForScore maps an overall score to the recommended tier.
func modelForScore(score int) string {
	switch {
	case score <= 4:
		return ModelEconomy
	case score <= 7:
		return ModelStandard
	default:
		return ModelPremium
	}
}

func technicalTermScore(words []string) int {
	if len(words) == 0 {
		return 0
	}

	technical := 0
	for _, word := range words {
		for _, term := range technicalVocabulary {
			if strings.Contains(word, term) {
				technical++
				break
			}
		}
	}

	return clampScore(int(math.Round(float64(technical) / float64(len(words)) * 10)))
}

func sentenceComplexityScore(wordCount, sentenceCount int) int {
	avgWords := float64(wordCount) / float64(sentenceCount)
	return clampScore(int(math.Round((avgWords - 10) / 5)))
}

func topicDepthScore(charLength int) int {
	return clampScore(int(math.Round(float64(charLength) / 2000 * 5)))
}

func reasoningScore(lower string) int {
	cues := 0
	for _, cue := range reasoningCues {
		cues += strings.Count(lower, cue)
	}
	return clampScore(int(math.Round(float64(cues) / 10 * 10)))
}

// countSentences counts terminal punctuation. Text without any is treated
// as a single sentence so the average never divides by zero.
func countSentences(text string) int {
	sentences := 0
	for _, r := range text {
		switch r {
		case '.', '!', '?':
			sentences++
		}
	}
	if sentences == 0 {
		return 1
	}
	return sentences
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 10 {
		return 10
	}
	return score
}
