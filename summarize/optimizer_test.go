package summarize

import (
	"strings"
	"testing"

	"github.com/castkit/castkit/internal/budget"
)

func newTestOptimizer(limits budget.Limits) *Optimizer {
	return NewOptimizer(budget.NewLedger(limits))
}

func generousLimits() budget.Limits {
	return budget.Limits{Daily: 10, Monthly: 100, PerRequest: 1}
}

func TestOptimizer_ProcessDecision(t *testing.T) {
	opt := newTestOptimizer(generousLimits())

	decision := opt.OptimizeProcessing("Some article text worth summarizing.", Options{})

	if !decision.ShouldProcess {
		t.Fatalf("ShouldProcess = false, want true: %+v", decision)
	}
	if decision.CacheHit != nil {
		t.Error("CacheHit set on a cold cache")
	}
	if decision.EstimatedCost <= 0 {
		t.Errorf("EstimatedCost = %f, want > 0", decision.EstimatedCost)
	}
	if decision.RecommendedModel == "" {
		t.Error("RecommendedModel is empty")
	}
}

func TestOptimizer_Idempotent(t *testing.T) {
	opt := newTestOptimizer(generousLimits())
	text := "The same text analyzed twice."

	first := opt.OptimizeProcessing(text, Options{})
	second := opt.OptimizeProcessing(text, Options{})

	if first != second {
		t.Errorf("repeated decisions differ:\n first: %+v\nsecond: %+v", first, second)
	}
}

func TestOptimizer_CacheRoundTrip(t *testing.T) {
	opt := newTestOptimizer(generousLimits())
	text := "An article that has already been summarized."

	opt.CacheSummary(text, "the summary", ModelStandard, 0.004, "standard")

	decision := opt.OptimizeProcessing(text, Options{})
	if decision.ShouldProcess {
		t.Fatal("ShouldProcess = true despite a live cached summary")
	}
	if decision.CacheHit == nil {
		t.Fatal("CacheHit is nil on a warm cache")
	}
	if decision.CacheHit.Payload != "the summary" {
		t.Errorf("cached payload = %q, want the stored summary", decision.CacheHit.Payload)
	}
	if decision.RecommendedModel != ModelStandard {
		t.Errorf("RecommendedModel = %q, want the cached entry's model", decision.RecommendedModel)
	}
	if decision.EstimatedCost != 0 {
		t.Errorf("EstimatedCost = %f, want 0 on a cache hit", decision.EstimatedCost)
	}
	if decision.QualityTrade != TradeNone {
		t.Errorf("QualityTrade = %q, want none", decision.QualityTrade)
	}

	// The actual cost is recorded against the budget at write-back time.
	daily, monthly := opt.Ledger().Spent()
	if daily != 0.004 || monthly != 0.004 {
		t.Errorf("Spent = (%f, %f), want (0.004, 0.004)", daily, monthly)
	}
}

func TestOptimizer_BudgetDenial(t *testing.T) {
	opt := newTestOptimizer(budget.Limits{Daily: 0, Monthly: 0, PerRequest: 0})
	text := strings.Repeat("long enough to cost something ", 50)

	decision := opt.OptimizeProcessing(text, Options{})
	if decision.ShouldProcess {
		t.Fatal("ShouldProcess = true with a zero budget")
	}
	if decision.Reason != "budget constraints" {
		t.Errorf("Reason = %q, want budget constraints", decision.Reason)
	}
	if decision.RecommendedModel != ModelEconomy {
		t.Errorf("RecommendedModel = %q, want the cheapest tier", decision.RecommendedModel)
	}
	if decision.QualityTrade != TradeModerate {
		t.Errorf("QualityTrade = %q, want moderate", decision.QualityTrade)
	}

	// ForceProcess overrides the denial.
	forced := opt.OptimizeProcessing(text, Options{ForceProcess: true})
	if !forced.ShouldProcess {
		t.Error("ForceProcess did not override the budget denial")
	}
}

func TestOptimizer_QualityOverrides(t *testing.T) {
	opt := newTestOptimizer(generousLimits())
	simple := "Plain short text." // scores well under 6

	basic := opt.OptimizeProcessing(simple, Options{Quality: QualityBasic})
	if basic.RecommendedModel != ModelEconomy {
		t.Errorf("basic quality model = %q, want %q", basic.RecommendedModel, ModelEconomy)
	}
	if basic.QualityTrade != TradeMinor {
		t.Errorf("basic quality trade = %q, want minor", basic.QualityTrade)
	}

	standard := opt.OptimizeProcessing(simple, Options{Quality: QualityStandard})
	if standard.RecommendedModel != ModelStandard {
		t.Errorf("standard quality model = %q, want %q", standard.RecommendedModel, ModelStandard)
	}
	if standard.QualityTrade != TradeNone {
		t.Errorf("standard quality trade = %q, want none", standard.QualityTrade)
	}
}
