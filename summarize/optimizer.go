package summarize

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/castkit/castkit/internal/budget"
	"github.com/castkit/castkit/internal/cache"
)

// SummaryTTL is how long a cached summary stays reusable.
const SummaryTTL = 48 * time.Hour

// QualityPreference is the caller's requested summary quality.
type QualityPreference string

// Quality preferences a caller may request.
const (
	QualityBasic    QualityPreference = "basic"
	QualityStandard QualityPreference = "standard"
	QualityPremium  QualityPreference = "premium"
)

// QualityTrade describes how much quality a decision gave up to save cost.
type QualityTrade string

// Quality trade levels.
const (
	TradeNone     QualityTrade = "none"
	TradeMinor    QualityTrade = "minor"
	TradeModerate QualityTrade = "moderate"
)

// Options tune one optimization request.
type Options struct {
	// Quality is the caller's preference; empty keeps the analyzer's
	// recommendation.
	Quality QualityPreference

	// ForceProcess proceeds even when the budget is exhausted.
	ForceProcess bool
}

// Decision tells the caller whether to run the summarizer and with which
// model. Computed fresh per call; never stored.
type Decision struct {
	ShouldProcess    bool
	RecommendedModel string
	EstimatedCost    float64
	CacheHit         *cache.Entry[string]
	Reason           string
	QualityTrade     QualityTrade
}

// Optimizer produces process/reuse/deny decisions for summarization
// requests. It never calls the summarizer itself: the caller performs the
// call and reports the result back through CacheSummary.
type Optimizer struct {
	cache  *cache.Store[string]
	ledger *budget.Ledger
	logger *log.Logger
}

// NewOptimizer creates an optimizer with its own summary cache.
func NewOptimizer(ledger *budget.Ledger) *Optimizer {
	return &Optimizer{
		cache:  cache.NewStore[string](SummaryTTL),
		ledger: ledger,
		logger: log.With("component", "optimizer"),
	}
}

// OptimizeProcessing decides whether text should be summarized, and if so
// with which model.
func (o *Optimizer) OptimizeProcessing(text string, opts Options) Decision {
	key := cache.SummaryKey(text)

	if entry, ok := o.cache.Get(key); ok {
		o.logger.Debug("summary cache hit", "hash", key[:12], "model", entry.Metadata.Model)
		return Decision{
			ShouldProcess:    false,
			RecommendedModel: entry.Metadata.Model,
			EstimatedCost:    0,
			CacheHit:         entry,
			Reason:           "cached summary available",
			QualityTrade:     TradeNone,
		}
	}

	analysis := AnalyzeComplexity(text)

	headroom := o.ledger.CanAfford(EstimateCost(text, analysis.RecommendedModel))
	if !headroom.CanAfford && !opts.ForceProcess {
		o.logger.Debug("processing denied by budget",
			"remaining_daily", headroom.RemainingDaily,
			"remaining_monthly", headroom.RemainingMonthly)
		return Decision{
			ShouldProcess:    false,
			RecommendedModel: ModelEconomy,
			EstimatedCost:    0,
			Reason:           "budget constraints",
			QualityTrade:     TradeModerate,
		}
	}

	model := analysis.RecommendedModel
	trade := TradeNone
	switch {
	case opts.Quality == QualityBasic && analysis.Score <= 6:
		model = ModelEconomy
		trade = TradeMinor
	case opts.Quality == QualityStandard && analysis.Score <= 8:
		model = ModelStandard
		trade = TradeNone
	}

	return Decision{
		ShouldProcess:    true,
		RecommendedModel: model,
		EstimatedCost:    EstimateCost(text, model),
		Reason:           fmt.Sprintf("complexity %d/10", analysis.Score),
		QualityTrade:     trade,
	}
}

// CacheSummary stores a summary the caller obtained from the external
// summarizer, together with the actual model and cost, and records the
// spend against the budget.
func (o *Optimizer) CacheSummary(text, summary, model string, cost float64, quality string) {
	key := cache.SummaryKey(text)
	o.cache.Put(key, summary, cache.Metadata{
		Model:   model,
		Cost:    cost,
		Quality: quality,
	})
	o.ledger.Record(cost)
	o.logger.Debug("summary cached", "hash", key[:12], "model", model, "cost", cost)
}

// SummaryCache exposes the underlying store, for persistence wiring and
// stats reporting.
func (o *Optimizer) SummaryCache() *cache.Store[string] {
	return o.cache
}

// Ledger exposes the budget ledger the optimizer records spend against.
func (o *Optimizer) Ledger() *budget.Ledger {
	return o.ledger
}
