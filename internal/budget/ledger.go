// Package budget tracks running AI spend against configured ceilings.
package budget

import "sync"

// Limits holds the configured spend ceilings in currency units.
type Limits struct {
	Daily      float64 `yaml:"daily" env:"CASTKIT_BUDGET_DAILY" envDefault:"1.0"`
	Monthly    float64 `yaml:"monthly" env:"CASTKIT_BUDGET_MONTHLY" envDefault:"10.0"`
	PerRequest float64 `yaml:"per_request" env:"CASTKIT_BUDGET_PER_REQUEST" envDefault:"0.10"`
}

// Headroom is the answer to an affordability question.
type Headroom struct {
	CanAfford        bool
	RemainingDaily   float64
	RemainingMonthly float64
}

// Ledger tracks daily and monthly spend. Counters only grow between
// resets; a reset is an explicit external operation, there is no automatic
// day-boundary rollover. Safe for concurrent use.
type Ledger struct {
	mu           sync.Mutex
	limits       Limits
	dailySpent   float64
	monthlySpent float64
}

// NewLedger creates a ledger with zeroed counters.
func NewLedger(limits Limits) *Ledger {
	return &Ledger{limits: limits}
}

// CanAfford reports whether a request with the given estimated cost fits
// within the daily ceiling, the monthly ceiling, and the per-request cap.
func (l *Ledger) CanAfford(estimatedCost float64) Headroom {
	l.mu.Lock()
	defer l.mu.Unlock()

	remainingDaily := l.limits.Daily - l.dailySpent
	remainingMonthly := l.limits.Monthly - l.monthlySpent

	return Headroom{
		CanAfford: estimatedCost <= remainingDaily &&
			estimatedCost <= remainingMonthly &&
			estimatedCost <= l.limits.PerRequest,
		RemainingDaily:   remainingDaily,
		RemainingMonthly: remainingMonthly,
	}
}

// Record adds an actual cost to both running totals. Call it only for
// completed billable work, never for cache hits.
func (l *Ledger) Record(cost float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.dailySpent += cost
	l.monthlySpent += cost
}

// ResetDaily zeroes the daily counter. The monthly counter is untouched.
func (l *Ledger) ResetDaily() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.dailySpent = 0
}

// ResetMonthly zeroes the monthly counter. The daily counter is untouched.
func (l *Ledger) ResetMonthly() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.monthlySpent = 0
}

// Spent returns the current running totals.
func (l *Ledger) Spent() (daily, monthly float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dailySpent, l.monthlySpent
}

// Limits returns the configured ceilings.
func (l *Ledger) Limits() Limits {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.limits
}
