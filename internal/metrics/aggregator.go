package metrics

import "sync"

// Sample describes one successful generation for aggregation.
type Sample struct {
	Provider        string
	Voice           string
	Quality         string
	Format          string
	Cost            float64
	DurationSeconds float64
	SizeBytes       int64
	ProcessingMs    float64
}

// Stats is a point-in-time snapshot of the aggregator.
type Stats struct {
	TotalRequests   int64
	SuccessCount    int64
	FailureCount    int64
	TotalCost       float64
	TotalDuration   float64 // seconds of generated audio
	TotalSizeBytes  int64
	CostByProvider  map[string]float64
	UsageByVoice    map[string]int64
	QualityCounts   map[string]int64
	FormatCounts    map[string]int64
	AvgProcessingMs float64
	AvgCostPerMin   float64

	Last24hRequests int64
	Last24hCost     float64
	Last24hDuration float64
}

// Aggregator keeps rolling counters for generation requests.
//
// The "last 24 hours" bucket is a plain accumulator: it grows on every
// success and is never decayed, so after a day of uptime it overstates the
// trailing window. The upstream system behaves the same way and the daily
// cost ceiling is enforced against it, so the behavior is kept rather than
// silently corrected.
type Aggregator struct {
	mu sync.Mutex

	total   int64
	success int64
	failure int64

	totalCost     float64
	totalDuration float64
	totalBytes    int64

	costByProvider map[string]float64
	usageByVoice   map[string]int64
	qualityCounts  map[string]int64
	formatCounts   map[string]int64

	avgProcessingMs float64
	avgCostPerMin   float64

	last24hRequests int64
	last24hCost     float64
	last24hDuration float64
}

// NewAggregator creates an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{
		costByProvider: make(map[string]float64),
		usageByVoice:   make(map[string]int64),
		qualityCounts:  make(map[string]int64),
		formatCounts:   make(map[string]int64),
	}
}

// RecordSuccess folds one successful generation into the counters.
// Derived averages are updated with a running-mean step, not recomputed.
func (a *Aggregator) RecordSuccess(s Sample) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.total++
	a.success++

	a.totalCost += s.Cost
	a.totalDuration += s.DurationSeconds
	a.totalBytes += s.SizeBytes

	a.costByProvider[s.Provider] += s.Cost
	a.usageByVoice[s.Voice]++
	a.qualityCounts[s.Quality]++
	a.formatCounts[s.Format]++

	a.avgProcessingMs += (s.ProcessingMs - a.avgProcessingMs) / float64(a.success)
	if s.DurationSeconds > 0 {
		costPerMin := s.Cost / (s.DurationSeconds / 60)
		a.avgCostPerMin += (costPerMin - a.avgCostPerMin) / float64(a.success)
	}

	a.last24hRequests++
	a.last24hCost += s.Cost
	a.last24hDuration += s.DurationSeconds
}

// RecordFailure counts a failed generation.
func (a *Aggregator) RecordFailure() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.total++
	a.failure++
}

// CostLast24h returns the accumulated cost bucket the daily ceiling is
// checked against.
func (a *Aggregator) CostLast24h() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.last24hCost
}

// TotalRequests returns the count of all observed requests.
func (a *Aggregator) TotalRequests() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.total
}

// Snapshot returns a copy of all counters.
func (a *Aggregator) Snapshot() Stats {
	a.mu.Lock()
	defer a.mu.Unlock()

	stats := Stats{
		TotalRequests:   a.total,
		SuccessCount:    a.success,
		FailureCount:    a.failure,
		TotalCost:       a.totalCost,
		TotalDuration:   a.totalDuration,
		TotalSizeBytes:  a.totalBytes,
		CostByProvider:  make(map[string]float64, len(a.costByProvider)),
		UsageByVoice:    make(map[string]int64, len(a.usageByVoice)),
		QualityCounts:   make(map[string]int64, len(a.qualityCounts)),
		FormatCounts:    make(map[string]int64, len(a.formatCounts)),
		AvgProcessingMs: a.avgProcessingMs,
		AvgCostPerMin:   a.avgCostPerMin,
		Last24hRequests: a.last24hRequests,
		Last24hCost:     a.last24hCost,
		Last24hDuration: a.last24hDuration,
	}

	for k, v := range a.costByProvider {
		stats.CostByProvider[k] = v
	}
	for k, v := range a.usageByVoice {
		stats.UsageByVoice[k] = v
	}
	for k, v := range a.qualityCounts {
		stats.QualityCounts[k] = v
	}
	for k, v := range a.formatCounts {
		stats.FormatCounts[k] = v
	}

	return stats
}
