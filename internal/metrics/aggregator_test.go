package metrics

import (
	"math"
	"testing"
)

func TestAggregator_Counters(t *testing.T) {
	agg := NewAggregator()

	agg.RecordSuccess(Sample{
		Provider: "openai", Voice: "alloy", Quality: "medium", Format: "mp3",
		Cost: 0.03, DurationSeconds: 60, SizeBytes: 48000, ProcessingMs: 900,
	})
	agg.RecordSuccess(Sample{
		Provider: "openai", Voice: "nova", Quality: "hd", Format: "wav",
		Cost: 0.06, DurationSeconds: 120, SizeBytes: 96000, ProcessingMs: 1100,
	})
	agg.RecordFailure()

	stats := agg.Snapshot()

	if stats.TotalRequests != 3 || stats.SuccessCount != 2 || stats.FailureCount != 1 {
		t.Errorf("counts = %d/%d/%d, want 3/2/1",
			stats.TotalRequests, stats.SuccessCount, stats.FailureCount)
	}
	if math.Abs(stats.TotalCost-0.09) > 1e-9 {
		t.Errorf("TotalCost = %f, want 0.09", stats.TotalCost)
	}
	if stats.CostByProvider["openai"] != stats.TotalCost {
		t.Errorf("per-provider cost %f does not match total %f",
			stats.CostByProvider["openai"], stats.TotalCost)
	}
	if stats.UsageByVoice["alloy"] != 1 || stats.UsageByVoice["nova"] != 1 {
		t.Errorf("voice usage = %v, want one each", stats.UsageByVoice)
	}
	if stats.QualityCounts["hd"] != 1 || stats.FormatCounts["mp3"] != 1 {
		t.Errorf("distributions wrong: quality=%v format=%v",
			stats.QualityCounts, stats.FormatCounts)
	}
}

func TestAggregator_RunningMeans(t *testing.T) {
	agg := NewAggregator()

	agg.RecordSuccess(Sample{Provider: "openai", ProcessingMs: 1000, Cost: 0.02, DurationSeconds: 60})
	agg.RecordSuccess(Sample{Provider: "openai", ProcessingMs: 2000, Cost: 0.04, DurationSeconds: 60})

	stats := agg.Snapshot()
	if math.Abs(stats.AvgProcessingMs-1500) > 1e-9 {
		t.Errorf("AvgProcessingMs = %f, want 1500", stats.AvgProcessingMs)
	}
	// 0.02/min and 0.04/min average to 0.03/min.
	if math.Abs(stats.AvgCostPerMin-0.03) > 1e-9 {
		t.Errorf("AvgCostPerMin = %f, want 0.03", stats.AvgCostPerMin)
	}

	// Failures must not disturb success averages.
	agg.RecordFailure()
	if got := agg.Snapshot().AvgProcessingMs; math.Abs(got-1500) > 1e-9 {
		t.Errorf("AvgProcessingMs after failure = %f, want 1500", got)
	}
}

func TestAggregator_Last24hBucketAccumulates(t *testing.T) {
	agg := NewAggregator()

	for i := 0; i < 5; i++ {
		agg.RecordSuccess(Sample{Provider: "openai", Cost: 0.01, DurationSeconds: 10})
	}

	if got := agg.CostLast24h(); math.Abs(got-0.05) > 1e-9 {
		t.Errorf("CostLast24h = %f, want 0.05", got)
	}

	stats := agg.Snapshot()
	if stats.Last24hRequests != 5 {
		t.Errorf("Last24hRequests = %d, want 5", stats.Last24hRequests)
	}
}
