// Package metrics records in-process counters for git operations: call
// counts, failures by error category, and cumulative durations.
package metrics

import (
	"sync"
	"time"
)

// OperationStats aggregates the outcomes of one operation name.
type OperationStats struct {
	Count              int64
	Failures           int64
	FailuresByCategory map[string]int64
	TotalDuration      time.Duration
}

// Recorder collects operation statistics. It is safe for concurrent use.
type Recorder struct {
	mu  sync.Mutex
	ops map[string]*OperationStats
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{ops: make(map[string]*OperationStats)}
}

// Observe records one finished invocation. category is the error category for
// failures and empty for successes.
func (r *Recorder) Observe(op string, d time.Duration, category string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.ops[op]
	if !ok {
		stats = &OperationStats{FailuresByCategory: make(map[string]int64)}
		r.ops[op] = stats
	}
	stats.Count++
	stats.TotalDuration += d
	if category != "" {
		stats.Failures++
		stats.FailuresByCategory[category]++
	}
}

// Snapshot returns a copy of the collected statistics keyed by operation name.
func (r *Recorder) Snapshot() map[string]OperationStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]OperationStats, len(r.ops))
	for op, stats := range r.ops {
		byCategory := make(map[string]int64, len(stats.FailuresByCategory))
		for category, n := range stats.FailuresByCategory {
			byCategory[category] = n
		}
		out[op] = OperationStats{
			Count:              stats.Count,
			Failures:           stats.Failures,
			FailuresByCategory: byCategory,
			TotalDuration:      stats.TotalDuration,
		}
	}
	return out
}
