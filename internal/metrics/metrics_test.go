package metrics_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gitwire.dev/gitwire/internal/metrics"
)

func TestRecorder(t *testing.T) {
	t.Run("aggregates counts, failures, and durations per operation", func(t *testing.T) {
		r := metrics.NewRecorder()
		r.Observe("status", 10*time.Millisecond, "")
		r.Observe("status", 20*time.Millisecond, "repository")
		r.Observe("log", 5*time.Millisecond, "")

		snap := r.Snapshot()
		require.Len(t, snap, 2)

		status := snap["status"]
		require.EqualValues(t, 2, status.Count)
		require.EqualValues(t, 1, status.Failures)
		require.EqualValues(t, 1, status.FailuresByCategory["repository"])
		require.Equal(t, 30*time.Millisecond, status.TotalDuration)

		log := snap["log"]
		require.EqualValues(t, 1, log.Count)
		require.Zero(t, log.Failures)
	})

	t.Run("snapshot is detached from later writes", func(t *testing.T) {
		r := metrics.NewRecorder()
		r.Observe("status", time.Millisecond, "")

		snap := r.Snapshot()
		r.Observe("status", time.Millisecond, "system")

		require.EqualValues(t, 1, snap["status"].Count)
		require.Zero(t, snap["status"].Failures)
	})

	t.Run("safe under concurrent observation", func(t *testing.T) {
		r := metrics.NewRecorder()

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					r.Observe("diff", time.Microsecond, "")
				}
			}()
		}
		wg.Wait()

		require.EqualValues(t, 800, r.Snapshot()["diff"].Count)
	})
}
