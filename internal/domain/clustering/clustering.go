// Package clustering flags bursts of temporally adjacent events.
package clustering

import (
	"sort"
	"time"
)

// Ratio returns the fraction of events that have at least one
// neighbor strictly closer than window, in either direction. A gap
// exactly equal to window does not cluster; the same policy applies
// everywhere this package is used.
//
// Fewer than two events yield 0. The input does not need to be
// sorted; a copy is ordered internally.
func Ratio(timestamps []time.Time, window time.Duration) float64 {
	n := len(timestamps)
	if n < 2 || window <= 0 {
		return 0
	}

	ts := make([]time.Time, n)
	copy(ts, timestamps)
	sort.Slice(ts, func(i, j int) bool { return ts[i].Before(ts[j]) })

	// On a sorted sequence the nearest neighbor is adjacent, so one
	// linear pass over the gaps is enough.
	clustered := 0
	for i := 0; i < n; i++ {
		if i > 0 && ts[i].Sub(ts[i-1]) < window {
			clustered++
			continue
		}
		if i < n-1 && ts[i+1].Sub(ts[i]) < window {
			clustered++
		}
	}
	return float64(clustered) / float64(n)
}
