// Package trend classifies the direction of a per-period series.
package trend

import (
	"math"
	"sort"

	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/domain/model"
)

// defaultTolerance is the relative band treated as stable.
const defaultTolerance = 0.10

// Point is one period's aggregate value.
type Point struct {
	Period int
	Value  float64
}

// Classify compares the late half of the series against the early half
// and reports the direction. The middle point of an odd-length series
// is dropped. higherIsBetter carries the metric's polarity; the
// estimator itself has none.
//
// Fewer than two points classify as stable; insufficient evidence is
// not an error.
func Classify(series []Point, higherIsBetter bool, opts ...Option) model.Trend {
	s := settings{tolerance: defaultTolerance}
	for _, opt := range opts {
		opt(&s)
	}

	n := len(series)
	if n < 2 {
		return model.TrendStable
	}

	pts := make([]Point, n)
	copy(pts, series)
	sort.Slice(pts, func(i, j int) bool { return pts[i].Period < pts[j].Period })

	half := n / 2
	earlyMean := mean(pts[:half])
	lateMean := mean(pts[n-half:])

	up, significant := compare(earlyMean, lateMean, s.tolerance)
	if !significant {
		return model.TrendStable
	}
	if up == higherIsBetter {
		return model.TrendImproving
	}
	return model.TrendDegrading
}

// compare reports whether the change early->late is upward and whether
// it clears the tolerance band.
func compare(early, late, tolerance float64) (up, significant bool) {
	if early == 0 {
		// No baseline to take a relative change against; any nonzero
		// late mean resolves by its sign.
		if late == 0 {
			return false, false
		}
		return late > 0, true
	}
	rel := (late - early) / math.Abs(early)
	if math.Abs(rel) <= tolerance {
		return false, false
	}
	return rel > 0, true
}

func mean(pts []Point) float64 {
	if len(pts) == 0 {
		return 0
	}
	var sum float64
	for _, p := range pts {
		sum += p.Value
	}
	return sum / float64(len(pts))
}
