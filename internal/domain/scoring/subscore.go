package scoring

import (
	"math"

	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/domain/model"
)

// Score bounds shared by every metric.
const (
	minMetricValue = 0.0
	maxMetricValue = 10.0
)

// clamp bounds a value to [0, 10]. Negative raw inputs map to 0,
// never to a negative score.
func clamp(v float64) float64 {
	return math.Max(minMetricValue, math.Min(maxMetricValue, v))
}

// band is one step of a monotonic step function.
type band struct {
	threshold float64
	score     float64
}

// stepAbove returns the score of the first band whose threshold the
// value exceeds. Bands are listed highest threshold first.
func stepAbove(value float64, bands []band, fallback float64) float64 {
	for _, b := range bands {
		if value > b.threshold {
			return b.score
		}
	}
	return fallback
}

// stepBelow returns the score of the first band whose threshold the
// value stays under. Bands are listed lowest threshold first.
func stepBelow(value float64, bands []band, fallback float64) float64 {
	for _, b := range bands {
		if value < b.threshold {
			return b.score
		}
	}
	return fallback
}

// metricSet accumulates named metrics for one dimension of one
// source. Every value is clamped on entry, so the mean only ever sees
// [0, 10]. Metrics with no evidence are never added; the mean covers
// what was observed.
type metricSet struct {
	list []model.MetricScore
}

func (m *metricSet) add(name string, value float64) {
	m.list = append(m.list, model.MetricScore{Name: name, Value: clamp(value)})
}

// subScore folds the accumulated metrics into a SubScore. The second
// return is false when no metric produced evidence.
func (m *metricSet) subScore(src model.Source) (model.SubScore, bool) {
	if len(m.list) == 0 {
		return model.SubScore{}, false
	}
	var sum float64
	for _, ms := range m.list {
		sum += ms.Value
	}
	return model.SubScore{
		Source:  src,
		Metrics: m.list,
		Value:   sum / float64(len(m.list)),
	}, true
}
