package scoring

import (
	"sort"
	"time"

	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/domain/clustering"
	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/domain/model"
	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/domain/timeclass"
	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/domain/trend"
)

// incidentScorer maps one engineer's incident partition onto the three
// dimensions. Incident data carries the highest fusion weight, so its
// metrics follow the paging reality most closely: response frequency
// and pacing feed exhaustion, how incidents are handled feeds
// depersonalization, and resolution outcomes feed accomplishment.
type incidentScorer struct {
	cls            *timeclass.Classifier
	clusterWindow  time.Duration
	trendTolerance float64
}

func (s incidentScorer) score(events []model.Event, win *model.EngineerWindow) map[model.Dimension]model.SubScore {
	events = withIncidentDetails(events)
	if len(events) == 0 {
		return nil
	}

	total := float64(len(events))
	weeks := win.Weeks()

	var afterHours, escalated, solo int
	var resolved, highSev, highSevResolved, postmortems int
	var resolutionHoursSum float64
	var updateChars, updateCount int
	timestamps := make([]time.Time, 0, len(events))

	for _, e := range events {
		d := e.Incident
		timestamps = append(timestamps, e.Timestamp)
		if s.cls.AfterHours(e.Timestamp) {
			afterHours++
		}
		if d.Escalated {
			escalated++
		}
		if d.Responders <= 1 {
			solo++
		}
		if d.Resolved() {
			resolved++
			resolutionHoursSum += d.ResolvedAt.Sub(e.Timestamp).Hours()
			if d.Postmortem {
				postmortems++
			}
		}
		if d.HighSeverity() {
			highSev++
			if d.Resolved() {
				highSevResolved++
			}
		}
		for _, u := range d.Updates {
			updateChars += len([]rune(u))
			updateCount++
		}
	}

	out := make(map[model.Dimension]model.SubScore, 3)

	var ee metricSet
	ee.add("frequency", total/weeks)
	ee.add("after_hours", float64(afterHours)/total*20)
	if resolved > 0 {
		ee.add("resolution_time", resolutionHoursSum/float64(resolved)*2.5)
	}
	ee.add("clustering", clustering.Ratio(timestamps, s.clusterWindow)*10)
	if sub, ok := ee.subScore(model.SourceIncident); ok {
		out[model.DimExhaustion] = sub
	}

	var dp metricSet
	dp.add("escalation_rate", float64(escalated)/total*25)
	dp.add("solo_handling", float64(solo)/total*10)
	responseDir := trend.Classify(s.weeklyMeans(events, win.PeriodStart, ackMinutes), false,
		trend.WithTolerance(s.trendTolerance))
	dp.add("response_time_trend", trendStep(responseDir, 2, 5, 8))
	if updateCount > 0 {
		meanLen := float64(updateChars) / float64(updateCount)
		dp.add("update_brevity", stepBelow(meanLen, []band{{15, 8}, {30, 4}, {50, 1}}, 0))
	}
	if sub, ok := dp.subScore(model.SourceIncident); ok {
		out[model.DimDepersonalization] = sub
	}

	var pa metricSet
	pa.add("resolution_success", float64(resolved)/total*10)
	resolutionDir := trend.Classify(s.weeklyMeans(events, win.PeriodStart, resolutionHours), false,
		trend.WithTolerance(s.trendTolerance))
	pa.add("resolution_time_trend", trendStep(resolutionDir, 8, 5, 2))
	if highSev > 0 {
		pa.add("high_severity_success", float64(highSevResolved)/float64(highSev)*10)
	} else {
		// No high-severity incidents is no evidence either way.
		pa.add("high_severity_success", 5)
	}
	if resolved > 0 {
		pa.add("knowledge_sharing", float64(postmortems)/float64(resolved)*10)
	}
	if sub, ok := pa.subScore(model.SourceIncident); ok {
		out[model.DimAccomplishment] = sub
	}

	return out
}

// weeklyMeans buckets per-incident values into week bins from the
// period start and returns each bin's mean as one trend point.
func (s incidentScorer) weeklyMeans(events []model.Event, start time.Time, value func(model.Event) (float64, bool)) []trend.Point {
	sums := make(map[int]float64)
	counts := make(map[int]int)
	for _, e := range events {
		v, ok := value(e)
		if !ok {
			continue
		}
		bin := int(e.Timestamp.Sub(start) / (7 * 24 * time.Hour))
		sums[bin] += v
		counts[bin]++
	}

	bins := make([]int, 0, len(sums))
	for bin := range sums {
		bins = append(bins, bin)
	}
	sort.Ints(bins)

	points := make([]trend.Point, 0, len(bins))
	for _, bin := range bins {
		points = append(points, trend.Point{Period: bin, Value: sums[bin] / float64(counts[bin])})
	}
	return points
}

// ackMinutes is the paging-to-acknowledgement delay for one incident.
func ackMinutes(e model.Event) (float64, bool) {
	d := e.Incident
	if d == nil || d.AcknowledgedAt == nil {
		return 0, false
	}
	m := d.AcknowledgedAt.Sub(e.Timestamp).Minutes()
	if m < 0 {
		m = 0
	}
	return m, true
}

// resolutionHours is the start-to-resolution span for one incident.
func resolutionHours(e model.Event) (float64, bool) {
	d := e.Incident
	if d == nil || !d.Resolved() {
		return 0, false
	}
	h := d.ResolvedAt.Sub(e.Timestamp).Hours()
	if h < 0 {
		h = 0
	}
	return h, true
}

// trendStep maps a trend direction onto a fixed metric value.
func trendStep(dir model.Trend, improving, stable, degrading float64) float64 {
	switch dir {
	case model.TrendImproving:
		return improving
	case model.TrendDegrading:
		return degrading
	default:
		return stable
	}
}

func withIncidentDetails(events []model.Event) []model.Event {
	out := events[:0:0]
	for _, e := range events {
		if e.Incident != nil {
			out = append(out, e)
		}
	}
	return out
}
