package report

import (
	"sort"

	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/domain/model"
)

// Status bands over the composed score, floors inclusive.
const (
	StatusCritical = "CRITICAL"
	StatusHighRisk = "HIGH_RISK"
	StatusMedium   = "MEDIUM_RISK"
	StatusHealthy  = "HEALTHY"

	criticalFloor = 8.0
	highRiskFloor = 6.0
	mediumFloor   = 4.0
)

// Risk factor extraction bounds.
const (
	maxRiskFactors    = 3
	riskFactorMinimum = 5.0
	maxMetricValue    = 10.0
)

// Insights is the rule-derived view of one result: a status band and
// the metrics driving the score.
type Insights struct {
	Status      string       `json:"status"`
	RiskFactors []RiskFactor `json:"risk_factors"`
}

// RiskFactor names one contributing metric. Contribution is the
// metric's pull towards burnout on the 0-10 scale; for the protective
// accomplishment dimension the inverse of the metric enters.
type RiskFactor struct {
	Dimension    string  `json:"dimension"`
	Source       string  `json:"source"`
	Metric       string  `json:"metric"`
	Contribution float64 `json:"contribution"`
}

// StatusFor maps a composed score onto its status band.
func StatusFor(score float64) string {
	switch {
	case score >= criticalFloor:
		return StatusCritical
	case score >= highRiskFloor:
		return StatusHighRisk
	case score >= mediumFloor:
		return StatusMedium
	default:
		return StatusHealthy
	}
}

// BuildInsights derives the status band and the strongest risk factors
// from a result's retained sub-scores.
func BuildInsights(result model.BurnoutResult) Insights {
	var factors []RiskFactor

	collect := func(dim model.DimensionScore, protective bool) {
		for _, sub := range dim.Sources {
			for _, metric := range sub.Metrics {
				contribution := metric.Value
				if protective {
					contribution = maxMetricValue - metric.Value
				}
				if contribution < riskFactorMinimum {
					continue
				}
				factors = append(factors, RiskFactor{
					Dimension:    string(dim.Dimension),
					Source:       string(sub.Source),
					Metric:       metric.Name,
					Contribution: contribution,
				})
			}
		}
	}
	collect(result.Exhaustion, false)
	collect(result.Depersonalization, false)
	collect(result.Accomplishment, true)

	sort.SliceStable(factors, func(i, j int) bool {
		return factors[i].Contribution > factors[j].Contribution
	})
	if len(factors) > maxRiskFactors {
		factors = factors[:maxRiskFactors]
	}

	return Insights{
		Status:      StatusFor(result.Score),
		RiskFactors: factors,
	}
}
