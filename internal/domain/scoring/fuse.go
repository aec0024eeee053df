package scoring

import (
	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/domain/model"
)

// Base fusion weights applied when every source reports.
const (
	defaultIncidentWeight = 0.70
	defaultGitHubWeight   = 0.15
	defaultSlackWeight    = 0.15
)

// Weights maps each source to its base fusion weight.
type Weights map[model.Source]float64

// DefaultWeights returns the standard incident-heavy split.
func DefaultWeights() Weights {
	return Weights{
		model.SourceIncident: defaultIncidentWeight,
		model.SourceGitHub:   defaultGitHubWeight,
		model.SourceSlack:    defaultSlackWeight,
	}
}

// sourceOrder fixes iteration order so fused output is deterministic.
var sourceOrder = []model.Source{model.SourceIncident, model.SourceGitHub, model.SourceSlack}

// Fuse blends one dimension's per-source sub-scores. Sources absent
// from subs contribute no weight; the weights of present sources are
// renormalized to sum to 1 while keeping their relative ratios. With a
// single present source the result equals that sub-score exactly.
//
// A dimension with no reporting sources fuses to a zero-evidence
// DimensionScore with no contributing sources.
func Fuse(dim model.Dimension, subs map[model.Source]model.SubScore, base Weights) model.DimensionScore {
	ds := model.DimensionScore{
		Dimension: dim,
		Weights:   make(map[model.Source]float64, len(subs)),
	}

	var totalWeight float64
	for _, src := range sourceOrder {
		if _, ok := subs[src]; !ok {
			continue
		}
		if w := base[src]; w > 0 {
			totalWeight += w
		}
	}
	if totalWeight == 0 {
		return ds
	}

	var value float64
	for _, src := range sourceOrder {
		sub, ok := subs[src]
		if !ok {
			continue
		}
		w := base[src]
		if w <= 0 {
			continue
		}
		w /= totalWeight
		ds.Weights[src] = w
		ds.Sources = append(ds.Sources, sub)
		value += w * sub.Value
	}
	ds.Value = clamp(value)
	return ds
}
