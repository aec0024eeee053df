// Package trend classifies the direction of a per-period series.
package trend

type settings struct {
	tolerance float64
}

// Option applies a configuration option to Classify.
type Option func(*settings)

// WithTolerance sets the relative band, as a fraction of the early
// mean, inside which a change counts as stable.
func WithTolerance(tolerance float64) Option {
	return func(s *settings) {
		if tolerance >= 0 {
			s.tolerance = tolerance
		}
	}
}
