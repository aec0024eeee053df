package scoring

import "errors"

// Configuration errors surfaced before any scoring happens. Each names
// the offending field in its message when wrapped.
var (
	ErrInvalidWeights       = errors.New("source weights must sum to 1.0")
	ErrNegativeWeight       = errors.New("source weight must not be negative")
	ErrInvalidBusinessHours = errors.New("business start hour must be before end hour")
	ErrInvalidClusterWindow = errors.New("cluster window must be positive")
	ErrInvalidSweetSpot     = errors.New("commit sweet-spot bounds must satisfy low < high")
	ErrInvalidTolerance     = errors.New("trend tolerance must not be negative")
)
