package sources

import "errors"

// Sentinel kinds for payload normalization errors.
var (
	ErrMalformedPayload = errors.New("malformed payload")
	ErrBadTimestamp     = errors.New("invalid timestamp")
)
