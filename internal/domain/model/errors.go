package model

import "errors"

// Window validation errors.
var (
	ErrEmptyEngineerID    = errors.New("engineer id is empty")
	ErrInvalidPeriod      = errors.New("period start must precede period end")
	ErrEventOutsidePeriod = errors.New("event timestamp outside analysis period")
)
