package timeclass

import "errors"

// ErrInvalidHours indicates a business window whose start hour is not
// before its end hour.
var ErrInvalidHours = errors.New("business start hour must be before end hour")
