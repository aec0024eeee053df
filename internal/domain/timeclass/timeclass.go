// Package timeclass classifies instants against an engineer's local
// working hours.
package timeclass

import (
	"fmt"
	"time"
)

// Default business-hours window.
const (
	defaultStartHour = 9
	defaultEndHour   = 17
)

// Classifier decides after-hours and weekend membership for one
// engineer. The timezone is resolved once at construction; the
// classification methods are pure.
type Classifier struct {
	loc          *time.Location
	startHour    int
	endHour      int
	businessDays [7]bool
}

// New builds a Classifier for the given IANA timezone. Timezone load
// failures are returned unchanged. Defaults: 09-17, Monday-Friday.
func New(timezone string, opts ...Option) (*Classifier, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, err
	}

	c := &Classifier{
		loc:       loc,
		startHour: defaultStartHour,
		endHour:   defaultEndHour,
	}
	for d := time.Monday; d <= time.Friday; d++ {
		c.businessDays[d] = true
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.startHour >= c.endHour {
		return nil, fmt.Errorf("%w: start %d, end %d", ErrInvalidHours, c.startHour, c.endHour)
	}
	return c, nil
}

// AfterHours reports whether the instant falls outside the configured
// business window in the engineer's local time. An instant is after
// hours when the local hour is before the start, at or past the end,
// or the local weekday is not a business day.
func (c *Classifier) AfterHours(t time.Time) bool {
	local := t.In(c.loc)
	if !c.businessDays[local.Weekday()] {
		return true
	}
	h := local.Hour()
	return h < c.startHour || h >= c.endHour
}

// Weekend reports whether the instant falls on a local Saturday or
// Sunday, independent of the configured business days.
func (c *Classifier) Weekend(t time.Time) bool {
	wd := t.In(c.loc).Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
