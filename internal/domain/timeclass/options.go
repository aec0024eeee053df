// Package timeclass classifies instants against an engineer's local
// working hours.
package timeclass

import "time"

// Option applies a configuration option to the Classifier.
type Option func(*Classifier)

// WithBusinessHours sets the local business window [start, end) in
// whole hours.
func WithBusinessHours(start, end int) Option {
	return func(c *Classifier) {
		c.startHour = start
		c.endHour = end
	}
}

// WithBusinessDays replaces the default Monday-Friday business days.
func WithBusinessDays(days ...time.Weekday) Option {
	return func(c *Classifier) {
		c.businessDays = [7]bool{}
		for _, d := range days {
			if d >= time.Sunday && d <= time.Saturday {
				c.businessDays[d] = true
			}
		}
	}
}
