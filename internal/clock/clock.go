// Package clock supplies the current local wall-clock instant.
package clock

import (
	"time"

	"cloud.google.com/go/civil"
)

// Clock returns the current naive local date and time.
type Clock interface {
	Now() civil.DateTime
}

// System reads the machine clock in the local time zone.
type System struct{}

func (System) Now() civil.DateTime {
	return civil.DateTimeOf(time.Now())
}

// Fixed always returns the same instant.
type Fixed civil.DateTime

func (f Fixed) Now() civil.DateTime {
	return civil.DateTime(f)
}
