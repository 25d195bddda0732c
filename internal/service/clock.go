package service

import (
	"time"

	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/internal/models"
)

// Clock is the time source for anything that depends on "now" or "today".
type Clock interface {
	Now() time.Time
	Today() time.Time
}

// SystemClock reads the wall clock in a fixed campus location.
type SystemClock struct {
	Location *time.Location
}

// NewSystemClock returns a clock in loc, or UTC when loc is nil.
func NewSystemClock(loc *time.Location) SystemClock {
	if loc == nil {
		loc = time.UTC
	}
	return SystemClock{Location: loc}
}

// Now returns the current instant in the clock's location.
func (c SystemClock) Now() time.Time {
	loc := c.Location
	if loc == nil {
		loc = time.UTC
	}
	return time.Now().In(loc)
}

// Today returns midnight of the current date.
func (c SystemClock) Today() time.Time {
	return models.DateOnly(c.Now())
}
