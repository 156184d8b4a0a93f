package mocks

import (
	"time"

	"wordduel/internal/dependencies/clock"
)

// Clock is a fixed-time Clock for tests
type Clock struct {
	Current time.Time
}

var _ clock.Clock = (*Clock)(nil)

// NewClock creates a Clock pinned to the given time
func NewClock(t time.Time) *Clock {
	return &Clock{Current: t}
}

// Now returns the pinned time
func (c *Clock) Now() time.Time {
	return c.Current
}

// Advance moves the pinned time forward
func (c *Clock) Advance(d time.Duration) {
	c.Current = c.Current.Add(d)
}
