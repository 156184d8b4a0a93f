package clock

import "time"

// Clock abstracts time lookups so controllers can be tested against a
// fixed time.
type Clock interface {
	Now() time.Time
}

// System implements Clock with the system clock
type System struct{}

// New returns a system-backed Clock
func New() *System {
	return &System{}
}

// Now returns the current time
func (System) Now() time.Time {
	return time.Now()
}
