package core

import "sync/atomic"

// Clock is a logical counter advanced once per completed frame.
// Other subsystems compare clock values to detect stale state.
type Clock struct {
	value atomic.Uint64
}

// NewClock creates a clock starting at zero.
func NewClock() *Clock {
	return &Clock{}
}

// Increment advances the clock by one.
func (c *Clock) Increment() {
	c.value.Add(1)
}

// Now returns the current clock value.
func (c *Clock) Now() uint64 {
	return c.value.Load()
}
