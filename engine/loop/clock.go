package loop

import (
	"sync"
	"time"
)

// Clock is the time source of a loop. Frame budgets are measured with it.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// SystemClock returns a clock reading the wall clock.
func SystemClock() Clock {
	return systemClock{}
}

// ManualClock is a clock under control of the caller. If step is non-zero,
// every call to Now advances the clock by step after reading it, which lets
// tests exhaust a frame budget after a known number of readings.
type ManualClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

// NewManualClock creates a manual clock starting at start.
func NewManualClock(start time.Time, step time.Duration) *ManualClock {
	return &ManualClock{now: start, step: step}
}

// Now returns the current reading and advances the clock by its step.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

var _ Clock = &ManualClock{}
