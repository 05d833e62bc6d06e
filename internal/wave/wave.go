package wave

import (
	"math"
	"sync"
	"time"
)

// Sample returns sin(freq*t + phase). The result lies in [-1, 1].
func Sample(t, freq, phase float64) float64 {
	return math.Sin(freq*t + phase)
}

// Cos is the cosine variant of Sample: cos(freq*t).
func Cos(t, freq float64) float64 {
	return Sample(t, freq, math.Pi/2)
}

// Clock supplies the current time to the scoring cores.
type Clock interface {
	Now() time.Time
}

// Seconds returns the clock's current time in fractional seconds since the
// Unix epoch.
func Seconds(c Clock) float64 {
	return float64(c.Now().UnixNano()) / float64(time.Second)
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant.
type FixedClock time.Time

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time { return time.Time(c) }

// StepClock returns start, start+step, start+2*step, ... on successive calls.
// It is safe for concurrent use.
type StepClock struct {
	mu   sync.Mutex
	next time.Time
	step time.Duration
}

// NewStepClock returns a StepClock beginning at start.
func NewStepClock(start time.Time, step time.Duration) *StepClock {
	return &StepClock{next: start, step: step}
}

// Now returns the current instant and advances the clock by one step.
func (c *StepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.next
	c.next = c.next.Add(c.step)
	return now
}
