// Package wave provides the oscillating signal primitive every scoring core
// is built from, plus the clocks that feed it.
//
// Sample(t, freq, phase) is sin(freq*t + phase) with t in seconds since the
// Unix epoch. It performs no clamping; callers scale and clamp. Cores read
// time through a Clock so tests can pin every instance to the same simulated
// instant (FixedClock) or advance it deterministically (StepClock).
package wave
