package asic

import (
	"math"

	"github.com/harmonicstack/harmonicstack/internal/wave"
)

// Zero-voltage switching frequencies; each contributes sin(f*pi/18 + 0.1t).
var zvsFrequencies = []float64{3, 6, 9, 12, 18, 27, 36, 54}

// Zero-current switching phase patterns; each contributes (p mod 3)*0.015*cos(0.08t).
var zcsPatterns = []int{5, 3, 7, 6, 8, 4, 9, 2, 1}

const (
	zvsDrift     = 0.1
	zvsAmplitude = 0.008
	zvsThreshold = 0.004

	zcsFreq      = 0.08
	zcsAmplitude = 0.015

	phaseAlignmentFactor = 0.3
	resonantScale        = 0.12
	resonantCap          = 0.08
)

// ResonantState is the resonant switching metric state.
type ResonantState struct {
	ZVSFrequency   float64
	ZCSTiming      float64
	PhaseAlignment float64
}

// Sum returns the total of all accumulators.
func (s ResonantState) Sum() float64 {
	return s.ZVSFrequency + s.ZCSTiming + s.PhaseAlignment
}

// Map returns the state keyed by metric name.
func (s ResonantState) Map() map[string]float64 {
	return map[string]float64{
		"zvs_frequency":   s.ZVSFrequency,
		"zcs_timing":      s.ZCSTiming,
		"phase_alignment": s.PhaseAlignment,
	}
}

// ResonantSwitching models zero-voltage and zero-current switching.
type ResonantSwitching struct {
	State ResonantState
}

// Update recomputes the switching state for time t (seconds) and returns the
// benefit capped at 0.08. Unlike the other sub-models, all three values are
// reassigned rather than accumulated.
func (r *ResonantSwitching) Update(t float64) float64 {
	var zvs float64
	for _, f := range zvsFrequencies {
		factor := wave.Sample(t, zvsDrift, f*math.Pi/18) * zvsAmplitude
		if factor > zvsThreshold {
			zvs += factor
		}
	}
	r.State.ZVSFrequency = zvs

	var zcs float64
	c := wave.Cos(t, zcsFreq)
	for _, p := range zcsPatterns {
		zcs += math.Abs(float64(p%3) * zcsAmplitude * c)
	}
	r.State.ZCSTiming = zcs

	r.State.PhaseAlignment = r.State.ZVSFrequency * r.State.ZCSTiming * phaseAlignmentFactor

	return math.Min(r.State.Sum()*resonantScale, resonantCap)
}
