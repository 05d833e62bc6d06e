package asic

import (
	"math"

	"github.com/harmonicstack/harmonicstack/internal/wave"
)

// pattern is one fixed phase stagger pattern: the product of its digits,
// normalised by norm, scaled by amplitude and modulated at freq.
type pattern struct {
	digits    [3]float64
	norm      float64
	amplitude float64
	freq      float64
	cosine    bool
}

func (p pattern) value(t float64) float64 {
	osc := wave.Sample(t, p.freq, 0)
	if p.cosine {
		osc = wave.Cos(t, p.freq)
	}
	return p.digits[0] * p.digits[1] * p.digits[2] / p.norm * p.amplitude * osc
}

var (
	pattern537 = pattern{digits: [3]float64{5, 3, 7}, norm: 105, amplitude: 0.10, freq: 0.12}
	pattern684 = pattern{digits: [3]float64{6, 8, 4}, norm: 192, amplitude: 0.08, freq: 0.11, cosine: true}
	pattern921 = pattern{digits: [3]float64{9, 2, 1}, norm: 18, amplitude: 0.12, freq: 0.13}
)

const (
	staggerScale = 0.15
	staggerCap   = 0.05
)

// StaggerState is the phase stagger metric state.
type StaggerState struct {
	Pattern537 float64
	Pattern684 float64
	Pattern921 float64
}

// Sum returns the total of all accumulators.
func (s StaggerState) Sum() float64 {
	return s.Pattern537 + s.Pattern684 + s.Pattern921
}

// Active returns how many patterns have accumulated a positive value.
func (s StaggerState) Active() int {
	var n int
	for _, v := range []float64{s.Pattern537, s.Pattern684, s.Pattern921} {
		if v > 0 {
			n++
		}
	}
	return n
}

// Map returns the state keyed by metric name.
func (s StaggerState) Map() map[string]float64 {
	return map[string]float64{
		"pattern_537": s.Pattern537,
		"pattern_684": s.Pattern684,
		"pattern_921": s.Pattern921,
	}
}

// PhaseStagger coordinates the three multi-core phase patterns.
type PhaseStagger struct {
	State StaggerState
}

// Update adds each pattern's magnitude at time t and returns sum * 0.15
// capped at 0.05.
func (p *PhaseStagger) Update(t float64) float64 {
	p.State.Pattern537 += math.Abs(pattern537.value(t))
	p.State.Pattern684 += math.Abs(pattern684.value(t))
	p.State.Pattern921 += math.Abs(pattern921.value(t))

	return math.Min(p.State.Sum()*staggerScale, staggerCap)
}
