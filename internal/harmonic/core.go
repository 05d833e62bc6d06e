package harmonic

import (
	"log/slog"
	"math"
	"sync"

	"github.com/harmonicstack/harmonicstack/internal/wave"
	"github.com/harmonicstack/harmonicstack/pkg/types"
)

// Name identifies the Harmonic Core in reports and summaries.
const Name = "harmonic"

// DefaultBaselineRate is the fixed rate the projection is computed from.
const DefaultBaselineRate = 3779

// Harmonic coefficients. Fixed for the life of a Core.
const (
	coeffPrimary   = 1.0
	coeffSecondary = 0.618
	coeffTertiary  = 0.382
)

// Oscillation frequencies in radians per second.
const (
	freqPrimary       = 0.1
	freqSecondary     = 0.15
	freqTertiary      = 0.08
	freqQuantum       = 0.12
	freqBiological    = 0.07
	freqConsciousness = 0.09
)

const (
	harmonicScale = 0.12
	harmonicCap   = 0.25

	accelerationFactor = 2.380
	resonanceRate      = 0.001
	evolutionCap       = 0.15

	quantumAmplitude    = 0.04
	biologicalAmplitude = 0.03
	quantumBioCap       = 0.08

	consciousnessLevel     = 0.82
	consciousnessAmplitude = 0.05

	totalScale = 1.2
	totalCap   = 0.25
)

// Breakdown keys.
const (
	TermHarmonic      = "harmonic"
	TermTesla         = "tesla_369"
	TermQuantumBio    = "quantum_bio"
	TermConsciousness = "consciousness"
)

// Core holds the Harmonic Core state. The zero value is not usable; call New.
type Core struct {
	mu    sync.Mutex
	clock wave.Clock

	baselineRate       int
	currentRate        int
	improvementPercent float64
	fraction           float64
	optimizationCycles int

	resonanceLevel  float64
	evolutionCycles int
}

// Option configures a Core.
type Option func(*Core)

// WithClock sets the time source. Defaults to wave.SystemClock.
func WithClock(c wave.Clock) Option {
	return func(h *Core) { h.clock = c }
}

// WithBaselineRate overrides DefaultBaselineRate.
func WithBaselineRate(rate int) Option {
	return func(h *Core) {
		h.baselineRate = rate
		h.currentRate = rate
	}
}

// New returns a Core with baseline defaults: zero counters, zero resonance and
// the current rate equal to the baseline.
func New(opts ...Option) *Core {
	h := &Core{
		clock:        wave.SystemClock{},
		baselineRate: DefaultBaselineRate,
		currentRate:  DefaultBaselineRate,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// HarmonicTerm returns the weighted harmonic oscillation term in [0, 0.25].
// It does not mutate state.
func (h *Core) HarmonicTerm() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.harmonicTerm()
}

// EvolveCycle advances the evolution counter by one, adds the boost to the
// resonance level and returns the boost clamped to [0, 0.15].
//
// Each call advances the counter, so callers must invoke it exactly once per
// intended cycle. ComputeTotal already calls it.
func (h *Core) EvolveCycle() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.evolveCycle()
}

// QuantumBioTerm returns the quantum-biological term in [0, 0.08].
func (h *Core) QuantumBioTerm() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.quantumBioTerm()
}

// ConsciousnessTerm returns the consciousness term in [0, 0.041].
func (h *Core) ConsciousnessTerm() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.consciousnessTerm()
}

// ComputeTotal evaluates every term exactly once, combines them into the
// capped improvement fraction and updates the rate projection.
func (h *Core) ComputeTotal() (float64, types.Breakdown) {
	h.mu.Lock()
	defer h.mu.Unlock()

	harmonic := h.harmonicTerm()
	tesla := h.evolveCycle()
	quantumBio := h.quantumBioTerm()
	consciousness := h.consciousnessTerm()

	sum := harmonic + tesla + quantumBio + consciousness
	result := types.Clamp(sum*totalScale, 0, totalCap)

	h.fraction = result
	h.improvementPercent = result * 100
	h.currentRate = types.ProjectRate(h.baselineRate, result)
	h.optimizationCycles++

	slog.Debug("harmonic: computed total",
		"fraction", result,
		"evolution_cycles", h.evolutionCycles,
		"optimization_cycles", h.optimizationCycles,
	)

	return result, types.Breakdown{
		TermHarmonic:      harmonic * 100,
		TermTesla:         tesla * 100,
		TermQuantumBio:    quantumBio * 100,
		TermConsciousness: consciousness * 100,
		types.TotalKey:    result * 100,
	}
}

// Summary returns the read-only performance view. It does not run a pass.
func (h *Core) Summary() types.Summary {
	h.mu.Lock()
	defer h.mu.Unlock()
	return types.Summary{
		Core:               Name,
		BaselineRate:       h.baselineRate,
		CurrentRate:        h.currentRate,
		Fraction:           h.fraction,
		ImprovementPercent: h.improvementPercent,
		OptimizationCycles: h.optimizationCycles,
		Extra: map[string]float64{
			"tesla_resonance":  h.resonanceLevel,
			"evolution_cycles": float64(h.evolutionCycles),
		},
	}
}

// EvolutionCycles returns the number of EvolveCycle calls so far.
func (h *Core) EvolutionCycles() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.evolutionCycles
}

// OptimizationCycles returns the number of ComputeTotal calls so far.
func (h *Core) OptimizationCycles() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.optimizationCycles
}

// ResonanceLevel returns the accumulated resonance.
func (h *Core) ResonanceLevel() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.resonanceLevel
}

func (h *Core) harmonicTerm() float64 {
	t := wave.Seconds(h.clock)
	primary := wave.Sample(t, freqPrimary, 0) * coeffPrimary
	secondary := wave.Cos(t, freqSecondary) * coeffSecondary
	tertiary := wave.Sample(t, freqTertiary, 0) * coeffTertiary

	factor := math.Abs(primary) + math.Abs(secondary) + math.Abs(tertiary)
	return types.Clamp(factor*harmonicScale, 0, harmonicCap)
}

func (h *Core) evolveCycle() float64 {
	n := h.evolutionCycles
	cycle3 := float64(n%3) * 0.03
	cycle6 := float64(n%6) * 0.02
	cycle9 := float64(n%9) * 0.015

	boost := (cycle3 + cycle6 + cycle9) * accelerationFactor
	h.resonanceLevel += boost * resonanceRate
	h.evolutionCycles++

	return types.Clamp(boost, 0, evolutionCap)
}

func (h *Core) quantumBioTerm() float64 {
	t := wave.Seconds(h.clock)
	quantum := wave.Sample(t, freqQuantum, 0) * quantumAmplitude
	biological := wave.Cos(t, freqBiological) * biologicalAmplitude
	return types.Clamp(math.Abs(quantum)+math.Abs(biological), 0, quantumBioCap)
}

func (h *Core) consciousnessTerm() float64 {
	t := wave.Seconds(h.clock)
	return math.Abs(consciousnessLevel * consciousnessAmplitude * wave.Sample(t, freqConsciousness, 0))
}
