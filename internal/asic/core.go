package asic

import (
	"log/slog"
	"sync"

	"github.com/harmonicstack/harmonicstack/internal/wave"
	"github.com/harmonicstack/harmonicstack/pkg/types"
)

// Name identifies the ASIC Core in reports and summaries.
const Name = "asic"

// DefaultBaselineRate is the fixed rate the projection is computed from.
const DefaultBaselineRate = 3779

const (
	totalScale = 1.1
	totalCap   = 0.12
)

// Breakdown keys.
const (
	TermResonant  = "resonant_switching"
	TermThermal   = "thermal_management"
	TermStagger   = "phase_stagger"
	TermRecycling = "energy_recycling"
)

// State is a snapshot of every sub-model's accumulators.
type State struct {
	Resonant  ResonantState
	Thermal   ThermalState
	Stagger   StaggerState
	Recycling RecyclingState
}

// Map flattens the snapshot into "<sub-model>.<metric>" keys.
func (s State) Map() map[string]float64 {
	out := make(map[string]float64, 12)
	for prefix, m := range map[string]map[string]float64{
		TermResonant:  s.Resonant.Map(),
		TermThermal:   s.Thermal.Map(),
		TermStagger:   s.Stagger.Map(),
		TermRecycling: s.Recycling.Map(),
	} {
		for k, v := range m {
			out[prefix+"."+k] = v
		}
	}
	return out
}

// Core combines the four ASIC sub-models. Every exported method takes the
// core's mutex.
type Core struct {
	mu    sync.Mutex
	clock wave.Clock

	resonant  *ResonantSwitching
	thermal   *ThermalManagement
	stagger   *PhaseStagger
	recycling *EnergyRecycling

	baselineRate       int
	fraction           float64
	last               types.Breakdown
	optimizationCycles int
}

// Option configures a Core.
type Option func(*Core)

// WithClock sets the time source. Defaults to wave.SystemClock.
func WithClock(c wave.Clock) Option {
	return func(a *Core) { a.clock = c }
}

// WithBaselineRate overrides DefaultBaselineRate.
func WithBaselineRate(rate int) Option {
	return func(a *Core) { a.baselineRate = rate }
}

// New returns a Core with every sub-model at its baseline.
func New(opts ...Option) *Core {
	a := &Core{
		clock:        wave.SystemClock{},
		resonant:     &ResonantSwitching{},
		thermal:      NewThermalManagement(),
		stagger:      &PhaseStagger{},
		recycling:    NewEnergyRecycling(),
		baselineRate: DefaultBaselineRate,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ComputeTotal runs one pass over the four sub-models, resonant switching
// before energy recycling, and returns the combined fraction capped at 0.12.
func (a *Core) ComputeTotal() (float64, types.Breakdown) {
	a.mu.Lock()
	defer a.mu.Unlock()

	t := wave.Seconds(a.clock)

	resonant := a.resonant.Update(t)
	thermal := a.thermal.Update(t)
	stagger := a.stagger.Update(t)
	recycling := a.recycling.Update(t, a.resonant.State)

	sum := resonant + thermal + stagger + recycling
	result := types.Clamp(sum*totalScale, 0, totalCap)

	bd := types.Breakdown{
		TermResonant:   resonant * 100,
		TermThermal:    thermal * 100,
		TermStagger:    stagger * 100,
		TermRecycling:  recycling * 100,
		types.TotalKey: result * 100,
	}
	a.fraction = result
	a.last = bd
	a.optimizationCycles++

	slog.Debug("asic: computed total",
		"fraction", result,
		"optimization_cycles", a.optimizationCycles,
	)

	return result, bd
}

// Summary returns the read-only view of the latest pass. It does not run a
// pass; before the first ComputeTotal every percentage is zero.
func (a *Core) Summary() types.Summary {
	a.mu.Lock()
	defer a.mu.Unlock()

	extra := map[string]float64{
		"zvs_frequency":         a.resonant.State.ZVSFrequency,
		"thermal_efficiency":    a.thermal.State.CoolingEfficiency,
		"phase_patterns_active": float64(a.stagger.State.Active()),
	}
	for k, v := range a.last {
		if k != types.TotalKey {
			extra[k] = v
		}
	}

	return types.Summary{
		Core:               Name,
		BaselineRate:       a.baselineRate,
		CurrentRate:        types.ProjectRate(a.baselineRate, a.fraction),
		Fraction:           a.fraction,
		ImprovementPercent: a.fraction * 100,
		OptimizationCycles: a.optimizationCycles,
		Extra:              extra,
	}
}

// State returns a snapshot of every sub-model's accumulators.
func (a *Core) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return State{
		Resonant:  a.resonant.State,
		Thermal:   a.thermal.State,
		Stagger:   a.stagger.State,
		Recycling: a.recycling.State,
	}
}

// OptimizationCycles returns the number of ComputeTotal calls so far.
func (a *Core) OptimizationCycles() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.optimizationCycles
}
