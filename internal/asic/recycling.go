package asic

import (
	"math"

	"github.com/harmonicstack/harmonicstack/internal/wave"
	"github.com/harmonicstack/harmonicstack/pkg/types"
)

const (
	chargeFreq      = 0.06
	chargeAmplitude = 0.04

	harvestFactor    = 0.03
	efficiencyFactor = 0.25

	recyclingBaseline = 1.0
	recyclingScale    = 0.08
	recyclingCap      = 0.04
)

// RecyclingState is the energy recycling metric state.
type RecyclingState struct {
	ChargeRecovery  float64
	PowerHarvesting float64
	EfficiencyGain  float64
}

// Sum returns the total of all accumulators.
func (s RecyclingState) Sum() float64 {
	return s.ChargeRecovery + s.PowerHarvesting + s.EfficiencyGain
}

// Map returns the state keyed by metric name.
func (s RecyclingState) Map() map[string]float64 {
	return map[string]float64{
		"charge_recovery":  s.ChargeRecovery,
		"power_harvesting": s.PowerHarvesting,
		"efficiency_gain":  s.EfficiencyGain,
	}
}

// EnergyRecycling models adiabatic charge recovery and power harvested from
// resonant switching.
type EnergyRecycling struct {
	State RecyclingState
}

// NewEnergyRecycling returns the sub-model at its baseline: efficiency gain
// starts at 1.0.
func NewEnergyRecycling() *EnergyRecycling {
	return &EnergyRecycling{State: RecyclingState{EfficiencyGain: 1.0}}
}

// Update advances the accumulators for time t. resonant must be the resonant
// switching state produced earlier in the same pass; power harvesting is
// derived from it. Returns (sum - 1.0) * 0.08 clamped to [0, 0.04].
func (e *EnergyRecycling) Update(t float64, resonant ResonantState) float64 {
	e.State.ChargeRecovery += math.Abs(chargeAmplitude * wave.Cos(t, chargeFreq))

	e.State.PowerHarvesting += harvestFactor * (resonant.Sum() / 3.0)

	e.State.EfficiencyGain += (e.State.ChargeRecovery + e.State.PowerHarvesting) * efficiencyFactor

	return types.Clamp((e.State.Sum()-recyclingBaseline)*recyclingScale, 0, recyclingCap)
}
