package asic

import (
	"math"

	"github.com/harmonicstack/harmonicstack/internal/wave"
	"github.com/harmonicstack/harmonicstack/pkg/types"
)

// Reference hash rates for the heat distribution term.
const (
	referenceRate = 4000.0
	nominalRate   = 1000.0
)

const (
	heatDistributionScale = 0.12
	heatSpreadingRate     = 0.01

	viaFreq      = 0.09
	viaAmplitude = 0.06

	coolingBoostFactor = 0.08

	thermalBaseline = 2.0
	thermalScale    = 0.10
	thermalCap      = 0.06
)

// ThermalState is the thermal management metric state.
type ThermalState struct {
	HeatSpreading     float64
	ThermalVias       float64
	CoolingEfficiency float64
}

// Sum returns the total of all accumulators.
func (s ThermalState) Sum() float64 {
	return s.HeatSpreading + s.ThermalVias + s.CoolingEfficiency
}

// Map returns the state keyed by metric name.
func (s ThermalState) Map() map[string]float64 {
	return map[string]float64{
		"heat_spreading":     s.HeatSpreading,
		"thermal_vias":       s.ThermalVias,
		"cooling_efficiency": s.CoolingEfficiency,
	}
}

// ThermalManagement models heat spreading, thermal vias and cooling.
type ThermalManagement struct {
	State ThermalState
}

// NewThermalManagement returns the sub-model at its baseline: heat spreading
// and cooling efficiency start at 1.0.
func NewThermalManagement() *ThermalManagement {
	return &ThermalManagement{State: ThermalState{HeatSpreading: 1.0, CoolingEfficiency: 1.0}}
}

// Update advances the accumulators for time t and returns
// (sum - 2.0) * 0.10 clamped to [0, 0.06].
func (m *ThermalManagement) Update(t float64) float64 {
	heatDistribution := math.Log10(referenceRate/nominalRate) * heatDistributionScale
	m.State.HeatSpreading += heatDistribution * heatSpreadingRate

	m.State.ThermalVias += math.Abs(viaAmplitude * wave.Sample(t, viaFreq, 0))

	m.State.CoolingEfficiency += m.State.HeatSpreading * coolingBoostFactor

	return types.Clamp((m.State.Sum()-thermalBaseline)*thermalScale, 0, thermalCap)
}
