// Package asic implements the ASIC Core: four independently stateful
// sub-models combined into one capped improvement fraction.
//
//	resonant switching   zvs/zcs oscillation families and their phase alignment   cap 0.08
//	thermal management   log-scaled heat spreading, oscillating via effectiveness  cap 0.06
//	phase stagger        5-3-7, 6-8-4 and 9-2-1 patterns modulated by oscillation  cap 0.05
//	energy recycling     charge recovery plus power harvested from resonant state  cap 0.04
//
// Sub-model accumulators grow without bound across passes; only the value each
// Update returns is clamped. Later terms (cooling boost, efficiency gain) are
// linear in the raw sums, so the accumulators must stay unclamped.
//
// Within one ComputeTotal pass resonant switching is updated first and its
// fresh state is passed to EnergyRecycling.Update. That is the only
// cross-sub-model dependency.
package asic
