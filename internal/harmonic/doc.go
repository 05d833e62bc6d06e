// Package harmonic implements the Harmonic Core: a scoring module that sums
// four terms into one capped improvement fraction.
//
//   - harmonic: weighted |sin|/|cos| oscillations (coefficients 1.0, 0.618,
//     0.382) scaled by 0.12, capped at 0.25
//   - tesla_369: counter-driven evolution boost from evolution_cycles mod 3/6/9,
//     accelerated by 2.380 and capped at 0.15; advances the resonance level
//   - quantum_bio: two bounded oscillations capped at 0.08
//   - consciousness: one bounded oscillation, at most 0.041
//
// ComputeTotal multiplies the sum by 1.2, caps it at 0.25 and projects the
// current rate from the fixed baseline rate. Every exported method takes the
// core's mutex, so a Core may be shared between its scheduler and readers.
package harmonic
