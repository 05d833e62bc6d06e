package types

import (
	"math"
	"sort"
	"time"
)

// TotalKey is the Breakdown entry holding the capped aggregate percentage.
const TotalKey = "total"

// Breakdown maps a term or sub-model name to its percentage contribution for
// one computation pass. The TotalKey entry holds the capped aggregate.
type Breakdown map[string]float64

// Total returns the capped aggregate percentage.
func (b Breakdown) Total() float64 {
	return b[TotalKey]
}

// Terms returns the non-total keys in lexical order.
func (b Breakdown) Terms() []string {
	keys := make([]string, 0, len(b))
	for k := range b {
		if k == TotalKey {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Summary is the read-only view of a core joining its fixed baseline rate,
// the latest computed fraction and the projected rate.
type Summary struct {
	Core               string
	BaselineRate       int
	CurrentRate        int     // ProjectRate(BaselineRate, Fraction)
	Fraction           float64 // latest ComputeTotal result
	ImprovementPercent float64 // Fraction * 100
	OptimizationCycles int

	// Extra holds core-specific read-only values (resonance level, zvs
	// frequency, active phase patterns, ...).
	Extra map[string]float64
}

// ImprovementAbsolute is the projected gain over the baseline rate.
func (s Summary) ImprovementAbsolute() int {
	return s.CurrentRate - s.BaselineRate
}

// ProjectRate returns floor(baseline * (1 + fraction)).
func ProjectRate(baseline int, fraction float64) int {
	return int(math.Floor(float64(baseline) * (1 + fraction)))
}

// Clamp restricts v to the range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Report is one rendered status update handed from a scheduler to a reporter.
type Report struct {
	Core      string
	RunID     string
	Iteration int // 1-based cycle number within the scheduler run
	At        time.Time
	Fraction  float64
	Breakdown Breakdown
	Summary   Summary
}
