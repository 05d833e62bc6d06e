package harmonic

import (
	"math"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harmonicstack/harmonicstack/internal/wave"
	"github.com/harmonicstack/harmonicstack/pkg/types"
)

// epoch pins the clock at t=0, where every sine term is 0 and every cosine
// term is 1.
var epoch = wave.FixedClock(time.Unix(0, 0))

func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestNew_Defaults(t *testing.T) {
	h := New()
	s := h.Summary()

	assert.Equal(t, DefaultBaselineRate, s.BaselineRate)
	assert.Equal(t, DefaultBaselineRate, s.CurrentRate)
	assert.Zero(t, s.Fraction)
	assert.Zero(t, s.OptimizationCycles)
	assert.Zero(t, h.EvolutionCycles())
	assert.Zero(t, h.ResonanceLevel())
}

func TestTerms_AtEpoch(t *testing.T) {
	h := New(WithClock(epoch))

	// Only the secondary cosine contributes: 0.618 * 0.12.
	assert.InDelta(t, 0.07416, h.HarmonicTerm(), 1e-12)
	// Only the biological cosine contributes.
	assert.InDelta(t, 0.03, h.QuantumBioTerm(), 1e-12)
	assert.InDelta(t, 0, h.ConsciousnessTerm(), 1e-12)
}

func TestEvolveCycle_Sequence(t *testing.T) {
	h := New(WithClock(epoch))

	tests := []struct {
		n    int
		want float64
	}{
		{0, 0},                           // 0 mod anything
		{1, 0.15},                        // 0.065*2.38 = 0.1547, capped
		{2, 0.15},                        // 0.13*2.38, capped
		{3, 0.15},                        // 0.105*2.38, capped
		{4, 0.15},                        // (0.03+0.08+0.06)*2.38, capped
		{5, 0.15},                        // (0.06+0.10+0.075)*2.38, capped
		{6, 0.15},                        // 0.09*2.38 = 0.2142, capped
		{7, 0.15},                        // (0.03+0.02+0.105)*2.38, capped
		{8, 0.15},                        // (0.06+0.04+0.12)*2.38, capped
		{9, 0.06 * accelerationFactor},   // only mod-6 term survives
		{10, 0.15},                       // (0.03+0.08+0.015)*2.38, capped
		{11, 0.15},                       // (0.06+0.10+0.03)*2.38, capped
		{12, 0.045 * accelerationFactor}, // only mod-9 term survives
	}
	for _, tc := range tests {
		require.Equal(t, tc.n, h.EvolutionCycles())
		got := h.EvolveCycle()
		if !almostEqual(got, tc.want, 1e-12) {
			t.Errorf("EvolveCycle at n=%d = %v, want %v", tc.n, got, tc.want)
		}
	}
	assert.Equal(t, len(tests), h.EvolutionCycles())
}

func TestEvolveCycle_ResonanceUsesUnclampedBoost(t *testing.T) {
	h := New(WithClock(epoch))
	h.EvolveCycle() // n=0 adds nothing
	h.EvolveCycle() // n=1 adds 0.065*2.38*0.001

	assert.InDelta(t, 0.065*accelerationFactor*resonanceRate, h.ResonanceLevel(), 1e-15)

	h.EvolveCycle() // n=2 adds 0.13*2.38*0.001 although the return is capped
	want := (0.065 + 0.13) * accelerationFactor * resonanceRate
	assert.InDelta(t, want, h.ResonanceLevel(), 1e-15)
}

func TestComputeTotal_AtEpoch(t *testing.T) {
	h := New(WithClock(epoch))
	result, bd := h.ComputeTotal()

	wantFraction := (0.07416 + 0 + 0.03 + 0) * totalScale
	assert.InDelta(t, wantFraction, result, 1e-12)
	assert.InDelta(t, 7.416, bd[TermHarmonic], 1e-9)
	assert.InDelta(t, 0, bd[TermTesla], 1e-12)
	assert.InDelta(t, 3.0, bd[TermQuantumBio], 1e-9)
	assert.InDelta(t, 0, bd[TermConsciousness], 1e-12)
	assert.InDelta(t, wantFraction*100, bd.Total(), 1e-9)

	s := h.Summary()
	assert.Equal(t, 4251, s.CurrentRate) // floor(3779 * 1.124992)
	assert.InDelta(t, wantFraction*100, s.ImprovementPercent, 1e-9)
	assert.Equal(t, 1, s.OptimizationCycles)
	assert.Equal(t, 472, s.ImprovementAbsolute())
}

func TestComputeTotal_CappedAfterEvolution(t *testing.T) {
	h := New(WithClock(epoch))
	h.EvolveCycle()

	// 0.07416 + 0.15 + 0.03 = 0.25416, *1.2 = 0.305 -> capped.
	result, bd := h.ComputeTotal()
	assert.Equal(t, totalCap, result)
	assert.Equal(t, totalCap*100, bd.Total())
	assert.Equal(t, types.ProjectRate(DefaultBaselineRate, totalCap), h.Summary().CurrentRate)
}

func TestComputeTotal_CountersAdvanceByOne(t *testing.T) {
	h := New(WithClock(wave.NewStepClock(time.Unix(1_700_000_000, 0), 10*time.Second)))
	for i := 1; i <= 50; i++ {
		h.ComputeTotal()
		require.Equal(t, i, h.EvolutionCycles())
		require.Equal(t, i, h.OptimizationCycles())
	}
}

func TestComputeTotal_StaysWithinCaps(t *testing.T) {
	h := New(WithClock(wave.NewStepClock(time.Unix(1_700_000_000, 0), 7*time.Second)))
	for i := 0; i < 5000; i++ {
		result, bd := h.ComputeTotal()
		if result < 0 || result > totalCap {
			t.Fatalf("cycle %d: result %v outside [0, %v]", i, result, totalCap)
		}
		if v := bd[TermHarmonic]; v < 0 || v > harmonicCap*100 {
			t.Fatalf("cycle %d: harmonic %v outside cap", i, v)
		}
		if v := bd[TermTesla]; v < 0 || v > evolutionCap*100 {
			t.Fatalf("cycle %d: tesla %v outside cap", i, v)
		}
		if v := bd[TermQuantumBio]; v < 0 || v > quantumBioCap*100 {
			t.Fatalf("cycle %d: quantum_bio %v outside cap", i, v)
		}
		if v := bd[TermConsciousness]; v < 0 || v > 5 {
			t.Fatalf("cycle %d: consciousness %v outside cap", i, v)
		}
	}
}

func TestComputeTotal_Deterministic(t *testing.T) {
	at := wave.FixedClock(time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC))
	a := New(WithClock(at))
	b := New(WithClock(at))

	ra, bda := a.ComputeTotal()
	rb, bdb := b.ComputeTotal()
	assert.Equal(t, ra, rb)
	if diff := cmp.Diff(bda, bdb); diff != "" {
		t.Errorf("fresh cores disagree (-a +b):\n%s", diff)
	}
}

func TestComputeTotal_DivergesAfterExtraCycle(t *testing.T) {
	a := New(WithClock(epoch))
	b := New(WithClock(epoch))

	b.EvolveCycle()

	ra, bda := a.ComputeTotal()
	rb, bdb := b.ComputeTotal()
	assert.NotEqual(t, ra, rb)
	assert.NotEmpty(t, cmp.Diff(bda, bdb))
	assert.NotEqual(t, a.EvolutionCycles(), b.EvolutionCycles())
}

func TestSummary_IsReadOnly(t *testing.T) {
	h := New(WithClock(epoch))
	h.ComputeTotal()

	first := h.Summary()
	second := h.Summary()
	assert.Equal(t, first, second)
	assert.Equal(t, 1, h.OptimizationCycles())
	assert.Equal(t, 1.0, first.Extra["evolution_cycles"])
}

func TestWithBaselineRate(t *testing.T) {
	h := New(WithClock(epoch), WithBaselineRate(1000))
	assert.Equal(t, 1000, h.Summary().CurrentRate)

	result, _ := h.ComputeTotal()
	assert.Equal(t, types.ProjectRate(1000, result), h.Summary().CurrentRate)
}

func TestComputeTotal_ConcurrentCallers(t *testing.T) {
	h := New(WithClock(epoch))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				h.ComputeTotal()
				_ = h.Summary()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 800, h.OptimizationCycles())
	assert.Equal(t, 800, h.EvolutionCycles())
}
