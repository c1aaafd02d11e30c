// Public domain.

package twilight_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fiberspec/twiplan/internal/twilight"
)

// survey calibration constants
func defaultParams() twilight.Params {
	return twilight.Params{
		HalfLife:     156,
		InitialRate:  25000,
		TargetSignal: 5000,
		Overhead:     57,
		Wait:         450,
		MaxExposure:  600,
	}
}

func TestPlanDefaultScenario(t *testing.T) {
	p := defaultParams()
	seq, err := twilight.Plan(p)
	require.NoError(t, err)
	require.NotEmpty(t, seq)

	// first duration has a closed form
	k := math.Ln2 / 156
	want := -math.Log(1-k*5000*math.Exp(k*450)/25000) / k
	assert.InDelta(t, want, seq[0].Duration, 1e-9)
	assert.Equal(t, 450.0, seq[0].Offset)

	// pinned against the reference sequence
	assert.Len(t, seq, 14)
	assert.InDelta(t, 126.766109, seq[13].Duration, 1e-5)
	assert.InDelta(t, 1391.624907, seq[13].Offset, 1e-5)
}

func TestPlanInvariants(t *testing.T) {
	seq, err := twilight.Plan(defaultParams())
	require.NoError(t, err)
	prevEnd := 0.0
	for i, st := range seq {
		assert.Greater(t, st.Duration, 0.0, "step %d", i)
		assert.LessOrEqual(t, st.Duration, 600.0, "step %d", i)
		assert.GreaterOrEqual(t, st.Offset, prevEnd, "step %d", i)
		prevEnd = st.Offset + st.Duration
	}
}

func TestPlanPure(t *testing.T) {
	p := defaultParams()
	a, err := twilight.Plan(p)
	require.NoError(t, err)
	b, err := twilight.Plan(p)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestPlanEmptySequences(t *testing.T) {
	// target far beyond what the sky can deliver: the accumulation
	// ratio is already past 1 at the first attempt.
	p := defaultParams()
	p.TargetSignal = 1e9
	seq, err := twilight.Plan(p)
	require.NoError(t, err)
	assert.Empty(t, seq)

	// ceiling below the first solved duration
	p = defaultParams()
	p.MaxExposure = 0.5
	seq, err = twilight.Plan(p)
	require.NoError(t, err)
	assert.Empty(t, seq)
}

func TestPlanLinearLimit(t *testing.T) {
	// half-life much longer than the sequence: durations approach
	// target/rate until the ceiling ends the plan.
	p := defaultParams()
	p.HalfLife = 1e6
	p.MaxExposure = 0.25
	seq, err := twilight.Plan(p)
	require.NoError(t, err)
	require.NotEmpty(t, seq)
	assert.InDelta(t, 0.2, seq[0].Duration, 0.002)
	for _, st := range seq {
		assert.InDelta(t, 0.2, st.Duration, 0.05)
		assert.LessOrEqual(t, st.Duration, 0.25)
	}
}

func TestPlanLeadingZeros(t *testing.T) {
	p := defaultParams()
	p.LeadingZeros = 2
	seq, err := twilight.Plan(p)
	require.NoError(t, err)
	require.NotEmpty(t, seq)

	// zero frames shift the first offset by their overhead only
	assert.Equal(t, 450+2*57.0, seq[0].Offset)
	k := math.Ln2 / 156
	want := -math.Log(1-k*5000*math.Exp(k*564)/25000) / k
	assert.InDelta(t, want, seq[0].Duration, 1e-9)
}

func TestPlanValidation(t *testing.T) {
	for name, mod := range map[string]func(*twilight.Params){
		"zero half-life":     func(p *twilight.Params) { p.HalfLife = 0 },
		"negative half-life": func(p *twilight.Params) { p.HalfLife = -156 },
		"zero rate":          func(p *twilight.Params) { p.InitialRate = 0 },
		"zero target":        func(p *twilight.Params) { p.TargetSignal = 0 },
		"zero ceiling":       func(p *twilight.Params) { p.MaxExposure = 0 },
		"negative overhead":  func(p *twilight.Params) { p.Overhead = -1 },
		"negative wait":      func(p *twilight.Params) { p.Wait = -1 },
		"negative zeros":     func(p *twilight.Params) { p.LeadingZeros = -1 },
		// non-finite constants defeat both stopping rules, so a
		// hung plan rather than a wrong one: every field must be
		// finite
		"NaN half-life": func(p *twilight.Params) { p.HalfLife = math.NaN() },
		"Inf half-life": func(p *twilight.Params) { p.HalfLife = math.Inf(1) },
		"Inf rate":      func(p *twilight.Params) { p.InitialRate = math.Inf(1) },
		"NaN rate":      func(p *twilight.Params) { p.InitialRate = math.NaN() },
		"NaN target":    func(p *twilight.Params) { p.TargetSignal = math.NaN() },
		"Inf target":    func(p *twilight.Params) { p.TargetSignal = math.Inf(1) },
		"NaN overhead":  func(p *twilight.Params) { p.Overhead = math.NaN() },
		"NaN wait":      func(p *twilight.Params) { p.Wait = math.NaN() },
		"Inf wait":      func(p *twilight.Params) { p.Wait = math.Inf(1) },
		"NaN ceiling":   func(p *twilight.Params) { p.MaxExposure = math.NaN() },
		"Inf ceiling":   func(p *twilight.Params) { p.MaxExposure = math.Inf(1) },
	} {
		p := defaultParams()
		mod(&p)
		_, err := twilight.Plan(p)
		assert.Error(t, err, name)
	}
}

func TestMirror(t *testing.T) {
	seq, err := twilight.Plan(defaultParams())
	require.NoError(t, err)
	m := seq.Mirror()
	require.Len(t, m, len(seq))

	// durations come back in reverse order
	for i := range seq {
		assert.Equal(t, seq[len(seq)-1-i].Duration, m[i].Duration)
	}
	// offsets are negative, strictly increasing, and each window
	// still ends before the next begins
	prevEnd := math.Inf(-1)
	for i, st := range m {
		assert.Less(t, st.Offset, 0.0, "step %d", i)
		assert.GreaterOrEqual(t, st.Offset, prevEnd, "step %d", i)
		prevEnd = st.Offset + st.Duration
	}
	// the last window closes at the anchor
	last := m[len(m)-1]
	assert.InDelta(t, 0, last.Offset+last.Duration+seq[0].Offset, 1e-9)
}
