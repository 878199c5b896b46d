package axis

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplySpanDelta_Pan(t *testing.T) {
	next, ys, ok := ApplySpanDelta(Span{Min: 2000, Max: 2010}, PanDelta(3), MaxSpan)
	require.True(t, ok)
	assert.Equal(t, Span{Min: 2003, Max: 2013}, next)
	assert.Equal(t, YearSpan{Start: 2003, End: 2013}, ys)
}

func TestApplySpanDelta_ClampsAroundMidpoint(t *testing.T) {
	next, ys, ok := ApplySpanDelta(Span{Min: 1900, Max: 2100}, Delta{Min: -100, Max: 50}, MaxSpan)
	require.True(t, ok)
	assert.InDelta(t, 200, next.Width(), 1e-9)
	assert.InDelta(t, 1975, next.Mid(), 1e-9)
	assert.Equal(t, YearSpan{Start: 1875, End: 2075}, ys)
}

func TestApplySpanDelta_SuppressesSubYearSpan(t *testing.T) {
	next, _, ok := ApplySpanDelta(Span{Min: 2000, Max: 2001}, Delta{Min: 0.1, Max: -0.6}, MaxSpan)
	assert.False(t, ok)
	assert.InDelta(t, 2000.1, next.Min, 1e-9)
	assert.InDelta(t, 2000.4, next.Max, 1e-9)
}

func TestApplySpanDelta_RejectsInversion(t *testing.T) {
	cur := Span{Min: 2000, Max: 2010}
	next, ys, ok := ApplySpanDelta(cur, Delta{Min: 20, Max: -20}, MaxSpan)
	assert.False(t, ok)
	assert.Equal(t, cur, next)
	assert.Equal(t, YearSpan{Start: 2000, End: 2010}, ys)

	next, _, ok = ApplySpanDelta(cur, Delta{Min: math.NaN()}, MaxSpan)
	assert.False(t, ok)
	assert.Equal(t, cur, next)
}

// Small zooms that each round away must still add up through the
// fractional accumulator.
func TestApplySpanDelta_SmallDeltasAccumulate(t *testing.T) {
	cur := Span{Min: 2000, Max: 2010}
	var last YearSpan
	for i := 0; i < 10; i++ {
		var ok bool
		cur, last, ok = ApplySpanDelta(cur, Delta{Min: -0.1, Max: 0.1}, MaxSpan)
		require.True(t, ok)
	}
	assert.Equal(t, YearSpan{Start: 1999, End: 2011}, last)
}

func TestApplySpanDelta_NeverExceedsMaxSpan(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	cur := Span{Min: 2000, Max: 2010}

	for trial := 0; trial < 2000; trial++ {
		var d Delta
		switch rng.Intn(4) {
		case 0:
			d = PanDelta((rng.Float64() - 0.5) * 1e6)
		case 1:
			d = Delta{Min: -rng.Float64() * 1e9, Max: rng.Float64() * 1e9}
		case 2:
			d = ZoomDelta(cur, rng.Float64()*4, cur.Mid()+(rng.Float64()-0.5)*100)
		default:
			d = WheelDelta(cur, rng.Float64()-0.5, rng.Float64()*0.4)
		}

		next, ys, ok := ApplySpanDelta(cur, d, MaxSpan)
		assert.Greater(t, next.Width(), 0.0, "trial %d: span must stay ordered", trial)
		assert.LessOrEqual(t, next.Width(), MaxSpan+1e-6, "trial %d: span %.3f too wide", trial, next.Width())
		assert.LessOrEqual(t, ys.Years(), MaxSpan, "trial %d: published span too wide", trial)
		if ok {
			assert.GreaterOrEqual(t, ys.Years(), 1, "trial %d: published span below a year", trial)
		}
		cur = next
	}
}

func TestZoomDelta(t *testing.T) {
	cur := Span{Min: 2000, Max: 2020}
	next, ys, ok := ApplySpanDelta(cur, ZoomDelta(cur, 2, 2010), MaxSpan)
	require.True(t, ok)
	assert.Equal(t, Span{Min: 2005, Max: 2015}, next)
	assert.Equal(t, YearSpan{Start: 2005, End: 2015}, ys)

	// Recentres on the gesture midpoint.
	next, _, _ = ApplySpanDelta(cur, ZoomDelta(cur, 1, 2030), MaxSpan)
	assert.Equal(t, Span{Min: 2020, Max: 2040}, next)

	// Never narrower than one year.
	next, _, _ = ApplySpanDelta(cur, ZoomDelta(cur, 1000, 2010), MaxSpan)
	assert.InDelta(t, 1, next.Width(), 1e-9)

	assert.Equal(t, Delta{}, ZoomDelta(cur, 0, 2010))
	assert.Equal(t, Delta{}, ZoomDelta(cur, -2, 2010))
}

func TestWheelDelta(t *testing.T) {
	cur := Span{Min: 2000, Max: 2010}
	assert.Equal(t, Delta{Min: -1, Max: 1}, WheelDelta(cur, 120, 0.1))
	assert.Equal(t, Delta{Min: 1, Max: -1}, WheelDelta(cur, -3, 0.1))
	assert.Equal(t, Delta{Min: 0, Max: 0}, WheelDelta(cur, 0, 0.1))
}

func TestInitialSpan(t *testing.T) {
	now := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, Span{Min: 2024, Max: 2025}, InitialSpan(nil, now, MaxSpan))
	assert.Equal(t, Span{Min: 1999, Max: 2012}, InitialSpan([]float64{2003.5, 1999.2, 2011.01}, now, MaxSpan))
	assert.Equal(t, Span{Min: 2005, Max: 2006}, InitialSpan([]float64{2005, 2005}, now, MaxSpan))
	assert.Equal(t, Span{Min: 1820, Max: 2020}, InitialSpan([]float64{1500, 2020}, now, MaxSpan))
}
