package axis

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTickStep(t *testing.T) {
	cases := []struct {
		name       string
		start, end float64
		height     float64
		want       int
	}{
		{"dense", 2000, 2010, 400, 1},
		{"two", 2000, 2040, 400, 2},
		{"five", 1950, 2050, 400, 5},
		{"twenty", 1900, 2100, 200, 20},
		{"twenty-five", 1800, 2000, 120, 25},
		{"hundred", 0, 2000, 300, 100},
		{"beyond candidates", 0, 20000, 400, 1000},
		{"zero height", 2000, 2010, 0, 0},
		{"inverted span", 2010, 2000, 400, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, TickStep(tc.start, tc.end, tc.height, DefaultLabelMinPx))
		})
	}
}

func TestComputeTickYears(t *testing.T) {
	assert.Equal(t, []int{2000, 2001, 2002, 2003}, ComputeTickYears(2000, 2003, 300, DefaultLabelMinPx))
	assert.Equal(t, []int{2000, 2005, 2010}, ComputeTickYears(1998, 2012, 56, DefaultLabelMinPx))
	assert.Equal(t, []int{-10, -5, 0, 5}, ComputeTickYears(-12.5, 7, 78, DefaultLabelMinPx))
	assert.Nil(t, ComputeTickYears(2000, 2000, 300, DefaultLabelMinPx))
	assert.Nil(t, ComputeTickYears(2000, 2010, -1, DefaultLabelMinPx))
}

func TestComputeTickYears_FractionalBounds(t *testing.T) {
	got := ComputeTickYears(2000.4, 2003.6, 1000, DefaultLabelMinPx)
	assert.Equal(t, []int{2001, 2002, 2003}, got)
}

// TestComputeTickYears_Spacing property-tests that labels never come closer
// than the minimum gap and stay inside the window.
func TestComputeTickYears_Spacing(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 500; trial++ {
		start := float64(rng.Intn(4000)-1000) + rng.Float64()
		end := start + 0.5 + rng.Float64()*float64(rng.Intn(5000)+1)
		height := 20 + rng.Float64()*2000
		minPx := 4 + rng.Float64()*40

		ticks := ComputeTickYears(start, end, height, minPx)
		pxPerYear := height / (end - start)

		for i, y := range ticks {
			assert.GreaterOrEqual(t, float64(y), start, "trial %d: tick %d before window", trial, y)
			assert.LessOrEqual(t, float64(y), end, "trial %d: tick %d after window", trial, y)
			if i > 0 {
				gap := float64(y-ticks[i-1]) * pxPerYear
				assert.GreaterOrEqual(t, gap, minPx,
					"trial %d: ticks %d and %d are %.2fpx apart", trial, ticks[i-1], y, gap)
			}
		}
	}
}

func TestYearToPixel(t *testing.T) {
	assert.InDelta(t, 0, YearToPixel(2000, 2000, 2010, 500), 1e-9)
	assert.InDelta(t, 250, YearToPixel(2005, 2000, 2010, 500), 1e-9)
	assert.InDelta(t, 500, YearToPixel(2010, 2000, 2010, 500), 1e-9)
	assert.Equal(t, 0.0, YearToPixel(2005, 2010, 2010, 500))
}
