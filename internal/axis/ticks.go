// Package axis computes year ticks and the pan/zoom window of the timeline.
package axis

import "math"

const (
	// MaxSpan is the widest visible window, in years.
	MaxSpan = 200
	// DefaultLabelMinPx is the minimum gap between two year labels.
	DefaultLabelMinPx = 14
)

// tickSteps are the preferred spacings between labelled years.
var tickSteps = []int{1, 2, 5, 10, 20, 25, 50, 100}

// decadeSteps continue tickSteps past 100 in tenths of a decade:
// 200, 250, 500, 1000, then 2000, 2500, 5000, 10000 and so on.
var decadeSteps = []int{20, 25, 50, 100}

// maxTickStep bounds the search so degenerate densities terminate.
const maxTickStep = 1 << 40

// TickStep returns the smallest step, in years, whose labels are at least
// minLabelPx apart when [start, end] is drawn over pixelHeight pixels. It
// returns 0 when the span or the height is not positive.
func TickStep(start, end, pixelHeight, minLabelPx float64) int {
	span := end - start
	if !(span > 0) || !(pixelHeight > 0) {
		return 0
	}
	pxPerYear := pixelHeight / span
	fits := func(step int) bool { return float64(step)*pxPerYear >= minLabelPx }

	for _, step := range tickSteps {
		if fits(step) {
			return step
		}
	}
	for decade := 100; decade < maxTickStep; decade *= 10 {
		for _, tenths := range decadeSteps {
			step := decade / 10 * tenths
			if fits(step) {
				return step
			}
		}
	}
	return maxTickStep
}

// ComputeTickYears returns the labelled years for [start, end]: every
// multiple of TickStep from the first one at or after start, up to end.
func ComputeTickYears(start, end, pixelHeight, minLabelPx float64) []int {
	step := TickStep(start, end, pixelHeight, minLabelPx)
	if step == 0 {
		return nil
	}
	first := int(math.Ceil(start/float64(step))) * step
	var years []int
	for y := first; float64(y) <= end; y += step {
		years = append(years, y)
	}
	return years
}

// YearToPixel maps a fractional year onto [0, pixelHeight] for the window
// [start, end].
func YearToPixel(year, start, end, pixelHeight float64) float64 {
	if end <= start {
		return 0
	}
	return (year - start) / (end - start) * pixelHeight
}
