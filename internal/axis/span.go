package axis

import (
	"math"
	"time"
)

// Span is the fractional-year window a view accumulates pan and zoom
// changes into. Changes are always applied here, never to the rounded
// YearSpan, so repeated small zooms compose.
type Span struct {
	Min float64
	Max float64
}

// Width returns Max - Min.
func (s Span) Width() float64 { return s.Max - s.Min }

// Mid returns the window's centre.
func (s Span) Mid() float64 { return (s.Min + s.Max) / 2 }

// Round returns the published form of s.
func (s Span) Round() YearSpan {
	return YearSpan{Start: roundYear(s.Min), End: roundYear(s.Max)}
}

// YearSpan is the integer-year window shown to the user.
type YearSpan struct {
	Start int
	End   int
}

// Years returns End - Start.
func (y YearSpan) Years() int { return y.End - y.Start }

// Delta moves each end of a Span.
type Delta struct {
	Min float64
	Max float64
}

// roundYear rounds half up so that translating a span never changes its
// rounded width.
func roundYear(v float64) int {
	return int(math.Floor(v + 0.5))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ApplySpanDelta adds d to cur. A result wider than maxSpan is narrowed to
// exactly maxSpan around its midpoint. The returned Span is the new
// accumulator; publish reports whether its rounded form covers at least one
// year and should be shown.
//
// A delta that would leave Max <= Min, or produce a non-finite bound, is
// rejected: cur is returned unchanged with publish false.
func ApplySpanDelta(cur Span, d Delta, maxSpan float64) (next Span, published YearSpan, publish bool) {
	next = Span{Min: cur.Min + d.Min, Max: cur.Max + d.Max}
	if !finite(next.Min) || !finite(next.Max) || next.Max <= next.Min {
		return cur, cur.Round(), false
	}
	if maxSpan > 0 && next.Width() > maxSpan {
		mid := next.Mid()
		next = Span{Min: mid - maxSpan/2, Max: mid + maxSpan/2}
	}

	published = next.Round()
	if maxSpan > 0 && float64(published.Years()) > maxSpan {
		published.End = published.Start + int(maxSpan)
	}
	return next, published, published.Years() >= 1
}

// ZoomDelta maps a multiplicative zoom (ratio > 1 zooms in) to the delta
// that gives cur a width of max(1, width/ratio) centred on midpoint.
// A non-positive ratio yields no change.
func ZoomDelta(cur Span, ratio, midpoint float64) Delta {
	if !(ratio > 0) || !finite(midpoint) {
		return Delta{}
	}
	width := max(1, cur.Width()/ratio)
	return Delta{
		Min: midpoint - width/2 - cur.Min,
		Max: midpoint + width/2 - cur.Max,
	}
}

// WheelDelta maps a wheel notch to a symmetric change of
// width*sign*sensitivity on each end. A positive sign widens the window.
func WheelDelta(cur Span, deltaSign, sensitivity float64) Delta {
	var sign float64
	switch {
	case deltaSign > 0:
		sign = 1
	case deltaSign < 0:
		sign = -1
	}
	change := cur.Width() * sign * sensitivity
	return Delta{Min: -change, Max: change}
}

// PanDelta shifts both ends by years.
func PanDelta(years float64) Delta {
	return Delta{Min: years, Max: years}
}

// InitialSpan derives the first window from the fractional years of the
// data: floor of the earliest to ceil of the latest. Without data it is the
// current year. A window wider than maxSpan keeps its most recent years.
func InitialSpan(years []float64, now time.Time, maxSpan float64) Span {
	if len(years) == 0 {
		y := float64(now.Year())
		return Span{Min: y, Max: y + 1}
	}
	lo, hi := years[0], years[0]
	for _, y := range years[1:] {
		lo = min(lo, y)
		hi = max(hi, y)
	}
	s := Span{Min: math.Floor(lo), Max: math.Ceil(hi)}
	if s.Max <= s.Min {
		s.Max = s.Min + 1
	}
	if maxSpan > 0 && s.Width() > maxSpan {
		s.Min = s.Max - maxSpan
	}
	return s
}
