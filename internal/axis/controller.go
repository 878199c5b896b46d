package axis

// Controller owns the span of one timeline view. Each view creates its own;
// there is no shared state between controllers.
type Controller struct {
	span      Span
	published YearSpan
	maxSpan   float64
}

// NewController starts a controller at initial. A non-positive maxSpan
// means MaxSpan.
func NewController(initial Span, maxSpan float64) *Controller {
	if maxSpan <= 0 {
		maxSpan = MaxSpan
	}
	c := &Controller{span: initial, published: initial.Round(), maxSpan: maxSpan}
	if next, ys, ok := ApplySpanDelta(initial, Delta{}, maxSpan); ok {
		c.span, c.published = next, ys
	}
	return c
}

// Span returns the fractional accumulator.
func (c *Controller) Span() Span { return c.span }

// YearSpan returns the last published window.
func (c *Controller) YearSpan() YearSpan { return c.published }

// MaxSpan returns the width limit in years.
func (c *Controller) MaxSpan() float64 { return c.maxSpan }

// Apply adds d to the accumulator and reports whether the published window
// changed.
func (c *Controller) Apply(d Delta) bool {
	next, ys, publish := ApplySpanDelta(c.span, d, c.maxSpan)
	c.span = next
	if !publish || ys == c.published {
		return false
	}
	c.published = ys
	return true
}

// Pan shifts the window by years; positive moves later.
func (c *Controller) Pan(years float64) bool {
	return c.Apply(PanDelta(years))
}

// Zoom applies a multiplicative zoom centred on midpoint.
func (c *Controller) Zoom(ratio, midpoint float64) bool {
	return c.Apply(ZoomDelta(c.span, ratio, midpoint))
}

// ZoomCentered applies a multiplicative zoom around the current centre.
func (c *Controller) ZoomCentered(ratio float64) bool {
	return c.Zoom(ratio, c.span.Mid())
}

// Wheel applies one wheel notch; see WheelDelta.
func (c *Controller) Wheel(deltaSign, sensitivity float64) bool {
	return c.Apply(WheelDelta(c.span, deltaSign, sensitivity))
}

// SetRange replaces the window with [start, end], as a year-range slider
// does. An empty or inverted range is ignored.
func (c *Controller) SetRange(start, end int) bool {
	if end <= start {
		return false
	}
	return c.Apply(Delta{Min: float64(start) - c.span.Min, Max: float64(end) - c.span.Max})
}
