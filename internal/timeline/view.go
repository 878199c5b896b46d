package timeline

import (
	"time"

	"github.com/alexanderramin/todate/internal/axis"
	"github.com/alexanderramin/todate/internal/calendar"
	"github.com/alexanderramin/todate/internal/domain"
	"github.com/alexanderramin/todate/internal/layout"
)

// NoLane marks point entries, which sit on the axis.
const NoLane = -1

// Options configures Build.
type Options struct {
	Locale      string
	IncludeTime bool
	Location    *time.Location

	// Height is the pixel (or row) height the axis is drawn over.
	Height     float64
	LabelMinPx float64
	MaxSpan    float64

	// Span overrides the window derived from the data.
	Span *axis.Span
	// Now is used for the empty-timeline window. Zero means time.Now.
	Now time.Time
}

func (o Options) withDefaults() Options {
	if o.Location == nil {
		o.Location = time.Local
	}
	if o.LabelMinPx <= 0 {
		o.LabelMinPx = axis.DefaultLabelMinPx
	}
	if o.MaxSpan <= 0 {
		o.MaxSpan = axis.MaxSpan
	}
	if o.Now.IsZero() {
		o.Now = time.Now()
	}
	return o
}

// Entry is one todate placed on the timeline.
type Entry struct {
	Todate *domain.Todate

	Start time.Time
	End   *time.Time
	// StartYear and EndYear are fractional years; EndYear equals StartYear
	// for point entries.
	StartYear float64
	EndYear   float64

	Label    string
	EndLabel string
	Lane     int
}

// IsRanged reports whether the entry occupies a lane.
func (e Entry) IsRanged() bool { return e.End != nil }

// DateLabel joins the start and end labels of a ranged entry.
func (e Entry) DateLabel() string {
	if e.EndLabel == "" || e.EndLabel == e.Label {
		return e.Label
	}
	return e.Label + " – " + e.EndLabel
}

// View is everything needed to draw one timeline.
type View struct {
	// Entries are newest first.
	Entries   []Entry
	LaneCount int

	Span  axis.Span
	Years axis.YearSpan
	Ticks []int

	Height     float64
	LabelMinPx float64
}

// Build resolves, labels and lays out todates. The todates are expected to
// be filtered already; Build sorts a copy.
func Build(todates []*domain.Todate, school *domain.SchoolCalendar, opts Options) *View {
	opts = opts.withDefaults()

	sorted := make([]*domain.Todate, len(todates))
	copy(sorted, todates)
	Sort(sorted, school, opts.Location)

	display := calendar.Options{
		Locale:      opts.Locale,
		IncludeTime: opts.IncludeTime,
		School:      school,
		Location:    opts.Location,
	}

	entries := make([]Entry, 0, len(sorted))
	items := make([]layout.Item, 0, len(sorted))
	years := make([]float64, 0, 2*len(sorted))
	for _, t := range sorted {
		e := Entry{
			Todate: t,
			Start:  calendar.ResolveInstantIn(t.Start, school, opts.Location),
			Label:  calendar.FormatDisplay(t.Start, display),
			Lane:   NoLane,
		}
		e.StartYear = calendar.FractionalYear(e.Start)
		e.EndYear = e.StartYear
		if t.End != nil {
			end := calendar.ResolveInstantIn(*t.End, school, opts.Location)
			e.End = &end
			e.EndYear = calendar.FractionalYear(end)
			e.EndLabel = calendar.FormatDisplay(*t.End, display)
		}
		items = append(items, layout.Item{ID: t.ID, Start: e.Start, End: e.End})
		years = append(years, e.StartYear, e.EndYear)
		entries = append(entries, e)
	}

	lanes := layout.AssignItemLanes(items)
	for i := range entries {
		if lane, ok := lanes[entries[i].Todate.ID]; ok && entries[i].IsRanged() {
			entries[i].Lane = lane
		}
	}

	span := axis.InitialSpan(years, opts.Now, opts.MaxSpan)
	if opts.Span != nil {
		span = *opts.Span
	}

	v := &View{
		Entries:    entries,
		LaneCount:  layout.LaneCount(lanes),
		Height:     opts.Height,
		LabelMinPx: opts.LabelMinPx,
	}
	v.SetSpan(span)
	return v
}

// SetSpan moves the view to a new window and recomputes the ticks.
func (v *View) SetSpan(s axis.Span) {
	v.Span = s
	v.Years = s.Round()
	v.Ticks = axis.ComputeTickYears(float64(v.Years.Start), float64(v.Years.End), v.Height, v.LabelMinPx)
}

// Visible returns the entries that touch the current window.
func (v *View) Visible() []Entry {
	lo, hi := float64(v.Years.Start), float64(v.Years.End)
	out := make([]Entry, 0, len(v.Entries))
	for _, e := range v.Entries {
		if e.EndYear < lo || e.StartYear > hi {
			continue
		}
		out = append(out, e)
	}
	return out
}

// YearBounds returns the floor of the earliest and the ceiling of the latest
// year touched by the entries, or ok=false for an empty view.
func (v *View) YearBounds() (minYear, maxYear int, ok bool) {
	if len(v.Entries) == 0 {
		return 0, 0, false
	}
	years := make([]float64, 0, 2*len(v.Entries))
	for _, e := range v.Entries {
		years = append(years, e.StartYear, e.EndYear)
	}
	s := axis.InitialSpan(years, time.Time{}, 0)
	return int(s.Min), int(s.Max), true
}
