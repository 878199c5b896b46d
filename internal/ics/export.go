// Package ics exports todates as an iCalendar feed.
package ics

import (
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/alexanderramin/todate/internal/calendar"
	"github.com/alexanderramin/todate/internal/domain"
)

// DefaultProductID names the exporter in PRODID.
const DefaultProductID = "todate"

// Options configures Export.
type Options struct {
	ProductID string
	Locale    string
	Location  *time.Location
	// Now stamps DTSTAMP for todates without an update time.
	Now time.Time
}

// span is the calendar extent of one DateValue: whole days from first to
// last inclusive, or an exact instant when timed.
type span struct {
	first time.Time
	last  time.Time
	timed bool
}

func valueSpan(v domain.DateValue, school *domain.SchoolCalendar, loc *time.Location) span {
	switch v.Kind {
	case domain.KindSchool:
		if v.School == nil {
			break
		}
		start, end := calendar.SchoolPeriodRange(v.School, school, loc)
		return span{first: start, last: end}
	case domain.KindMonth:
		if v.Month == nil {
			break
		}
		first := time.Date(v.Month.Year, time.Month(v.Month.Month), 1, 0, 0, 0, 0, loc)
		return span{first: first, last: first.AddDate(0, 1, -1)}
	case domain.KindDay:
		if v.Day == nil {
			break
		}
		d := time.Date(v.Day.Year, time.Month(v.Day.Month), v.Day.Day, 0, 0, 0, 0, loc)
		return span{first: d, last: d}
	case domain.KindDatetime:
		t := calendar.ResolveInstantIn(v, school, loc)
		return span{first: t, last: t, timed: true}
	}
	t := calendar.ResolveInstantIn(v, school, loc)
	return span{first: t, last: t, timed: true}
}

// Export renders one VEVENT per todate. Coarse dates become all-day events
// covering their whole period; datetimes stay timed.
func Export(todates []*domain.Todate, school *domain.SchoolCalendar, opts Options) string {
	if opts.ProductID == "" {
		opts.ProductID = DefaultProductID
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	cal := ical.NewCalendarFor(opts.ProductID)
	cal.SetMethod(ical.MethodPublish)

	display := calendar.Options{Locale: opts.Locale, School: school, Location: opts.Location}
	for _, t := range todates {
		addEvent(cal, t, school, display, opts)
	}
	return cal.Serialize()
}

func addEvent(cal *ical.Calendar, t *domain.Todate, school *domain.SchoolCalendar, display calendar.Options, opts Options) {
	ev := cal.AddEvent(t.ID + "@" + opts.ProductID)

	stamp := t.UpdatedAt
	if stamp.IsZero() {
		stamp = opts.Now
	}
	ev.SetDtStampTime(stamp)
	if !t.CreatedAt.IsZero() {
		ev.SetCreatedTime(t.CreatedAt)
	}
	ev.SetSummary(t.Title)

	start := valueSpan(t.Start, school, opts.Location)
	end := start
	label := calendar.FormatDisplay(t.Start, display)
	if t.End != nil {
		end = valueSpan(*t.End, school, opts.Location)
		if endLabel := calendar.FormatDisplay(*t.End, display); endLabel != label {
			label += " – " + endLabel
		}
	}

	if start.timed && end.timed {
		ev.SetStartAt(start.first)
		if t.End != nil {
			ev.SetEndAt(end.last)
		}
	} else {
		// DTEND is exclusive for all-day events.
		ev.SetAllDayStartAt(start.first)
		ev.SetAllDayEndAt(dayOf(end.last).AddDate(0, 0, 1))
	}

	desc := label
	if c := strings.TrimSpace(t.Comment); c != "" {
		desc += "\n\n" + c
	}
	ev.SetDescription(desc)

	if len(t.Tags) > 0 {
		names := make([]string, len(t.Tags))
		for i, tag := range t.Tags {
			names[i] = tag.Name
		}
		ev.AddProperty(ical.ComponentPropertyCategories, strings.Join(names, ","))
	}
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
