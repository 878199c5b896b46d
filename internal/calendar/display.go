package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/todate/internal/domain"
)

// Options controls FormatDisplay.
type Options struct {
	// Locale is a BCP 47 tag such as "en-GB" or "fr".
	Locale string
	// IncludeTime appends the time of day to day-precision dates.
	IncludeTime bool
	// School, when set, renders school dates as calendar month ranges.
	School *domain.SchoolCalendar
	// Location is the zone datetimes are shown in. Nil means time.Local.
	Location *time.Location
}

// FormatDisplay renders v as a human-readable label.
func FormatDisplay(v domain.DateValue, opts Options) string {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	lf := lookupLocale(opts.Locale)

	switch v.Kind {
	case domain.KindSchool:
		if v.School == nil {
			return ""
		}
		return withNote(formatSchool(v.School, opts.School, lf, loc), v.School.Note)
	case domain.KindMonth:
		if v.Month == nil {
			return ""
		}
		return lf.MonthYear(time.Date(v.Month.Year, time.Month(v.Month.Month), 1, 0, 0, 0, 0, loc))
	case domain.KindDay:
		if v.Day == nil {
			return ""
		}
		t := time.Date(v.Day.Year, time.Month(v.Day.Month), v.Day.Day, NoonHour, 0, 0, 0, loc)
		if opts.IncludeTime {
			return lf.DateTime(t)
		}
		return lf.Date(t)
	case domain.KindDatetime:
		if v.Datetime == nil {
			return ""
		}
		t, err := time.Parse(time.RFC3339Nano, v.Datetime.ISO)
		if err != nil {
			return v.Datetime.ISO
		}
		return lf.DateTime(t.In(loc))
	default:
		return ""
	}
}

func formatSchool(s *domain.SchoolValue, cfg *domain.SchoolCalendar, lf localeFormat, loc *time.Location) string {
	if cfg == nil {
		pt, period := s.Resolve(domain.PeriodQuarter)
		return fmt.Sprintf("Year %d, %s", s.SchoolYear, domain.PeriodLabel(pt, period))
	}
	start, end := SchoolPeriodRange(s, cfg, loc)
	from, to := lf.MonthYear(start), lf.MonthYear(end)
	if from == to {
		return from
	}
	return from + "–" + to
}

func withNote(label, note string) string {
	note = strings.TrimSpace(note)
	if note == "" {
		return label
	}
	return label + " (" + note + ")"
}
