package calendar

import (
	"time"

	"github.com/alexanderramin/todate/internal/domain"
)

// NoonHour is the time of day given to every date coarser than a datetime.
const NoonHour = 12

// MonthMidDay is the day of month used for month-precision dates.
const MonthMidDay = 15

// ResolveInstant maps v to its sortable instant in the local time zone.
// A nil cfg resolves school dates against the fallback calendar
// (reference year 2000, September 1, quarters).
func ResolveInstant(v domain.DateValue, cfg *domain.SchoolCalendar) time.Time {
	return ResolveInstantIn(v, cfg, time.Local)
}

// ResolveInstantIn is ResolveInstant with an explicit location for the
// wall-clock fields of coarse dates. Datetime values keep their own offset.
// An unparseable datetime or a value without payload resolves to the zero time.
func ResolveInstantIn(v domain.DateValue, cfg *domain.SchoolCalendar, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	switch v.Kind {
	case domain.KindSchool:
		if v.School == nil {
			return time.Time{}
		}
		year, month, day, _ := schoolYearStart(v.School, orFallback(cfg))
		return time.Date(year, time.Month(month), day, NoonHour, 0, 0, 0, loc)
	case domain.KindMonth:
		if v.Month == nil {
			return time.Time{}
		}
		return time.Date(v.Month.Year, time.Month(v.Month.Month), MonthMidDay, NoonHour, 0, 0, 0, loc)
	case domain.KindDay:
		if v.Day == nil {
			return time.Time{}
		}
		return time.Date(v.Day.Year, time.Month(v.Day.Month), v.Day.Day, NoonHour, 0, 0, 0, loc)
	case domain.KindDatetime:
		if v.Datetime == nil {
			return time.Time{}
		}
		t, err := time.Parse(time.RFC3339Nano, v.Datetime.ISO)
		if err != nil {
			return time.Time{}
		}
		return t
	default:
		return time.Time{}
	}
}

// CanonicalISO returns the stored sort key for v. Datetime values are kept
// verbatim; everything else is the resolved instant in UTC.
func CanonicalISO(v domain.DateValue, cfg *domain.SchoolCalendar) string {
	return CanonicalISOIn(v, cfg, time.Local)
}

// CanonicalISOIn is CanonicalISO resolving coarse dates in loc.
func CanonicalISOIn(v domain.DateValue, cfg *domain.SchoolCalendar, loc *time.Location) string {
	if v.Kind == domain.KindDatetime && v.Datetime != nil {
		return v.Datetime.ISO
	}
	return ResolveInstantIn(v, cfg, loc).UTC().Format(domain.ISOLayout)
}

// SchoolPeriodRange returns the first and last calendar day of the period a
// school value refers to, both at midnight in loc. The range covers
// MonthsPerPeriod months: end is start plus that many months, minus one day.
func SchoolPeriodRange(s *domain.SchoolValue, cfg *domain.SchoolCalendar, loc *time.Location) (start, end time.Time) {
	if loc == nil {
		loc = time.Local
	}
	year, month, day, pt := schoolYearStart(s, orFallback(cfg))
	start = time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	end = start.AddDate(0, domain.MonthsPerPeriod(pt), -1)
	return start, end
}

// DatetimeLocalInput renders an instant string as the "2006-01-02T15:04"
// form used to prefill interactive datetime inputs. Unparseable input is
// returned unchanged.
func DatetimeLocalInput(iso string, loc *time.Location) string {
	t, err := time.Parse(time.RFC3339Nano, iso)
	if err != nil {
		return iso
	}
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format("2006-01-02T15:04")
}
