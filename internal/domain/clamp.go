package domain

import "time"

// DaysInMonth returns the number of days in month of year (proleptic Gregorian).
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampDateValue coerces the numeric fields of v into range so the calendar
// engine can trust them. cfg supplies the period type for school values that
// do not carry one; nil means the fallback calendar.
func ClampDateValue(v DateValue, cfg *SchoolCalendar) DateValue {
	if cfg == nil {
		cfg = FallbackSchoolCalendar()
	}
	switch v.Kind {
	case KindSchool:
		if v.School == nil {
			return v
		}
		pt, period := v.School.Resolve(cfg.Periods())
		s := SchoolValue{
			SchoolYear: max(1, v.School.SchoolYear),
			PeriodType: pt,
			Period:     clampInt(period, 1, PeriodsPerYear(pt)),
			Note:       v.School.Note,
		}
		if v.School.RepeatedInstance > 1 {
			s.RepeatedInstance = v.School.RepeatedInstance
		}
		return DateValue{Kind: KindSchool, School: &s}
	case KindMonth:
		if v.Month == nil {
			return v
		}
		return MonthDate(v.Month.Year, clampInt(v.Month.Month, 1, 12))
	case KindDay:
		if v.Day == nil {
			return v
		}
		m := clampInt(v.Day.Month, 1, 12)
		return DayDate(v.Day.Year, m, clampInt(v.Day.Day, 1, DaysInMonth(v.Day.Year, m)))
	case KindDatetime:
		return v
	default:
		return v
	}
}
