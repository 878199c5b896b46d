package domain

import "time"

// SchoolValue is a date expressed as a period of a school year.
//
// Legacy data carries Quarter instead of PeriodType/Period; see Resolve.
type SchoolValue struct {
	SchoolYear int
	PeriodType PeriodType
	Period     int
	// RepeatedInstance is which occurrence of a repeated school year this
	// refers to (1 = first time). Zero means unset.
	RepeatedInstance int
	Note             string

	// Quarter is the legacy 1-4 period field.
	Quarter int
}

// Resolve returns the effective period type and period number. Explicit
// PeriodType/Period win, then the legacy Quarter, then the fallback type
// (normally the school calendar's) with period 1.
func (s SchoolValue) Resolve(fallback PeriodType) (PeriodType, int) {
	if s.PeriodType != "" {
		p := s.Period
		if p == 0 && s.PeriodType == PeriodQuarter && s.Quarter > 0 {
			p = s.Quarter
		}
		if p == 0 {
			p = 1
		}
		return s.PeriodType, p
	}
	if s.Quarter > 0 {
		return PeriodQuarter, s.Quarter
	}
	if fallback == "" {
		fallback = PeriodQuarter
	}
	if s.Period > 0 {
		return fallback, s.Period
	}
	return fallback, 1
}

type MonthValue struct {
	Year  int
	Month int
}

type DayValue struct {
	Year  int
	Month int
	Day   int
}

// DatetimeValue is an exact instant kept verbatim as its RFC 3339 text.
type DatetimeValue struct {
	ISO string
}

// DateValue is a tagged union over the four date granularities. Kind selects
// which payload pointer is set; the others are nil.
type DateValue struct {
	Kind     DateKind
	School   *SchoolValue
	Month    *MonthValue
	Day      *DayValue
	Datetime *DatetimeValue
}

// SchoolDate builds a school-kind DateValue.
func SchoolDate(schoolYear int, pt PeriodType, period int) DateValue {
	return DateValue{Kind: KindSchool, School: &SchoolValue{
		SchoolYear: schoolYear,
		PeriodType: pt,
		Period:     period,
	}}
}

// LegacySchoolDate builds a school-kind DateValue in the old quarter-only shape.
func LegacySchoolDate(schoolYear, quarter int) DateValue {
	return DateValue{Kind: KindSchool, School: &SchoolValue{SchoolYear: schoolYear, Quarter: quarter}}
}

func MonthDate(year, month int) DateValue {
	return DateValue{Kind: KindMonth, Month: &MonthValue{Year: year, Month: month}}
}

func DayDate(year, month, day int) DateValue {
	return DateValue{Kind: KindDay, Day: &DayValue{Year: year, Month: month, Day: day}}
}

func DatetimeDate(iso string) DateValue {
	return DateValue{Kind: KindDatetime, Datetime: &DatetimeValue{ISO: iso}}
}

// DatetimeAt builds a datetime DateValue from t in UTC with millisecond precision.
func DatetimeAt(t time.Time) DateValue {
	return DatetimeDate(t.UTC().Format(ISOLayout))
}

// ISOLayout is the canonical instant layout used for sort keys.
const ISOLayout = "2006-01-02T15:04:05.000Z07:00"

// WithRepeatedInstance returns a copy of a school value pointing at the n-th
// occurrence of a repeated year. Non-school values are returned unchanged.
func (v DateValue) WithRepeatedInstance(n int) DateValue {
	if v.Kind != KindSchool || v.School == nil {
		return v
	}
	s := *v.School
	s.RepeatedInstance = n
	v.School = &s
	return v
}

// WithNote returns a copy of a school value carrying note.
func (v DateValue) WithNote(note string) DateValue {
	if v.Kind != KindSchool || v.School == nil {
		return v
	}
	s := *v.School
	s.Note = note
	v.School = &s
	return v
}

// IsZero reports whether v carries no payload for its kind.
func (v DateValue) IsZero() bool {
	switch v.Kind {
	case KindSchool:
		return v.School == nil
	case KindMonth:
		return v.Month == nil
	case KindDay:
		return v.Day == nil
	case KindDatetime:
		return v.Datetime == nil
	default:
		return true
	}
}
