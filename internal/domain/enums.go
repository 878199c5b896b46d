package domain

import "strconv"

// DateKind discriminates the DateValue union.
type DateKind string

const (
	KindSchool   DateKind = "school"
	KindMonth    DateKind = "month"
	KindDay      DateKind = "day"
	KindDatetime DateKind = "datetime"
)

// ValidDateKinds is the canonical set of accepted kind strings.
var ValidDateKinds = map[string]bool{
	"school": true, "month": true, "day": true, "datetime": true,
}

// PeriodType is how a school year is subdivided.
type PeriodType string

const (
	PeriodQuarter   PeriodType = "quarter"
	PeriodTrimester PeriodType = "trimester"
	PeriodSemester  PeriodType = "semester"
)

// ValidPeriodTypes is the canonical set of accepted period type strings.
var ValidPeriodTypes = map[string]bool{
	"quarter": true, "trimester": true, "semester": true,
}

// PeriodsPerYear returns how many periods of type pt make up one school year.
// Unknown types count as quarters.
func PeriodsPerYear(pt PeriodType) int {
	switch pt {
	case PeriodTrimester:
		return 3
	case PeriodSemester:
		return 2
	default:
		return 4
	}
}

// MonthsPerPeriod returns the calendar length of one period in months.
func MonthsPerPeriod(pt PeriodType) int {
	return 12 / PeriodsPerYear(pt)
}

// PeriodLabel returns the short label for period n, e.g. "Q2", "Tri 2", "Sem 2".
func PeriodLabel(pt PeriodType, n int) string {
	switch pt {
	case PeriodTrimester:
		return "Tri " + strconv.Itoa(n)
	case PeriodSemester:
		return "Sem " + strconv.Itoa(n)
	default:
		return "Q" + strconv.Itoa(n)
	}
}
