package domain

import (
	"slices"
	"time"
)

const (
	DefaultStartMonth    = 9
	DefaultStartDay      = 1
	DefaultReferenceYear = 2000

	// MaxGradeNumber bounds the grade lists accepted by Normalize.
	MaxGradeNumber = 30
)

// SchoolCalendar anchors school years to the calendar. Year 1 starts on
// StartMonth/StartDay of ReferenceYear; each later school year starts one
// calendar year after the previous, adjusted by the three grade lists.
type SchoolCalendar struct {
	ReferenceYear int
	StartMonth    int
	StartDay      int
	PeriodType    PeriodType

	// RepeatedGrades are school years that took two calendar years.
	RepeatedGrades []int
	// GapYears are school years followed by a calendar year without school.
	GapYears []int
	// SkippedGrades are school years that took no calendar time at all.
	SkippedGrades []int

	UpdatedAt time.Time
}

// FallbackSchoolCalendar is used when no calendar is configured so that
// school dates still sort.
func FallbackSchoolCalendar() *SchoolCalendar {
	return &SchoolCalendar{
		ReferenceYear: DefaultReferenceYear,
		StartMonth:    DefaultStartMonth,
		StartDay:      DefaultStartDay,
		PeriodType:    PeriodQuarter,
	}
}

// Month returns the configured start month, defaulting to September.
func (c *SchoolCalendar) Month() int {
	return IntOrDefault(c.StartMonth, DefaultStartMonth)
}

// Day returns the configured start day, defaulting to the 1st.
func (c *SchoolCalendar) Day() int {
	return IntOrDefault(c.StartDay, DefaultStartDay)
}

// Periods returns the configured period type, defaulting to quarters.
func (c *SchoolCalendar) Periods() PeriodType {
	if c.PeriodType == "" {
		return PeriodQuarter
	}
	return c.PeriodType
}

func (c *SchoolCalendar) IsRepeated(grade int) bool { return slices.Contains(c.RepeatedGrades, grade) }
func (c *SchoolCalendar) IsSkipped(grade int) bool  { return slices.Contains(c.SkippedGrades, grade) }
func (c *SchoolCalendar) HasGapAfter(grade int) bool {
	return slices.Contains(c.GapYears, grade)
}

// Normalize fills defaults and cleans the grade lists: sorted, unique, and
// restricted to 1..MaxGradeNumber. Out-of-range start month/day fall back to
// the defaults.
func (c *SchoolCalendar) Normalize() {
	if c.StartMonth < 1 || c.StartMonth > 12 {
		c.StartMonth = DefaultStartMonth
	}
	if c.StartDay < 1 || c.StartDay > 31 {
		c.StartDay = DefaultStartDay
	}
	if !ValidPeriodTypes[string(c.PeriodType)] {
		c.PeriodType = PeriodQuarter
	}
	c.RepeatedGrades = sortUniqueGrades(c.RepeatedGrades)
	c.GapYears = sortUniqueGrades(c.GapYears)
	c.SkippedGrades = sortUniqueGrades(c.SkippedGrades)
}

func sortUniqueGrades(grades []int) []int {
	out := make([]int, 0, len(grades))
	for _, g := range grades {
		if g >= 1 && g <= MaxGradeNumber {
			out = append(out, g)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
