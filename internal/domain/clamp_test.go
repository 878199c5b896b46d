package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampDateValue_School(t *testing.T) {
	got := ClampDateValue(SchoolDate(0, PeriodSemester, 5), nil)
	assert.Equal(t, 1, got.School.SchoolYear)
	assert.Equal(t, PeriodSemester, got.School.PeriodType)
	assert.Equal(t, 2, got.School.Period)
}

func TestClampDateValue_SchoolUsesCalendarPeriodType(t *testing.T) {
	cfg := &SchoolCalendar{ReferenceYear: 2010, PeriodType: PeriodTrimester}
	got := ClampDateValue(DateValue{Kind: KindSchool, School: &SchoolValue{SchoolYear: 2, Period: 9}}, cfg)
	assert.Equal(t, PeriodTrimester, got.School.PeriodType)
	assert.Equal(t, 3, got.School.Period)
}

func TestClampDateValue_LegacyQuarterBecomesExplicit(t *testing.T) {
	got := ClampDateValue(LegacySchoolDate(3, 2), nil)
	assert.Equal(t, PeriodQuarter, got.School.PeriodType)
	assert.Equal(t, 2, got.School.Period)
	assert.Zero(t, got.School.Quarter)
}

func TestClampDateValue_RepeatedInstance(t *testing.T) {
	cases := []struct {
		in   int
		want int
	}{
		{0, 0}, {1, 0}, {-3, 0}, {2, 2}, {4, 4},
	}
	for _, tc := range cases {
		got := ClampDateValue(SchoolDate(2, PeriodQuarter, 1).WithRepeatedInstance(tc.in), nil)
		assert.Equal(t, tc.want, got.School.RepeatedInstance, "instance %d", tc.in)
	}
}

func TestClampDateValue_KeepsNote(t *testing.T) {
	got := ClampDateValue(SchoolDate(2, PeriodQuarter, 1).WithNote("CE1"), nil)
	assert.Equal(t, "CE1", got.School.Note)
}

func TestClampDateValue_MonthAndDay(t *testing.T) {
	assert.Equal(t, MonthDate(2020, 12), ClampDateValue(MonthDate(2020, 13), nil))
	assert.Equal(t, MonthDate(2020, 1), ClampDateValue(MonthDate(2020, 0), nil))
	assert.Equal(t, DayDate(2021, 2, 28), ClampDateValue(DayDate(2021, 2, 31), nil))
	assert.Equal(t, DayDate(2020, 2, 29), ClampDateValue(DayDate(2020, 2, 30), nil))
	assert.Equal(t, DayDate(2020, 4, 1), ClampDateValue(DayDate(2020, 4, 0), nil))
}

func TestClampDateValue_DatetimeUnchanged(t *testing.T) {
	v := DatetimeDate("2021-03-14T09:30:00Z")
	assert.Equal(t, v, ClampDateValue(v, nil))
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 31, DaysInMonth(2021, 1))
	assert.Equal(t, 28, DaysInMonth(2021, 2))
	assert.Equal(t, 29, DaysInMonth(2024, 2))
	assert.Equal(t, 28, DaysInMonth(1900, 2))
	assert.Equal(t, 30, DaysInMonth(2021, 11))
}

func TestSchoolCalendarNormalize(t *testing.T) {
	c := &SchoolCalendar{
		ReferenceYear:  2005,
		StartMonth:     14,
		StartDay:       0,
		PeriodType:     "weekly",
		RepeatedGrades: []int{5, 2, 5, 0, 31},
		GapYears:       []int{30, 1},
		SkippedGrades:  nil,
	}
	c.Normalize()
	assert.Equal(t, DefaultStartMonth, c.StartMonth)
	assert.Equal(t, DefaultStartDay, c.StartDay)
	assert.Equal(t, PeriodQuarter, c.PeriodType)
	assert.Equal(t, []int{2, 5}, c.RepeatedGrades)
	assert.Equal(t, []int{1, 30}, c.GapYears)
	assert.Empty(t, c.SkippedGrades)
}

func TestSchoolCalendarPredicates(t *testing.T) {
	c := &SchoolCalendar{RepeatedGrades: []int{2}, SkippedGrades: []int{4}, GapYears: []int{3}}
	assert.True(t, c.IsRepeated(2))
	assert.False(t, c.IsRepeated(3))
	assert.True(t, c.IsSkipped(4))
	assert.True(t, c.HasGapAfter(3))
	assert.Equal(t, 9, (&SchoolCalendar{}).Month())
	assert.Equal(t, 1, (&SchoolCalendar{}).Day())
	assert.Equal(t, PeriodQuarter, (&SchoolCalendar{}).Periods())
}
