package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDate is returned by ParseDateValue for unrecognised input.
var ErrInvalidDate = errors.New("invalid date")

// ParseDateValue parses the compact command-line date forms:
//
//	school:3:2        school year 3, period 2 (period type from the calendar)
//	school:3:tri2     school year 3, trimester 2 (also q2, sem2)
//	school:3:2:r2     second time through a repeated year 3
//	2021              January 2021
//	2021-03           March 2021
//	2021-03-14        14 March 2021
//	2021-03-14T09:30:00Z
//
// The result is not clamped.
func ParseDateValue(s string) (DateValue, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DateValue{}, fmt.Errorf("%w: empty", ErrInvalidDate)
	}
	if rest, ok := strings.CutPrefix(strings.ToLower(s), "school:"); ok {
		return parseSchool(rest, s)
	}
	if strings.Contains(s, "T") {
		if _, err := time.Parse(time.RFC3339, s); err != nil {
			return DateValue{}, fmt.Errorf("%w: %q is not an RFC 3339 timestamp", ErrInvalidDate, s)
		}
		return DatetimeDate(s), nil
	}

	parts := strings.Split(s, "-")
	nums := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return DateValue{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
		}
		nums = append(nums, n)
	}
	switch len(nums) {
	case 1:
		return MonthDate(nums[0], 1), nil
	case 2:
		if nums[1] < 1 || nums[1] > 12 {
			return DateValue{}, fmt.Errorf("%w: month %d out of range", ErrInvalidDate, nums[1])
		}
		return MonthDate(nums[0], nums[1]), nil
	case 3:
		if nums[1] < 1 || nums[1] > 12 {
			return DateValue{}, fmt.Errorf("%w: month %d out of range", ErrInvalidDate, nums[1])
		}
		if nums[2] < 1 || nums[2] > DaysInMonth(nums[0], nums[1]) {
			return DateValue{}, fmt.Errorf("%w: day %d out of range", ErrInvalidDate, nums[2])
		}
		return DayDate(nums[0], nums[1], nums[2]), nil
	default:
		return DateValue{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
}

func parseSchool(rest, orig string) (DateValue, error) {
	fields := strings.Split(rest, ":")
	if len(fields) < 2 || len(fields) > 3 {
		return DateValue{}, fmt.Errorf("%w: %q, want school:YEAR:PERIOD[:rN]", ErrInvalidDate, orig)
	}
	year, err := strconv.Atoi(fields[0])
	if err != nil || year < 1 {
		return DateValue{}, fmt.Errorf("%w: school year %q", ErrInvalidDate, fields[0])
	}

	var pt PeriodType
	periodText := fields[1]
	for _, prefix := range []struct {
		text string
		pt   PeriodType
	}{
		{"tri", PeriodTrimester},
		{"sem", PeriodSemester},
		{"q", PeriodQuarter},
	} {
		if after, ok := strings.CutPrefix(periodText, prefix.text); ok {
			pt = prefix.pt
			periodText = after
			break
		}
	}
	period, err := strconv.Atoi(periodText)
	if err != nil || period < 1 {
		return DateValue{}, fmt.Errorf("%w: school period %q", ErrInvalidDate, fields[1])
	}
	if pt != "" && period > PeriodsPerYear(pt) {
		return DateValue{}, fmt.Errorf("%w: %s has only %d periods", ErrInvalidDate, pt, PeriodsPerYear(pt))
	}

	v := SchoolDate(year, pt, period)
	if len(fields) == 3 {
		instText, ok := strings.CutPrefix(fields[2], "r")
		inst, err := strconv.Atoi(instText)
		if !ok || err != nil || inst < 1 {
			return DateValue{}, fmt.Errorf("%w: repeated instance %q", ErrInvalidDate, fields[2])
		}
		if inst > 1 {
			v = v.WithRepeatedInstance(inst)
		}
	}
	return v, nil
}
