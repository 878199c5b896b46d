package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// dateValueJSON is the flat wire shape of a DateValue: the discriminant plus
// every variant's fields, all optional.
type dateValueJSON struct {
	Kind DateKind `json:"kind"`

	SchoolYear       *int       `json:"schoolYear,omitempty"`
	PeriodType       PeriodType `json:"periodType,omitempty"`
	Period           *int       `json:"period,omitempty"`
	RepeatedInstance *int       `json:"repeatedInstance,omitempty"`
	SchoolYearNote   string     `json:"schoolYearNote,omitempty"`
	Note             string     `json:"note,omitempty"`
	Quarter          *int       `json:"quarter,omitempty"`

	Year  *int `json:"year,omitempty"`
	Month *int `json:"month,omitempty"`
	Day   *int `json:"day,omitempty"`

	ISO string `json:"iso,omitempty"`
}

// ErrUnknownDateKind is returned when decoding a kind outside the union.
var ErrUnknownDateKind = errors.New("unknown date kind")

func intPtr(v int) *int { return &v }

func nonZeroPtr(v int) *int {
	if v == 0 {
		return nil
	}
	return &v
}

func (v DateValue) MarshalJSON() ([]byte, error) {
	out := dateValueJSON{Kind: v.Kind}
	switch v.Kind {
	case KindSchool:
		if v.School == nil {
			return nil, fmt.Errorf("school date value has no payload")
		}
		s := v.School
		out.SchoolYear = intPtr(s.SchoolYear)
		out.PeriodType = s.PeriodType
		out.Period = nonZeroPtr(s.Period)
		out.RepeatedInstance = nonZeroPtr(s.RepeatedInstance)
		out.SchoolYearNote = s.Note
		out.Quarter = nonZeroPtr(s.Quarter)
	case KindMonth:
		if v.Month == nil {
			return nil, fmt.Errorf("month date value has no payload")
		}
		out.Year = intPtr(v.Month.Year)
		out.Month = intPtr(v.Month.Month)
	case KindDay:
		if v.Day == nil {
			return nil, fmt.Errorf("day date value has no payload")
		}
		out.Year = intPtr(v.Day.Year)
		out.Month = intPtr(v.Day.Month)
		out.Day = intPtr(v.Day.Day)
	case KindDatetime:
		if v.Datetime == nil {
			return nil, fmt.Errorf("datetime date value has no payload")
		}
		out.ISO = v.Datetime.ISO
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDateKind, v.Kind)
	}
	return json.Marshal(out)
}

func (v *DateValue) UnmarshalJSON(data []byte) error {
	var in dateValueJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	switch in.Kind {
	case KindSchool:
		if in.SchoolYear == nil {
			return fmt.Errorf("school date value: schoolYear is required")
		}
		s := &SchoolValue{
			SchoolYear: *in.SchoolYear,
			PeriodType: in.PeriodType,
			Note:       CoalesceStr(in.SchoolYearNote, in.Note),
		}
		s.Period = IntFromPtrWithDefault(0, in.Period)
		s.RepeatedInstance = IntFromPtrWithDefault(0, in.RepeatedInstance)
		s.Quarter = IntFromPtrWithDefault(0, in.Quarter)
		*v = DateValue{Kind: KindSchool, School: s}
	case KindMonth:
		if in.Year == nil || in.Month == nil {
			return fmt.Errorf("month date value: year and month are required")
		}
		*v = MonthDate(*in.Year, *in.Month)
	case KindDay:
		if in.Year == nil || in.Month == nil || in.Day == nil {
			return fmt.Errorf("day date value: year, month and day are required")
		}
		*v = DayDate(*in.Year, *in.Month, *in.Day)
	case KindDatetime:
		if in.ISO == "" {
			return fmt.Errorf("datetime date value: iso is required")
		}
		*v = DatetimeDate(in.ISO)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDateKind, in.Kind)
	}
	return nil
}
