// Package calendar resolves DateValues to instants and display labels.
//
// All functions are total: numeric fields are expected to be clamped by the
// caller (see domain.ClampDateValue) and out-of-range input yields a
// well-typed but meaningless result rather than an error.
package calendar

import "github.com/alexanderramin/todate/internal/domain"

// SchoolYearOffset returns how many calendar years after the reference year
// school year n begins.
//
// Every earlier school year contributes one calendar year, plus one if it was
// repeated, minus one if it was skipped, plus one if a gap year followed it.
// The adjustments are independent, so a grade listed in several sets gets all
// of them. When n itself was repeated, instance selects which occurrence.
func SchoolYearOffset(n, instance int, cfg *domain.SchoolCalendar) int {
	offset := n - 1
	if cfg == nil {
		return offset
	}
	for i := 1; i < n; i++ {
		if cfg.IsRepeated(i) {
			offset++
		}
		if cfg.IsSkipped(i) {
			offset--
		}
		if cfg.HasGapAfter(i) {
			offset++
		}
	}
	if instance > 1 && cfg.IsRepeated(n) {
		offset += instance - 1
	}
	return offset
}

// schoolYearStart returns the calendar year, month and day on which the
// given period of a school value begins. Month may exceed 12; time.Date
// normalizes it into the following year.
func schoolYearStart(s *domain.SchoolValue, cfg *domain.SchoolCalendar) (year, month, day int, pt domain.PeriodType) {
	pt, period := s.Resolve(cfg.Periods())
	year = cfg.ReferenceYear + SchoolYearOffset(s.SchoolYear, s.RepeatedInstance, cfg)
	month = cfg.Month() + (period-1)*domain.MonthsPerPeriod(pt)
	return year, month, cfg.Day(), pt
}

func orFallback(cfg *domain.SchoolCalendar) *domain.SchoolCalendar {
	if cfg == nil {
		return domain.FallbackSchoolCalendar()
	}
	return cfg
}
