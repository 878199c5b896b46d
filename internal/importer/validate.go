package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/todate/internal/calendar"
	"github.com/alexanderramin/todate/internal/domain"
)

// ValidateImportSchema checks the import schema for errors before conversion.
// Returns a slice of all validation errors found.
//
// Out-of-range date fields are not errors; Convert clamps them.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	if schema.Version != CurrentVersion {
		errs = append(errs, fmt.Errorf("version: unsupported value %d", schema.Version))
	}
	errs = append(errs, validateSchool(schema.School)...)

	tagIDs := make(map[string]bool)
	errs = append(errs, validateTags(schema.Tags, tagIDs)...)
	errs = append(errs, validateTodates(schema.Todates, tagIDs, schoolCalendar(schema.School))...)

	return errs
}

func validateSchool(s *SchoolImport) []error {
	if s == nil {
		return nil
	}
	var errs []error

	if s.ReferenceYear < 1 || s.ReferenceYear > 9999 {
		errs = append(errs, fmt.Errorf("school.referenceYear: %d out of range", s.ReferenceYear))
	}
	if s.Month != nil && (*s.Month < 1 || *s.Month > 12) {
		errs = append(errs, fmt.Errorf("school.month: %d out of range", *s.Month))
	}
	if s.Day != nil && (*s.Day < 1 || *s.Day > 31) {
		errs = append(errs, fmt.Errorf("school.day: %d out of range", *s.Day))
	}
	if s.PeriodType != "" && !domain.ValidPeriodTypes[s.PeriodType] {
		errs = append(errs, fmt.Errorf("school.periodType: invalid value %q", s.PeriodType))
	}
	lists := []struct {
		name   string
		grades []int
	}{
		{"repeatedGrades", s.RepeatedGrades},
		{"gapYears", s.GapYears},
		{"skippedGrades", s.SkippedGrades},
	}
	for _, l := range lists {
		for _, g := range l.grades {
			if g < 1 || g > domain.MaxGradeNumber {
				errs = append(errs, fmt.Errorf("school.%s: grade %d out of range", l.name, g))
			}
		}
	}

	return errs
}

func validateTags(tags []TagImport, ids map[string]bool) []error {
	var errs []error
	for i, t := range tags {
		prefix := fmt.Sprintf("tags[%d]", i)
		if t.ID == "" {
			errs = append(errs, fmt.Errorf("%s._id is required", prefix))
		} else if ids[t.ID] {
			errs = append(errs, fmt.Errorf("%s._id: duplicate %q", prefix, t.ID))
		} else {
			ids[t.ID] = true
		}
		if t.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		if t.Color != "" && !domain.IsHexColor(t.Color) {
			errs = append(errs, fmt.Errorf("%s.color: invalid value %q (expected #rgb or #rrggbb)", prefix, t.Color))
		}
	}
	return errs
}

func validateTodates(todates []TodateImport, tagIDs map[string]bool, school *domain.SchoolCalendar) []error {
	var errs []error
	seen := make(map[string]bool)

	for i, td := range todates {
		prefix := fmt.Sprintf("todates[%d]", i)
		if td.ID != "" {
			if seen[td.ID] {
				errs = append(errs, fmt.Errorf("%s._id: duplicate %q", prefix, td.ID))
			}
			seen[td.ID] = true
		}
		if td.Title == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", prefix))
		}

		if td.DateDisplay == nil {
			if td.Date == "" {
				errs = append(errs, fmt.Errorf("%s: dateDisplay or date is required", prefix))
			} else if _, err := time.Parse(time.RFC3339Nano, td.Date); err != nil {
				errs = append(errs, fmt.Errorf("%s.date: invalid timestamp %q", prefix, td.Date))
			}
		} else {
			errs = append(errs, validateDateValue(prefix+".dateDisplay", *td.DateDisplay)...)
		}
		if td.EndDateDisplay != nil {
			errs = append(errs, validateDateValue(prefix+".endDateDisplay", *td.EndDateDisplay)...)
			if td.DateDisplay != nil {
				start := calendar.ResolveInstant(domain.ClampDateValue(*td.DateDisplay, school), school)
				end := calendar.ResolveInstant(domain.ClampDateValue(*td.EndDateDisplay, school), school)
				if end.Before(start) {
					errs = append(errs, fmt.Errorf("%s.endDateDisplay is before dateDisplay", prefix))
				}
			}
		}

		for _, ref := range td.Tags {
			if !tagIDs[ref] {
				errs = append(errs, fmt.Errorf("%s.tags: unknown tag %q", prefix, ref))
			}
		}
	}
	return errs
}

func validateDateValue(field string, v domain.DateValue) []error {
	if v.IsZero() {
		return []error{fmt.Errorf("%s: missing %s payload", field, v.Kind)}
	}
	switch v.Kind {
	case domain.KindSchool:
		if v.School.PeriodType != "" && !domain.ValidPeriodTypes[string(v.School.PeriodType)] {
			return []error{fmt.Errorf("%s.periodType: invalid value %q", field, v.School.PeriodType)}
		}
	case domain.KindMonth, domain.KindDay:
	case domain.KindDatetime:
		if _, err := time.Parse(time.RFC3339Nano, v.Datetime.ISO); err != nil {
			return []error{fmt.Errorf("%s.iso: invalid timestamp %q", field, v.Datetime.ISO)}
		}
	}
	return nil
}
