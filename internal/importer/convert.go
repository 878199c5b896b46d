package importer

import (
	"time"

	"github.com/alexanderramin/todate/internal/calendar"
	"github.com/alexanderramin/todate/internal/domain"
	"github.com/google/uuid"
)

// Converted holds the domain objects of an import, ready for persistence.
type Converted struct {
	// School is nil when the file carries no school calendar.
	School  *domain.SchoolCalendar
	Tags    []*domain.Tag
	Todates []*domain.Todate
}

// Convert transforms a validated ImportSchema into domain objects ready for persistence.
// Call ValidateImportSchema first; Convert assumes the schema is valid.
//
// Missing IDs are generated. Date values are clamped and every todate gets
// its canonical Date recomputed against the file's school calendar.
func Convert(schema *ImportSchema) (*Converted, error) {
	now := time.Now().UTC()
	out := &Converted{School: schoolCalendar(schema.School)}
	if out.School != nil {
		out.School.UpdatedAt = now
	}

	tagsByID := make(map[string]domain.Tag, len(schema.Tags))
	for _, t := range schema.Tags {
		tag := &domain.Tag{
			ID:    domain.CoalesceStr(t.ID, uuid.New().String()),
			Name:  t.Name,
			Color: domain.CoalesceStr(t.Color, domain.FallbackTagColor),
		}
		tagsByID[t.ID] = *tag
		out.Tags = append(out.Tags, tag)
	}

	for _, td := range schema.Todates {
		start := domain.DatetimeDate(td.Date)
		if td.DateDisplay != nil {
			start = *td.DateDisplay
		}
		start = domain.ClampDateValue(start, out.School)

		var end *domain.DateValue
		if td.EndDateDisplay != nil {
			e := domain.ClampDateValue(*td.EndDateDisplay, out.School)
			end = &e
		}

		var tags []domain.Tag
		for _, ref := range td.Tags {
			if tag, ok := tagsByID[ref]; ok {
				tags = append(tags, tag)
			}
		}

		out.Todates = append(out.Todates, &domain.Todate{
			ID:        domain.CoalesceStr(td.ID, uuid.New().String()),
			Title:     td.Title,
			Date:      calendar.CanonicalISO(start, out.School),
			Start:     start,
			End:       end,
			Comment:   td.Comment,
			Tags:      tags,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	return out, nil
}

func schoolCalendar(s *SchoolImport) *domain.SchoolCalendar {
	if s == nil {
		return nil
	}
	cal := &domain.SchoolCalendar{
		ReferenceYear:  s.ReferenceYear,
		StartMonth:     domain.IntFromPtrWithDefault(domain.DefaultStartMonth, s.Month),
		StartDay:       domain.IntFromPtrWithDefault(domain.DefaultStartDay, s.Day),
		PeriodType:     domain.PeriodType(s.PeriodType),
		RepeatedGrades: s.RepeatedGrades,
		GapYears:       s.GapYears,
		SkippedGrades:  s.SkippedGrades,
	}
	cal.Normalize()
	return cal
}

// FromDomain builds the export document for the given state.
func FromDomain(school *domain.SchoolCalendar, tags []*domain.Tag, todates []*domain.Todate) *ImportSchema {
	out := &ImportSchema{
		Version: CurrentVersion,
		Tags:    make([]TagImport, 0, len(tags)),
		Todates: make([]TodateImport, 0, len(todates)),
	}
	if school != nil {
		month, day := school.Month(), school.Day()
		out.School = &SchoolImport{
			ReferenceYear:  school.ReferenceYear,
			Month:          &month,
			Day:            &day,
			PeriodType:     string(school.Periods()),
			RepeatedGrades: school.RepeatedGrades,
			GapYears:       school.GapYears,
			SkippedGrades:  school.SkippedGrades,
		}
	}
	for _, t := range tags {
		out.Tags = append(out.Tags, TagImport{ID: t.ID, Name: t.Name, Color: t.Color})
	}
	for _, t := range todates {
		start := t.Start
		td := TodateImport{
			ID:             t.ID,
			Title:          t.Title,
			Date:           t.Date,
			DateDisplay:    &start,
			EndDateDisplay: t.End,
			Comment:        t.Comment,
		}
		for _, tag := range t.Tags {
			td.Tags = append(td.Tags, tag.ID)
		}
		out.Todates = append(out.Todates, td)
	}
	return out
}
