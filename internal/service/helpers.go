package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/todate/internal/calendar"
	"github.com/alexanderramin/todate/internal/db"
	"github.com/alexanderramin/todate/internal/domain"
	"github.com/alexanderramin/todate/internal/repository"
)

// loadSchool returns the stored calendar, or nil when none is configured.
func loadSchool(ctx context.Context, repo repository.SchoolCalendarRepo) (*domain.SchoolCalendar, error) {
	cal, err := repo.Get(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return cal, nil
}

// prepareTodate validates t, clamps its values, resolves its tags and sets
// the canonical Date. Tags are looked up by ID and replaced by the stored
// records.
func prepareTodate(ctx context.Context, t *domain.Todate, school *domain.SchoolCalendar, tags repository.TagRepo) error {
	t.Title = strings.TrimSpace(t.Title)
	if t.Title == "" {
		return invalidf("title is required")
	}
	if t.Start.IsZero() {
		return invalidf("start date is required")
	}
	if t.End != nil && t.End.IsZero() {
		return invalidf("end date has no value")
	}

	t.Start = domain.ClampDateValue(t.Start, school)
	if t.End != nil {
		end := domain.ClampDateValue(*t.End, school)
		t.End = &end
		if calendar.ResolveInstant(end, school).Before(calendar.ResolveInstant(t.Start, school)) {
			return invalidf("end date is before start date")
		}
	}

	resolved := make([]domain.Tag, 0, len(t.Tags))
	seen := make(map[string]bool, len(t.Tags))
	for _, ref := range t.Tags {
		if seen[ref.ID] {
			continue
		}
		seen[ref.ID] = true
		tag, err := tags.GetByID(ctx, ref.ID)
		if errors.Is(err, repository.ErrNotFound) {
			return invalidf("unknown tag %q", ref.ID)
		}
		if err != nil {
			return err
		}
		resolved = append(resolved, *tag)
	}
	t.Tags = resolved

	t.Date = calendar.CanonicalISO(t.Start, school)
	return nil
}

// recomputeSchoolDates refreshes the canonical date of every school-dated
// todate against school and returns how many changed.
func recomputeSchoolDates(ctx context.Context, tx db.DBTX, school *domain.SchoolCalendar) (int, error) {
	todates := repository.NewSQLiteTodateRepo(tx)
	list, err := todates.ListByKind(ctx, domain.KindSchool)
	if err != nil {
		return 0, fmt.Errorf("listing school todates: %w", err)
	}

	now := time.Now().UTC()
	changed := 0
	for _, t := range list {
		date := calendar.CanonicalISO(t.Start, school)
		if date == t.Date {
			continue
		}
		t.Date = date
		t.UpdatedAt = now
		if err := todates.Update(ctx, t); err != nil {
			return changed, fmt.Errorf("updating %q: %w", t.Title, err)
		}
		changed++
	}
	return changed, nil
}
