package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/todate/internal/db"
	"github.com/alexanderramin/todate/internal/domain"
	"github.com/alexanderramin/todate/internal/repository"
)

type schoolService struct {
	school   repository.SchoolCalendarRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewSchoolService(school repository.SchoolCalendarRepo, uow db.UnitOfWork, observers ...UseCaseObserver) SchoolService {
	return &schoolService{school: school, uow: uow, observer: combineObservers(observers)}
}

func (s *schoolService) Get(ctx context.Context) (*domain.SchoolCalendar, error) {
	return loadSchool(ctx, s.school)
}

// Save stores c and recomputes every school-dated todate in the same
// transaction.
func (s *schoolService) Save(ctx context.Context, c *domain.SchoolCalendar) (n int, err error) {
	fields := map[string]any{}
	defer observe(ctx, s.observer, "save-school-calendar", time.Now(), &err, fields)

	if c.ReferenceYear < 1 || c.ReferenceYear > 9999 {
		return 0, invalidf("reference year %d out of range", c.ReferenceYear)
	}
	if c.PeriodType != "" && !domain.ValidPeriodTypes[string(c.PeriodType)] {
		return 0, invalidf("period type %q is not quarter, trimester or semester", c.PeriodType)
	}
	c.Normalize()
	c.UpdatedAt = time.Now().UTC()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteSchoolCalendarRepo(tx).Upsert(ctx, c); err != nil {
			return err
		}
		changed, err := recomputeSchoolDates(ctx, tx, c)
		if err != nil {
			return fmt.Errorf("recomputing school dates: %w", err)
		}
		n = changed
		return nil
	})
	if err != nil {
		return 0, err
	}
	fields["recomputed"] = n
	return n, nil
}

// Clear removes the calendar. School-dated todates fall back to the default
// calendar.
func (s *schoolService) Clear(ctx context.Context) (n int, err error) {
	fields := map[string]any{}
	defer observe(ctx, s.observer, "clear-school-calendar", time.Now(), &err, fields)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteSchoolCalendarRepo(tx).Delete(ctx); err != nil {
			return err
		}
		changed, err := recomputeSchoolDates(ctx, tx, nil)
		if err != nil {
			return fmt.Errorf("recomputing school dates: %w", err)
		}
		n = changed
		return nil
	})
	if err != nil {
		return 0, err
	}
	fields["recomputed"] = n
	return n, nil
}
