package service

import (
	"context"
	"time"

	"github.com/alexanderramin/todate/internal/db"
	"github.com/alexanderramin/todate/internal/domain"
	"github.com/alexanderramin/todate/internal/repository"
	"github.com/google/uuid"
)

type todateService struct {
	todates  repository.TodateRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewTodateService(todates repository.TodateRepo, uow db.UnitOfWork, observers ...UseCaseObserver) TodateService {
	return &todateService{todates: todates, uow: uow, observer: combineObservers(observers)}
}

func (s *todateService) Create(ctx context.Context, t *domain.Todate) (err error) {
	defer observe(ctx, s.observer, "create-todate", time.Now(), &err, map[string]any{"kind": string(t.Start.Kind)})

	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		school, err := loadSchool(ctx, repository.NewSQLiteSchoolCalendarRepo(tx))
		if err != nil {
			return err
		}
		if err := prepareTodate(ctx, t, school, repository.NewSQLiteTagRepo(tx)); err != nil {
			return err
		}
		return repository.NewSQLiteTodateRepo(tx).Create(ctx, t)
	})
}

func (s *todateService) GetByID(ctx context.Context, id string) (*domain.Todate, error) {
	return s.todates.GetByID(ctx, id)
}

func (s *todateService) List(ctx context.Context) ([]*domain.Todate, error) {
	return s.todates.List(ctx)
}

// Update keeps the stored CreatedAt.
func (s *todateService) Update(ctx context.Context, t *domain.Todate) (err error) {
	defer observe(ctx, s.observer, "update-todate", time.Now(), &err, map[string]any{"id": t.ID})

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTodates := repository.NewSQLiteTodateRepo(tx)
		existing, err := txTodates.GetByID(ctx, t.ID)
		if err != nil {
			return err
		}
		school, err := loadSchool(ctx, repository.NewSQLiteSchoolCalendarRepo(tx))
		if err != nil {
			return err
		}
		if err := prepareTodate(ctx, t, school, repository.NewSQLiteTagRepo(tx)); err != nil {
			return err
		}
		t.CreatedAt = existing.CreatedAt
		t.UpdatedAt = time.Now().UTC()
		return txTodates.Update(ctx, t)
	})
}

func (s *todateService) Delete(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "delete-todate", time.Now(), &err, map[string]any{"id": id})
	return s.todates.Delete(ctx, id)
}
