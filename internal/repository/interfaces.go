package repository

import (
	"context"

	"github.com/alexanderramin/todate/internal/domain"
)

type TagRepo interface {
	Create(ctx context.Context, t *domain.Tag) error
	GetByID(ctx context.Context, id string) (*domain.Tag, error)
	GetByName(ctx context.Context, name string) (*domain.Tag, error)
	List(ctx context.Context) ([]*domain.Tag, error)
	Update(ctx context.Context, t *domain.Tag) error
	Delete(ctx context.Context, id string) error
}

// TodateRepo persists todates together with their tag links. Tags on a
// returned todate are fully populated, in the order they were attached.
type TodateRepo interface {
	Create(ctx context.Context, t *domain.Todate) error
	GetByID(ctx context.Context, id string) (*domain.Todate, error)
	List(ctx context.Context) ([]*domain.Todate, error)
	ListByKind(ctx context.Context, kind domain.DateKind) ([]*domain.Todate, error)
	Update(ctx context.Context, t *domain.Todate) error
	Delete(ctx context.Context, id string) error
}

// SchoolCalendarRepo stores the single school calendar.
type SchoolCalendarRepo interface {
	Get(ctx context.Context) (*domain.SchoolCalendar, error)
	Upsert(ctx context.Context, c *domain.SchoolCalendar) error
	Delete(ctx context.Context) error
}
