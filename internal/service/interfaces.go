package service

import (
	"context"

	"github.com/alexanderramin/todate/internal/domain"
	"github.com/alexanderramin/todate/internal/ics"
	"github.com/alexanderramin/todate/internal/importer"
	"github.com/alexanderramin/todate/internal/render"
	"github.com/alexanderramin/todate/internal/timeline"
)

// TodateService creates and edits todates. Every write clamps the date
// values and recomputes the canonical Date against the stored school
// calendar.
type TodateService interface {
	Create(ctx context.Context, t *domain.Todate) error
	GetByID(ctx context.Context, id string) (*domain.Todate, error)
	List(ctx context.Context) ([]*domain.Todate, error)
	Update(ctx context.Context, t *domain.Todate) error
	Delete(ctx context.Context, id string) error
}

type TagService interface {
	Create(ctx context.Context, t *domain.Tag) error
	GetByID(ctx context.Context, id string) (*domain.Tag, error)
	// Resolve finds a tag by ID, then by case-insensitive name.
	Resolve(ctx context.Context, ref string) (*domain.Tag, error)
	List(ctx context.Context) ([]*domain.Tag, error)
	Update(ctx context.Context, t *domain.Tag) error
	Delete(ctx context.Context, id string) error
}

// SchoolService manages the school calendar. Save and Clear return how many
// school-dated todates had their canonical date recomputed.
type SchoolService interface {
	// Get returns nil without error when no calendar is configured.
	Get(ctx context.Context) (*domain.SchoolCalendar, error)
	Save(ctx context.Context, c *domain.SchoolCalendar) (int, error)
	Clear(ctx context.Context) (int, error)
}

type TimelineService interface {
	View(ctx context.Context, f timeline.Filter, opts timeline.Options) (*timeline.View, error)
	SVG(ctx context.Context, f timeline.Filter, opts timeline.Options, style render.Style) (string, error)
}

type ExchangeService interface {
	ExportJSON(ctx context.Context) ([]byte, error)
	ExportICS(ctx context.Context, f timeline.Filter, opts ics.Options) (string, error)
	Import(ctx context.Context, filePath string) (*ImportResult, error)
	ImportSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error)
}

// ImportResult summarizes what an import wrote.
type ImportResult struct {
	SchoolUpdated  bool
	TagsCreated    int
	TagsMerged     int
	TodatesCreated int
	TodatesUpdated int
	// Recomputed counts existing school-dated todates whose canonical date
	// changed because the import replaced the school calendar.
	Recomputed int
}
