package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/todate/internal/domain"
	"github.com/alexanderramin/todate/internal/render"
	"github.com/alexanderramin/todate/internal/repository"
	"github.com/alexanderramin/todate/internal/timeline"
)

type timelineService struct {
	todates repository.TodateRepo
	school  repository.SchoolCalendarRepo
}

func NewTimelineService(todates repository.TodateRepo, school repository.SchoolCalendarRepo) TimelineService {
	return &timelineService{todates: todates, school: school}
}

func (s *timelineService) load(ctx context.Context, f timeline.Filter, opts timeline.Options) ([]*domain.Todate, *domain.SchoolCalendar, error) {
	school, err := loadSchool(ctx, s.school)
	if err != nil {
		return nil, nil, fmt.Errorf("loading school calendar: %w", err)
	}
	all, err := s.todates.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	return timeline.Apply(all, f, school, opts.Location), school, nil
}

func (s *timelineService) View(ctx context.Context, f timeline.Filter, opts timeline.Options) (*timeline.View, error) {
	todates, school, err := s.load(ctx, f, opts)
	if err != nil {
		return nil, err
	}
	return timeline.Build(todates, school, opts), nil
}

func (s *timelineService) SVG(ctx context.Context, f timeline.Filter, opts timeline.Options, style render.Style) (string, error) {
	v, err := s.View(ctx, f, opts)
	if err != nil {
		return "", err
	}
	return render.SVG(v, style), nil
}
