package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/alexanderramin/todate/internal/domain"
	"github.com/alexanderramin/todate/internal/repository"
	"github.com/google/uuid"
)

type tagService struct {
	tags     repository.TagRepo
	observer UseCaseObserver
}

func NewTagService(tags repository.TagRepo, observers ...UseCaseObserver) TagService {
	return &tagService{tags: tags, observer: combineObservers(observers)}
}

func validateTag(t *domain.Tag) error {
	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" {
		return invalidf("tag name is required")
	}
	if t.Color == "" {
		t.Color = domain.FallbackTagColor
	}
	if !domain.IsHexColor(t.Color) {
		return invalidf("tag color %q is not #rgb or #rrggbb", t.Color)
	}
	return nil
}

func (s *tagService) Create(ctx context.Context, t *domain.Tag) (err error) {
	defer observe(ctx, s.observer, "create-tag", time.Now(), &err, map[string]any{"name": t.Name})

	if err := validateTag(t); err != nil {
		return err
	}
	if _, err := s.tags.GetByName(ctx, t.Name); err == nil {
		return invalidf("tag %q already exists", t.Name)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return s.tags.Create(ctx, t)
}

func (s *tagService) GetByID(ctx context.Context, id string) (*domain.Tag, error) {
	return s.tags.GetByID(ctx, id)
}

func (s *tagService) Resolve(ctx context.Context, ref string) (*domain.Tag, error) {
	tag, err := s.tags.GetByID(ctx, ref)
	if err == nil {
		return tag, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	return s.tags.GetByName(ctx, strings.TrimSpace(ref))
}

func (s *tagService) List(ctx context.Context) ([]*domain.Tag, error) {
	return s.tags.List(ctx)
}

func (s *tagService) Update(ctx context.Context, t *domain.Tag) (err error) {
	defer observe(ctx, s.observer, "update-tag", time.Now(), &err, map[string]any{"id": t.ID})

	if err := validateTag(t); err != nil {
		return err
	}
	if other, err := s.tags.GetByName(ctx, t.Name); err == nil && other.ID != t.ID {
		return invalidf("tag %q already exists", t.Name)
	}
	return s.tags.Update(ctx, t)
}

// Delete removes the tag from every todate that carried it.
func (s *tagService) Delete(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "delete-tag", time.Now(), &err, map[string]any{"id": id})
	return s.tags.Delete(ctx, id)
}
