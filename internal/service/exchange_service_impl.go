package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/todate/internal/db"
	"github.com/alexanderramin/todate/internal/domain"
	"github.com/alexanderramin/todate/internal/ics"
	"github.com/alexanderramin/todate/internal/importer"
	"github.com/alexanderramin/todate/internal/repository"
	"github.com/alexanderramin/todate/internal/timeline"
)

type exchangeService struct {
	todates  repository.TodateRepo
	tags     repository.TagRepo
	school   repository.SchoolCalendarRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewExchangeService(
	todates repository.TodateRepo,
	tags repository.TagRepo,
	school repository.SchoolCalendarRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) ExchangeService {
	return &exchangeService{
		todates:  todates,
		tags:     tags,
		school:   school,
		uow:      uow,
		observer: combineObservers(observers),
	}
}

func (s *exchangeService) ExportJSON(ctx context.Context) (data []byte, err error) {
	fields := map[string]any{"format": "json"}
	defer observe(ctx, s.observer, "export", time.Now(), &err, fields)

	school, err := loadSchool(ctx, s.school)
	if err != nil {
		return nil, err
	}
	tags, err := s.tags.List(ctx)
	if err != nil {
		return nil, err
	}
	todates, err := s.todates.List(ctx)
	if err != nil {
		return nil, err
	}
	fields["todates"] = len(todates)
	return importer.FromDomain(school, tags, todates).Marshal()
}

func (s *exchangeService) ExportICS(ctx context.Context, f timeline.Filter, opts ics.Options) (out string, err error) {
	fields := map[string]any{"format": "ics"}
	defer observe(ctx, s.observer, "export", time.Now(), &err, fields)

	school, err := loadSchool(ctx, s.school)
	if err != nil {
		return "", err
	}
	all, err := s.todates.List(ctx)
	if err != nil {
		return "", err
	}
	todates := timeline.Apply(all, f, school, opts.Location)
	fields["todates"] = len(todates)
	return ics.Export(todates, school, opts), nil
}

func (s *exchangeService) Import(ctx context.Context, filePath string) (*ImportResult, error) {
	schema, err := importer.LoadImportSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportSchema(ctx, schema)
}

// ImportSchema writes the document in one transaction. Tags match existing
// ones by ID, then by name; todates with a known ID are updated in place.
func (s *exchangeService) ImportSchema(ctx context.Context, schema *importer.ImportSchema) (res *ImportResult, err error) {
	fields := map[string]any{}
	defer observe(ctx, s.observer, "import", time.Now(), &err, fields)

	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}
	converted, err := importer.Convert(schema)
	if err != nil {
		return nil, fmt.Errorf("converting import schema: %w", err)
	}

	res = &ImportResult{}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSchool := repository.NewSQLiteSchoolCalendarRepo(tx)
		txTags := repository.NewSQLiteTagRepo(tx)
		txTodates := repository.NewSQLiteTodateRepo(tx)

		school := converted.School
		if school != nil {
			if err := txSchool.Upsert(ctx, school); err != nil {
				return fmt.Errorf("saving school calendar: %w", err)
			}
			res.SchoolUpdated = true
		} else {
			stored, err := loadSchool(ctx, txSchool)
			if err != nil {
				return err
			}
			school = stored
		}

		tagIDs, err := importTags(ctx, txTags, converted.Tags, res)
		if err != nil {
			return err
		}

		for _, t := range converted.Todates {
			for i := range t.Tags {
				t.Tags[i].ID = tagIDs[t.Tags[i].ID]
			}
			if err := prepareTodate(ctx, t, school, txTags); err != nil {
				return fmt.Errorf("todate %q: %w", t.Title, err)
			}

			existing, err := txTodates.GetByID(ctx, t.ID)
			switch {
			case errors.Is(err, repository.ErrNotFound):
				if err := txTodates.Create(ctx, t); err != nil {
					return fmt.Errorf("creating todate %q: %w", t.Title, err)
				}
				res.TodatesCreated++
			case err != nil:
				return err
			default:
				t.CreatedAt = existing.CreatedAt
				if err := txTodates.Update(ctx, t); err != nil {
					return fmt.Errorf("updating todate %q: %w", t.Title, err)
				}
				res.TodatesUpdated++
			}
		}

		if res.SchoolUpdated {
			n, err := recomputeSchoolDates(ctx, tx, school)
			if err != nil {
				return fmt.Errorf("recomputing school dates: %w", err)
			}
			res.Recomputed = n
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields["todates_created"] = res.TodatesCreated
	fields["todates_updated"] = res.TodatesUpdated
	fields["tags_created"] = res.TagsCreated
	return res, nil
}

// importTags creates the tags that do not exist yet and returns the stored
// ID for every imported one.
func importTags(ctx context.Context, tags repository.TagRepo, imported []*domain.Tag, res *ImportResult) (map[string]string, error) {
	ids := make(map[string]string, len(imported))
	for _, t := range imported {
		if _, err := tags.GetByID(ctx, t.ID); err == nil {
			ids[t.ID] = t.ID
			res.TagsMerged++
			continue
		} else if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}

		if existing, err := tags.GetByName(ctx, t.Name); err == nil {
			ids[t.ID] = existing.ID
			res.TagsMerged++
			continue
		} else if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}

		if err := tags.Create(ctx, t); err != nil {
			return nil, fmt.Errorf("creating tag %q: %w", t.Name, err)
		}
		ids[t.ID] = t.ID
		res.TagsCreated++
	}
	return ids, nil
}
