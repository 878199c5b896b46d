package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/alexanderramin/todate/internal/db"
	"github.com/alexanderramin/todate/internal/domain"
	"github.com/alexanderramin/todate/internal/repository"
	"github.com/alexanderramin/todate/internal/testutil"
)

type testServices struct {
	db       *sql.DB
	todates  TodateService
	tags     TagService
	school   SchoolService
	timeline TimelineService
	exchange ExchangeService
	events   *recordingObserver
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()
	database := testutil.NewTestDB(t)
	return newTestServicesWithUoW(t, database, testutil.NewTestUoW(database))
}

func newTestServicesWithUoW(t *testing.T, database *sql.DB, uow db.UnitOfWork) *testServices {
	t.Helper()
	todateRepo := repository.NewSQLiteTodateRepo(database)
	tagRepo := repository.NewSQLiteTagRepo(database)
	schoolRepo := repository.NewSQLiteSchoolCalendarRepo(database)
	events := &recordingObserver{}

	return &testServices{
		db:       database,
		todates:  NewTodateService(todateRepo, uow, events),
		tags:     NewTagService(tagRepo, events),
		school:   NewSchoolService(schoolRepo, uow, events),
		timeline: NewTimelineService(todateRepo, schoolRepo),
		exchange: NewExchangeService(todateRepo, tagRepo, schoolRepo, uow, events),
		events:   events,
	}
}

func (s *testServices) mustTag(t *testing.T, name string) *domain.Tag {
	t.Helper()
	tag := &domain.Tag{Name: name, Color: "#336699"}
	if err := s.tags.Create(context.Background(), tag); err != nil {
		t.Fatalf("creating tag %q: %v", name, err)
	}
	return tag
}

func (s *testServices) mustTodate(t *testing.T, title string, start domain.DateValue, tags ...*domain.Tag) *domain.Todate {
	t.Helper()
	td := &domain.Todate{Title: title, Start: start}
	for _, tag := range tags {
		td.Tags = append(td.Tags, domain.Tag{ID: tag.ID})
	}
	if err := s.todates.Create(context.Background(), td); err != nil {
		t.Fatalf("creating todate %q: %v", title, err)
	}
	return td
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingObserver) last() UseCaseEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return UseCaseEvent{}
	}
	return r.events[len(r.events)-1]
}
