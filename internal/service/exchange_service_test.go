package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/todate/internal/calendar"
	"github.com/alexanderramin/todate/internal/domain"
	"github.com/alexanderramin/todate/internal/ics"
	"github.com/alexanderramin/todate/internal/importer"
	"github.com/alexanderramin/todate/internal/testutil"
	"github.com/alexanderramin/todate/internal/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dateRef(v domain.DateValue) *domain.DateValue { return &v }

func validImportSchema() *importer.ImportSchema {
	return &importer.ImportSchema{
		Version: importer.CurrentVersion,
		Tags: []importer.TagImport{
			{ID: "tag-school", Name: "School", Color: "#2563eb"},
		},
		Todates: []importer.TodateImport{
			{ID: "td-1", Title: "Grade 1", DateDisplay: dateRef(domain.SchoolDate(1, domain.PeriodQuarter, 1)), Tags: []string{"tag-school"}},
			{ID: "td-2", Title: "Moved", DateDisplay: dateRef(domain.MonthDate(2003, 7))},
		},
	}
}

func TestExchangeService_ImportCreates(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	res, err := s.exchange.ImportSchema(ctx, validImportSchema())
	require.NoError(t, err)
	assert.Equal(t, &ImportResult{TagsCreated: 1, TodatesCreated: 2}, res)

	td, err := s.todates.GetByID(ctx, "td-1")
	require.NoError(t, err)
	require.Len(t, td.Tags, 1)
	assert.Equal(t, "School", td.Tags[0].Name)
	assert.Equal(t, calendar.CanonicalISO(td.Start, nil), td.Date)
}

func TestExchangeService_ImportTwiceUpdatesInPlace(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	_, err := s.exchange.ImportSchema(ctx, validImportSchema())
	require.NoError(t, err)

	schema := validImportSchema()
	schema.Todates[1].Title = "Moved house"
	res, err := s.exchange.ImportSchema(ctx, schema)
	require.NoError(t, err)
	assert.Equal(t, 1, res.TagsMerged)
	assert.Equal(t, 0, res.TodatesCreated)
	assert.Equal(t, 2, res.TodatesUpdated)

	td, err := s.todates.GetByID(ctx, "td-2")
	require.NoError(t, err)
	assert.Equal(t, "Moved house", td.Title)
}

func TestExchangeService_ImportMergesTagsByName(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	existing := s.mustTag(t, "school")

	res, err := s.exchange.ImportSchema(ctx, validImportSchema())
	require.NoError(t, err)
	assert.Equal(t, 0, res.TagsCreated)
	assert.Equal(t, 1, res.TagsMerged)

	td, err := s.todates.GetByID(ctx, "td-1")
	require.NoError(t, err)
	require.Len(t, td.Tags, 1)
	assert.Equal(t, existing.ID, td.Tags[0].ID)
}

func TestExchangeService_ImportSchoolRecomputesExisting(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	before := s.mustTodate(t, "Grade 4", domain.SchoolDate(4, domain.PeriodQuarter, 1))
	assert.Equal(t, "2003", before.Date[:4])

	schema := validImportSchema()
	schema.School = &importer.SchoolImport{ReferenceYear: 2010}
	res, err := s.exchange.ImportSchema(ctx, schema)
	require.NoError(t, err)
	assert.True(t, res.SchoolUpdated)
	assert.Equal(t, 1, res.Recomputed)

	after, err := s.todates.GetByID(ctx, before.ID)
	require.NoError(t, err)
	assert.Equal(t, "2013", after.Date[:4])

	imported, err := s.todates.GetByID(ctx, "td-1")
	require.NoError(t, err)
	assert.Equal(t, "2010", imported.Date[:4])
}

func TestExchangeService_ImportValidationFails(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	schema := validImportSchema()
	schema.Todates[0].Title = ""
	schema.Todates[1].Tags = []string{"ghost"}

	_, err := s.exchange.ImportSchema(ctx, schema)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "(2 errors)")

	ev := s.events.last()
	assert.Equal(t, "import", ev.Name)
	assert.False(t, ev.Success())
}

func TestExchangeService_ImportRollback(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	// The tag and the first todate are written before the second todate fails.
	failUoW := &testutil.FailingExecUoW{
		DB:     database,
		Match:  "INSERT INTO todates",
		FailOn: 2,
		Err:    fmt.Errorf("injected todate create failure"),
	}
	s := newTestServicesWithUoW(t, database, failUoW)

	_, err := s.exchange.ImportSchema(ctx, validImportSchema())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected todate create failure")
	assert.Equal(t, 2, failUoW.Attempts())

	todates, err := s.todates.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, todates)
	tags, err := s.tags.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestExchangeService_ImportFromFile(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	data, err := validImportSchema().Marshal()
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "todates.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	res, err := s.exchange.Import(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 2, res.TodatesCreated)

	_, err = s.exchange.Import(ctx, filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestExchangeService_ExportJSONRoundTrip(t *testing.T) {
	src := newTestServices(t)
	ctx := context.Background()

	_, err := src.school.Save(ctx, &domain.SchoolCalendar{ReferenceYear: 2008, PeriodType: domain.PeriodSemester})
	require.NoError(t, err)
	tag := src.mustTag(t, "Life")
	end := domain.MonthDate(2012, 6)
	ranged := &domain.Todate{Title: "College", Start: domain.MonthDate(2008, 9), End: &end, Comment: "BSc", Tags: []domain.Tag{{ID: tag.ID}}}
	require.NoError(t, src.todates.Create(ctx, ranged))
	src.mustTodate(t, "Grade 2", domain.SchoolDate(2, "", 2).WithNote("new school"))

	data, err := src.exchange.ExportJSON(ctx)
	require.NoError(t, err)

	dst := newTestServices(t)
	schema, err := importer.ParseImportSchema(data)
	require.NoError(t, err)
	res, err := dst.exchange.ImportSchema(ctx, schema)
	require.NoError(t, err)
	assert.True(t, res.SchoolUpdated)
	assert.Equal(t, 2, res.TodatesCreated)

	want, err := src.todates.List(ctx)
	require.NoError(t, err)
	got, err := dst.todates.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].ID, got[i].ID)
		assert.Equal(t, want[i].Date, got[i].Date)
		assert.Equal(t, want[i].Start, got[i].Start)
		assert.Equal(t, want[i].End, got[i].End)
		assert.Equal(t, want[i].Comment, got[i].Comment)
		assert.Equal(t, want[i].Tags, got[i].Tags)
	}

	cal, err := dst.school.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, cal)
	assert.Equal(t, 2008, cal.ReferenceYear)
	assert.Equal(t, domain.PeriodSemester, cal.PeriodType)
}

func TestExchangeService_ExportICS(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	tag := s.mustTag(t, "Holidays")
	s.mustTodate(t, "Beach", domain.DayDate(2019, 8, 2), tag)
	s.mustTodate(t, "Untagged", domain.DayDate(2019, 9, 2))

	out, err := s.exchange.ExportICS(ctx, timeline.Filter{TagIDs: []string{tag.ID}}, ics.Options{Location: time.UTC})
	require.NoError(t, err)
	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.Contains(t, out, "SUMMARY:Beach")
	assert.NotContains(t, out, "Untagged")
	assert.Equal(t, 1, strings.Count(out, "BEGIN:VEVENT"))
}
