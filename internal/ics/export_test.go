package ics

import (
	"strings"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/alexanderramin/todate/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)

func parse(t *testing.T, out string) map[string]*ical.VEvent {
	t.Helper()
	cal, err := ical.ParseCalendar(strings.NewReader(out))
	require.NoError(t, err)
	events := map[string]*ical.VEvent{}
	for _, ev := range cal.Events() {
		events[ev.GetProperty(ical.ComponentPropertyUniqueId).Value] = ev
	}
	return events
}

func prop(ev *ical.VEvent, p ical.ComponentProperty) string {
	if got := ev.GetProperty(p); got != nil {
		return got.Value
	}
	return ""
}

func TestExport_AllDayKinds(t *testing.T) {
	school := &domain.SchoolCalendar{ReferenceYear: 2000, StartMonth: 9, StartDay: 1}
	monthEnd := domain.MonthDate(2019, 6)
	todates := []*domain.Todate{
		{ID: "school", Title: "First term", Start: domain.SchoolDate(1, domain.PeriodQuarter, 1)},
		{ID: "job", Title: "Job", Start: domain.MonthDate(2015, 3), End: &monthEnd},
		{ID: "day", Title: "Wedding", Start: domain.DayDate(2018, 7, 14), Comment: "Beach"},
	}

	events := parse(t, Export(todates, school, Options{Location: time.UTC, Now: now}))
	require.Len(t, events, 3)

	ev := events["school@todate"]
	require.NotNil(t, ev)
	assert.Equal(t, "First term", prop(ev, ical.ComponentPropertySummary))
	assert.Equal(t, "20000901", prop(ev, ical.ComponentPropertyDtStart))
	assert.Equal(t, "20001201", prop(ev, ical.ComponentPropertyDtEnd))
	assert.Equal(t, "Sep 2000–Nov 2000", prop(ev, ical.ComponentPropertyDescription))

	ev = events["job@todate"]
	require.NotNil(t, ev)
	assert.Equal(t, "20150301", prop(ev, ical.ComponentPropertyDtStart))
	assert.Equal(t, "20190701", prop(ev, ical.ComponentPropertyDtEnd))
	assert.Equal(t, "Mar 2015 – Jun 2019", prop(ev, ical.ComponentPropertyDescription))

	ev = events["day@todate"]
	require.NotNil(t, ev)
	assert.Equal(t, "20180714", prop(ev, ical.ComponentPropertyDtStart))
	assert.Equal(t, "20180715", prop(ev, ical.ComponentPropertyDtEnd))
	assert.Contains(t, prop(ev, ical.ComponentPropertyDescription), "Beach")
}

func TestExport_TimedDatetime(t *testing.T) {
	end := domain.DatetimeDate("2022-01-10T16:00:00Z")
	todates := []*domain.Todate{
		{ID: "meeting", Title: "Meeting", Start: domain.DatetimeDate("2022-01-10T14:30:00Z"), End: &end},
		{ID: "instant", Title: "Instant", Start: domain.DatetimeDate("2022-02-01T08:00:00Z")},
	}
	events := parse(t, Export(todates, nil, Options{Location: time.UTC, Now: now}))

	ev := events["meeting@todate"]
	require.NotNil(t, ev)
	assert.Equal(t, "20220110T143000Z", prop(ev, ical.ComponentPropertyDtStart))
	assert.Equal(t, "20220110T160000Z", prop(ev, ical.ComponentPropertyDtEnd))

	ev = events["instant@todate"]
	require.NotNil(t, ev)
	assert.Equal(t, "20220201T080000Z", prop(ev, ical.ComponentPropertyDtStart))
	assert.Nil(t, ev.GetProperty(ical.ComponentPropertyDtEnd))
}

func TestExport_CategoriesAndProductID(t *testing.T) {
	todates := []*domain.Todate{{
		ID:    "tagged",
		Title: "Tagged",
		Start: domain.MonthDate(2020, 1),
		Tags:  []domain.Tag{{ID: "a", Name: "Work"}, {ID: "b", Name: "Travel"}},
	}}
	out := Export(todates, nil, Options{ProductID: "example", Location: time.UTC, Now: now})
	assert.Contains(t, out, "PRODID:-//example//Golang ICS Library")

	events := parse(t, out)
	ev := events["tagged@example"]
	require.NotNil(t, ev)
	assert.Equal(t, "Work,Travel", prop(ev, ical.ComponentPropertyCategories))
}

func TestExport_Empty(t *testing.T) {
	out := Export(nil, nil, Options{Now: now})
	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.Empty(t, parse(t, out))
}
