// Package timeline turns stored todates into the positioned entries of one
// timeline view.
package timeline

import (
	"slices"
	"sort"
	"time"

	"github.com/alexanderramin/todate/internal/calendar"
	"github.com/alexanderramin/todate/internal/domain"
)

// Filter selects todates by tag and by year range.
type Filter struct {
	// TagIDs keeps todates carrying any of these tags. Empty keeps every
	// tagged todate.
	TagIDs []string
	// ShowUntagged also keeps todates without tags.
	ShowUntagged bool
	// FromYear and ToYear bound the calendar years a todate must touch.
	// Zero leaves that side open.
	FromYear int
	ToYear   int
}

// matchesTags applies the tag half of the filter.
func (f Filter) matchesTags(t *domain.Todate) bool {
	if t.IsUntagged() {
		return f.ShowUntagged
	}
	if len(f.TagIDs) == 0 {
		return true
	}
	return slices.ContainsFunc(f.TagIDs, t.HasTag)
}

// matchesYears reports whether [startYear, endYear] meets the filter range.
func (f Filter) matchesYears(startYear, endYear int) bool {
	if f.FromYear != 0 && endYear < f.FromYear {
		return false
	}
	if f.ToYear != 0 && startYear > f.ToYear {
		return false
	}
	return true
}

// Apply returns the todates passing f, in input order. Years are taken from
// the resolved start and end instants in loc.
func Apply(todates []*domain.Todate, f Filter, school *domain.SchoolCalendar, loc *time.Location) []*domain.Todate {
	out := make([]*domain.Todate, 0, len(todates))
	for _, t := range todates {
		if !f.matchesTags(t) {
			continue
		}
		start, end := resolveBounds(t, school, loc)
		if !f.matchesYears(start.Year(), end.Year()) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Sort orders todates newest first by their canonical instant. Equal
// instants fall back to ID so the order is stable across loads.
func Sort(todates []*domain.Todate, school *domain.SchoolCalendar, loc *time.Location) {
	keys := make(map[*domain.Todate]time.Time, len(todates))
	for _, t := range todates {
		keys[t] = sortInstant(t, school, loc)
	}
	sort.SliceStable(todates, func(i, j int) bool {
		a, b := todates[i], todates[j]
		ka, kb := keys[a], keys[b]
		if !ka.Equal(kb) {
			return ka.After(kb)
		}
		return a.ID < b.ID
	})
}

// sortInstant prefers the stored canonical date and falls back to resolving
// Start when it is missing or unreadable.
func sortInstant(t *domain.Todate, school *domain.SchoolCalendar, loc *time.Location) time.Time {
	if t.Date != "" {
		if ts, err := time.Parse(time.RFC3339Nano, t.Date); err == nil {
			return ts
		}
	}
	return calendar.ResolveInstantIn(t.Start, school, loc)
}

func resolveBounds(t *domain.Todate, school *domain.SchoolCalendar, loc *time.Location) (start, end time.Time) {
	start = calendar.ResolveInstantIn(t.Start, school, loc)
	end = start
	if t.End != nil {
		end = calendar.ResolveInstantIn(*t.End, school, loc)
	}
	return start, end
}

// ClampRange keeps a year-range selection inside [minYear, maxYear] with
// low <= high. High is clamped first, then low to [minYear, high].
func ClampRange(minYear, maxYear, low, high int) (int, int) {
	high = max(minYear, min(high, maxYear))
	low = max(minYear, min(low, high))
	return low, high
}
