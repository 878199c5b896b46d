// Package layout assigns ranged timeline entries to parallel lanes.
package layout

import (
	"sort"
	"time"

	"github.com/alexanderramin/todate/internal/calendar"
)

// Interval is a half-open [Start, End) range in fractional years.
type Interval struct {
	ID    string
	Start float64
	End   float64
}

// Overlaps reports whether a and b share any instant.
func (a Interval) Overlaps(b Interval) bool {
	return a.Start < b.End && b.Start < a.End
}

// AssignLanes places each interval in the lowest lane whose previous
// occupant has already ended, opening a new lane when none has. Intervals
// are visited by start, ties in input order, so the result is reproducible.
//
// For positive-length intervals the number of lanes used equals
// MaxOverlap(intervals). An interval with End < Start is not rejected; it
// still receives a lane.
func AssignLanes(intervals []Interval) map[string]int {
	sorted := make([]Interval, len(intervals))
	copy(sorted, intervals)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	lanes := make(map[string]int, len(sorted))
	var laneEnd []float64
	for _, iv := range sorted {
		lane := 0
		for lane < len(laneEnd) && laneEnd[lane] > iv.Start {
			lane++
		}
		if lane == len(laneEnd) {
			laneEnd = append(laneEnd, iv.End)
		} else {
			laneEnd[lane] = iv.End
		}
		lanes[iv.ID] = lane
	}
	return lanes
}

// LaneCount returns how many lanes an assignment uses.
func LaneCount(lanes map[string]int) int {
	n := 0
	for _, l := range lanes {
		if l+1 > n {
			n = l + 1
		}
	}
	return n
}

// MaxOverlap returns the largest number of intervals active at a single
// instant, counting an interval as active on [Start, End).
func MaxOverlap(intervals []Interval) int {
	type event struct {
		at    float64
		delta int
	}
	events := make([]event, 0, 2*len(intervals))
	for _, iv := range intervals {
		if iv.End <= iv.Start {
			continue
		}
		events = append(events, event{iv.Start, +1}, event{iv.End, -1})
	}
	// Ends sort before starts at the same instant.
	sort.Slice(events, func(i, j int) bool {
		if events[i].at != events[j].at {
			return events[i].at < events[j].at
		}
		return events[i].delta < events[j].delta
	})

	cur, best := 0, 0
	for _, e := range events {
		cur += e.delta
		best = max(best, cur)
	}
	return best
}

// Item is a timeline entry as the layout sees it. Items without End are
// point items and are drawn on the axis without a lane.
type Item struct {
	ID    string
	Start time.Time
	End   *time.Time
}

// Intervals converts the ranged items to fractional-year intervals, in
// input order.
func Intervals(items []Item) []Interval {
	out := make([]Interval, 0, len(items))
	for _, it := range items {
		if it.End == nil {
			continue
		}
		out = append(out, Interval{
			ID:    it.ID,
			Start: calendar.FractionalYear(it.Start),
			End:   calendar.FractionalYear(*it.End),
		})
	}
	return out
}

// AssignItemLanes assigns lanes to the ranged items. Point items are absent
// from the result.
func AssignItemLanes(items []Item) map[string]int {
	return AssignLanes(Intervals(items))
}
