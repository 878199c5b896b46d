package calendar

import "time"

// FractionalYear maps t to a real-valued year: the calendar year plus the
// elapsed fraction of it, measured in t's location.
func FractionalYear(t time.Time) float64 {
	y := t.Year()
	start := time.Date(y, time.January, 1, 0, 0, 0, 0, t.Location())
	next := time.Date(y+1, time.January, 1, 0, 0, 0, 0, t.Location())
	return float64(y) + float64(t.Sub(start))/float64(next.Sub(start))
}
