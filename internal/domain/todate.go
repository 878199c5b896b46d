package domain

import (
	"regexp"
	"time"
)

// FallbackTagColor is used for todates without tags.
const FallbackTagColor = "#9ca3af"

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// IsHexColor reports whether s is a #rgb or #rrggbb color.
func IsHexColor(s string) bool { return hexColor.MatchString(s) }

type Tag struct {
	ID    string
	Name  string
	Color string
}

// Todate is a single dated moment or period.
type Todate struct {
	ID    string
	Title string

	// Date is the canonical sort key: an RFC 3339 instant derived from Start.
	Date  string
	Start DateValue
	// End is set for ranged todates.
	End *DateValue

	Comment string
	Tags    []Tag

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsRanged reports whether the todate spans a period and needs a lane.
func (t *Todate) IsRanged() bool {
	return t.End != nil
}

// IsUntagged reports whether the todate carries no tags.
func (t *Todate) IsUntagged() bool {
	return len(t.Tags) == 0
}

// HasTag reports whether the todate carries the tag with the given ID.
func (t *Todate) HasTag(id string) bool {
	for _, tag := range t.Tags {
		if tag.ID == id {
			return true
		}
	}
	return false
}

// Color returns the first tag's color, or the fallback gray.
func (t *Todate) Color() string {
	if len(t.Tags) > 0 && t.Tags[0].Color != "" {
		return t.Tags[0].Color
	}
	return FallbackTagColor
}
