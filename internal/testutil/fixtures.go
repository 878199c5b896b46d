package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/todate/internal/domain"
	"github.com/google/uuid"
)

var testTagCounter atomic.Int64

// Tag options
type TagOption func(*domain.Tag)

func WithTagColor(c string) TagOption {
	return func(t *domain.Tag) {
		t.Color = c
	}
}

// NewTestTag builds a tag with a unique name derived from name.
func NewTestTag(name string, opts ...TagOption) *domain.Tag {
	t := &domain.Tag{
		ID:    uuid.New().String(),
		Name:  fmt.Sprintf("%s-%d", name, testTagCounter.Add(1)),
		Color: domain.FallbackTagColor,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Todate options
type TodateOption func(*domain.Todate)

func WithStart(v domain.DateValue) TodateOption {
	return func(t *domain.Todate) {
		t.Start = v
	}
}

func WithEnd(v domain.DateValue) TodateOption {
	return func(t *domain.Todate) {
		t.End = &v
	}
}

func WithComment(c string) TodateOption {
	return func(t *domain.Todate) {
		t.Comment = c
	}
}

func WithTags(tags ...*domain.Tag) TodateOption {
	return func(t *domain.Todate) {
		for _, tag := range tags {
			t.Tags = append(t.Tags, *tag)
		}
	}
}

// WithCanonicalDate overrides the stored sort key.
func WithCanonicalDate(iso string) TodateOption {
	return func(t *domain.Todate) {
		t.Date = iso
	}
}

// NewTestTodate builds a month-precision todate in June 2020 unless options
// say otherwise. Date is a plausible sort key; services recompute it.
func NewTestTodate(title string, opts ...TodateOption) *domain.Todate {
	now := time.Now().UTC().Truncate(time.Millisecond)
	t := &domain.Todate{
		ID:        uuid.New().String(),
		Title:     title,
		Start:     domain.MonthDate(2020, 6),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.Date == "" {
		t.Date = "2020-06-15T12:00:00.000Z"
	}
	return t
}
