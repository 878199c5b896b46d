package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTodate_Predicates(t *testing.T) {
	end := MonthDate(2020, 3)
	td := &Todate{Start: MonthDate(2020, 1), End: &end, Tags: []Tag{{ID: "a", Color: "#112233"}, {ID: "b", Color: "#445566"}}}

	assert.True(t, td.IsRanged())
	assert.False(t, td.IsUntagged())
	assert.True(t, td.HasTag("b"))
	assert.False(t, td.HasTag("c"))
	assert.Equal(t, "#112233", td.Color(), "first tag wins")

	point := &Todate{Start: DayDate(2020, 1, 1)}
	assert.False(t, point.IsRanged())
	assert.True(t, point.IsUntagged())
	assert.Equal(t, FallbackTagColor, point.Color())
}

func TestIsHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"#abc", true},
		{"#A1B2C3", true},
		{"#abcd", false},
		{"abc", false},
		{"#ggg", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsHexColor(tt.in), tt.in)
	}
}
