package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateValue(t *testing.T) {
	cases := []struct {
		in   string
		want DateValue
	}{
		{"school:3:2", SchoolDate(3, "", 2)},
		{"school:3:q2", SchoolDate(3, PeriodQuarter, 2)},
		{"School:1:tri3", SchoolDate(1, PeriodTrimester, 3)},
		{"school:5:sem1:r2", SchoolDate(5, PeriodSemester, 1).WithRepeatedInstance(2)},
		{"school:5:sem1:r1", SchoolDate(5, PeriodSemester, 1)},
		{"2021", MonthDate(2021, 1)},
		{"2021-03", MonthDate(2021, 3)},
		{"2021-03-14", DayDate(2021, 3, 14)},
		{" 2020-02-29 ", DayDate(2020, 2, 29)},
		{"2021-03-14T09:30:00Z", DatetimeDate("2021-03-14T09:30:00Z")},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseDateValue(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseDateValue_Errors(t *testing.T) {
	cases := []string{
		"",
		"school:0:1",
		"school:3",
		"school:3:x",
		"school:3:sem3",
		"school:3:2:2",
		"2021-13",
		"2021-02-30",
		"2021-03-14T25:00:00Z",
		"yesterday",
		"2021-01-01-01",
	}
	for _, in := range cases {
		_, err := ParseDateValue(in)
		require.Error(t, err, "should reject %q", in)
		assert.ErrorIs(t, err, ErrInvalidDate)
	}
}
