package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateValueJSON_RoundTrip(t *testing.T) {
	cases := []struct {
		name string
		in   DateValue
	}{
		{"school", SchoolDate(3, PeriodTrimester, 2).WithRepeatedInstance(2).WithNote("Lycée")},
		{"month", MonthDate(2021, 3)},
		{"day", DayDate(2020, 2, 29)},
		{"datetime", DatetimeDate("2021-03-14T09:30:00.000+01:00")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data, err := json.Marshal(tc.in)
			require.NoError(t, err)

			var out DateValue
			require.NoError(t, json.Unmarshal(data, &out))
			assert.Equal(t, tc.in, out)
		})
	}
}

func TestDateValueJSON_SchoolWireShape(t *testing.T) {
	data, err := json.Marshal(SchoolDate(3, PeriodQuarter, 2).WithNote("CM1"))
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"kind":"school","schoolYear":3,"periodType":"quarter","period":2,"schoolYearNote":"CM1"}`,
		string(data))
}

func TestDateValueJSON_LegacyQuarter(t *testing.T) {
	var v DateValue
	require.NoError(t, json.Unmarshal([]byte(`{"kind":"school","schoolYear":4,"quarter":3}`), &v))
	require.Equal(t, KindSchool, v.Kind)

	pt, period := v.School.Resolve(PeriodSemester)
	assert.Equal(t, PeriodQuarter, pt)
	assert.Equal(t, 3, period)
}

func TestDateValueJSON_NoteAlias(t *testing.T) {
	var v DateValue
	require.NoError(t, json.Unmarshal([]byte(`{"kind":"school","schoolYear":1,"period":1,"note":"first"}`), &v))
	assert.Equal(t, "first", v.School.Note)
}

func TestDateValueJSON_UnknownKind(t *testing.T) {
	var v DateValue
	err := json.Unmarshal([]byte(`{"kind":"week","year":2020}`), &v)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownDateKind)
}

func TestDateValueJSON_MissingFields(t *testing.T) {
	cases := []string{
		`{"kind":"school"}`,
		`{"kind":"month","year":2020}`,
		`{"kind":"day","year":2020,"month":2}`,
		`{"kind":"datetime"}`,
	}
	for _, raw := range cases {
		var v DateValue
		assert.Error(t, json.Unmarshal([]byte(raw), &v), "should reject %s", raw)
	}
}

func TestSchoolValueResolve(t *testing.T) {
	cases := []struct {
		name       string
		in         SchoolValue
		fallback   PeriodType
		wantType   PeriodType
		wantPeriod int
	}{
		{"explicit", SchoolValue{SchoolYear: 1, PeriodType: PeriodSemester, Period: 2}, PeriodQuarter, PeriodSemester, 2},
		{"explicit quarter without period uses legacy", SchoolValue{SchoolYear: 1, PeriodType: PeriodQuarter, Quarter: 4}, "", PeriodQuarter, 4},
		{"legacy", SchoolValue{SchoolYear: 1, Quarter: 2}, PeriodTrimester, PeriodQuarter, 2},
		{"fallback type", SchoolValue{SchoolYear: 1, Period: 3}, PeriodTrimester, PeriodTrimester, 3},
		{"nothing", SchoolValue{SchoolYear: 1}, "", PeriodQuarter, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pt, p := tc.in.Resolve(tc.fallback)
			assert.Equal(t, tc.wantType, pt)
			assert.Equal(t, tc.wantPeriod, p)
		})
	}
}

func TestWithRepeatedInstance_DoesNotMutateOriginal(t *testing.T) {
	v := SchoolDate(2, PeriodQuarter, 1)
	w := v.WithRepeatedInstance(2)
	assert.Equal(t, 0, v.School.RepeatedInstance)
	assert.Equal(t, 2, w.School.RepeatedInstance)

	m := MonthDate(2020, 1)
	assert.Equal(t, m, m.WithRepeatedInstance(3))
}

func TestPeriodHelpers(t *testing.T) {
	assert.Equal(t, 4, PeriodsPerYear(PeriodQuarter))
	assert.Equal(t, 3, PeriodsPerYear(PeriodTrimester))
	assert.Equal(t, 2, PeriodsPerYear(PeriodSemester))
	assert.Equal(t, 3, MonthsPerPeriod(PeriodQuarter))
	assert.Equal(t, 4, MonthsPerPeriod(PeriodTrimester))
	assert.Equal(t, 6, MonthsPerPeriod(PeriodSemester))
	assert.Equal(t, "Q2", PeriodLabel(PeriodQuarter, 2))
	assert.Equal(t, "Tri 3", PeriodLabel(PeriodTrimester, 3))
	assert.Equal(t, "Sem 1", PeriodLabel(PeriodSemester, 1))
}

func TestIsZero(t *testing.T) {
	assert.True(t, DateValue{}.IsZero())
	assert.True(t, DateValue{Kind: KindMonth}.IsZero())
	assert.False(t, MonthDate(2020, 1).IsZero())
}
