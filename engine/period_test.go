package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/worktime/engine"
)

// Reference instant for tests that depend on "now": Wednesday, March 20 2024.
var wednesday = time.Date(2024, time.March, 20, 14, 30, 0, 0, time.UTC)

func mustResolve(t *testing.T, token string) engine.DateRange {
	t.Helper()
	r, err := engine.Resolve(token, wednesday)
	require.NoError(t, err)
	return r
}

func TestResolve_CurrentWeek(t *testing.T) {
	// GIVEN: "now" is Wednesday, March 20 2024
	// WHEN: resolving the bare "W" token
	// THEN: the range spans Sunday March 17 up to (not including) Sunday March 24

	r := mustResolve(t, "W")

	assert.Equal(t, time.Date(2024, time.March, 17, 0, 0, 0, 0, time.UTC), r.Start)
	assert.Equal(t, time.Date(2024, time.March, 24, 0, 0, 0, 0, time.UTC), r.End)
}

func TestResolve_WeekOfYear(t *testing.T) {
	// Week 1 of 2024 starts on Sunday December 31 2023 (the week containing
	// January 1). Week 3 therefore starts two weeks later.
	r := mustResolve(t, "W3/24")

	assert.Equal(t, time.Date(2024, time.January, 14, 0, 0, 0, 0, time.UTC), r.Start)
	assert.Equal(t, time.Date(2024, time.January, 21, 0, 0, 0, 0, time.UTC), r.End)
}

func TestResolve_WeekClampedToLastOfYear(t *testing.T) {
	// GIVEN: 2024 has 53 week slots under Sunday-start numbering
	// WHEN: asking for week 60
	// THEN: the range clamps to week 53 (starting Sunday December 29 2024)

	r := mustResolve(t, "W60")

	assert.Equal(t, time.Date(2024, time.December, 29, 0, 0, 0, 0, time.UTC), r.Start)
	assert.Equal(t, time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC), r.End)
}

func TestResolve_TwoDigitYearMapsToCurrentCentury(t *testing.T) {
	// 95 lands in the current century: 2095, not 1995. January 1 2095 is a
	// Saturday, so week 1 starts the preceding Sunday, December 26 2094.
	r := mustResolve(t, "W1/95")

	assert.Equal(t, time.Date(2094, time.December, 26, 0, 0, 0, 0, time.UTC), r.Start)
	assert.True(t, r.Contains(engine.NewDay(2095, time.January, 1)))

	// A week starting inside the year pins the century directly.
	r = mustResolve(t, "W10/95")
	assert.Equal(t, time.Date(2095, time.February, 27, 0, 0, 0, 0, time.UTC), r.Start)
}

func TestResolve_CurrentMonth(t *testing.T) {
	r := mustResolve(t, "M")

	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), r.Start)
	assert.Equal(t, time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), r.End)
}

func TestResolve_MonthOfYear(t *testing.T) {
	r := mustResolve(t, "M11/24")

	assert.Equal(t, time.Date(2024, time.November, 1, 0, 0, 0, 0, time.UTC), r.Start)
	assert.Equal(t, time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC), r.End)
}

func TestResolve_MonthClampedToDecember(t *testing.T) {
	r := mustResolve(t, "M15")

	assert.Equal(t, time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC), r.Start)
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), r.End)
}

func TestResolve_NonNumericComponentDefaultsToZero(t *testing.T) {
	// Documented quirk: a numeric parse failure is not an error; the
	// component defaults to 0. W0 is the week before week 1 of the year.
	r, err := engine.Resolve("Wabc", wednesday)
	require.NoError(t, err)

	// Week 1 of 2024 starts December 31 2023, so week 0 starts a week prior.
	assert.Equal(t, time.Date(2023, time.December, 24, 0, 0, 0, 0, time.UTC), r.Start)
}

func TestResolve_MonthZeroNormalizesToPreviousDecember(t *testing.T) {
	r, err := engine.Resolve("M0/24", wednesday)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC), r.Start)
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), r.End)
}

func TestResolve_MalformedToken(t *testing.T) {
	for _, token := range []string{"", "X3", "3W", "month"} {
		_, err := engine.Resolve(token, wednesday)

		require.Error(t, err, "token %q should not resolve", token)
		assert.True(t, engine.IsParseError(err))

		var tokenErr *engine.PeriodTokenError
		assert.ErrorAs(t, err, &tokenErr)
		assert.Equal(t, token, tokenErr.Token)
	}
}

func TestResolve_RangeIsHalfOpen(t *testing.T) {
	r := mustResolve(t, "W3/24")

	assert.True(t, r.Contains(engine.DayOf(r.Start)))
	assert.False(t, r.Contains(engine.DayOf(r.End)))
	assert.Len(t, r.Days(), 7)
}
