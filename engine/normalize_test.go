package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/worktime/engine"
)

func eventOn(day time.Time, startHour, endHour int, c engine.Category) engine.WorkEvent {
	return engine.WorkEvent{
		Start:    day.Add(time.Duration(startHour) * time.Hour),
		End:      day.Add(time.Duration(endHour) * time.Hour),
		Category: c,
	}
}

var (
	monday  = time.Date(2024, time.March, 18, 0, 0, 0, 0, time.UTC)
	tuesday = time.Date(2024, time.March, 19, 0, 0, 0, 0, time.UTC)
)

func TestNormalize_CollapsesToDayGranularity(t *testing.T) {
	// GIVEN: a partial-day event
	// WHEN: normalizing
	// THEN: the fact covers the whole calendar day of the event's start

	facts := engine.Normalize([]engine.WorkEvent{
		eventOn(monday, 9, 17, engine.CategoryOffice),
	})

	require.Len(t, facts, 1)
	assert.Equal(t, engine.DayOf(monday), facts[0].Day)
	assert.Equal(t, engine.CategoryOffice, facts[0].Category)
}

func TestNormalize_MultiDayEventYieldsSingleFact(t *testing.T) {
	// An event spanning past midnight still collapses to its start day.
	ev := engine.WorkEvent{
		Start:    monday.Add(22 * time.Hour),
		End:      tuesday.Add(6 * time.Hour),
		Category: engine.CategoryOffice,
	}

	facts := engine.Normalize([]engine.WorkEvent{ev})

	require.Len(t, facts, 1)
	assert.Equal(t, engine.DayOf(monday), facts[0].Day)
}

func TestNormalize_OfficeReplacesHomeOffice(t *testing.T) {
	// GIVEN: the same day logged as both home office and office
	// WHEN: normalizing in either input order
	// THEN: the resulting fact is always office

	homeThenOffice := engine.Normalize([]engine.WorkEvent{
		eventOn(monday, 9, 12, engine.CategoryHomeOffice),
		eventOn(monday, 13, 17, engine.CategoryOffice),
	})
	officeThenHome := engine.Normalize([]engine.WorkEvent{
		eventOn(monday, 13, 17, engine.CategoryOffice),
		eventOn(monday, 9, 12, engine.CategoryHomeOffice),
	})

	require.Len(t, homeThenOffice, 1)
	require.Len(t, officeThenHome, 1)
	assert.Equal(t, engine.CategoryOffice, homeThenOffice[0].Category)
	assert.Equal(t, engine.CategoryOffice, officeThenHome[0].Category)
}

func TestNormalize_FirstSeenWinsForOtherPairs(t *testing.T) {
	facts := engine.Normalize([]engine.WorkEvent{
		eventOn(monday, 0, 24, engine.CategoryVacation),
		eventOn(monday, 9, 12, engine.CategorySick),
	})

	require.Len(t, facts, 1)
	assert.Equal(t, engine.CategoryVacation, facts[0].Category)
}

func TestNormalize_DistinctDaysOrderIrrelevant(t *testing.T) {
	// For events on distinct days the output fact set does not depend on
	// input order.
	a := eventOn(monday, 9, 17, engine.CategoryOffice)
	b := eventOn(tuesday, 9, 17, engine.CategoryHomeOffice)

	forward := engine.Normalize([]engine.WorkEvent{a, b})
	backward := engine.Normalize([]engine.WorkEvent{b, a})

	require.Len(t, forward, 2)
	require.Len(t, backward, 2)
	assert.ElementsMatch(t, forward, backward)
}

func TestNormalize_Idempotent(t *testing.T) {
	// Re-normalizing events built from the facts yields the same facts.
	events := []engine.WorkEvent{
		eventOn(monday, 9, 12, engine.CategoryHomeOffice),
		eventOn(monday, 13, 17, engine.CategoryOffice),
		eventOn(tuesday, 9, 17, engine.CategoryVacation),
	}

	facts := engine.Normalize(events)

	var collapsed []engine.WorkEvent
	for _, f := range facts {
		collapsed = append(collapsed, engine.WorkEvent{
			Start:    f.Day.Time,
			End:      f.Day.End(),
			Category: f.Category,
			Note:     f.Note,
		})
	}

	assert.Equal(t, facts, engine.Normalize(collapsed))
}

func TestNormalize_EmptyInput(t *testing.T) {
	assert.Empty(t, engine.Normalize(nil))
}
