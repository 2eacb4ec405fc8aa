package engine

import "time"

// =============================================================================
// WORK CATEGORY - Closed enumeration of calendar event kinds
// =============================================================================

// Category classifies a calendar event. The set is closed: the calendar
// source drops anything it cannot map to one of these.
type Category string

const (
	CategoryOffice       Category = "office"
	CategoryHomeOffice   Category = "home_office"
	CategoryMeeting      Category = "meeting"
	CategoryCompanyEvent Category = "company_event"
	CategoryVacation     Category = "vacation"
	CategoryHoliday      Category = "holiday"
	CategoryCompensatory Category = "compensatory"
	CategorySick         Category = "sick"
)

// IsWork reports whether time logged under this category counts as time
// actually worked.
func (c Category) IsWork() bool {
	return c == CategoryOffice || c == CategoryHomeOffice || c == CategoryMeeting
}

// ReducesTarget reports whether the presence of this category on a day
// excuses the day from the expected-work total. The day is removed from the
// target, not counted as a shortfall.
func (c Category) ReducesTarget() bool {
	switch c {
	case CategoryCompanyEvent, CategoryVacation, CategoryHoliday, CategorySick:
		return true
	}
	return false
}

// =============================================================================
// WORK EVENT - Raw calendar entry
// =============================================================================

// WorkEvent is a raw event as read from the calendar source. It may span
// partial days and may overlap other events in time.
type WorkEvent struct {
	Start    time.Time
	End      time.Time
	Category Category
	Note     string
}

func (e WorkEvent) Duration() time.Duration { return e.End.Sub(e.Start) }

// =============================================================================
// WORK FACT - Day-granular, deduplicated event
// =============================================================================

// WorkFact records what category of work or absence occurred on a given day.
// After normalization at most one fact exists per day.
type WorkFact struct {
	Day      Day
	Category Category
	Note     string
}

// =============================================================================
// NORMALIZATION - Collapse raw events to per-day facts
// =============================================================================

// Normalize collapses every event to calendar-day granularity and merges
// same-day entries into a single fact per day.
//
// Merge rule, applied in input order:
//   - no fact for the day yet: insert one
//   - incoming office over existing home_office: replace (a partial
//     in-office visit on a home-office day reports as office)
//   - any other pair: drop the incoming event, first seen wins
func Normalize(events []WorkEvent) []WorkFact {
	var facts []WorkFact

	for _, ev := range events {
		day := DayOf(ev.Start)

		idx := -1
		for i, f := range facts {
			if f.Day.Equal(day) {
				idx = i
				break
			}
		}

		if idx < 0 {
			facts = append(facts, WorkFact{Day: day, Category: ev.Category, Note: ev.Note})
			continue
		}

		if ev.Category == CategoryOffice && facts[idx].Category == CategoryHomeOffice {
			facts[idx] = WorkFact{Day: day, Category: ev.Category, Note: ev.Note}
		}
	}

	return facts
}

// FactFor returns the fact covering the given day, if any.
func FactFor(facts []WorkFact, day Day) (WorkFact, bool) {
	for _, f := range facts {
		if f.Day.Equal(day) {
			return f, true
		}
	}
	return WorkFact{}, false
}
