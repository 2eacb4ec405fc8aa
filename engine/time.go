/*
Package engine contains the reconciliation core: period resolution,
work-fact normalization, target/actual hour calculation, and gap detection.

PURPOSE:
  Everything in this package is pure computation over values. No I/O, no
  clocks (callers pass the reference instant), no remote calls. Collaborators
  (calendar source, absence service) live in their own packages and convert
  to these types at the boundary.

REFERENCE CALENDAR:
  All day-boundary and range arithmetic is pinned to UTC, Gregorian, weeks
  starting Sunday. Collaborators convert at the boundary. Mixing local and
  UTC calendars near midnight is exactly the class of off-by-one-day bug this
  rule exists to prevent.

KEY CONCEPTS IN THIS FILE (time.go):
  - Day: a calendar day with no time component, pinned to UTC midnight
  - DateRange: a half-open [Start, End) interval of instants in UTC

SEE ALSO:
  - period.go: token -> DateRange resolution
  - event.go: raw events -> per-day work facts
  - gap.go: the missing-absence detector
*/
package engine

import (
	"time"
)

// =============================================================================
// DAY - Calendar day at UTC midnight
// =============================================================================

// Day is a date with no time component, pinned to UTC.
type Day struct {
	Time time.Time
}

// NewDay builds a Day from calendar components.
func NewDay(year int, month time.Month, day int) Day {
	return Day{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DayOf floors an instant to the start of its UTC day.
func DayOf(t time.Time) Day {
	u := t.UTC()
	return NewDay(u.Year(), u.Month(), u.Day())
}

// Comparison
func (d Day) Before(other Day) bool { return d.Time.Before(other.Time) }
func (d Day) Equal(other Day) bool  { return d.Time.Equal(other.Time) }
func (d Day) After(other Day) bool  { return d.Time.After(other.Time) }

// Arithmetic
func (d Day) AddDays(n int) Day { return Day{Time: d.Time.AddDate(0, 0, n)} }
func (d Day) Next() Day         { return d.AddDays(1) }

// End returns the exclusive end instant of the day (start of the next day).
func (d Day) End() time.Time { return d.Next().Time }

// Properties
func (d Day) Weekday() time.Weekday { return d.Time.Weekday() }
func (d Day) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
func (d Day) IsWorkday() bool { return !d.IsWeekend() }
func (d Day) IsZero() bool    { return d.Time.IsZero() }

func (d Day) String() string { return d.Time.Format("2006-01-02") }

// =============================================================================
// DATE RANGE - Half-open [Start, End) interval in UTC
// =============================================================================

// DateRange is a half-open interval [Start, End) of instants in UTC.
// Start <= End always holds for ranges produced by Resolve.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether the given day falls inside the half-open range.
// A day lying exactly on End is excluded.
func (r DateRange) Contains(d Day) bool {
	return !d.Time.Before(r.Start) && d.Time.Before(r.End)
}

// Days returns every calendar day covered by the range, in order.
// The walk starts at the day containing Start and stops before End.
func (r DateRange) Days() []Day {
	var days []Day
	for d := DayOf(r.Start); d.Time.Before(r.End); d = d.Next() {
		days = append(days, d)
	}
	return days
}

func (r DateRange) String() string {
	return "[" + r.Start.Format("2006-01-02") + ", " + r.End.Format("2006-01-02") + ")"
}
