package engine

import (
	"strconv"
	"strings"
	"time"
)

// =============================================================================
// PERIOD RESOLVER - Compact token -> concrete half-open date range
// =============================================================================
//
// Grammar:
//   W            current week
//   W<n>         week n of the current year
//   W<n>/<yy>    week n of a year (2-digit years map to the current century)
//   M, M<n>, M<n>/<yy>   analogous for calendar months
//
// Week ranges are [startOfWeek, startOfWeek+7d), weeks starting Sunday,
// week 1 being the week that contains January 1. Month ranges are
// [firstOfMonth, firstOfMonth+1mo). Numbers above the year's maximum clamp
// to that maximum.

// Resolve maps a period token to a date range, relative to the reference
// instant now (typically time.Now). The reference instant supplies the
// current week/month/year and the century for 2-digit years.
//
// Quirk, kept deliberately: a non-numeric week/month/year component parses
// as 0 and is NOT an error. W0 is the week before week 1; M0 normalizes to
// December of the previous year. Only tokens without a leading W or M are
// rejected.
func Resolve(token string, now time.Time) (DateRange, error) {
	now = now.UTC()

	switch {
	case token == "W":
		start := startOfWeek(DayOf(now))
		return DateRange{Start: start.Time, End: start.AddDays(7).Time}, nil

	case strings.HasPrefix(token, "W"):
		numPart, yearPart := splitToken(token)
		week := atoiOrZero(numPart)
		year := resolveYear(now, yearPart)
		return weekRange(week, year), nil

	case token == "M":
		start := NewDay(now.Year(), now.Month(), 1)
		return DateRange{Start: start.Time, End: start.Time.AddDate(0, 1, 0)}, nil

	case strings.HasPrefix(token, "M"):
		numPart, yearPart := splitToken(token)
		month := atoiOrZero(numPart)
		year := resolveYear(now, yearPart)
		return monthRange(month, year), nil

	default:
		return DateRange{}, &PeriodTokenError{Token: token}
	}
}

// splitToken splits "W3/24" into "3" and "24" (yearPart nil when absent).
func splitToken(token string) (numPart string, yearPart *string) {
	parts := strings.SplitN(token[1:], "/", 2)
	numPart = parts[0]
	if len(parts) > 1 {
		yearPart = &parts[1]
	}
	return numPart, yearPart
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// resolveYear maps an optional 2- or 4-digit year component onto a concrete
// year. 2-digit values land in the reference instant's century.
func resolveYear(now time.Time, yearPart *string) int {
	if yearPart == nil {
		return now.Year()
	}
	year := atoiOrZero(*yearPart)
	if year < 100 {
		current := now.Year()
		return current - current%100 + year
	}
	return year
}

// startOfWeek floors a day to the preceding (or same) Sunday.
func startOfWeek(d Day) Day {
	return d.AddDays(-int(d.Weekday()))
}

// weeksInYear returns the number of week slots in a year under the
// Sunday-start, week-1-contains-Jan-1 numbering. Always 53 or 54.
func weeksInYear(year int) int {
	w1 := startOfWeek(NewDay(year, time.January, 1))
	dec31 := NewDay(year, time.December, 31)
	return int(dec31.Time.Sub(w1.Time).Hours()/24)/7 + 1
}

func weekRange(week, year int) DateRange {
	if max := weeksInYear(year); week > max {
		week = max
	}
	start := startOfWeek(NewDay(year, time.January, 1)).AddDays((week - 1) * 7)
	return DateRange{Start: start.Time, End: start.AddDays(7).Time}
}

func monthRange(month, year int) DateRange {
	if month > 12 {
		month = 12
	}
	// time.Date normalizes out-of-range months; month 0 is December of the
	// previous year, preserving the parse-failure quirk above.
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return DateRange{Start: start, End: start.AddDate(0, 1, 0)}
}
