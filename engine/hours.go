package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// TARGET / ACTUAL HOUR CALCULATOR
// =============================================================================
//
// Both figures are reported side by side and never combined into a single
// derived number by the engine: "should work" comes from the contract,
// "did work" from the raw calendar, and how to read the difference is the
// operator's call.

var (
	five       = decimal.NewFromInt(5)
	sixHours   = 6 * time.Hour
	lunchBreak = decimal.NewFromFloat(0.5)
)

// TargetHours computes the expected contracted hours for the range.
//
// Weekends contribute nothing. A weekday contributes hoursPerWeek/5 unless a
// fact with a target-reducing category (vacation, sick, holiday, company
// event) covers it, in which case the day is excused from the target rather
// than counted as a shortfall.
func TargetHours(r DateRange, facts []WorkFact, hoursPerWeek decimal.Decimal) decimal.Decimal {
	perDay := hoursPerWeek.Div(five)
	total := decimal.Zero

	for _, day := range r.Days() {
		if day.IsWeekend() {
			continue
		}
		if f, ok := FactFor(facts, day); ok && f.Category.ReducesTarget() {
			continue
		}
		total = total.Add(perDay)
	}

	return total
}

// ActualHours sums the duration of every work event, using the original
// pre-normalization instants, not the day-collapsed facts.
//
// With removeLunchBreak enabled, each office or home-office event longer
// than six hours loses half an hour. The deduction is per qualifying event,
// not per day.
func ActualHours(events []WorkEvent, removeLunchBreak bool) decimal.Decimal {
	total := decimal.Zero

	for _, ev := range events {
		if !ev.Category.IsWork() {
			continue
		}

		total = total.Add(decimal.NewFromFloat(ev.Duration().Hours()))

		if removeLunchBreak && deductsLunch(ev) {
			total = total.Sub(lunchBreak)
		}
	}

	return total
}

func deductsLunch(ev WorkEvent) bool {
	if ev.Category != CategoryOffice && ev.Category != CategoryHomeOffice {
		return false
	}
	return ev.Duration() > sixHours
}
