/*
gap.go - The missing-absence detector

PURPOSE:
  Cross-references normalized work facts against existing remote absences
  and derives the minimal ordered set of absence records that would make the
  two consistent. This is the heart of the system; everything else feeds it.

ALGORITHM:
  Two passes over the half-open [range.Start, range.End):

  Pass 1 - per-fact reconciliation. Every in-range fact whose day is not
  already covered by an exact-day remote absence maps to a proposal via its
  category's reason name. Exact match means the remote record spans
  precisely [day, day+1); partial overlap does not suppress a proposal.

  Pass 2 - off-duty gap fill. Every in-range weekday with neither a fact nor
  an existing off-duty absence gets a single-day off-duty proposal. This
  captures days the operator simply forgot to log.

  Proposals from both passes are merged and sorted ascending by start day;
  the sort is stable, so pass-1 entries precede pass-2 entries on equal days.

IDEMPOTENCY:
  Running the detector against remote state that already reflects its output
  yields an empty list. An empty result is a valid outcome, not an error.
*/
package engine

import (
	"sort"
)

// DetectMissing computes the ordered list of absence records missing from
// the remote service for the given range.
//
// A missing reason lookup for a category that needs one returns a
// configuration error; the remote reasons list is assumed complete.
func DetectMissing(r DateRange, facts []WorkFact, absences []AbsenceRecord, reasons ReasonSet) ([]MissingAbsence, error) {
	var missing []MissingAbsence

	// Pass 1: per-fact reconciliation.
	for _, fact := range facts {
		if !r.Contains(fact.Day) {
			continue
		}
		if hasExactAbsence(absences, fact.Day) {
			continue
		}

		name := reasonNameFor(fact.Category)
		if name == "" {
			continue
		}

		reason, err := reasons.ByName(name)
		if err != nil {
			return nil, err
		}

		missing = append(missing, MissingAbsence{
			Start:    fact.Day.Time,
			End:      fact.Day.End(),
			ReasonID: reason.ID,
			Note:     fact.Note,
		})
	}

	// Pass 2: off-duty gap fill for weekdays with no fact at all. The
	// off-duty reason is resolved on first need, so a range without gap days
	// never requires it.
	var offDuty Reason
	offDutyResolved := false

	for _, day := range r.Days() {
		if day.IsWeekend() {
			continue
		}
		if _, ok := FactFor(facts, day); ok {
			continue
		}

		if !offDutyResolved {
			reason, err := reasons.ByName(ReasonNameOffDuty)
			if err != nil {
				return nil, err
			}
			offDuty, offDutyResolved = reason, true
		}

		if hasOffDutyAbsence(absences, day, offDuty.ID) {
			continue
		}

		missing = append(missing, MissingAbsence{
			Start:    day.Time,
			End:      day.End(),
			ReasonID: offDuty.ID,
		})
	}

	// Stable: pass-1 proposals come before pass-2 ones on equal start days.
	sort.SliceStable(missing, func(i, j int) bool {
		return missing[i].Start.Before(missing[j].Start)
	})

	return missing, nil
}

// hasExactAbsence reports whether a remote absence spans exactly [day, day+1).
// Differing end boundaries do not count; exact match is required.
func hasExactAbsence(absences []AbsenceRecord, day Day) bool {
	for _, a := range absences {
		if a.Start.Equal(day.Time) && a.End.Equal(day.End()) {
			return true
		}
	}
	return false
}

// hasOffDutyAbsence reports whether an off-duty absence already starts on
// the given day.
func hasOffDutyAbsence(absences []AbsenceRecord, day Day, offDutyReasonID string) bool {
	for _, a := range absences {
		if a.ReasonID == offDutyReasonID && DayOf(a.Start).Equal(day) {
			return true
		}
	}
	return false
}
