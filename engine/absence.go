package engine

import "time"

// =============================================================================
// REMOTE TYPES - Read-only views of absence-service state
// =============================================================================
//
// The core only ever reads existing remote records and proposes new ones.
// It never mutates or deletes anything on the remote side.

// User is a remote account. The credential id used for signing doubles as
// the requesting user's id.
type User struct {
	ID         string
	FirstName  string
	LastName   string
	Email      string
	ApproverID string
}

// Reason is a remote-service-defined category justifying an absence record.
type Reason struct {
	ID               string
	Name             string
	RequiresApproval bool
}

// AbsenceRecord is an existing remote absence, identified and owned by the
// remote service.
type AbsenceRecord struct {
	ID         string
	Start      time.Time
	End        time.Time
	ReasonID   string
	ApproverID string
	Note       string
}

// MissingAbsence is a locally computed proposal with no remote identity
// until submitted. It is either submitted or discarded, never persisted.
type MissingAbsence struct {
	Start    time.Time
	End      time.Time
	ReasonID string
	Note     string
}

// =============================================================================
// REASON LOOKUP - Category -> remote reason by exact name
// =============================================================================

// Remote reason names the engine resolves categories against. The remote
// reasons list is assumed to carry these verbatim; a missing entry is a
// fatal configuration error for the run.
const (
	ReasonNameHomeOffice   = "Homeoffice"
	ReasonNameVacation     = "Vacation"
	ReasonNameCompensatory = "Compensatory time"
	ReasonNameOffDuty      = "Off duty due to part-time work agreement"
)

// ReasonSet indexes remote reasons for exact-name lookup.
type ReasonSet struct {
	byID   map[string]Reason
	byName map[string]Reason
}

func NewReasonSet(reasons []Reason) ReasonSet {
	rs := ReasonSet{
		byID:   make(map[string]Reason, len(reasons)),
		byName: make(map[string]Reason, len(reasons)),
	}
	for _, r := range reasons {
		rs.byID[r.ID] = r
		rs.byName[r.Name] = r
	}
	return rs
}

// ByName resolves a reason by its exact remote name.
func (rs ReasonSet) ByName(name string) (Reason, error) {
	r, ok := rs.byName[name]
	if !ok {
		return Reason{}, &ReasonNotFoundError{Name: name}
	}
	return r, nil
}

// ByID resolves a reason by its remote id.
func (rs ReasonSet) ByID(id string) (Reason, bool) {
	r, ok := rs.byID[id]
	return r, ok
}

// reasonNameFor maps a work category to the remote reason name a proposal
// should carry, or "" for categories that never produce proposals (office
// presence needs no record; company events, meetings, holidays and sick days
// are accounted for elsewhere or intentionally not synced).
func reasonNameFor(c Category) string {
	switch c {
	case CategoryHomeOffice:
		return ReasonNameHomeOffice
	case CategoryVacation:
		return ReasonNameVacation
	case CategoryCompensatory:
		return ReasonNameCompensatory
	}
	return ""
}
