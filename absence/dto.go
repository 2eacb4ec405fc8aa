package absence

import (
	"fmt"
	"time"
)

// =============================================================================
// WIRE TYPES - absence service v2 API
// =============================================================================
//
// These mirror the service's JSON shapes, quirks included. Conversion to
// engine types happens in service.go; nothing outside this package should
// depend on the wire format.

// Timestamp decodes the service's ISO-8601 timestamps, which arrive with or
// without fractional seconds depending on the endpoint.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("timestamp is not a JSON string: %s", s)
	}
	parsed, err := time.Parse(time.RFC3339Nano, s[1:len(s)-1])
	if err != nil {
		return fmt.Errorf("invalid timestamp %s: %w", s, err)
	}
	t.Time = parsed.UTC()
	return nil
}

// DateOnly encodes a day boundary the way the service expects in request
// bodies: yyyy-MM-dd, no time component.
type DateOnly struct {
	time.Time
}

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.UTC().Format("2006-01-02") + `"`), nil
}

// ListResponse is the paginated list envelope. Callers consume Data; the
// counters are reported for operator visibility only, pagination beyond one
// page is not performed here.
type ListResponse[T any] struct {
	Skip       int `json:"skip"`
	Limit      int `json:"limit"`
	Count      int `json:"count"`
	TotalCount int `json:"totalCount"`
	Data       []T `json:"data"`
}

type Absence struct {
	ID         string    `json:"_id"`
	Start      Timestamp `json:"start"`
	End        Timestamp `json:"end"`
	Created    Timestamp `json:"created"`
	Modified   Timestamp `json:"modified"`
	DaysCount  int       `json:"daysCount"`
	ReasonID   string    `json:"reasonId"`
	ApproverID string    `json:"approverId"`
	Commentary string    `json:"commentary"`
}

type User struct {
	ID           string `json:"_id"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	DepartmentID string `json:"departmentId"`
	ApproverID   string `json:"approverId"`
}

type Reason struct {
	ID               string `json:"_id"`
	Name             string `json:"name"`
	RequiresApproval bool   `json:"requiresApproval"`
}

type Department struct {
	ID      string `json:"_id"`
	Company string `json:"company"`
	Name    string `json:"name"`
}

// =============================================================================
// REQUEST BODIES
// =============================================================================

type ListRequest struct {
	Skip      int      `json:"skip"`
	Limit     int      `json:"limit"`
	Filter    *Filter  `json:"filter,omitempty"`
	Relations []string `json:"relations"`
}

// Filter narrows a list call. Note the swapped bounds in RangeFilter: a
// record overlaps the window when the record's END is at or after the window
// start and the record's START is at or before the window end.
type Filter struct {
	Start        map[string]string `json:"start,omitempty"`
	End          map[string]string `json:"end,omitempty"`
	AssignedToID string            `json:"assignedToId"`
}

// RangeFilter builds the overlap filter for one user's absences in a window.
func RangeFilter(start, end time.Time, assignedToID string) *Filter {
	return &Filter{
		End:          map[string]string{"$gte": start.UTC().Format(time.RFC3339)},
		Start:        map[string]string{"$lte": end.UTC().Format(time.RFC3339)},
		AssignedToID: assignedToID,
	}
}

type CreateRequest struct {
	AssignedToID string   `json:"assignedToId"`
	ApproverID   string   `json:"approverId,omitempty"`
	Start        DateOnly `json:"start"`
	End          DateOnly `json:"end"`
	ReasonID     string   `json:"reasonId"`
	Commentary   string   `json:"commentary,omitempty"`
}
