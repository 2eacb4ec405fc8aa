package absence

import (
	"context"
	"time"

	"github.com/warp/worktime/engine"
)

// Service adapts the wire-level Client to the engine's remote types. It is
// the concrete implementation of the driver's AbsenceService collaborator.
type Service struct {
	client *Client
}

func NewService(client *Client) *Service {
	return &Service{client: client}
}

// UserID returns the requesting user's remote identity.
func (s *Service) UserID() string { return s.client.UserID() }

func (s *Service) Users(ctx context.Context) ([]engine.User, error) {
	resp, err := s.client.Users(ctx, ListRequest{Limit: defaultPageLimit, Relations: []string{}})
	if err != nil {
		return nil, err
	}

	users := make([]engine.User, 0, len(resp.Data))
	for _, u := range resp.Data {
		users = append(users, engine.User{
			ID:         u.ID,
			FirstName:  u.FirstName,
			LastName:   u.LastName,
			Email:      u.Email,
			ApproverID: u.ApproverID,
		})
	}
	return users, nil
}

func (s *Service) Reasons(ctx context.Context) ([]engine.Reason, error) {
	resp, err := s.client.Reasons(ctx, ListRequest{Limit: defaultPageLimit, Relations: []string{}})
	if err != nil {
		return nil, err
	}

	reasons := make([]engine.Reason, 0, len(resp.Data))
	for _, r := range resp.Data {
		reasons = append(reasons, engine.Reason{
			ID:               r.ID,
			Name:             r.Name,
			RequiresApproval: r.RequiresApproval,
		})
	}
	return reasons, nil
}

func (s *Service) Absences(ctx context.Context, start, end time.Time, assignedToID string) ([]engine.AbsenceRecord, error) {
	resp, err := s.client.Absences(ctx, ListRequest{
		Limit:     defaultPageLimit,
		Filter:    RangeFilter(start, end, assignedToID),
		Relations: []string{},
	})
	if err != nil {
		return nil, err
	}

	records := make([]engine.AbsenceRecord, 0, len(resp.Data))
	for _, a := range resp.Data {
		records = append(records, engine.AbsenceRecord{
			ID:         a.ID,
			Start:      a.Start.Time,
			End:        a.End.Time,
			ReasonID:   a.ReasonID,
			ApproverID: a.ApproverID,
			Note:       a.Commentary,
		})
	}
	return records, nil
}

func (s *Service) Create(ctx context.Context, proposal engine.MissingAbsence, assignedToID, approverID string) (engine.AbsenceRecord, error) {
	created, err := s.client.CreateAbsence(ctx, CreateRequest{
		AssignedToID: assignedToID,
		ApproverID:   approverID,
		Start:        DateOnly{proposal.Start},
		End:          DateOnly{proposal.End},
		ReasonID:     proposal.ReasonID,
		Commentary:   proposal.Note,
	})
	if err != nil {
		return engine.AbsenceRecord{}, err
	}

	return engine.AbsenceRecord{
		ID:         created.ID,
		Start:      created.Start.Time,
		End:        created.End.Time,
		ReasonID:   created.ReasonID,
		ApproverID: created.ApproverID,
		Note:       created.Commentary,
	}, nil
}
