/*
Package reconcile orchestrates one synchronization run.

PURPOSE:
  The driver wires the calendar source, the remote absence service, and the
  engine together: fetch -> normalize -> detect -> confirm -> create. It owns
  all operator-facing output; the engine stays pure and the collaborators
  stay dumb.

EXECUTION MODEL:
  Single logical thread. Remote calls are sequential and synchronous; each
  period token is processed as an independent unit against a freshly fetched
  snapshot of remote absences. There is no retry and no rollback: proposal
  creation is a best-effort batch, and a failure on one proposal is reported
  and does not stop the rest.
*/
package reconcile

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/warp/worktime/config"
	"github.com/warp/worktime/engine"
)

// CalendarSource supplies raw work events overlapping [start, end).
type CalendarSource interface {
	Events(ctx context.Context, start, end time.Time) ([]engine.WorkEvent, error)
}

// AbsenceService is the remote absence-tracking collaborator. Users and
// reasons are global; absences are fetched per range and user.
type AbsenceService interface {
	Users(ctx context.Context) ([]engine.User, error)
	Reasons(ctx context.Context) ([]engine.Reason, error)
	Absences(ctx context.Context, start, end time.Time, assignedToID string) ([]engine.AbsenceRecord, error)
	Create(ctx context.Context, proposal engine.MissingAbsence, assignedToID, approverID string) (engine.AbsenceRecord, error)
}

// Driver runs calculate and push invocations.
type Driver struct {
	Calendar CalendarSource
	Absence  AbsenceService
	Settings config.Settings

	// UserID is the operator's remote identity (the Hawk credential id).
	UserID string

	// Out receives all operator-facing output.
	Out io.Writer

	// Confirm asks the operator before creating proposals. A nil Confirm
	// never creates anything.
	Confirm func(prompt string) bool

	// Now supplies the reference instant for period resolution. Defaults to
	// time.Now.
	Now func() time.Time
}

func (d *Driver) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// Calculate reports target vs. actual hours for each period token.
func (d *Driver) Calculate(ctx context.Context, tokens []string) error {
	for _, token := range tokens {
		r, err := engine.Resolve(token, d.now())
		if err != nil {
			return err
		}

		events, err := d.Calendar.Events(ctx, r.Start, r.End)
		if err != nil {
			return fmt.Errorf("fetching calendar events for '%s': %w", token, err)
		}

		facts := engine.Normalize(events)
		target := engine.TargetHours(r, facts, d.Settings.HoursPerWeek)
		actual := engine.ActualHours(events, d.Settings.RemoveLunchBreak)

		fmt.Fprintf(d.Out, "For '%s':\n", token)
		fmt.Fprintf(d.Out, "Should Work: %s hours\n", target.Round(2))
		fmt.Fprintf(d.Out, "Did Work: %s hours\n\n", actual.Round(2))
	}
	return nil
}

// Push reconciles each period token against the remote service: missing
// absences are listed, and created after explicit confirmation.
func (d *Driver) Push(ctx context.Context, tokens []string) error {
	me, approver, err := d.resolveIdentities(ctx)
	if err != nil {
		return err
	}

	remoteReasons, err := d.Absence.Reasons(ctx)
	if err != nil {
		return fmt.Errorf("fetching absence reasons: %w", err)
	}
	reasons := engine.NewReasonSet(remoteReasons)

	for _, token := range tokens {
		if err := d.pushPeriod(ctx, token, me, approver, reasons); err != nil {
			return err
		}
	}
	return nil
}

// resolveIdentities finds the operator and their approver in the remote
// users list. Both must exist; their absence is a configuration error.
func (d *Driver) resolveIdentities(ctx context.Context) (me, approver engine.User, err error) {
	users, err := d.Absence.Users(ctx)
	if err != nil {
		return engine.User{}, engine.User{}, fmt.Errorf("fetching users: %w", err)
	}

	found := false
	for _, u := range users {
		if u.ID == d.UserID {
			me, found = u, true
			break
		}
	}
	if !found {
		return engine.User{}, engine.User{}, &engine.UserNotFoundError{ID: d.UserID, Role: "me"}
	}

	found = false
	for _, u := range users {
		if u.ID == me.ApproverID {
			approver, found = u, true
			break
		}
	}
	if !found {
		return engine.User{}, engine.User{}, &engine.UserNotFoundError{ID: me.ApproverID, Role: "approver"}
	}

	return me, approver, nil
}

func (d *Driver) pushPeriod(ctx context.Context, token string, me, approver engine.User, reasons engine.ReasonSet) error {
	r, err := engine.Resolve(token, d.now())
	if err != nil {
		return err
	}

	events, err := d.Calendar.Events(ctx, r.Start, r.End)
	if err != nil {
		return fmt.Errorf("fetching calendar events for '%s': %w", token, err)
	}
	facts := engine.Normalize(events)

	absences, err := d.Absence.Absences(ctx, r.Start, r.End, me.ID)
	if err != nil {
		return fmt.Errorf("fetching absences for '%s': %w", token, err)
	}

	missing, err := engine.DetectMissing(r, facts, absences, reasons)
	if err != nil {
		return err
	}

	if len(missing) == 0 {
		fmt.Fprintf(d.Out, "No missing absences for '%s'.\n", token)
		return nil
	}

	fmt.Fprintf(d.Out, "Missing absences for '%s':\n", token)
	for i, m := range missing {
		fmt.Fprintf(d.Out, "%d. Day: %s, Reason: %s\n",
			i+1, m.Start.Format("Jan 2, 2006"), d.reasonName(reasons, m.ReasonID))
	}

	if d.Confirm == nil || !d.Confirm("Do you want to create these absences? (y/N)") {
		fmt.Fprintf(d.Out, "Aborted creating missing absences for '%s'.\n", token)
		return nil
	}

	created := 0
	for _, m := range missing {
		approverID := ""
		if reason, ok := reasons.ByID(m.ReasonID); ok && reason.RequiresApproval {
			approverID = approver.ID
		}

		if _, err := d.Absence.Create(ctx, m, me.ID, approverID); err != nil {
			// Best-effort batch: report and keep going.
			fmt.Fprintf(d.Out, "Failed to create absence for %s: %v\n",
				m.Start.Format("Jan 2, 2006"), err)
			logrus.WithFields(logrus.Fields{"day": m.Start.Format("2006-01-02"), "reason_id": m.ReasonID}).
				WithError(err).Warn("absence creation failed")
			continue
		}
		created++
	}

	fmt.Fprintf(d.Out, "Created %d of %d missing absences for '%s'.\n", created, len(missing), token)
	return nil
}

func (d *Driver) reasonName(reasons engine.ReasonSet, id string) string {
	if r, ok := reasons.ByID(id); ok {
		return r.Name
	}
	return id
}
