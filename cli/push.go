/*
push.go - Create missing absences remotely

PURPOSE:
  Implements "worktime push": derive the absences each period's work
  calendar implies, diff them against the remote tracker, list what is
  missing, and create the confirmed proposals.

PRECONDITIONS:
  Requires both a configured work calendar and absence.io credentials
  (absenceIOCreds or WORKTIME_ABSENCE_CREDS).

EXAMPLES:
  worktime push W
  worktime push W3/24 W4/24
*/
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/warp/worktime/absence"
	"github.com/warp/worktime/calendar"
	"github.com/warp/worktime/reconcile"
)

func newPushCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "push <period>...",
		Short: "Create absences the work calendar implies but the tracker is missing",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings()
			if err != nil {
				return err
			}
			if settings.Calendar == "" {
				return fmt.Errorf("no work calendar configured, run: worktime config workCalendar <url-or-path>")
			}
			if !settings.HasCredentials() {
				return fmt.Errorf("no absence.io credentials configured, run: worktime config absenceIOCreds <id>:<key>")
			}

			client := absence.NewClient(settings.CredentialsID, settings.CredentialsKey)
			service := absence.NewService(client)

			driver := &reconcile.Driver{
				Calendar: calendar.NewICS(settings.Calendar),
				Absence:  service,
				Settings: settings,
				UserID:   service.UserID(),
				Out:      cmd.OutOrStdout(),
				Confirm:  confirmOnStdin,
			}
			return driver.Push(cmd.Context(), args)
		},
	}
}
