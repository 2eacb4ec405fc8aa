/*
calculate.go - Target versus actual hours

PURPOSE:
  Implements "worktime calculate": for each period argument, print the
  hours the contract says should be worked and the hours the work
  calendar says were worked.

EXAMPLES:
  worktime calculate W
  worktime calculate W3/24 M11/24
*/
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/warp/worktime/calendar"
	"github.com/warp/worktime/reconcile"
)

func newCalculateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "calculate <period>...",
		Short: "Compare target and actual working hours per period",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings()
			if err != nil {
				return err
			}
			if settings.Calendar == "" {
				return fmt.Errorf("no work calendar configured, run: worktime config workCalendar <url-or-path>")
			}

			driver := &reconcile.Driver{
				Calendar: calendar.NewICS(settings.Calendar),
				Settings: settings,
				Out:      cmd.OutOrStdout(),
			}
			return driver.Calculate(cmd.Context(), args)
		},
	}
}
