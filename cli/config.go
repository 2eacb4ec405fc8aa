/*
config.go - Settings inspection and mutation

PURPOSE:
  Implements "worktime config" in three shapes:
    worktime config               List known keys
    worktime config <key>         Print the stored value
    worktime config <key> <value> Validate and store a value

KEYS:
  absenceIOCreds     "<id>:<key>" credential pair for absence.io
  workHoursPerWeek   Contractual weekly hours, e.g. 38.5
  removeLunchBreak   true/false, deduct lunch from long office days
  workCalendar       ICS URL or file path of the work calendar
*/
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/warp/worktime/config"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config [key] [value]",
		Short: "List, read or write worktime settings",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			switch len(args) {
			case 0:
				fmt.Fprintln(out, "Available configuration keys:")
				for _, key := range config.Keys() {
					fmt.Fprintf(out, "  %s\n", key)
				}
				return nil
			case 1:
				value, ok, err := store.Get(args[0])
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintf(out, "No value set for key '%s'.\n", args[0])
					return nil
				}
				fmt.Fprintf(out, "%s: %s\n", args[0], value)
				return nil
			default:
				if err := store.Set(args[0], args[1]); err != nil {
					return err
				}
				fmt.Fprintf(out, "%s set to '%s'.\n", args[0], args[1])
				return nil
			}
		},
	}
}
