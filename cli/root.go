/*
root.go - Command-line entry surface

PURPOSE:
  Defines the worktime root command and the shared setup every
  subcommand goes through: settings store location, settings load,
  and log level.

COMMANDS:
  worktime calculate <period>...   Compare target and actual hours
  worktime push <period>...        Create missing absences remotely
  worktime config [key] [value]    Inspect and change settings

GLOBAL FLAGS:
  --db       Settings database path (default: user config dir)
  --verbose  Enable debug logging

BINARY-NAME SHORTCUTS:
  Installing the binary (or a symlink to it) as wtc or wtp invokes
  calculate or push directly: "wtc W" is "worktime calculate W".

ENVIRONMENT:
  WORKTIME_DB             Overrides the settings database path
  WORKTIME_ABSENCE_CREDS  Overrides stored credentials (id:key)
  WORKTIME_CALENDAR       Overrides the stored calendar location

SEE ALSO:
  - reconcile/driver.go: Command orchestration
  - config/config.go: Settings store and validation
*/
package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/warp/worktime/config"
)

var (
	dbPath  string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "worktime",
	Short: "Reconcile your work calendar with the absence tracker",
	Long: `worktime compares the hours your work calendar says you worked
against your contractual target, and pushes absences your calendar
implies but the remote tracker is missing.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
	},
}

// shortcuts maps alternate binary names to the subcommand they stand for.
var shortcuts = map[string]string{
	"wtc": "calculate",
	"wtp": "push",
}

// argsForInvocation rewrites the argument list when the tool was invoked
// under a shortcut name, prepending the implied subcommand.
func argsForInvocation(binary string, args []string) []string {
	if sub, ok := shortcuts[binary]; ok {
		return append([]string{sub}, args...)
	}
	return args
}

// Execute runs the root command and reports the terminal error, if any.
func Execute() error {
	rootCmd.SetArgs(argsForInvocation(filepath.Base(os.Args[0]), os.Args[1:]))
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "settings database path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(newCalculateCmd())
	rootCmd.AddCommand(newPushCmd())
	rootCmd.AddCommand(newConfigCmd())
}

// =============================================================================
// SHARED SETUP
// =============================================================================

// storePath resolves the settings database location. Flag beats
// environment beats default.
func storePath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	if env := os.Getenv("WORKTIME_DB"); env != "" {
		return env, nil
	}
	return config.DefaultPath()
}

func openStore() (*config.Store, error) {
	path, err := storePath()
	if err != nil {
		return nil, fmt.Errorf("resolving settings path: %w", err)
	}
	return config.Open(path)
}

// loadSettings opens the store, loads the effective settings and closes
// the store again. Commands that only read settings use this.
func loadSettings() (config.Settings, error) {
	store, err := openStore()
	if err != nil {
		return config.Settings{}, err
	}
	defer store.Close()
	return store.Load()
}

// confirmOnStdin prompts on stdout and accepts y or Y as consent.
func confirmOnStdin(prompt string) bool {
	fmt.Print(prompt + " ")
	answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(answer), "y")
}
