/*
main.go - worktime entry point

PURPOSE:
  Runs the worktime CLI. All behavior lives in the cli package; this
  binary only maps command failure to a non-zero exit code.

EXIT CODES:
  0  Command completed
  1  Any failure (bad period token, unreachable calendar or tracker,
     misconfiguration)
*/
package main

import (
	"fmt"
	"os"

	"github.com/warp/worktime/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
