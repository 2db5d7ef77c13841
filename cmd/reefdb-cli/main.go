// Package main provides the entry point for reefdb-cli.
//
// reefdb-cli is the command-line client for ReefDB, supporting both
// single-command mode and an interactive session.
package main

import (
	"fmt"
	"os"

	"github.com/yndnr/reefdb-go/internal/cli/command"
)

func main() {
	app := command.App()

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
