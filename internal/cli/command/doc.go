// Package command defines the reefdb-cli commands.
//
// It uses urfave/cli/v2 for parsing and supports both single-command mode
// and an interactive session:
//
//   - root.go: root command, global flags, logger and metrics setup
//   - connect.go: open, switch, and close server connections
//   - use.go: select the database for subsequent queries
//   - query.go: run a query on the current connection
//   - status.go: list open connections
//   - configcmd.go: inspect and edit the CLI config file
//   - replcmd.go: interactive mode
//
// Commands parse flags, drive the connection manager, and hand results to
// the output formatters.
package command
