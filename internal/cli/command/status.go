package command

import (
	"github.com/urfave/cli/v2"
)

// StatusCommand returns the status command.
func StatusCommand() *cli.Command {
	return &cli.Command{
		Name:   "status",
		Usage:  "List open connections",
		Action: statusAction,
	}
}

func statusAction(c *cli.Context) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	return s.status()
}
