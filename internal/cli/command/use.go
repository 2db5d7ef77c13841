package command

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

// UseCommand returns the use command for selecting a database.
func UseCommand() *cli.Command {
	return &cli.Command{
		Name:      "use",
		Usage:     "Select the database for subsequent queries",
		ArgsUsage: "DATABASE",
		Action:    useAction,
	}
}

func useAction(c *cli.Context) error {
	db := c.Args().First()
	if db == "" {
		return fmt.Errorf("database name required")
	}

	s, err := currentSession(c)
	if err != nil {
		return err
	}
	return s.use(c.Context, db)
}
