package command

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"
)

// QueryCommand returns the query command.
func QueryCommand() *cli.Command {
	return &cli.Command{
		Name:      "query",
		Aliases:   []string{"q"},
		Usage:     "Run a query on the current connection",
		ArgsUsage: "QUERY",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "no-spinner",
				Usage: "Disable the progress spinner",
			},
		},
		Action: queryAction,
	}
}

func queryAction(c *cli.Context) error {
	raw := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(raw) == "" {
		return fmt.Errorf("query required")
	}

	s, err := currentSession(c)
	if err != nil {
		return err
	}
	return s.query(c.Context, raw, !c.Bool("no-spinner"))
}
