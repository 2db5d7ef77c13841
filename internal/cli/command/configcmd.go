package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/reefdb-go/internal/cli/config"
)

// ConfigCommand returns the config command group.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Inspect and edit the CLI configuration",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the loaded configuration",
				Action: configShowAction,
			},
			{
				Name:   "path",
				Usage:  "Print the config file path",
				Action: configPathAction,
			},
			{
				Name:      "set",
				Usage:     "Set a default (default.address, default.database, default.output)",
				ArgsUsage: "KEY VALUE",
				Action:    configSetAction,
			},
		},
	}
}

func configShowAction(c *cli.Context) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	return s.configShow()
}

func configPathAction(c *cli.Context) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}

	path := s.cfgPath
	if path == "" {
		p, err := config.DefaultConfigPath()
		if err != nil {
			return err
		}
		path = p
	}
	fmt.Fprintln(s.out, path)
	return nil
}

func configSetAction(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("usage: config set KEY VALUE")
	}

	s, err := currentSession(c)
	if err != nil {
		return err
	}
	return s.configSet(c.Args().Get(0), c.Args().Get(1))
}
