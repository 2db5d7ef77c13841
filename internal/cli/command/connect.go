package command

import (
	"github.com/urfave/cli/v2"
)

// ConnectCommand returns the connect command.
func ConnectCommand() *cli.Command {
	return &cli.Command{
		Name:      "connect",
		Usage:     "Connect to a ReefDB server",
		ArgsUsage: "[ADDRESS | NAME]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "name",
				Aliases: []string{"n"},
				Usage:   "Name for this connection",
			},
			&cli.BoolFlag{
				Name:  "save",
				Usage: "Save this connection to the config file",
			},
		},
		Action: connectAction,
	}
}

func connectAction(c *cli.Context) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	return s.connect(c.Context, c.Args().First(), c.String("name"), c.Bool("save"))
}

// DisconnectCommand returns the disconnect command.
func DisconnectCommand() *cli.Command {
	return &cli.Command{
		Name:      "disconnect",
		Usage:     "Close the current (or named) connection",
		ArgsUsage: "[NAME]",
		Action:    disconnectAction,
	}
}

func disconnectAction(c *cli.Context) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	return s.disconnect(c.Context, c.Args().First())
}
