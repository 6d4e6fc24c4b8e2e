package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/allisson/passvault/cmd/app/commands"
)

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "version",
			Usage: "Print the application version",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				_, err := fmt.Fprintf(commands.DefaultIO().Writer, "passvault %s\n", version)
				return err
			},
		},
		{
			Name:  "migrate",
			Usage: "Create or upgrade the credential database schema",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := newContainer()
				defer func() { _ = container.Shutdown(ctx) }()

				db, err := container.DB()
				if err != nil {
					return err
				}

				return commands.RunMigrations(
					db,
					container.Config().DBDriver,
					container.Logger(),
					commands.DefaultIO().Writer,
				)
			},
		},
		{
			Name:  "generate",
			Usage: "Print a random password without storing it",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:    "length",
					Aliases: []string{"l"},
					Usage:   "Password length (defaults to PASSWORD_LENGTH)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := newContainer()
				defer func() { _ = container.Shutdown(ctx) }()

				length := int(cmd.Int("length"))
				if length == 0 {
					length = container.Config().PasswordLength
				}

				return commands.RunGeneratePassword(
					container.PasswordGenerator(),
					commands.DefaultIO().Writer,
					length,
				)
			},
		},
	}
}
