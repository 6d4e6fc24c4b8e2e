package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/passvault/cmd/app/commands"
)

func getKeyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "key",
			Usage: "Manage the vault encryption key",
			Commands: []*cli.Command{
				{
					Name:  "status",
					Usage: "Show whether the vault key exists and can be read",
					Flags: []cli.Flag{formatFlag()},
					Action: func(ctx context.Context, cmd *cli.Command) error {
						container := newContainer()
						defer func() { _ = container.Shutdown(ctx) }()

						keyManager, err := container.KeyManager()
						if err != nil {
							return err
						}

						return commands.RunKeyStatus(
							ctx,
							keyManager,
							commands.DefaultIO().Writer,
							cmd.String("format"),
						)
					},
				},
				{
					Name:  "ensure",
					Usage: "Generate the vault key if it does not exist",
					Action: func(ctx context.Context, cmd *cli.Command) error {
						container := newContainer()
						defer func() { _ = container.Shutdown(ctx) }()

						keyManager, err := container.KeyManager()
						if err != nil {
							return err
						}

						return commands.RunKeyEnsure(
							ctx,
							keyManager,
							container.Logger(),
							commands.DefaultIO().Writer,
						)
					},
				},
				{
					Name:  "delete",
					Usage: "Delete the vault key (stored passwords become unreadable)",
					Flags: []cli.Flag{forceFlag("Delete without confirmation")},
					Action: func(ctx context.Context, cmd *cli.Command) error {
						container := newContainer()
						defer func() { _ = container.Shutdown(ctx) }()

						keyManager, err := container.KeyManager()
						if err != nil {
							return err
						}

						return commands.RunKeyDelete(
							ctx,
							keyManager,
							container.Logger(),
							commands.DefaultIO(),
							cmd.Bool("yes"),
						)
					},
				},
				{
					Name:  "recover",
					Usage: "Replace a broken or missing vault key with a new one",
					Flags: []cli.Flag{forceFlag("Recover without confirmation")},
					Action: func(ctx context.Context, cmd *cli.Command) error {
						container := newContainer()
						defer func() { _ = container.Shutdown(ctx) }()

						credentialUseCase, err := container.CredentialUseCase()
						if err != nil {
							return err
						}

						return commands.RunKeyRecover(
							ctx,
							credentialUseCase,
							container.Logger(),
							commands.DefaultIO(),
							cmd.Bool("yes"),
						)
					},
				},
			},
		},
	}
}
