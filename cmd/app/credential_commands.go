package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/passvault/cmd/app/commands"
)

func idFlag() cli.Flag {
	return &cli.Int64Flag{
		Name:     "id",
		Aliases:  []string{"i"},
		Required: true,
		Usage:    "Credential ID",
	}
}

func getCredentialCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "add",
			Usage: "Store a new credential",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "account",
					Aliases:  []string{"a"},
					Required: true,
					Usage:    "Account type (e.g. email, bank)",
				},
				&cli.StringFlag{
					Name:     "username",
					Aliases:  []string{"u"},
					Required: true,
					Usage:    "Username or email address",
				},
				&cli.BoolFlag{
					Name:    "generate",
					Aliases: []string{"g"},
					Usage:   "Generate a random password instead of prompting for one",
				},
				&cli.IntFlag{
					Name:    "length",
					Aliases: []string{"l"},
					Usage:   "Generated password length (defaults to PASSWORD_LENGTH)",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := newContainer()
				defer func() { _ = container.Shutdown(ctx) }()

				credentialUseCase, err := container.CredentialUseCase()
				if err != nil {
					return err
				}

				length := int(cmd.Int("length"))
				if length == 0 {
					length = container.Config().PasswordLength
				}

				return commands.RunAddCredential(
					ctx,
					credentialUseCase,
					container.PasswordGenerator(),
					container.Logger(),
					commands.DefaultIO(),
					commands.AddCredentialParams{
						AccountType: cmd.String("account"),
						Username:    cmd.String("username"),
						Generate:    cmd.Bool("generate"),
						Length:      length,
						Format:      cmd.String("format"),
					},
				)
			},
		},
		{
			Name:  "get",
			Usage: "Reveal a stored credential",
			Flags: []cli.Flag{idFlag(), formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := newContainer()
				defer func() { _ = container.Shutdown(ctx) }()

				credentialUseCase, err := container.CredentialUseCase()
				if err != nil {
					return err
				}

				return commands.RunGetCredential(
					ctx,
					credentialUseCase,
					commands.DefaultIO().Writer,
					cmd.Int64("id"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "list",
			Usage: "List stored credentials without passwords",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "offset",
					Value: 0,
					Usage: "Number of credentials to skip",
				},
				&cli.IntFlag{
					Name:  "limit",
					Value: 50,
					Usage: "Maximum number of credentials to show",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := newContainer()
				defer func() { _ = container.Shutdown(ctx) }()

				credentialUseCase, err := container.CredentialUseCase()
				if err != nil {
					return err
				}

				return commands.RunListCredentials(
					ctx,
					credentialUseCase,
					commands.DefaultIO().Writer,
					int(cmd.Int("offset")),
					int(cmd.Int("limit")),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "update",
			Usage: "Change the labels or password of a credential",
			Flags: []cli.Flag{
				idFlag(),
				&cli.StringFlag{
					Name:    "account",
					Aliases: []string{"a"},
					Usage:   "New account type",
				},
				&cli.StringFlag{
					Name:    "username",
					Aliases: []string{"u"},
					Usage:   "New username",
				},
				&cli.BoolFlag{
					Name:    "password",
					Aliases: []string{"p"},
					Usage:   "Prompt for a new password",
				},
				&cli.BoolFlag{
					Name:    "generate",
					Aliases: []string{"g"},
					Usage:   "Generate a new random password",
				},
				&cli.IntFlag{
					Name:    "length",
					Aliases: []string{"l"},
					Usage:   "Generated password length (defaults to PASSWORD_LENGTH)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := newContainer()
				defer func() { _ = container.Shutdown(ctx) }()

				credentialUseCase, err := container.CredentialUseCase()
				if err != nil {
					return err
				}

				length := int(cmd.Int("length"))
				if length == 0 {
					length = container.Config().PasswordLength
				}

				return commands.RunUpdateCredential(
					ctx,
					credentialUseCase,
					container.PasswordGenerator(),
					container.Logger(),
					commands.DefaultIO(),
					commands.UpdateCredentialParams{
						ID:          cmd.Int64("id"),
						AccountType: cmd.String("account"),
						Username:    cmd.String("username"),
						Password:    cmd.Bool("password"),
						Generate:    cmd.Bool("generate"),
						Length:      length,
					},
				)
			},
		},
		{
			Name:  "delete",
			Usage: "Delete a credential",
			Flags: []cli.Flag{idFlag(), forceFlag("Delete without confirmation")},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := newContainer()
				defer func() { _ = container.Shutdown(ctx) }()

				credentialUseCase, err := container.CredentialUseCase()
				if err != nil {
					return err
				}

				return commands.RunDeleteCredential(
					ctx,
					credentialUseCase,
					container.Logger(),
					commands.DefaultIO(),
					cmd.Int64("id"),
					cmd.Bool("yes"),
				)
			},
		},
	}
}
