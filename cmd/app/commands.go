package main

import (
	"github.com/urfave/cli/v3"

	"github.com/allisson/passvault/cmd/app/commands"
	"github.com/allisson/passvault/internal/app"
	"github.com/allisson/passvault/internal/config"
)

func getCommands(version string) []*cli.Command {
	cmds := []*cli.Command{}
	cmds = append(cmds, getSystemCommands(version)...)
	cmds = append(cmds, getKeyCommands()...)
	cmds = append(cmds, getCredentialCommands()...)
	return cmds
}

// newContainer loads configuration and builds a container that asks the
// terminal user to confirm presence before a password is revealed.
func newContainer() *app.Container {
	cfg := config.Load()
	return app.NewContainer(cfg, app.WithAuthenticator(commands.NewPromptAuthenticator(commands.DefaultIO())))
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   "text",
		Usage:   "Output format: 'text' or 'json'",
	}
}

func forceFlag(usage string) cli.Flag {
	return &cli.BoolFlag{
		Name:    "yes",
		Aliases: []string{"y"},
		Usage:   usage,
	}
}
