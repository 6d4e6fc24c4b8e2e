// Package main provides the entry point for the passvault CLI.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/awnumar/memguard"
	"github.com/urfave/cli/v3"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// Wipe key enclaves on Ctrl+C before exiting.
	memguard.CatchInterrupt()
	defer memguard.Purge()

	cmd := &cli.Command{
		Name:     "passvault",
		Usage:    "Store account credentials with passwords encrypted at rest",
		Version:  version,
		Commands: getCommands(version),
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		memguard.SafeExit(1)
	}
}
