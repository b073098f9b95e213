// Package main provides the entry point for the idvault CLI.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cmd := newRootCommand()

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}

func newRootCommand() *cli.Command {
	return &cli.Command{
		Name:     "idvault",
		Usage:    "Encrypted storage and lookup of national identity numbers",
		Version:  version,
		Commands: getCommands(version),
	}
}
