package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/idvault/cmd/app/commands"
	"github.com/allisson/idvault/internal/app"
	"github.com/allisson/idvault/internal/config"
)

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the HTTP API server, the metrics server and the outbox worker",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunServer(ctx, version)
			},
		},
		{
			Name:  "migrate",
			Usage: "Run database migrations",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunMigrations(container.Logger(), cfg.DBDriver, cfg.DBConnectionString)
			},
		},
		{
			Name:  "fingerprint",
			Usage: "Print the SHA-256 fingerprint of an identifier (reads stdin when --identifier is omitted)",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "identifier",
					Aliases: []string{"i"},
					Usage:   "12-digit identifier",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunFingerprint(
					cmd.String("identifier"),
					cmd.String("format"),
					commands.DefaultIO(),
				)
			},
		},
	}
}
