package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/idvault/cmd/app/commands"
	"github.com/allisson/idvault/internal/app"
	"github.com/allisson/idvault/internal/config"
)

func getAuthCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-client",
			Usage: "Create a new API client with capabilities",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Human-readable client name",
				},
				&cli.BoolFlag{
					Name:    "active",
					Aliases: []string{"a"},
					Value:   true,
					Usage:   "Whether the client can authenticate immediately",
				},
				&cli.StringFlag{
					Name:    "capabilities",
					Aliases: []string{"c"},
					Usage:   "Comma-separated capabilities: read, write, delete, reveal (omit for interactive mode)",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				clientUseCase, err := container.ClientUseCase()
				if err != nil {
					return err
				}

				return commands.RunCreateClient(
					ctx,
					clientUseCase,
					container.Logger(),
					cmd.String("name"),
					cmd.Bool("active"),
					cmd.String("capabilities"),
					cmd.String("format"),
					commands.DefaultIO(),
				)
			},
		},
		{
			Name:  "clean-expired-tokens",
			Usage: "Delete expired tokens older than specified days",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:     "days",
					Aliases:  []string{"d"},
					Required: true,
					Usage:    "Delete expired tokens older than this many days",
				},
				&cli.BoolFlag{
					Name:    "dry-run",
					Aliases: []string{"n"},
					Value:   false,
					Usage:   "Show how many tokens would be deleted without deleting",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				tokenUseCase, err := container.TokenUseCase()
				if err != nil {
					return err
				}

				return commands.RunCleanExpiredTokens(
					ctx,
					tokenUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					int(cmd.Int("days")),
					cmd.Bool("dry-run"),
					cmd.String("format"),
				)
			},
		},
	}
}
