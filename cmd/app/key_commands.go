package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/idvault/cmd/app/commands"
	"github.com/allisson/idvault/internal/app"
	"github.com/allisson/idvault/internal/config"
)

func getKeyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-identity-key",
			Usage: "Generate a new AES-256 identity key, optionally encrypted with a KMS",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "kms-provider",
					Usage: "KMS provider (localsecrets, gcpkms, awskms, azurekeyvault, hashivault)",
				},
				&cli.StringFlag{
					Name:  "kms-key-uri",
					Usage: "KMS key URI (e.g. gcpkms://projects/p/locations/l/keyRings/r/cryptoKeys/k)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunCreateIdentityKey(
					ctx,
					container.KMSService(),
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("kms-provider"),
					cmd.String("kms-key-uri"),
				)
			},
		},
	}
}
