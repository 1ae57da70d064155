package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/authcore/cmd/app/commands"
	"github.com/allisson/authcore/internal/app"
	"github.com/allisson/authcore/internal/config"
)

func getSecretsCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "decrypt-bundle",
			Usage: "Decrypt the secrets bundle and print its layout without values",
			Flags: []cli.Flag{
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

				secretsUseCase, err := container.SecretsUseCase()
				if err != nil {
					return err
				}

				return commands.RunDecryptBundle(
					ctx,
					secretsUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "encrypt-secret",
			Usage: "Encrypt a value into a bundle entry (reads stdin when --value is omitted)",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "value",
					Aliases: []string{"v"},
					Usage:   "Plaintext value to encrypt",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunEncryptSecret(
					container.CredentialCipher(),
					container.Logger(),
					commands.DefaultIO(),
					cmd.String("value"),
				)
			},
		},
	}
}
