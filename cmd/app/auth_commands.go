package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/authcore/cmd/app/commands"
	"github.com/allisson/authcore/internal/app"
	"github.com/allisson/authcore/internal/config"
)

func getAuthCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "clean-auth-attempts",
			Usage: "Delete failed login attempts older than specified days",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:    "days",
					Aliases: []string{"d"},
					Usage:   "Delete attempts older than this many days (defaults to AUTH_ATTEMPTS_RETENTION_HOURS)",
				},
				&cli.BoolFlag{
					Name:    "dry-run",
					Aliases: []string{"n"},
					Value:   false,
					Usage:   "Show how many attempts would be deleted without deleting",
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

				abuseGuard, err := container.AbuseGuardUseCase()
				if err != nil {
					return err
				}

				days := int(cmd.Int("days"))
				if !cmd.IsSet("days") {
					days = int(cfg.AuthAttemptsRetention.Hours() / 24)
				}

				return commands.RunCleanAuthAttempts(
					ctx,
					abuseGuard,
					container.Logger(),
					commands.DefaultIO().Writer,
					days,
					cmd.Bool("dry-run"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "check-lockout",
			Usage: "Show attempt counts and lockout status for an IP and identity",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "ip",
					Required: true,
					Usage:    "Client IP address",
				},
				&cli.StringFlag{
					Name:     "identity",
					Aliases:  []string{"i"},
					Required: true,
					Usage:    "Username or email as typed at login",
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

				abuseGuard, err := container.AbuseGuardUseCase()
				if err != nil {
					return err
				}

				return commands.RunCheckLockout(
					ctx,
					abuseGuard,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("ip"),
					cmd.String("identity"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "issue-reset-token",
			Usage: "Issue a password-reset token for a user",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "user-id",
					Aliases:  []string{"u"},
					Required: true,
					Usage:    "User ID (UUID)",
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

				resetTokenUseCase, err := container.ResetTokenUseCase()
				if err != nil {
					return err
				}

				return commands.RunIssueResetToken(
					ctx,
					resetTokenUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("user-id"),
					cmd.String("format"),
				)
			},
		},
	}
}
