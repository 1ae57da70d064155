package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	authUseCase "github.com/allisson/authcore/internal/auth/usecase"
)

// RunCleanAuthAttempts deletes failed login attempts older than the specified number of days.
// Supports dry-run mode to preview the deletion count and both text/JSON output formats.
//
// Requirements: Database must be migrated, or Redis reachable when AUTH_ATTEMPT_STORE=redis.
func RunCleanAuthAttempts(
	ctx context.Context,
	abuseGuard authUseCase.AbuseGuardUseCase,
	logger *slog.Logger,
	writer io.Writer,
	days int,
	dryRun bool,
	format string,
) error {
	if days < 0 {
		return fmt.Errorf("days must be a positive number, got: %d", days)
	}
	if err := validateFormat(format); err != nil {
		return err
	}

	logger.Info("cleaning auth attempts",
		slog.Int("days", days),
		slog.Bool("dry_run", dryRun),
	)

	count, err := abuseGuard.Prune(ctx, time.Duration(days)*24*time.Hour, dryRun)
	if err != nil {
		return fmt.Errorf("failed to delete auth attempts: %w", err)
	}

	if format == "json" {
		if err := writeJSON(writer, map[string]any{
			"count":   count,
			"days":    days,
			"dry_run": dryRun,
		}); err != nil {
			return err
		}
	} else {
		outputCleanText(writer, count, days, dryRun)
	}

	logger.Info("cleanup completed",
		slog.Int64("count", count),
		slog.Int("days", days),
		slog.Bool("dry_run", dryRun),
	)

	return nil
}

// outputCleanText outputs the result in human-readable text format.
func outputCleanText(writer io.Writer, count int64, days int, dryRun bool) {
	if dryRun {
		_, _ = fmt.Fprintf(writer, "Dry-run mode: Would delete %d auth attempt(s) older than %d day(s)\n", count, days)
		return
	}
	_, _ = fmt.Fprintf(writer, "Successfully deleted %d auth attempt(s) older than %d day(s)\n", count, days)
}
