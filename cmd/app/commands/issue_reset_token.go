package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/authcore/internal/auth/domain"
	authUseCase "github.com/allisson/authcore/internal/auth/usecase"
)

// RunIssueResetToken issues a password-reset token for the given user and prints the plaintext
// key once, for delivery out of band. Any earlier token of the user stops working.
func RunIssueResetToken(
	ctx context.Context,
	resetTokenUseCase authUseCase.ResetTokenUseCase,
	logger *slog.Logger,
	writer io.Writer,
	userIDString string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	userID, err := uuid.Parse(userIDString)
	if err != nil {
		return fmt.Errorf("invalid user ID format: %w", err)
	}

	issued, err := resetTokenUseCase.Issue(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to issue reset token: %w", err)
	}

	if format == "json" {
		if err := writeJSON(writer, map[string]any{
			"user_id":    userID.String(),
			"reset_key":  issued.PlainKey,
			"expires_at": issued.ExpiresAt.UTC().Format(time.RFC3339),
		}); err != nil {
			return err
		}
	} else {
		outputResetTokenText(writer, userID, issued)
	}

	// The plaintext key is only written to the writer, never to the logs.
	logger.Info("reset token issued",
		slog.String("user_id", userID.String()),
		slog.Time("expires_at", issued.ExpiresAt),
	)

	return nil
}

// outputResetTokenText outputs the issued token in human-readable text format.
func outputResetTokenText(writer io.Writer, userID uuid.UUID, issued *authDomain.IssuedResetToken) {
	_, _ = fmt.Fprintln(writer, "Reset token issued successfully!")
	_, _ = fmt.Fprintf(writer, "User ID:    %s\n", userID.String())
	_, _ = fmt.Fprintf(writer, "Reset key:  %s\n", issued.PlainKey)
	_, _ = fmt.Fprintf(writer, "Expires at: %s\n", issued.ExpiresAt.UTC().Format(time.RFC3339))
	_, _ = fmt.Fprintln(writer, "\nWARNING: This key will not be shown again. Deliver it to the user now.")
}
