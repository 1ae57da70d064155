package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	authDomain "github.com/allisson/authcore/internal/auth/domain"
	authUseCase "github.com/allisson/authcore/internal/auth/usecase"
)

// RunCheckLockout prints the attempt counts for an IP and identity and whether a login from
// that pair would currently be rejected.
func RunCheckLockout(
	ctx context.Context,
	abuseGuard authUseCase.AbuseGuardUseCase,
	logger *slog.Logger,
	writer io.Writer,
	ip, identity string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	verdict, err := abuseGuard.Verdict(ctx, ip, identity)
	if err != nil {
		return fmt.Errorf("failed to check lockout: %w", err)
	}

	if format == "json" {
		if err := writeJSON(writer, map[string]any{
			"ip":                    verdict.IP,
			"identity":              verdict.Identity,
			"ip_attempts":           verdict.IPAttemptCount,
			"ip_identity_attempts":  verdict.IPAndIdentityAttemptCount,
			"threshold_ip":          verdict.Thresholds.ForIP,
			"threshold_ip_identity": verdict.Thresholds.ForIPAndUser,
			"locked_by_ip":          verdict.LockedByIP(),
			"locked_by_ip_identity": verdict.LockedByIdentity(),
			"locked":                verdict.Locked(),
		}); err != nil {
			return err
		}
	} else {
		outputLockoutText(writer, verdict)
	}

	logger.Info("lockout checked",
		slog.String("ip", verdict.IP),
		slog.Bool("locked", verdict.Locked()),
	)

	return nil
}

// outputLockoutText outputs the verdict in human-readable text format.
func outputLockoutText(writer io.Writer, verdict *authDomain.AbuseVerdict) {
	status := "NOT LOCKED"
	if verdict.Locked() {
		status = "LOCKED"
	}

	_, _ = fmt.Fprintf(writer, "IP:                %s\n", verdict.IP)
	_, _ = fmt.Fprintf(writer, "Identity:          %s\n", verdict.Identity)
	_, _ = fmt.Fprintf(writer, "IP attempts:       %d/%d\n", verdict.IPAttemptCount, verdict.Thresholds.ForIP)
	_, _ = fmt.Fprintf(
		writer,
		"IP+identity:       %d/%d\n",
		verdict.IPAndIdentityAttemptCount,
		verdict.Thresholds.ForIPAndUser,
	)
	_, _ = fmt.Fprintf(writer, "Status:            %s\n", status)
}
