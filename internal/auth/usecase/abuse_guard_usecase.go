package usecase

import (
	"context"
	"log/slog"
	"time"

	validation "github.com/jellydator/validation"
	"golang.org/x/sync/errgroup"

	authDomain "github.com/allisson/authcore/internal/auth/domain"
	apperrors "github.com/allisson/authcore/internal/errors"
	customValidation "github.com/allisson/authcore/internal/validation"
)

// epoch is the lower bound used when the counting window is disabled.
var epoch = time.Unix(0, 0).UTC()

type abuseGuardUseCase struct {
	attemptRepo AuthAttemptRepository
	thresholds  authDomain.Thresholds
	window      time.Duration
	logger      *slog.Logger
	now         func() time.Time
}

func validateAttemptKey(ip, identity string) error {
	err := validation.Errors{
		"ip":       validation.Validate(ip, customValidation.ClientIP...),
		"identity": validation.Validate(identity, customValidation.Identity...),
	}.Filter()
	return customValidation.WrapValidationError(err)
}

// ValidateThresholds rejects thresholds below one, which would lock every request.
func ValidateThresholds(thresholds authDomain.Thresholds) error {
	err := validation.ValidateStruct(&thresholds,
		validation.Field(&thresholds.ForIP, validation.Required, validation.Min(1)),
		validation.Field(&thresholds.ForIPAndUser, validation.Required, validation.Min(1)),
	)
	return customValidation.WrapValidationError(err)
}

// since returns the start of the counting window. A zero window counts every retained record.
func (a *abuseGuardUseCase) since() time.Time {
	if a.window <= 0 {
		return epoch
	}
	return a.now().Add(-a.window)
}

func (a *abuseGuardUseCase) RecordFailure(ctx context.Context, ip, identity string) error {
	if err := validateAttemptKey(ip, identity); err != nil {
		return err
	}

	attempt := &authDomain.AuthAttempt{
		IP:        ip,
		Identity:  authDomain.NormalizeIdentity(identity),
		CreatedAt: a.now(),
	}
	return a.attemptRepo.Create(ctx, attempt)
}

func (a *abuseGuardUseCase) Verdict(ctx context.Context, ip, identity string) (*authDomain.AbuseVerdict, error) {
	if err := validateAttemptKey(ip, identity); err != nil {
		return nil, err
	}

	verdict := &authDomain.AbuseVerdict{
		IP:         ip,
		Identity:   authDomain.NormalizeIdentity(identity),
		Thresholds: a.thresholds,
	}
	since := a.since()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		count, err := a.attemptRepo.CountByIP(gctx, verdict.IP, since)
		verdict.IPAttemptCount = count
		return err
	})
	g.Go(func() error {
		count, err := a.attemptRepo.CountByIPAndIdentity(gctx, verdict.IP, verdict.Identity, since)
		verdict.IPAndIdentityAttemptCount = count
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return verdict, nil
}

func (a *abuseGuardUseCase) IsLocked(ctx context.Context, ip, identity string) (bool, error) {
	verdict, err := a.Verdict(ctx, ip, identity)
	if err != nil {
		a.logger.Error("failed to evaluate auth attempts, denying", slog.String("ip", ip), slog.Any("error", err))
		return true, err
	}

	if verdict.Locked() {
		a.logger.Warn("authentication locked",
			slog.String("ip", verdict.IP),
			slog.Bool("locked_by_ip", verdict.LockedByIP()),
			slog.Bool("locked_by_identity", verdict.LockedByIdentity()),
			slog.Int64("ip_attempts", verdict.IPAttemptCount),
			slog.Int64("ip_identity_attempts", verdict.IPAndIdentityAttemptCount),
		)
		return true, nil
	}

	return false, nil
}

func (a *abuseGuardUseCase) Prune(ctx context.Context, olderThan time.Duration, dryRun bool) (int64, error) {
	if olderThan < 0 {
		return 0, apperrors.Wrap(apperrors.ErrInvalidInput, "retention must not be negative")
	}
	cutoff := a.now().Add(-olderThan)

	count, err := a.attemptRepo.DeleteOlderThan(ctx, cutoff, dryRun)
	if err != nil {
		return 0, err
	}

	a.logger.Info("auth attempts pruned",
		slog.Time("older_than", cutoff),
		slog.Int64("count", count),
		slog.Bool("dry_run", dryRun),
	)
	return count, nil
}

// NewAbuseGuardUseCase creates a new AbuseGuardUseCase. A zero window counts every retained
// attempt.
func NewAbuseGuardUseCase(
	attemptRepo AuthAttemptRepository,
	thresholds authDomain.Thresholds,
	window time.Duration,
	logger *slog.Logger,
) AbuseGuardUseCase {
	return &abuseGuardUseCase{
		attemptRepo: attemptRepo,
		thresholds:  thresholds,
		window:      window,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}
