package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/authcore/internal/auth/domain"
	"github.com/allisson/authcore/internal/metrics"
)

const metricsDomain = "auth"

func record(ctx context.Context, m metrics.BusinessMetrics, operation string, start time.Time, err error) {
	status := metrics.StatusOf(err)
	m.RecordOperation(ctx, metricsDomain, operation, status)
	m.RecordDuration(ctx, metricsDomain, operation, time.Since(start), status)
}

// abuseGuardUseCaseWithMetrics decorates AbuseGuardUseCase with metrics instrumentation.
type abuseGuardUseCaseWithMetrics struct {
	next    AbuseGuardUseCase
	metrics metrics.BusinessMetrics
}

// NewAbuseGuardUseCaseWithMetrics wraps an AbuseGuardUseCase with metrics recording.
func NewAbuseGuardUseCaseWithMetrics(useCase AbuseGuardUseCase, m metrics.BusinessMetrics) AbuseGuardUseCase {
	return &abuseGuardUseCaseWithMetrics{next: useCase, metrics: m}
}

func (a *abuseGuardUseCaseWithMetrics) RecordFailure(ctx context.Context, ip, identity string) error {
	start := time.Now()
	err := a.next.RecordFailure(ctx, ip, identity)
	record(ctx, a.metrics, "abuse_record_failure", start, err)
	return err
}

// IsLocked additionally counts lockouts so they can be alerted on.
func (a *abuseGuardUseCaseWithMetrics) IsLocked(ctx context.Context, ip, identity string) (bool, error) {
	start := time.Now()
	locked, err := a.next.IsLocked(ctx, ip, identity)
	record(ctx, a.metrics, "abuse_is_locked", start, err)
	if locked && err == nil {
		a.metrics.RecordOperation(ctx, metricsDomain, "abuse_lockout", metrics.StatusSuccess)
	}
	return locked, err
}

func (a *abuseGuardUseCaseWithMetrics) Verdict(
	ctx context.Context,
	ip, identity string,
) (*authDomain.AbuseVerdict, error) {
	start := time.Now()
	verdict, err := a.next.Verdict(ctx, ip, identity)
	record(ctx, a.metrics, "abuse_verdict", start, err)
	return verdict, err
}

func (a *abuseGuardUseCaseWithMetrics) Prune(ctx context.Context, olderThan time.Duration, dryRun bool) (int64, error) {
	start := time.Now()
	count, err := a.next.Prune(ctx, olderThan, dryRun)
	record(ctx, a.metrics, "abuse_prune", start, err)
	return count, err
}

// sessionUseCaseWithMetrics decorates SessionUseCase with metrics instrumentation.
type sessionUseCaseWithMetrics struct {
	next    SessionUseCase
	metrics metrics.BusinessMetrics
}

// NewSessionUseCaseWithMetrics wraps a SessionUseCase with metrics recording.
func NewSessionUseCaseWithMetrics(useCase SessionUseCase, m metrics.BusinessMetrics) SessionUseCase {
	return &sessionUseCaseWithMetrics{next: useCase, metrics: m}
}

func (s *sessionUseCaseWithMetrics) Create(
	ctx context.Context,
	input *authDomain.CreateSessionInput,
) (*authDomain.CreateSessionOutput, error) {
	start := time.Now()
	output, err := s.next.Create(ctx, input)
	record(ctx, s.metrics, "session_create", start, err)
	return output, err
}

func (s *sessionUseCaseWithMetrics) Validate(
	ctx context.Context,
	sessionID uuid.UUID,
	plainKey string,
) (*authDomain.Session, error) {
	start := time.Now()
	session, err := s.next.Validate(ctx, sessionID, plainKey)
	record(ctx, s.metrics, "session_validate", start, err)
	return session, err
}

func (s *sessionUseCaseWithMetrics) ValidateAuthHeader(ctx context.Context, header string) (*authDomain.Session, error) {
	start := time.Now()
	session, err := s.next.ValidateAuthHeader(ctx, header)
	record(ctx, s.metrics, "session_validate_header", start, err)
	return session, err
}

func (s *sessionUseCaseWithMetrics) Delete(ctx context.Context, sessionID uuid.UUID) error {
	start := time.Now()
	err := s.next.Delete(ctx, sessionID)
	record(ctx, s.metrics, "session_delete", start, err)
	return err
}

// resetTokenUseCaseWithMetrics decorates ResetTokenUseCase with metrics instrumentation.
type resetTokenUseCaseWithMetrics struct {
	next    ResetTokenUseCase
	metrics metrics.BusinessMetrics
}

// NewResetTokenUseCaseWithMetrics wraps a ResetTokenUseCase with metrics recording.
func NewResetTokenUseCaseWithMetrics(useCase ResetTokenUseCase, m metrics.BusinessMetrics) ResetTokenUseCase {
	return &resetTokenUseCaseWithMetrics{next: useCase, metrics: m}
}

func (r *resetTokenUseCaseWithMetrics) Issue(
	ctx context.Context,
	userID uuid.UUID,
) (*authDomain.IssuedResetToken, error) {
	start := time.Now()
	token, err := r.next.Issue(ctx, userID)
	record(ctx, r.metrics, "reset_token_issue", start, err)
	return token, err
}

func (r *resetTokenUseCaseWithMetrics) Redeem(
	ctx context.Context,
	userID uuid.UUID,
	suppliedKey, newPassword string,
) error {
	start := time.Now()
	err := r.next.Redeem(ctx, userID, suppliedKey, newPassword)
	record(ctx, r.metrics, "reset_token_redeem", start, err)
	return err
}

// loginUseCaseWithMetrics decorates LoginUseCase with metrics instrumentation.
type loginUseCaseWithMetrics struct {
	next    LoginUseCase
	metrics metrics.BusinessMetrics
}

// NewLoginUseCaseWithMetrics wraps a LoginUseCase with metrics recording.
func NewLoginUseCaseWithMetrics(useCase LoginUseCase, m metrics.BusinessMetrics) LoginUseCase {
	return &loginUseCaseWithMetrics{next: useCase, metrics: m}
}

func (l *loginUseCaseWithMetrics) Login(
	ctx context.Context,
	input *authDomain.LoginInput,
) (*authDomain.LoginOutput, error) {
	start := time.Now()
	output, err := l.next.Login(ctx, input)
	record(ctx, l.metrics, "login", start, err)
	return output, err
}
