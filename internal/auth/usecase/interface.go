// Package usecase implements the authentication core: abuse detection over failed login
// attempts, opaque sessions, password-reset tokens and the login flow combining them.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/authcore/internal/auth/domain"
)

// AuthAttemptRepository is the append-only log of failed authentication attempts.
// Implementations must be safe for concurrent use.
type AuthAttemptRepository interface {
	// Create appends an attempt.
	Create(ctx context.Context, attempt *authDomain.AuthAttempt) error

	// CountByIP counts attempts from ip created at or after since.
	CountByIP(ctx context.Context, ip string, since time.Time) (int64, error)

	// CountByIPAndIdentity counts attempts for the ip and identity pair created at or after since.
	CountByIPAndIdentity(ctx context.Context, ip, identity string, since time.Time) (int64, error)

	// DeleteOlderThan removes attempts created before olderThan, or only counts them when
	// dryRun is true.
	DeleteOlderThan(ctx context.Context, olderThan time.Time, dryRun bool) (int64, error)
}

// SessionRepository persists sessions. Only key hashes are ever stored.
type SessionRepository interface {
	Create(ctx context.Context, session *authDomain.Session) error

	// Get returns ErrSessionNotFound when the session does not exist.
	Get(ctx context.Context, sessionID uuid.UUID) (*authDomain.Session, error)

	// Touch sets updated_at. Returns ErrSessionNotFound when no row was updated.
	Touch(ctx context.Context, sessionID uuid.UUID, updatedAt time.Time) error

	// Delete returns ErrSessionNotFound when no row was deleted.
	Delete(ctx context.Context, sessionID uuid.UUID) error
}

// UserRepository reads credentials and manages the reset token embedded in the user record.
type UserRepository interface {
	// Get returns ErrUserNotFound when the user does not exist.
	Get(ctx context.Context, userID uuid.UUID) (*authDomain.UserCredentials, error)

	// GetByIdentity looks a user up by lowercased username or email.
	GetByIdentity(ctx context.Context, identity string) (*authDomain.UserCredentials, error)

	// SetResetToken overwrites any previous reset token. Returns ErrUserNotFound when no
	// row was updated.
	SetResetToken(ctx context.Context, userID uuid.UUID, token *authDomain.ResetToken) error

	// RedeemResetToken sets the new password hash and clears the reset token in a single
	// update guarded by the expected token hash. Returns ErrResetTokenInvalid when the token
	// was already consumed or replaced.
	RedeemResetToken(
		ctx context.Context,
		userID uuid.UUID,
		expectedTokenHash string,
		passwordHash string,
		updatedAt time.Time,
	) error
}

// AbuseGuardUseCase records failed logins and decides whether an IP or IP+identity pair is
// locked out.
type AbuseGuardUseCase interface {
	// RecordFailure appends a failed attempt. It never rejects because of a lockout.
	RecordFailure(ctx context.Context, ip, identity string) error

	// IsLocked fails closed: when counting fails it returns true together with the error.
	IsLocked(ctx context.Context, ip, identity string) (bool, error)

	// Verdict returns the counts behind IsLocked.
	Verdict(ctx context.Context, ip, identity string) (*authDomain.AbuseVerdict, error)

	// Prune deletes attempts older than olderThan. With dryRun it only counts them.
	Prune(ctx context.Context, olderThan time.Duration, dryRun bool) (int64, error)
}

// SessionUseCase mints and validates opaque sessions.
type SessionUseCase interface {
	// Create generates a random key, stores only its hash and returns the plaintext key once.
	//
	// Security Note: the returned PlainKey must only be sent to the client through
	// BuildAuthHeader and never logged.
	Create(ctx context.Context, input *authDomain.CreateSessionInput) (*authDomain.CreateSessionOutput, error)

	// Validate returns ErrUnauthenticated for unknown sessions and wrong keys alike.
	Validate(ctx context.Context, sessionID uuid.UUID, plainKey string) (*authDomain.Session, error)

	// ValidateAuthHeader parses a "Basic" Authorization header and validates it.
	ValidateAuthHeader(ctx context.Context, header string) (*authDomain.Session, error)

	// Delete destroys the session on logout.
	Delete(ctx context.Context, sessionID uuid.UUID) error
}

// ResetTokenUseCase issues and redeems single-use password-reset tokens.
type ResetTokenUseCase interface {
	// Issue overwrites any active token and returns the plaintext key for out-of-band delivery.
	Issue(ctx context.Context, userID uuid.UUID) (*authDomain.IssuedResetToken, error)

	// Redeem returns ErrResetTokenInvalid, ErrResetTokenExpired or nil on success.
	Redeem(ctx context.Context, userID uuid.UUID, suppliedKey, newPassword string) error
}

// LoginUseCase authenticates a username/password pair behind the abuse guard.
type LoginUseCase interface {
	Login(ctx context.Context, input *authDomain.LoginInput) (*authDomain.LoginOutput, error)
}
