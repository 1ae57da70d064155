// Package domain defines the sessions, failed login attempts and password-reset tokens of the
// authentication core.
package domain

import (
	"github.com/allisson/authcore/internal/errors"
)

// Authentication errors.
var (
	// ErrLocked indicates too many failed attempts for the IP or the IP+identity pair.
	ErrLocked = errors.Wrap(errors.ErrLocked, "maximum number of auth attempts reached")

	// ErrUnauthenticated is returned for both unknown sessions and wrong session keys.
	ErrUnauthenticated = errors.Wrap(errors.ErrUnauthorized, "unauthenticated")

	// ErrInvalidCredentials indicates a failed login. Unknown identities, inactive accounts
	// and wrong passwords are not distinguished.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "credentials are invalid or account is inactive")

	// ErrInvalidAuthHeader indicates an Authorization header that is not "Basic base64(id:key)".
	ErrInvalidAuthHeader = errors.Wrap(errors.ErrUnauthorized, "invalid authorization header")

	// ErrResetTokenInvalid indicates there is no active reset token or the key does not match.
	ErrResetTokenInvalid = errors.Wrap(errors.ErrInvalidInput, "reset token is invalid")

	// ErrResetTokenExpired indicates the reset token expiry has passed.
	ErrResetTokenExpired = errors.Wrap(errors.ErrInvalidInput, "reset token has expired")

	// ErrSessionNotFound indicates a session with the specified ID was not found.
	ErrSessionNotFound = errors.Wrap(errors.ErrNotFound, "session not found")

	// ErrUserNotFound indicates a user with the specified ID or identity was not found.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")
)
