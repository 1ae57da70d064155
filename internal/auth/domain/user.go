package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserCredentials is the slice of the user record the core reads and writes. Profile data
// belongs to the surrounding account management.
type UserCredentials struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	IsActive     bool
	ResetToken   *ResetToken
}

// ResetToken is embedded in the user record. A user has at most one; issuing a new one
// overwrites the previous token.
type ResetToken struct {
	TokenHash string
	ExpiresAt time.Time
}

// Expired reports whether now is strictly after the expiry. Both values are UTC time.Time.
func (r *ResetToken) Expired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}

// IssuedResetToken is returned once to the caller for out-of-band delivery.
type IssuedResetToken struct {
	PlainKey  string
	ExpiresAt time.Time
}

// LoginInput contains the parameters of a username/password login.
type LoginInput struct {
	IP        string
	Identity  string
	Password  string
	UserAgent string
}

// LoginOutput is returned on a successful login.
type LoginOutput struct {
	User       *UserCredentials
	Session    *Session
	AuthHeader string
}
