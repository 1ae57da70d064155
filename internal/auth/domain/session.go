package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session is an opaque login session. Only the hash of its key is persisted; the key itself
// is handed to the caller once, in CreateSessionOutput.
type Session struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	KeyHash   string
	IP        string
	UserAgent string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateSessionInput contains the parameters for minting a session.
type CreateSessionInput struct {
	UserID    uuid.UUID
	IP        string
	UserAgent string
}

// CreateSessionOutput carries the one-time plaintext session key.
type CreateSessionOutput struct {
	Session  *Session
	PlainKey string
}
