package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/authcore/internal/auth/domain"
	"github.com/allisson/authcore/internal/database"
	apperrors "github.com/allisson/authcore/internal/errors"
)

// MySQLSessionRepository implements Session persistence for MySQL.
// Uses BINARY(16) for UUID storage with transaction support via database.GetTx().
// The DSN must set clientFoundRows=true so Touch counts matched rows, not changed rows.
type MySQLSessionRepository struct {
	db *sql.DB
}

// Create inserts a new Session.
func (m *MySQLSessionRepository) Create(ctx context.Context, session *authDomain.Session) error {
	querier := database.GetTx(ctx, m.db)

	id, err := session.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal session id")
	}

	userID, err := session.UserID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user id")
	}

	query := `INSERT INTO sessions (id, user_id, key_hash, ip, user_agent, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		userID,
		session.KeyHash,
		session.IP,
		session.UserAgent,
		session.CreatedAt,
		session.UpdatedAt,
	)
	if err != nil {
		return apperrors.WrapStorage(err, "failed to create session")
	}
	return nil
}

// Get retrieves a Session by ID. Returns ErrSessionNotFound if it doesn't exist.
func (m *MySQLSessionRepository) Get(ctx context.Context, sessionID uuid.UUID) (*authDomain.Session, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := sessionID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal session id")
	}

	query := `SELECT id, user_id, key_hash, ip, user_agent, created_at, updated_at
			  FROM sessions WHERE id = ?`

	var (
		session     authDomain.Session
		idBytes     []byte
		userIDBytes []byte
	)

	err = querier.QueryRowContext(ctx, query, id).Scan(
		&idBytes,
		&userIDBytes,
		&session.KeyHash,
		&session.IP,
		&session.UserAgent,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authDomain.ErrSessionNotFound
		}
		return nil, apperrors.WrapStorage(err, "failed to get session")
	}

	if err := session.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal session id")
	}
	if err := session.UserID.UnmarshalBinary(userIDBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal user id")
	}

	session.CreatedAt = session.CreatedAt.UTC()
	session.UpdatedAt = session.UpdatedAt.UTC()
	return &session, nil
}

// Touch refreshes updated_at on revalidation.
func (m *MySQLSessionRepository) Touch(ctx context.Context, sessionID uuid.UUID, updatedAt time.Time) error {
	querier := database.GetTx(ctx, m.db)

	id, err := sessionID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal session id")
	}

	result, err := querier.ExecContext(ctx, `UPDATE sessions SET updated_at = ? WHERE id = ?`, updatedAt, id)
	if err != nil {
		return apperrors.WrapStorage(err, "failed to touch session")
	}
	return requireOneRow(result, authDomain.ErrSessionNotFound)
}

// Delete removes the session.
func (m *MySQLSessionRepository) Delete(ctx context.Context, sessionID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	id, err := sessionID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal session id")
	}

	result, err := querier.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return apperrors.WrapStorage(err, "failed to delete session")
	}
	return requireOneRow(result, authDomain.ErrSessionNotFound)
}

// NewMySQLSessionRepository creates a new MySQL Session repository.
func NewMySQLSessionRepository(db *sql.DB) *MySQLSessionRepository {
	return &MySQLSessionRepository{db: db}
}
