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

// PostgreSQLSessionRepository implements Session persistence for PostgreSQL.
// Uses native UUID types with transaction support via database.GetTx().
type PostgreSQLSessionRepository struct {
	db *sql.DB
}

// Create inserts a new Session.
func (p *PostgreSQLSessionRepository) Create(ctx context.Context, session *authDomain.Session) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO sessions (id, user_id, key_hash, ip, user_agent, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := querier.ExecContext(
		ctx,
		query,
		session.ID,
		session.UserID,
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
func (p *PostgreSQLSessionRepository) Get(ctx context.Context, sessionID uuid.UUID) (*authDomain.Session, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, user_id, key_hash, ip, user_agent, created_at, updated_at
			  FROM sessions WHERE id = $1`

	var session authDomain.Session

	err := querier.QueryRowContext(ctx, query, sessionID).Scan(
		&session.ID,
		&session.UserID,
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

	session.CreatedAt = session.CreatedAt.UTC()
	session.UpdatedAt = session.UpdatedAt.UTC()
	return &session, nil
}

// Touch refreshes updated_at on revalidation.
func (p *PostgreSQLSessionRepository) Touch(ctx context.Context, sessionID uuid.UUID, updatedAt time.Time) error {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `UPDATE sessions SET updated_at = $1 WHERE id = $2`, updatedAt, sessionID)
	if err != nil {
		return apperrors.WrapStorage(err, "failed to touch session")
	}
	return requireOneRow(result, authDomain.ErrSessionNotFound)
}

// Delete removes the session.
func (p *PostgreSQLSessionRepository) Delete(ctx context.Context, sessionID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, sessionID)
	if err != nil {
		return apperrors.WrapStorage(err, "failed to delete session")
	}
	return requireOneRow(result, authDomain.ErrSessionNotFound)
}

// NewPostgreSQLSessionRepository creates a new PostgreSQL Session repository.
func NewPostgreSQLSessionRepository(db *sql.DB) *PostgreSQLSessionRepository {
	return &PostgreSQLSessionRepository{db: db}
}
