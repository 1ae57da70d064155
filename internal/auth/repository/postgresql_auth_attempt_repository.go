// Package repository implements persistence for sessions, failed login attempts and user
// reset tokens on PostgreSQL, MySQL and Redis.
package repository

import (
	"context"
	"database/sql"
	"time"

	authDomain "github.com/allisson/authcore/internal/auth/domain"
	"github.com/allisson/authcore/internal/database"
	apperrors "github.com/allisson/authcore/internal/errors"
)

// PostgreSQLAuthAttemptRepository implements the attempt log on PostgreSQL.
type PostgreSQLAuthAttemptRepository struct {
	db *sql.DB
}

// Create appends a failed attempt.
func (p *PostgreSQLAuthAttemptRepository) Create(ctx context.Context, attempt *authDomain.AuthAttempt) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO auth_attempts (ip, identity, created_at) VALUES ($1, $2, $3)`

	_, err := querier.ExecContext(ctx, query, attempt.IP, attempt.Identity, attempt.CreatedAt)
	if err != nil {
		return apperrors.WrapStorage(err, "failed to create auth attempt")
	}
	return nil
}

// CountByIP counts attempts from ip since the given instant.
func (p *PostgreSQLAuthAttemptRepository) CountByIP(
	ctx context.Context,
	ip string,
	since time.Time,
) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT COUNT(*) FROM auth_attempts WHERE ip = $1 AND created_at >= $2`

	var count int64
	if err := querier.QueryRowContext(ctx, query, ip, since).Scan(&count); err != nil {
		return 0, apperrors.WrapStorage(err, "failed to count auth attempts by ip")
	}
	return count, nil
}

// CountByIPAndIdentity counts attempts for the ip and identity pair since the given instant.
func (p *PostgreSQLAuthAttemptRepository) CountByIPAndIdentity(
	ctx context.Context,
	ip, identity string,
	since time.Time,
) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT COUNT(*) FROM auth_attempts WHERE ip = $1 AND identity = $2 AND created_at >= $3`

	var count int64
	if err := querier.QueryRowContext(ctx, query, ip, identity, since).Scan(&count); err != nil {
		return 0, apperrors.WrapStorage(err, "failed to count auth attempts by ip and identity")
	}
	return count, nil
}

// DeleteOlderThan removes or, with dryRun, counts attempts created before olderThan.
func (p *PostgreSQLAuthAttemptRepository) DeleteOlderThan(
	ctx context.Context,
	olderThan time.Time,
	dryRun bool,
) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	if dryRun {
		var count int64
		query := `SELECT COUNT(*) FROM auth_attempts WHERE created_at < $1`
		if err := querier.QueryRowContext(ctx, query, olderThan).Scan(&count); err != nil {
			return 0, apperrors.WrapStorage(err, "failed to count old auth attempts")
		}
		return count, nil
	}

	result, err := querier.ExecContext(ctx, `DELETE FROM auth_attempts WHERE created_at < $1`, olderThan)
	if err != nil {
		return 0, apperrors.WrapStorage(err, "failed to delete old auth attempts")
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.WrapStorage(err, "failed to get affected rows")
	}
	return count, nil
}

// NewPostgreSQLAuthAttemptRepository creates a new PostgreSQL attempt log.
func NewPostgreSQLAuthAttemptRepository(db *sql.DB) *PostgreSQLAuthAttemptRepository {
	return &PostgreSQLAuthAttemptRepository{db: db}
}
