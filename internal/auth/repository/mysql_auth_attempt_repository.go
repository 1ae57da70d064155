package repository

import (
	"context"
	"database/sql"
	"time"

	authDomain "github.com/allisson/authcore/internal/auth/domain"
	"github.com/allisson/authcore/internal/database"
	apperrors "github.com/allisson/authcore/internal/errors"
)

// MySQLAuthAttemptRepository implements the attempt log on MySQL.
type MySQLAuthAttemptRepository struct {
	db *sql.DB
}

// Create appends a failed attempt.
func (m *MySQLAuthAttemptRepository) Create(ctx context.Context, attempt *authDomain.AuthAttempt) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO auth_attempts (ip, identity, created_at) VALUES (?, ?, ?)`

	_, err := querier.ExecContext(ctx, query, attempt.IP, attempt.Identity, attempt.CreatedAt)
	if err != nil {
		return apperrors.WrapStorage(err, "failed to create auth attempt")
	}
	return nil
}

// CountByIP counts attempts from ip since the given instant.
func (m *MySQLAuthAttemptRepository) CountByIP(ctx context.Context, ip string, since time.Time) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	var count int64
	err := querier.QueryRowContext(
		ctx,
		`SELECT COUNT(*) FROM auth_attempts WHERE ip = ? AND created_at >= ?`,
		ip,
		since,
	).Scan(&count)
	if err != nil {
		return 0, apperrors.WrapStorage(err, "failed to count auth attempts by ip")
	}
	return count, nil
}

// CountByIPAndIdentity counts attempts for the ip and identity pair since the given instant.
func (m *MySQLAuthAttemptRepository) CountByIPAndIdentity(
	ctx context.Context,
	ip, identity string,
	since time.Time,
) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	var count int64
	err := querier.QueryRowContext(
		ctx,
		`SELECT COUNT(*) FROM auth_attempts WHERE ip = ? AND identity = ? AND created_at >= ?`,
		ip,
		identity,
		since,
	).Scan(&count)
	if err != nil {
		return 0, apperrors.WrapStorage(err, "failed to count auth attempts by ip and identity")
	}
	return count, nil
}

// DeleteOlderThan removes or, with dryRun, counts attempts created before olderThan.
func (m *MySQLAuthAttemptRepository) DeleteOlderThan(
	ctx context.Context,
	olderThan time.Time,
	dryRun bool,
) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	if dryRun {
		var count int64
		query := `SELECT COUNT(*) FROM auth_attempts WHERE created_at < ?`
		if err := querier.QueryRowContext(ctx, query, olderThan).Scan(&count); err != nil {
			return 0, apperrors.WrapStorage(err, "failed to count old auth attempts")
		}
		return count, nil
	}

	result, err := querier.ExecContext(ctx, `DELETE FROM auth_attempts WHERE created_at < ?`, olderThan)
	if err != nil {
		return 0, apperrors.WrapStorage(err, "failed to delete old auth attempts")
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.WrapStorage(err, "failed to get affected rows")
	}
	return count, nil
}

// NewMySQLAuthAttemptRepository creates a new MySQL attempt log.
func NewMySQLAuthAttemptRepository(db *sql.DB) *MySQLAuthAttemptRepository {
	return &MySQLAuthAttemptRepository{db: db}
}
