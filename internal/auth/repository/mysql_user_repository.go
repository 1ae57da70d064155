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

const mysqlUserColumns = `id, username, email, password_hash, is_active, reset_token_hash, reset_expires_at`

// MySQLUserRepository reads user credentials and manages the embedded reset token.
// The DSN must set parseTime=true so DATETIME columns scan into time.Time.
type MySQLUserRepository struct {
	db *sql.DB
}

func (m *MySQLUserRepository) getOne(
	ctx context.Context,
	query string,
	args ...any,
) (*authDomain.UserCredentials, error) {
	querier := database.GetTx(ctx, m.db)

	var (
		user           authDomain.UserCredentials
		idBytes        []byte
		resetTokenHash sql.NullString
		resetExpiresAt sql.NullTime
	)

	err := querier.QueryRowContext(ctx, query, args...).Scan(
		&idBytes,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.IsActive,
		&resetTokenHash,
		&resetExpiresAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authDomain.ErrUserNotFound
		}
		return nil, apperrors.WrapStorage(err, "failed to get user")
	}

	if err := user.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal user id")
	}

	user.ResetToken = resetTokenFromColumns(resetTokenHash, resetExpiresAt)
	return &user, nil
}

// Get retrieves a user by ID.
func (m *MySQLUserRepository) Get(ctx context.Context, userID uuid.UUID) (*authDomain.UserCredentials, error) {
	id, err := userID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal user id")
	}
	return m.getOne(ctx, `SELECT `+mysqlUserColumns+` FROM users WHERE id = ?`, id)
}

// GetByIdentity retrieves a user by lowercased username or email.
func (m *MySQLUserRepository) GetByIdentity(
	ctx context.Context,
	identity string,
) (*authDomain.UserCredentials, error) {
	return m.getOne(
		ctx,
		`SELECT `+mysqlUserColumns+` FROM users WHERE LOWER(username) = ? OR LOWER(email) = ? LIMIT 1`,
		identity,
		identity,
	)
}

// SetResetToken overwrites the reset token columns.
func (m *MySQLUserRepository) SetResetToken(
	ctx context.Context,
	userID uuid.UUID,
	token *authDomain.ResetToken,
) error {
	querier := database.GetTx(ctx, m.db)

	id, err := userID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user id")
	}

	query := `UPDATE users
			  SET reset_token_hash = ?,
				  reset_expires_at = ?
			  WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, token.TokenHash, token.ExpiresAt, id)
	if err != nil {
		return apperrors.WrapStorage(err, "failed to set reset token")
	}
	return requireOneRow(result, authDomain.ErrUserNotFound)
}

// RedeemResetToken swaps the password hash and clears the token in one statement.
func (m *MySQLUserRepository) RedeemResetToken(
	ctx context.Context,
	userID uuid.UUID,
	expectedTokenHash string,
	passwordHash string,
	updatedAt time.Time,
) error {
	querier := database.GetTx(ctx, m.db)

	id, err := userID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user id")
	}

	query := `UPDATE users
			  SET password_hash = ?,
				  reset_token_hash = NULL,
				  reset_expires_at = NULL,
				  updated_at = ?
			  WHERE id = ? AND reset_token_hash = ?`

	result, err := querier.ExecContext(ctx, query, passwordHash, updatedAt, id, expectedTokenHash)
	if err != nil {
		return apperrors.WrapStorage(err, "failed to redeem reset token")
	}
	return requireOneRow(result, authDomain.ErrResetTokenInvalid)
}

// NewMySQLUserRepository creates a new MySQL user repository.
func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{db: db}
}
