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

const postgresUserColumns = `id, username, email, password_hash, is_active, reset_token_hash, reset_expires_at`

// PostgreSQLUserRepository reads user credentials and manages the embedded reset token.
type PostgreSQLUserRepository struct {
	db *sql.DB
}

func (p *PostgreSQLUserRepository) getOne(
	ctx context.Context,
	query string,
	args ...any,
) (*authDomain.UserCredentials, error) {
	querier := database.GetTx(ctx, p.db)

	var (
		user           authDomain.UserCredentials
		resetTokenHash sql.NullString
		resetExpiresAt sql.NullTime
	)

	err := querier.QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
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

	user.ResetToken = resetTokenFromColumns(resetTokenHash, resetExpiresAt)
	return &user, nil
}

// Get retrieves a user by ID.
func (p *PostgreSQLUserRepository) Get(ctx context.Context, userID uuid.UUID) (*authDomain.UserCredentials, error) {
	return p.getOne(ctx, `SELECT `+postgresUserColumns+` FROM users WHERE id = $1`, userID)
}

// GetByIdentity retrieves a user by lowercased username or email.
func (p *PostgreSQLUserRepository) GetByIdentity(
	ctx context.Context,
	identity string,
) (*authDomain.UserCredentials, error) {
	return p.getOne(
		ctx,
		`SELECT `+postgresUserColumns+` FROM users WHERE LOWER(username) = $1 OR LOWER(email) = $1 LIMIT 1`,
		identity,
	)
}

// SetResetToken overwrites the reset token columns.
func (p *PostgreSQLUserRepository) SetResetToken(
	ctx context.Context,
	userID uuid.UUID,
	token *authDomain.ResetToken,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE users
			  SET reset_token_hash = $1,
				  reset_expires_at = $2
			  WHERE id = $3`

	result, err := querier.ExecContext(ctx, query, token.TokenHash, token.ExpiresAt, userID)
	if err != nil {
		return apperrors.WrapStorage(err, "failed to set reset token")
	}
	return requireOneRow(result, authDomain.ErrUserNotFound)
}

// RedeemResetToken swaps the password hash and clears the token in one statement.
func (p *PostgreSQLUserRepository) RedeemResetToken(
	ctx context.Context,
	userID uuid.UUID,
	expectedTokenHash string,
	passwordHash string,
	updatedAt time.Time,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE users
			  SET password_hash = $1,
				  reset_token_hash = NULL,
				  reset_expires_at = NULL,
				  updated_at = $2
			  WHERE id = $3 AND reset_token_hash = $4`

	result, err := querier.ExecContext(ctx, query, passwordHash, updatedAt, userID, expectedTokenHash)
	if err != nil {
		return apperrors.WrapStorage(err, "failed to redeem reset token")
	}
	return requireOneRow(result, authDomain.ErrResetTokenInvalid)
}

// NewPostgreSQLUserRepository creates a new PostgreSQL user repository.
func NewPostgreSQLUserRepository(db *sql.DB) *PostgreSQLUserRepository {
	return &PostgreSQLUserRepository{db: db}
}
