package repository

import (
	"database/sql"

	authDomain "github.com/allisson/authcore/internal/auth/domain"
	apperrors "github.com/allisson/authcore/internal/errors"
)

// requireOneRow maps an update or delete that matched nothing to notFound.
func requireOneRow(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.WrapStorage(err, "failed to get affected rows")
	}
	if rows == 0 {
		return notFound
	}
	return nil
}

// resetTokenFromColumns rebuilds the embedded reset token from its nullable columns.
func resetTokenFromColumns(tokenHash sql.NullString, expiresAt sql.NullTime) *authDomain.ResetToken {
	if !tokenHash.Valid || !expiresAt.Valid {
		return nil
	}
	return &authDomain.ResetToken{
		TokenHash: tokenHash.String,
		ExpiresAt: expiresAt.Time.UTC(),
	}
}
