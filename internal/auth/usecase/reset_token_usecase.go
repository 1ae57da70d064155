package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	authDomain "github.com/allisson/authcore/internal/auth/domain"
	authService "github.com/allisson/authcore/internal/auth/service"
	"github.com/allisson/authcore/internal/database"
	customValidation "github.com/allisson/authcore/internal/validation"
)

type resetTokenUseCase struct {
	txManager      database.TxManager
	userRepo       UserRepository
	keyService     authService.KeyService
	passwordHasher authService.SecretHasher
	expiration     time.Duration
	now            func() time.Time
}

func (r *resetTokenUseCase) Issue(ctx context.Context, userID uuid.UUID) (*authDomain.IssuedResetToken, error) {
	plainKey, keyHash, err := r.keyService.GenerateKey()
	if err != nil {
		return nil, err
	}

	token := &authDomain.ResetToken{
		TokenHash: keyHash,
		ExpiresAt: r.now().Add(r.expiration),
	}
	if err := r.userRepo.SetResetToken(ctx, userID, token); err != nil {
		return nil, err
	}

	return &authDomain.IssuedResetToken{
		PlainKey:  plainKey,
		ExpiresAt: token.ExpiresAt,
	}, nil
}

// Redeem checks expiry before the key so an expired token is reported as such even when the
// key is correct.
func (r *resetTokenUseCase) Redeem(ctx context.Context, userID uuid.UUID, suppliedKey, newPassword string) error {
	err := validation.Validate(newPassword, validation.Required, customValidation.NotBlank)
	if err != nil {
		return customValidation.WrapValidationError(err)
	}

	return r.txManager.WithTx(ctx, func(ctx context.Context) error {
		user, err := r.userRepo.Get(ctx, userID)
		if err != nil {
			return err
		}

		token := user.ResetToken
		if token == nil {
			r.keyService.CompareDummy(suppliedKey)
			return authDomain.ErrResetTokenInvalid
		}

		now := r.now()
		if token.Expired(now) {
			return authDomain.ErrResetTokenExpired
		}

		if !r.keyService.Compare(suppliedKey, token.TokenHash) {
			return authDomain.ErrResetTokenInvalid
		}

		passwordHash, err := r.passwordHasher.Hash(newPassword)
		if err != nil {
			return err
		}

		return r.userRepo.RedeemResetToken(ctx, userID, token.TokenHash, passwordHash, now)
	})
}

// NewResetTokenUseCase creates a new ResetTokenUseCase. Tokens expire after expiration.
func NewResetTokenUseCase(
	txManager database.TxManager,
	userRepo UserRepository,
	keyService authService.KeyService,
	passwordHasher authService.SecretHasher,
	expiration time.Duration,
) ResetTokenUseCase {
	return &resetTokenUseCase{
		txManager:      txManager,
		userRepo:       userRepo,
		keyService:     keyService,
		passwordHasher: passwordHasher,
		expiration:     expiration,
		now:            func() time.Time { return time.Now().UTC() },
	}
}
