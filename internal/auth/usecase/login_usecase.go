package usecase

import (
	"context"
	"errors"
	"log/slog"

	authDomain "github.com/allisson/authcore/internal/auth/domain"
	authService "github.com/allisson/authcore/internal/auth/service"
)

type loginUseCase struct {
	abuseGuard     AbuseGuardUseCase
	userRepo       UserRepository
	sessionUseCase SessionUseCase
	passwordHasher authService.SecretHasher
	logger         *slog.Logger
}

// Login checks the lockout before touching credentials. Unknown identities, inactive
// accounts and wrong passwords all record a failure and return ErrInvalidCredentials.
func (l *loginUseCase) Login(ctx context.Context, input *authDomain.LoginInput) (*authDomain.LoginOutput, error) {
	locked, err := l.abuseGuard.IsLocked(ctx, input.IP, input.Identity)
	if err != nil {
		return nil, err
	}
	if locked {
		return nil, authDomain.ErrLocked
	}

	user, err := l.userRepo.GetByIdentity(ctx, authDomain.NormalizeIdentity(input.Identity))
	if err != nil && !errors.Is(err, authDomain.ErrUserNotFound) {
		return nil, err
	}

	var valid bool
	if user == nil {
		l.passwordHasher.CompareDummy(input.Password)
	} else {
		valid = l.passwordHasher.Compare(input.Password, user.PasswordHash) && user.IsActive
	}

	if !valid {
		if err := l.abuseGuard.RecordFailure(ctx, input.IP, input.Identity); err != nil {
			l.logger.Error("failed to record auth attempt", slog.String("ip", input.IP), slog.Any("error", err))
			return nil, err
		}
		return nil, authDomain.ErrInvalidCredentials
	}

	output, err := l.sessionUseCase.Create(ctx, &authDomain.CreateSessionInput{
		UserID:    user.ID,
		IP:        input.IP,
		UserAgent: input.UserAgent,
	})
	if err != nil {
		return nil, err
	}

	return &authDomain.LoginOutput{
		User:       user,
		Session:    output.Session,
		AuthHeader: authService.BuildAuthHeader(output.Session, output.PlainKey),
	}, nil
}

// NewLoginUseCase creates a new LoginUseCase.
func NewLoginUseCase(
	abuseGuard AbuseGuardUseCase,
	userRepo UserRepository,
	sessionUseCase SessionUseCase,
	passwordHasher authService.SecretHasher,
	logger *slog.Logger,
) LoginUseCase {
	return &loginUseCase{
		abuseGuard:     abuseGuard,
		userRepo:       userRepo,
		sessionUseCase: sessionUseCase,
		passwordHasher: passwordHasher,
		logger:         logger,
	}
}
