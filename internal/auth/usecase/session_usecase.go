package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"
	"github.com/jellydator/validation/is"

	authDomain "github.com/allisson/authcore/internal/auth/domain"
	authService "github.com/allisson/authcore/internal/auth/service"
	apperrors "github.com/allisson/authcore/internal/errors"
	customValidation "github.com/allisson/authcore/internal/validation"
)

type sessionUseCase struct {
	sessionRepo SessionRepository
	keyService  authService.KeyService
	now         func() time.Time
}

func validateCreateSessionInput(input *authDomain.CreateSessionInput) error {
	err := validation.ValidateStruct(input,
		validation.Field(&input.UserID, validation.By(func(value any) error {
			if value.(uuid.UUID) == uuid.Nil {
				return validation.NewError("validation_required", "cannot be blank")
			}
			return nil
		})),
		validation.Field(&input.IP, is.IP),
		validation.Field(&input.UserAgent, validation.RuneLength(0, 512)),
	)
	return customValidation.WrapValidationError(err)
}

func (s *sessionUseCase) Create(
	ctx context.Context,
	input *authDomain.CreateSessionInput,
) (*authDomain.CreateSessionOutput, error) {
	if err := validateCreateSessionInput(input); err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to generate session id")
	}

	plainKey, keyHash, err := s.keyService.GenerateKey()
	if err != nil {
		return nil, err
	}

	now := s.now()
	session := &authDomain.Session{
		ID:        id,
		UserID:    input.UserID,
		KeyHash:   keyHash,
		IP:        input.IP,
		UserAgent: input.UserAgent,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	return &authDomain.CreateSessionOutput{
		Session:  session,
		PlainKey: plainKey,
	}, nil
}

// Validate spends one hash verification whether or not the session exists.
func (s *sessionUseCase) Validate(
	ctx context.Context,
	sessionID uuid.UUID,
	plainKey string,
) (*authDomain.Session, error) {
	session, err := s.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, authDomain.ErrSessionNotFound) {
			s.keyService.CompareDummy(plainKey)
			return nil, authDomain.ErrUnauthenticated
		}
		return nil, err
	}

	if !s.keyService.Compare(plainKey, session.KeyHash) {
		return nil, authDomain.ErrUnauthenticated
	}

	now := s.now()
	if err := s.sessionRepo.Touch(ctx, session.ID, now); err != nil {
		if errors.Is(err, authDomain.ErrSessionNotFound) {
			return nil, authDomain.ErrUnauthenticated
		}
		return nil, err
	}
	session.UpdatedAt = now

	return session, nil
}

func (s *sessionUseCase) ValidateAuthHeader(ctx context.Context, header string) (*authDomain.Session, error) {
	sessionID, plainKey, err := authService.ParseAuthHeader(header)
	if err != nil {
		return nil, err
	}
	return s.Validate(ctx, sessionID, plainKey)
}

func (s *sessionUseCase) Delete(ctx context.Context, sessionID uuid.UUID) error {
	return s.sessionRepo.Delete(ctx, sessionID)
}

// NewSessionUseCase creates a new SessionUseCase.
func NewSessionUseCase(sessionRepo SessionRepository, keyService authService.KeyService) SessionUseCase {
	return &sessionUseCase{
		sessionRepo: sessionRepo,
		keyService:  keyService,
		now:         func() time.Time { return time.Now().UTC() },
	}
}
