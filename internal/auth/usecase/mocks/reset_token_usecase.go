package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/authcore/internal/auth/domain"
)

// MockResetTokenUseCase is a mock implementation of ResetTokenUseCase for testing.
type MockResetTokenUseCase struct {
	mock.Mock
}

// Issue mocks the Issue method of ResetTokenUseCase.
func (m *MockResetTokenUseCase) Issue(ctx context.Context, userID uuid.UUID) (*authDomain.IssuedResetToken, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.IssuedResetToken), args.Error(1)
}

// Redeem mocks the Redeem method of ResetTokenUseCase.
func (m *MockResetTokenUseCase) Redeem(ctx context.Context, userID uuid.UUID, suppliedKey, newPassword string) error {
	args := m.Called(ctx, userID, suppliedKey, newPassword)
	return args.Error(0)
}
