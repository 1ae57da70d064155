// Package mocks provides mock implementations of the secrets use cases for testing commands.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	secretsDomain "github.com/allisson/authcore/internal/secrets/domain"
)

// MockSecretsUseCase is a mock implementation of SecretsUseCase for testing.
type MockSecretsUseCase struct {
	mock.Mock
}

// Load mocks the Load method of SecretsUseCase.
func (m *MockSecretsUseCase) Load(ctx context.Context) (*secretsDomain.DecryptedSecrets, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*secretsDomain.DecryptedSecrets), args.Error(1)
}

// Layout mocks the Layout method of SecretsUseCase.
func (m *MockSecretsUseCase) Layout(ctx context.Context) (map[string][]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]string), args.Error(1)
}
