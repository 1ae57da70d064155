// Package mocks provides mock implementations of the auth use cases for testing commands.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/authcore/internal/auth/domain"
)

// MockAbuseGuardUseCase is a mock implementation of AbuseGuardUseCase for testing.
type MockAbuseGuardUseCase struct {
	mock.Mock
}

// RecordFailure mocks the RecordFailure method of AbuseGuardUseCase.
func (m *MockAbuseGuardUseCase) RecordFailure(ctx context.Context, ip, identity string) error {
	args := m.Called(ctx, ip, identity)
	return args.Error(0)
}

// IsLocked mocks the IsLocked method of AbuseGuardUseCase.
func (m *MockAbuseGuardUseCase) IsLocked(ctx context.Context, ip, identity string) (bool, error) {
	args := m.Called(ctx, ip, identity)
	return args.Bool(0), args.Error(1)
}

// Verdict mocks the Verdict method of AbuseGuardUseCase.
func (m *MockAbuseGuardUseCase) Verdict(
	ctx context.Context,
	ip, identity string,
) (*authDomain.AbuseVerdict, error) {
	args := m.Called(ctx, ip, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.AbuseVerdict), args.Error(1)
}

// Prune mocks the Prune method of AbuseGuardUseCase.
func (m *MockAbuseGuardUseCase) Prune(ctx context.Context, olderThan time.Duration, dryRun bool) (int64, error) {
	args := m.Called(ctx, olderThan, dryRun)
	return args.Get(0).(int64), args.Error(1)
}
