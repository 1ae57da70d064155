package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/allisson/authcore/internal/metrics"
	secretsDomain "github.com/allisson/authcore/internal/secrets/domain"
)

// mockBusinessMetrics is a mock implementation of metrics.BusinessMetrics for testing.
type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

var _ metrics.BusinessMetrics = (*mockBusinessMetrics)(nil)

type mockSecretsUseCase struct {
	mock.Mock
}

func (m *mockSecretsUseCase) Load(ctx context.Context) (*secretsDomain.DecryptedSecrets, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*secretsDomain.DecryptedSecrets), args.Error(1)
}

func (m *mockSecretsUseCase) Layout(ctx context.Context) (map[string][]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]string), args.Error(1)
}

func TestNewSecretsUseCaseWithMetrics(t *testing.T) {
	decorator := NewSecretsUseCaseWithMetrics(&mockSecretsUseCase{}, &mockBusinessMetrics{})

	assert.NotNil(t, decorator)
	assert.Implements(t, (*SecretsUseCase)(nil), decorator)
}

func TestMetricsDecorator_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_RecordsSuccessMetrics", func(t *testing.T) {
		mockUseCase := &mockSecretsUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		expected := secretsDomain.NewDecryptedSecrets(map[string]map[string]string{"dev": {"a": "b"}})

		mockUseCase.On("Load", ctx).Return(expected, nil).Once()
		mockMetrics.On("RecordOperation", ctx, "secrets", "bundle_load", "success").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "secrets", "bundle_load", mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()

		decorator := NewSecretsUseCaseWithMetrics(mockUseCase, mockMetrics)
		secrets, err := decorator.Load(ctx)

		assert.NoError(t, err)
		assert.Equal(t, expected, secrets)
		mockUseCase.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Error_RecordsErrorMetrics", func(t *testing.T) {
		mockUseCase := &mockSecretsUseCase{}
		mockMetrics := &mockBusinessMetrics{}

		mockUseCase.On("Load", ctx).Return(nil, secretsDomain.ErrCrypto).Once()
		mockMetrics.On("RecordOperation", ctx, "secrets", "bundle_load", "error").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "secrets", "bundle_load", mock.AnythingOfType("time.Duration"), "error").
			Return().
			Once()

		decorator := NewSecretsUseCaseWithMetrics(mockUseCase, mockMetrics)
		secrets, err := decorator.Load(ctx)

		assert.Nil(t, secrets)
		assert.True(t, errors.Is(err, secretsDomain.ErrCrypto))
		mockMetrics.AssertExpectations(t)
	})
}

func TestMetricsDecorator_Layout(t *testing.T) {
	ctx := context.Background()
	mockUseCase := &mockSecretsUseCase{}
	mockMetrics := &mockBusinessMetrics{}

	mockUseCase.On("Layout", ctx).Return(map[string][]string{"dev": {"mail"}}, nil).Once()
	mockMetrics.On("RecordOperation", ctx, "secrets", "bundle_layout", "success").Return().Once()
	mockMetrics.On("RecordDuration", ctx, "secrets", "bundle_layout", mock.AnythingOfType("time.Duration"), "success").
		Return().
		Once()

	decorator := NewSecretsUseCaseWithMetrics(mockUseCase, mockMetrics)
	layout, err := decorator.Layout(ctx)

	assert.NoError(t, err)
	assert.Equal(t, []string{"mail"}, layout["dev"])
	mockMetrics.AssertExpectations(t)
}
