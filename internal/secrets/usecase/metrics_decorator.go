package usecase

import (
	"context"
	"time"

	"github.com/allisson/authcore/internal/metrics"
	secretsDomain "github.com/allisson/authcore/internal/secrets/domain"
)

// secretsUseCaseWithMetrics decorates SecretsUseCase with metrics instrumentation.
type secretsUseCaseWithMetrics struct {
	next    SecretsUseCase
	metrics metrics.BusinessMetrics
}

// NewSecretsUseCaseWithMetrics wraps a SecretsUseCase with metrics recording.
func NewSecretsUseCaseWithMetrics(useCase SecretsUseCase, m metrics.BusinessMetrics) SecretsUseCase {
	return &secretsUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (s *secretsUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := metrics.StatusOf(err)
	s.metrics.RecordOperation(ctx, "secrets", operation, status)
	s.metrics.RecordDuration(ctx, "secrets", operation, time.Since(start), status)
}

// Load records metrics for bundle decryption.
func (s *secretsUseCaseWithMetrics) Load(ctx context.Context) (*secretsDomain.DecryptedSecrets, error) {
	start := time.Now()
	secrets, err := s.next.Load(ctx)
	s.record(ctx, "bundle_load", start, err)
	return secrets, err
}

// Layout records metrics for bundle layout inspection.
func (s *secretsUseCaseWithMetrics) Layout(ctx context.Context) (map[string][]string, error) {
	start := time.Now()
	layout, err := s.next.Layout(ctx)
	s.record(ctx, "bundle_layout", start, err)
	return layout, err
}
