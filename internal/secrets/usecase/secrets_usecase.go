package usecase

import (
	"context"
	"log/slog"

	secretsDomain "github.com/allisson/authcore/internal/secrets/domain"
	secretsService "github.com/allisson/authcore/internal/secrets/service"
)

type secretsUseCase struct {
	source secretsService.BundleSource
	cipher secretsService.CredentialCipher
	logger *slog.Logger
}

func (s *secretsUseCase) readBundle(ctx context.Context) (secretsDomain.Bundle, error) {
	data, err := s.source.Read(ctx)
	if err != nil {
		return nil, err
	}
	return secretsDomain.ParseBundle(data)
}

// Load never logs secret values, only counts.
func (s *secretsUseCase) Load(ctx context.Context) (*secretsDomain.DecryptedSecrets, error) {
	bundle, err := s.readBundle(ctx)
	if err != nil {
		s.logger.Error("failed to read secrets bundle", slog.Any("error", err))
		return nil, err
	}

	secrets, err := s.cipher.Decrypt(bundle)
	if err != nil {
		s.logger.Error("failed to decrypt secrets bundle", slog.Any("error", err))
		return nil, err
	}

	s.logger.Info("secrets bundle decrypted",
		slog.Int("environments", len(secrets.Environments())),
		slog.Int("secrets", secrets.Len()),
	)

	return secrets, nil
}

func (s *secretsUseCase) Layout(ctx context.Context) (map[string][]string, error) {
	bundle, err := s.readBundle(ctx)
	if err != nil {
		return nil, err
	}

	layout := make(map[string][]string, len(bundle))
	for _, env := range bundle.Environments() {
		layout[env] = bundle.Keys(env)
	}
	return layout, nil
}

// NewSecretsUseCase creates a new SecretsUseCase.
func NewSecretsUseCase(
	source secretsService.BundleSource,
	cipher secretsService.CredentialCipher,
	logger *slog.Logger,
) SecretsUseCase {
	return &secretsUseCase{
		source: source,
		cipher: cipher,
		logger: logger,
	}
}
