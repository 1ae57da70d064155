package app

import (
	"context"
	"fmt"

	"github.com/allisson/authcore/internal/config"
	secretsDomain "github.com/allisson/authcore/internal/secrets/domain"
	secretsService "github.com/allisson/authcore/internal/secrets/service"
	secretsUseCase "github.com/allisson/authcore/internal/secrets/usecase"
)

// BundleSource returns the blob-backed reader of the encrypted secrets bundle.
func (c *Container) BundleSource() secretsService.BundleSource {
	c.bundleSourceInit.Do(func() {
		c.bundleSource = secretsService.NewBlobBundleSource(
			c.config.SecretsBundleBucketURL,
			c.config.SecretsBundleKey,
		)
	})
	return c.bundleSource
}

// CredentialCipher returns the AES-256-CBC bundle cipher.
func (c *Container) CredentialCipher() secretsService.CredentialCipher {
	c.cipherInit.Do(func() {
		c.cipher = secretsService.NewCredentialCipher()
	})
	return c.cipher
}

// SecretsUseCase returns the secrets bundle use case.
func (c *Container) SecretsUseCase() (secretsUseCase.SecretsUseCase, error) {
	var err error
	c.secretsUseCaseInit.Do(func() {
		c.secretsUseCase, err = c.initSecretsUseCase()
		if err != nil {
			c.initErrors["secretsUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["secretsUseCase"]; exists {
		return nil, storedErr
	}
	return c.secretsUseCase, nil
}

// DecryptedSecrets decrypts the bundle on first access and keeps the result for the life of
// the process. Any failure is permanent: the process must not run on partial secrets.
func (c *Container) DecryptedSecrets(ctx context.Context) (*secretsDomain.DecryptedSecrets, error) {
	var err error
	c.decryptedSecretsInit.Do(func() {
		c.decryptedSecrets, err = c.initDecryptedSecrets(ctx)
		if err != nil {
			c.initErrors["decryptedSecrets"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["decryptedSecrets"]; exists {
		return nil, storedErr
	}
	return c.decryptedSecrets, nil
}

// MailRelayConfig returns the mail relay credentials taken from the decrypted bundle.
func (c *Container) MailRelayConfig(ctx context.Context) (config.MailRelayConfig, error) {
	secrets, err := c.DecryptedSecrets(ctx)
	if err != nil {
		return config.MailRelayConfig{}, fmt.Errorf("failed to get decrypted secrets for mail relay: %w", err)
	}
	return config.NewMailRelayConfig(c.config, secrets)
}

// initSecretsUseCase creates the secrets use case with all its dependencies.
func (c *Container) initSecretsUseCase() (secretsUseCase.SecretsUseCase, error) {
	baseUseCase := secretsUseCase.NewSecretsUseCase(
		c.BundleSource(),
		c.CredentialCipher(),
		c.Logger(),
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for secrets use case: %w", err)
		}
		return secretsUseCase.NewSecretsUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initDecryptedSecrets loads and decrypts the bundle.
func (c *Container) initDecryptedSecrets(ctx context.Context) (*secretsDomain.DecryptedSecrets, error) {
	useCase, err := c.SecretsUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get secrets use case for decrypted secrets: %w", err)
	}

	secrets, err := useCase.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load secrets bundle: %w", err)
	}
	return secrets, nil
}
