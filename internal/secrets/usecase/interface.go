// Package usecase loads the encrypted secrets bundle and turns it into the immutable
// DecryptedSecrets consumed by process configuration.
package usecase

import (
	"context"

	secretsDomain "github.com/allisson/authcore/internal/secrets/domain"
)

// SecretsUseCase defines the startup-time secrets loading logic.
type SecretsUseCase interface {
	// Load reads, parses and decrypts the bundle. Any error is fatal for startup.
	Load(ctx context.Context) (*secretsDomain.DecryptedSecrets, error)

	// Layout returns the environment to secret-name layout without decrypting anything.
	Layout(ctx context.Context) (map[string][]string, error)
}
