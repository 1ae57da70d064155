package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	secretsDomain "github.com/allisson/authcore/internal/secrets/domain"
	secretsUseCase "github.com/allisson/authcore/internal/secrets/usecase"
)

// RunDecryptBundle decrypts the whole secrets bundle and prints its layout: environments and
// secret names. Values are never printed. A non-nil error means the process would refuse to
// start with this bundle.
func RunDecryptBundle(
	ctx context.Context,
	useCase secretsUseCase.SecretsUseCase,
	logger *slog.Logger,
	writer io.Writer,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	secrets, err := useCase.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to decrypt secrets bundle: %w", err)
	}

	layout := make(map[string][]string, len(secrets.Environments()))
	for _, env := range secrets.Environments() {
		layout[env] = secrets.Keys(env)
	}

	if format == "json" {
		if err := writeJSON(writer, map[string]any{
			"environments": layout,
			"secrets":      secrets.Len(),
		}); err != nil {
			return err
		}
	} else {
		outputBundleText(writer, secrets)
	}

	logger.Info("secrets bundle verified", slog.Int("secrets", secrets.Len()))
	return nil
}

// outputBundleText outputs the bundle layout in human-readable text format.
func outputBundleText(writer io.Writer, secrets *secretsDomain.DecryptedSecrets) {
	_, _ = fmt.Fprintf(writer, "Decrypted %d secret(s)\n", secrets.Len())
	for _, env := range secrets.Environments() {
		_, _ = fmt.Fprintf(writer, "\n[%s]\n", env)
		for _, key := range secrets.Keys(env) {
			_, _ = fmt.Fprintf(writer, "  - %s\n", key)
		}
	}
}
