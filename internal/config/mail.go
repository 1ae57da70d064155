package config

import (
	"fmt"

	apperrors "github.com/allisson/authcore/internal/errors"
)

// ErrMailRelaySecretMissing indicates the decrypted bundle lacks a mail relay credential.
var ErrMailRelaySecretMissing = apperrors.Wrap(apperrors.ErrNotFound, "mail relay secret missing")

// SecretLookup is the read-only view of decrypted secrets the configuration layer needs.
type SecretLookup interface {
	Get(environment, key string) (string, bool)
}

// MailRelayConfig holds the credentials handed to the external mail dispatcher.
type MailRelayConfig struct {
	Username string
	Password string //nolint:gosec // decrypted at startup, never logged
}

// NewMailRelayConfig extracts the mail relay credentials for the configured environment.
func NewMailRelayConfig(cfg *Config, secrets SecretLookup) (MailRelayConfig, error) {
	username, ok := secrets.Get(cfg.SecretsEnvironment, cfg.MailRelayUsernameKey)
	if !ok {
		return MailRelayConfig{}, fmt.Errorf(
			"%w: %s/%s",
			ErrMailRelaySecretMissing,
			cfg.SecretsEnvironment,
			cfg.MailRelayUsernameKey,
		)
	}

	password, ok := secrets.Get(cfg.SecretsEnvironment, cfg.MailRelayPasswordKey)
	if !ok {
		return MailRelayConfig{}, fmt.Errorf(
			"%w: %s/%s",
			ErrMailRelaySecretMissing,
			cfg.SecretsEnvironment,
			cfg.MailRelayPasswordKey,
		)
	}

	return MailRelayConfig{Username: username, Password: password}, nil
}

// String hides the password so the struct is safe to log.
func (m MailRelayConfig) String() string {
	return fmt.Sprintf("MailRelayConfig{Username: %s, Password: [REDACTED]}", m.Username)
}
