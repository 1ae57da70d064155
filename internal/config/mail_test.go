package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/authcore/internal/errors"
)

type staticSecrets map[string]map[string]string

func (s staticSecrets) Get(environment, key string) (string, bool) {
	v, ok := s[environment][key]
	return v, ok
}

func TestNewMailRelayConfig(t *testing.T) {
	cfg := &Config{
		SecretsEnvironment:   "prod",
		MailRelayUsernameKey: "mail_user",
		MailRelayPasswordKey: "mail_password",
	}

	t.Run("Success_ExtractsCredentials", func(t *testing.T) {
		secrets := staticSecrets{
			"dev":  {"mail_user": "dev@example.com", "mail_password": "dev-pass"},
			"prod": {"mail_user": "social@example.com", "mail_password": "prod-pass"},
		}

		relay, err := NewMailRelayConfig(cfg, secrets)
		require.NoError(t, err)
		assert.Equal(t, "social@example.com", relay.Username)
		assert.Equal(t, "prod-pass", relay.Password)
	})

	t.Run("Error_MissingPassword", func(t *testing.T) {
		secrets := staticSecrets{
			"prod": {"mail_user": "social@example.com"},
		}

		_, err := NewMailRelayConfig(cfg, secrets)
		assert.ErrorIs(t, err, ErrMailRelaySecretMissing)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		assert.Contains(t, err.Error(), "prod/mail_password")
	})

	t.Run("Error_MissingEnvironment", func(t *testing.T) {
		_, err := NewMailRelayConfig(cfg, staticSecrets{})
		assert.ErrorIs(t, err, ErrMailRelaySecretMissing)
	})

	t.Run("Success_StringRedactsPassword", func(t *testing.T) {
		relay := MailRelayConfig{Username: "u", Password: "hunter2"}
		assert.NotContains(t, relay.String(), "hunter2")
		assert.Contains(t, relay.String(), "[REDACTED]")
	})
}
