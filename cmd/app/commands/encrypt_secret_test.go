package commands

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	secretsDomain "github.com/allisson/authcore/internal/secrets/domain"
	secretsService "github.com/allisson/authcore/internal/secrets/service"
)

func TestRunEncryptSecret(t *testing.T) {
	logger := discardLogger()
	cipher := secretsService.NewCredentialCipher()

	decryptOne := func(t *testing.T, entry secretsDomain.Entry) string {
		t.Helper()
		decrypted, err := cipher.Decrypt(secretsDomain.Bundle{
			"production": {"value": entry},
		})
		require.NoError(t, err)
		value, ok := decrypted.Get("production", "value")
		require.True(t, ok)
		return value
	}

	t.Run("Success_FromFlag", func(t *testing.T) {
		var out bytes.Buffer
		err := RunEncryptSecret(cipher, logger, IOTuple{Reader: strings.NewReader(""), Writer: &out}, "hunter2")
		require.NoError(t, err)

		var entry secretsDomain.Entry
		require.NoError(t, json.Unmarshal(out.Bytes(), &entry))
		require.Len(t, entry.Key, 64)
		require.Len(t, entry.IV, 32)
		require.Equal(t, "hunter2", decryptOne(t, entry))
	})

	t.Run("Success_FromReader", func(t *testing.T) {
		var out bytes.Buffer
		err := RunEncryptSecret(cipher, logger, IOTuple{Reader: strings.NewReader("from-stdin\nignored\n"), Writer: &out}, "")
		require.NoError(t, err)

		var entry secretsDomain.Entry
		require.NoError(t, json.Unmarshal(out.Bytes(), &entry))
		require.Equal(t, "from-stdin", decryptOne(t, entry))
	})

	t.Run("Error_EmptyValue", func(t *testing.T) {
		var out bytes.Buffer
		err := RunEncryptSecret(cipher, logger, IOTuple{Reader: strings.NewReader("\n"), Writer: &out}, "")

		require.Error(t, err)
		require.Contains(t, err.Error(), "must not be empty")
		require.Empty(t, out.String())
	})
}
