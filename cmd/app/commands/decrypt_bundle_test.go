package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	secretsDomain "github.com/allisson/authcore/internal/secrets/domain"
	"github.com/allisson/authcore/internal/secrets/usecase/mocks"
)

func TestRunDecryptBundle(t *testing.T) {
	ctx := context.Background()
	logger := discardLogger()
	secrets := secretsDomain.NewDecryptedSecrets(map[string]map[string]string{
		"production": {"mail_password": "p4ss", "api_key": "k3y"},
		"staging":    {"mail_password": "s3cret"},
	})

	t.Run("Success_Text", func(t *testing.T) {
		mockUseCase := &mocks.MockSecretsUseCase{}
		mockUseCase.On("Load", ctx).Return(secrets, nil)

		var out bytes.Buffer
		err := RunDecryptBundle(ctx, mockUseCase, logger, &out, "text")

		require.NoError(t, err)
		require.Equal(t,
			"Decrypted 3 secret(s)\n\n[production]\n  - api_key\n  - mail_password\n\n[staging]\n  - mail_password\n",
			out.String(),
		)
		require.False(t, strings.Contains(out.String(), "p4ss"))
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Success_JSON", func(t *testing.T) {
		mockUseCase := &mocks.MockSecretsUseCase{}
		mockUseCase.On("Load", ctx).Return(secrets, nil)

		var out bytes.Buffer
		err := RunDecryptBundle(ctx, mockUseCase, logger, &out, "json")
		require.NoError(t, err)

		var result struct {
			Environments map[string][]string `json:"environments"`
			Secrets      int                 `json:"secrets"`
		}
		require.NoError(t, json.Unmarshal(out.Bytes(), &result))
		require.Equal(t, 3, result.Secrets)
		require.Equal(t, []string{"api_key", "mail_password"}, result.Environments["production"])
		require.NotContains(t, out.String(), "s3cret")
	})

	t.Run("Error_LoadFails", func(t *testing.T) {
		mockUseCase := &mocks.MockSecretsUseCase{}
		mockUseCase.On("Load", ctx).Return(nil, errors.New("bad padding"))

		err := RunDecryptBundle(ctx, mockUseCase, logger, io.Discard, "text")

		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to decrypt secrets bundle")
	})
}
