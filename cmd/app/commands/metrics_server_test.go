package commands

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/allisson/authcore/internal/http"
)

func TestRunMetricsServer(t *testing.T) {
	t.Run("Success_StopsOnCancel", func(t *testing.T) {
		server := http.NewMetricsServer("127.0.0.1", 0, discardLogger(), nil, "authcore", nil)
		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan error, 1)
		go func() { done <- RunMetricsServer(ctx, server, discardLogger()) }()

		cancel()

		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("metrics server did not stop")
		}
	})

	t.Run("Error_InvalidAddress", func(t *testing.T) {
		server := http.NewMetricsServer("127.0.0.1", -1, discardLogger(), nil, "authcore", nil)

		err := RunMetricsServer(context.Background(), server, discardLogger())

		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to start metrics server")
	})
}
