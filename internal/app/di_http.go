package app

import (
	"context"

	"github.com/allisson/authcore/internal/config"
	"github.com/allisson/authcore/internal/http"
	"github.com/allisson/authcore/internal/metrics"
)

// MetricsServer returns the HTTP server exposing /health, /ready and /metrics.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	var err error
	c.metricsServerInit.Do(func() {
		c.metricsServer, err = c.initMetricsServer()
		if err != nil {
			c.initErrors["metricsServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// initMetricsServer wires readiness checks for the database and, when attempts live in
// Redis, for the Redis client.
func (c *Container) initMetricsServer() (*http.MetricsServer, error) {
	db, err := c.DB()
	if err != nil {
		return nil, err
	}

	checks := map[string]http.ReadinessCheck{
		"database": db.PingContext,
	}

	if c.config.AuthAttemptStore == config.AttemptStoreRedis {
		client, err := c.RedisClient()
		if err != nil {
			return nil, err
		}
		checks["redis"] = func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		}
	}

	var provider *metrics.Provider
	if c.config.MetricsEnabled {
		provider, err = c.MetricsProvider()
		if err != nil {
			return nil, err
		}
	}

	return http.NewMetricsServer(
		c.config.MetricsHost,
		c.config.MetricsPort,
		c.Logger(),
		provider,
		c.config.MetricsNamespace,
		checks,
	), nil
}
