package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/authcore/internal/auth/domain"
	apperrors "github.com/allisson/authcore/internal/errors"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = rdb.Close()
		mr.Close()
	})

	return mr, rdb
}

func TestRedisAuthAttemptRepository_Counts(t *testing.T) {
	ctx := context.Background()
	_, rdb := newTestRedis(t)
	repo := NewRedisAuthAttemptRepository(rdb, "", time.Hour)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	attempts := []authDomain.AuthAttempt{
		{IP: "1.1.1.1", Identity: "a@x.com", CreatedAt: base},
		{IP: "1.1.1.1", Identity: "a@x.com", CreatedAt: base.Add(time.Minute)},
		{IP: "1.1.1.1", Identity: "b@x.com", CreatedAt: base.Add(2 * time.Minute)},
		{IP: "2.2.2.2", Identity: "a@x.com", CreatedAt: base.Add(3 * time.Minute)},
	}
	for i := range attempts {
		require.NoError(t, repo.Create(ctx, &attempts[i]))
	}

	t.Run("Success_CountByIP", func(t *testing.T) {
		count, err := repo.CountByIP(ctx, "1.1.1.1", base)
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})

	t.Run("Success_CountByIPAndIdentity", func(t *testing.T) {
		count, err := repo.CountByIPAndIdentity(ctx, "1.1.1.1", "a@x.com", base)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("Success_SinceIsInclusive", func(t *testing.T) {
		count, err := repo.CountByIP(ctx, "1.1.1.1", base.Add(time.Minute))
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("Success_UnknownIP", func(t *testing.T) {
		count, err := repo.CountByIP(ctx, "9.9.9.9", base)
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})
}

func TestRedisAuthAttemptRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_SameInstantRecordedTwice", func(t *testing.T) {
		_, rdb := newTestRedis(t)
		repo := NewRedisAuthAttemptRepository(rdb, "test", 0)
		now := time.Now().UTC()

		require.NoError(t, repo.Create(ctx, &authDomain.AuthAttempt{IP: "1.1.1.1", Identity: "a", CreatedAt: now}))
		require.NoError(t, repo.Create(ctx, &authDomain.AuthAttempt{IP: "1.1.1.1", Identity: "a", CreatedAt: now}))

		count, err := repo.CountByIPAndIdentity(ctx, "1.1.1.1", "a", now)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("Success_AppliesTTL", func(t *testing.T) {
		mr, rdb := newTestRedis(t)
		repo := NewRedisAuthAttemptRepository(rdb, "test", 24*time.Hour)

		require.NoError(
			t,
			repo.Create(ctx, &authDomain.AuthAttempt{IP: "1.1.1.1", Identity: "a", CreatedAt: time.Now()}),
		)

		assert.Equal(t, 24*time.Hour, mr.TTL(repo.ipKey("1.1.1.1")))
		assert.Equal(t, 24*time.Hour, mr.TTL(repo.pairKey("1.1.1.1", "a")))
	})

	t.Run("Error_ServerUnavailable", func(t *testing.T) {
		mr, rdb := newTestRedis(t)
		repo := NewRedisAuthAttemptRepository(rdb, "test", 0)
		mr.Close()

		err := repo.Create(ctx, &authDomain.AuthAttempt{IP: "1.1.1.1", Identity: "a", CreatedAt: time.Now()})
		assert.ErrorIs(t, err, apperrors.ErrStorage)
	})
}

func TestRedisAuthAttemptRepository_DeleteOlderThan(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	seed := func(t *testing.T, repo *RedisAuthAttemptRepository) {
		t.Helper()
		for i, identity := range []string{"a", "b", "c"} {
			attempt := &authDomain.AuthAttempt{
				IP:        "1.1.1.1",
				Identity:  identity,
				CreatedAt: base.Add(time.Duration(i) * time.Hour),
			}
			require.NoError(t, repo.Create(ctx, attempt))
		}
	}

	t.Run("Success_DryRunCountsWithoutRemoving", func(t *testing.T) {
		_, rdb := newTestRedis(t)
		repo := NewRedisAuthAttemptRepository(rdb, "", 0)
		seed(t, repo)

		count, err := repo.DeleteOlderThan(ctx, base.Add(2*time.Hour), true)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)

		remaining, err := repo.CountByIP(ctx, "1.1.1.1", base)
		require.NoError(t, err)
		assert.Equal(t, int64(3), remaining)
	})

	t.Run("Success_DeletesStrictlyOlder", func(t *testing.T) {
		_, rdb := newTestRedis(t)
		repo := NewRedisAuthAttemptRepository(rdb, "", 0)
		seed(t, repo)

		count, err := repo.DeleteOlderThan(ctx, base.Add(time.Hour), false)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		remaining, err := repo.CountByIP(ctx, "1.1.1.1", base)
		require.NoError(t, err)
		assert.Equal(t, int64(2), remaining)

		pair, err := repo.CountByIPAndIdentity(ctx, "1.1.1.1", "a", base)
		require.NoError(t, err)
		assert.Equal(t, int64(0), pair)
	})
}
