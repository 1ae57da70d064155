package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	authDomain "github.com/allisson/authcore/internal/auth/domain"
	apperrors "github.com/allisson/authcore/internal/errors"
)

// DefaultRedisKeyPrefix namespaces the attempt log keys.
const DefaultRedisKeyPrefix = "authcore:auth_attempts"

// RedisAuthAttemptRepository keeps the attempt log in two sorted sets per attempt, one keyed
// by IP and one by IP+identity, scored by the attempt time in microseconds. Every write
// refreshes the key TTL, which plays the role of the retention index.
type RedisAuthAttemptRepository struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

func (r *RedisAuthAttemptRepository) ipKey(ip string) string {
	return fmt.Sprintf("%s:ip:{%s}", r.prefix, ip)
}

func (r *RedisAuthAttemptRepository) pairKey(ip, identity string) string {
	return fmt.Sprintf("%s:pair:{%s}:%s", r.prefix, ip, identity)
}

func score(t time.Time) string {
	return strconv.FormatInt(t.UnixMicro(), 10)
}

// Create appends the attempt to both sorted sets in one MULTI/EXEC.
func (r *RedisAuthAttemptRepository) Create(ctx context.Context, attempt *authDomain.AuthAttempt) error {
	member := redis.Z{
		Score:  float64(attempt.CreatedAt.UnixMicro()),
		Member: uuid.NewString(),
	}
	keys := []string{r.ipKey(attempt.IP), r.pairKey(attempt.IP, attempt.Identity)}

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, key := range keys {
			pipe.ZAdd(ctx, key, member)
			if r.ttl > 0 {
				pipe.Expire(ctx, key, r.ttl)
			}
		}
		return nil
	})
	if err != nil {
		return apperrors.WrapStorage(err, "failed to create auth attempt")
	}
	return nil
}

// CountByIP counts attempts from ip since the given instant.
func (r *RedisAuthAttemptRepository) CountByIP(ctx context.Context, ip string, since time.Time) (int64, error) {
	count, err := r.client.ZCount(ctx, r.ipKey(ip), score(since), "+inf").Result()
	if err != nil {
		return 0, apperrors.WrapStorage(err, "failed to count auth attempts by ip")
	}
	return count, nil
}

// CountByIPAndIdentity counts attempts for the ip and identity pair since the given instant.
func (r *RedisAuthAttemptRepository) CountByIPAndIdentity(
	ctx context.Context,
	ip, identity string,
	since time.Time,
) (int64, error) {
	count, err := r.client.ZCount(ctx, r.pairKey(ip, identity), score(since), "+inf").Result()
	if err != nil {
		return 0, apperrors.WrapStorage(err, "failed to count auth attempts by ip and identity")
	}
	return count, nil
}

// DeleteOlderThan trims every sorted set of the log. The returned count is taken from the
// per-IP sets only, so each attempt is counted once.
func (r *RedisAuthAttemptRepository) DeleteOlderThan(
	ctx context.Context,
	olderThan time.Time,
	dryRun bool,
) (int64, error) {
	maxScore := "(" + score(olderThan)
	ipPrefix := r.prefix + ":ip:"

	var total int64
	iter := r.client.Scan(ctx, 0, r.prefix+":*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()

		var (
			n   int64
			err error
		)
		if dryRun {
			n, err = r.client.ZCount(ctx, key, "-inf", maxScore).Result()
		} else {
			n, err = r.client.ZRemRangeByScore(ctx, key, "-inf", maxScore).Result()
		}
		if err != nil {
			return total, apperrors.WrapStorage(err, "failed to prune auth attempts")
		}

		if strings.HasPrefix(key, ipPrefix) {
			total += n
		}
	}
	if err := iter.Err(); err != nil {
		return total, apperrors.WrapStorage(err, "failed to scan auth attempt keys")
	}

	return total, nil
}

// NewRedisAuthAttemptRepository creates a Redis attempt log. A zero ttl disables expiry.
func NewRedisAuthAttemptRepository(
	client redis.UniversalClient,
	prefix string,
	ttl time.Duration,
) *RedisAuthAttemptRepository {
	if prefix == "" {
		prefix = DefaultRedisKeyPrefix
	}
	return &RedisAuthAttemptRepository{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}
