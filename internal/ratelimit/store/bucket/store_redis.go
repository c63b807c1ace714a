package bucket

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"loanrisk/internal/ratelimit/models"
)

// RedisBucketStore implements ports.BucketStore as a fixed window shared by
// every instance. Each window is one key: INCR counts the request and PEXPIRE
// starts the window when the key has no expiry yet.
type RedisBucketStore struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedisBucketStore constructs a Redis-backed store.
func NewRedisBucketStore(client *redis.Client) *RedisBucketStore {
	return &RedisBucketStore{client: client, now: time.Now}
}

// Allow increments the window counter for key and reports whether the
// request fits within limit.
func (s *RedisBucketStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.Result, error) {
	var incr *redis.IntCmd
	var ttl *redis.DurationCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		ttl = pipe.PTTL(ctx, key)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("redis rate limit %s: %w", key, err)
	}

	// PTTL is negative when the key has no expiry: this request opened the
	// window (or a previous PEXPIRE was lost).
	remainingTTL := ttl.Val()
	if remainingTTL <= 0 {
		if err := s.client.PExpire(ctx, key, window).Err(); err != nil {
			return nil, fmt.Errorf("redis rate limit %s: set window: %w", key, err)
		}
		remainingTTL = window
	}

	count := int(incr.Val())
	now := s.now()
	resetAt := now.Add(remainingTTL)

	if count <= limit {
		return &models.Result{
			Allowed:   true,
			Limit:     limit,
			Remaining: limit - count,
			ResetAt:   resetAt,
		}, nil
	}
	return &models.Result{
		Allowed:    false,
		Limit:      limit,
		Remaining:  0,
		ResetAt:    resetAt,
		RetryAfter: models.RetryAfterSeconds(now, resetAt),
	}, nil
}
