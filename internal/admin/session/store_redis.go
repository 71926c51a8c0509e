// Copyright (c) 2026 Communia. All rights reserved.
// Author: dev@communia.app

package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/communia-hq/communia/internal/platform/constants"
)

// RedisAttemptLimiter implements [AttemptLimiter] with a counter-per-key
// and a TTL window in Redis.
type RedisAttemptLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

// NewAttemptLimiter creates a Redis-backed login throttle.
//
// # Parameters
//   - client: Shared Redis client.
//   - limit: Attempts allowed inside one window.
//   - window: Sliding window duration; the counter expires with it.
func NewAttemptLimiter(client *redis.Client, limit int, window time.Duration) *RedisAttemptLimiter {
	return &RedisAttemptLimiter{client: client, limit: limit, window: window}
}

/*
Reserve counts one attempt against the key's window.

Description: INCR the counter and stamp the TTL when the counter is fresh.
The check happens after the increment so concurrent attempts cannot sneak
under the limit.

Parameters:
  - ctx: context.Context
  - key: string (client identity, e.g. "ip|email")

Returns:
  - error: ErrTooManyAttempts when over budget, or execution errors
*/
func (limiter *RedisAttemptLimiter) Reserve(ctx context.Context, key string) error {
	redisKey := constants.RedisPrefixLoginAttempts + key

	count, err := limiter.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return fmt.Errorf("redis_attempt_limiter_incr_failed: %w", err)
	}

	// First attempt in a window owns the expiry stamp.
	if count == 1 {
		if err := limiter.client.Expire(ctx, redisKey, limiter.window).Err(); err != nil {
			return fmt.Errorf("redis_attempt_limiter_expire_failed: %w", err)
		}
	}

	if count > int64(limiter.limit) {
		return ErrTooManyAttempts
	}

	return nil
}

/*
Clear drops the counter for a key after a successful login.

Parameters:
  - ctx: context.Context
  - key: string

Returns:
  - error: Execution errors
*/
func (limiter *RedisAttemptLimiter) Clear(ctx context.Context, key string) error {
	redisKey := constants.RedisPrefixLoginAttempts + key

	if err := limiter.client.Del(ctx, redisKey).Err(); err != nil {
		return fmt.Errorf("redis_attempt_limiter_clear_failed: %w", err)
	}

	return nil
}
