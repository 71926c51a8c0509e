// Copyright (c) 2026 Communia. All rights reserved.
// Author: dev@communia.app

package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/communia-hq/communia/internal/admin/session"
)

func limiterFixture(t *testing.T, limit int, window time.Duration) (*session.RedisAttemptLimiter, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return session.NewAttemptLimiter(client, limit, window), server
}

/*
TestAttemptLimiter_UnderLimit checks that attempts inside the budget pass.
*/
func TestAttemptLimiter_UnderLimit(t *testing.T) {
	limiter, _ := limiterFixture(t, 5, 15*time.Minute)

	for i := 0; i < 5; i++ {
		require.NoError(t, limiter.Reserve(context.Background(), "ip|user@example.com"))
	}
}

/*
TestAttemptLimiter_OverLimit checks that the attempt after the budget is
rejected and stays rejected.
*/
func TestAttemptLimiter_OverLimit(t *testing.T) {
	limiter, _ := limiterFixture(t, 2, 15*time.Minute)
	key := "ip|user@example.com"

	require.NoError(t, limiter.Reserve(context.Background(), key))
	require.NoError(t, limiter.Reserve(context.Background(), key))

	err := limiter.Reserve(context.Background(), key)
	assert.ErrorIs(t, err, session.ErrTooManyAttempts)

	err = limiter.Reserve(context.Background(), key)
	assert.ErrorIs(t, err, session.ErrTooManyAttempts)
}

/*
TestAttemptLimiter_KeysAreIndependent checks that one client's lockout
does not spill over to another.
*/
func TestAttemptLimiter_KeysAreIndependent(t *testing.T) {
	limiter, _ := limiterFixture(t, 1, 15*time.Minute)

	require.NoError(t, limiter.Reserve(context.Background(), "a|one@example.com"))
	assert.ErrorIs(t, limiter.Reserve(context.Background(), "a|one@example.com"), session.ErrTooManyAttempts)

	require.NoError(t, limiter.Reserve(context.Background(), "b|two@example.com"))
}

/*
TestAttemptLimiter_ClearResets checks that Clear drops the counter.
*/
func TestAttemptLimiter_ClearResets(t *testing.T) {
	limiter, _ := limiterFixture(t, 1, 15*time.Minute)
	key := "ip|user@example.com"

	require.NoError(t, limiter.Reserve(context.Background(), key))
	assert.ErrorIs(t, limiter.Reserve(context.Background(), key), session.ErrTooManyAttempts)

	require.NoError(t, limiter.Clear(context.Background(), key))
	require.NoError(t, limiter.Reserve(context.Background(), key))
}

/*
TestAttemptLimiter_WindowExpiry checks that the counter dies with its TTL
so lockouts are temporary.
*/
func TestAttemptLimiter_WindowExpiry(t *testing.T) {
	limiter, server := limiterFixture(t, 1, time.Minute)
	key := "ip|user@example.com"

	require.NoError(t, limiter.Reserve(context.Background(), key))
	assert.ErrorIs(t, limiter.Reserve(context.Background(), key), session.ErrTooManyAttempts)

	server.FastForward(time.Minute + time.Second)

	require.NoError(t, limiter.Reserve(context.Background(), key))
}
