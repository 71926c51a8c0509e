// Copyright (c) 2026 Communia. All rights reserved.
// Author: dev@communia.app

package session

import (
	"context"
	"errors"
)

// ErrTooManyAttempts is returned by [AttemptLimiter.Reserve] when a client
// has exhausted its failed-login budget for the current window.
var ErrTooManyAttempts = errors.New("session: too many login attempts")

// ProfileRepository defines the data access contract for admin profiles.
//
// # Implementations
//
// The canonical implementation is PostgreSQL ([PostgresProfileRepository]).
type ProfileRepository interface {
	// FindBySubject returns the profile owned by the given identity
	// provider subject.
	//
	// Returns [apperr.NotFound] when the subject has no admin profile —
	// the caller maps this to "authenticated but not authorized".
	FindBySubject(ctx context.Context, subjectID string) (*AdminProfile, error)
}

// AttemptLimiter throttles repeated login failures per client.
//
// # Semantics
//
// Reserve is called before each verification attempt and counts it against
// the window; Clear resets the counter after a successful login so a
// legitimate user who fat-fingered a password twice is not locked out
// after signing in.
type AttemptLimiter interface {
	// Reserve records one attempt for key. Returns [ErrTooManyAttempts]
	// when the budget is exhausted.
	Reserve(ctx context.Context, key string) error

	// Clear drops the counter for key.
	Clear(ctx context.Context, key string) error
}
