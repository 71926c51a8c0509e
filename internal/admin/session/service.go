// Copyright (c) 2026 Communia. All rights reserved.
// Author: dev@communia.app

package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/communia-hq/communia/internal/authz"
	"github.com/communia-hq/communia/internal/identity"
	"github.com/communia-hq/communia/internal/platform/apperr"
	"github.com/communia-hq/communia/internal/platform/constants"
)

// Service implements the session issuer use cases.
//
// # Review Process
//
// This service is the only code path that can mint an admin credential.
// Any change to the login flow must be reviewed with the same care as the
// access gate itself.
type Service struct {
	provider        identity.Provider
	profiles        ProfileRepository
	limiter         AttemptLimiter
	sessionTTL      time.Duration
	providerTimeout time.Duration
}

// NewService constructs a session issuer with its dependencies.
//
// sessionTTL bounds the cookie lifetime when the provider does not report
// an artifact expiry; zero falls back to [constants.DefaultAdminSessionTTL].
func NewService(provider identity.Provider, profiles ProfileRepository, limiter AttemptLimiter, sessionTTL time.Duration) *Service {
	if sessionTTL <= 0 {
		sessionTTL = constants.DefaultAdminSessionTTL
	}
	return &Service{
		provider:        provider,
		profiles:        profiles,
		limiter:         limiter,
		sessionTTL:      sessionTTL,
		providerTimeout: constants.IdentityCallTimeout,
	}
}

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email     string
	Password  string
	IPAddress string
}

/*
Login authenticates a caller and mints the admin session credential.

Description: Throttles by client, delegates password verification to the
identity provider under a deadline, loads the admin profile, and issues
the credential the access gate consumes.

Parameters:
  - ctx: context.Context
  - input: LoginInput

Returns:
  - *IssuedSession: Credential, profile, and provider artifact
  - error: ValidationError (missing fields), Unauthorized (bad
    credentials, collapsed so email existence never leaks), Forbidden
    (authenticated but no admin profile), RateLimited, or internal failures
*/
func (service *Service) Login(ctx context.Context, input LoginInput) (*IssuedSession, error) {

	// Both fields are mandatory. The handler validates too, but the issuer
	// is the contract holder and cannot rely on its callers.
	if strings.TrimSpace(input.Email) == "" || input.Password == "" {
		return nil, apperr.ValidationError("Email and password are required")
	}

	// Throttle failed attempts per client before touching the provider.
	throttleKey := input.IPAddress + "|" + strings.ToLower(input.Email)
	if err := service.limiter.Reserve(ctx, throttleKey); err != nil {
		if errors.Is(err, ErrTooManyAttempts) {
			return nil, apperr.RateLimited(int(constants.DefaultLoginAttemptWindow.Seconds()))
		}
		// The throttle is advisory: a Redis outage must not lock every
		// administrator out.
	}

	// The provider call is the only blocking I/O with an unbounded peer;
	// cap it so a hung provider cannot stall the request.
	providerCtx, cancel := context.WithTimeout(ctx, service.providerTimeout)
	defer cancel()

	verified, err := service.provider.VerifyPassword(providerCtx, input.Email, input.Password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			// Generic message: wrong password and unknown email are
			// deliberately indistinguishable.
			return nil, apperr.Unauthorized("Invalid login credentials")
		}
		return nil, fmt.Errorf("session_service_verify_failed: %w", err)
	}

	// Authenticated — but is the caller an administrator?
	profile, err := service.profiles.FindBySubject(ctx, verified.SubjectID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperr.Forbidden("This account is not registered as an administrator")
		}
		return nil, fmt.Errorf("session_service_profile_lookup_failed: %w", err)
	}

	// Successful login resets the client's failure budget.
	_ = service.limiter.Clear(ctx, throttleKey)

	now := time.Now()
	expiresAt := verified.ExpiresAt
	if expiresAt.IsZero() {
		expiresAt = now.Add(service.sessionTTL)
	}

	return &IssuedSession{
		Profile: profile,
		Credential: authz.SessionCredential{
			Role:      profile.Role,
			SubjectID: profile.SubjectID,
			IssuedAt:  now.Unix(),
		},
		Artifact:  verified.Artifact,
		ExpiresAt: expiresAt,
	}, nil
}

/*
Logout revokes the identity provider's session artifact.

Description: Best effort and idempotent — an absent or already-revoked
artifact is a successful logout. The credential cookie itself is cleared
by the HTTP layer.

Parameters:
  - ctx: context.Context
  - artifact: string

Returns:
  - error: Provider outage only
*/
func (service *Service) Logout(ctx context.Context, artifact string) error {
	if artifact == "" {
		return nil
	}

	providerCtx, cancel := context.WithTimeout(ctx, service.providerTimeout)
	defer cancel()

	if err := service.provider.Revoke(providerCtx, artifact); err != nil {
		return fmt.Errorf("session_service_revoke_failed: %w", err)
	}

	return nil
}

// isNotFound reports whether err is an [apperr.AppError] with 404 status.
func isNotFound(err error) bool {
	appError := apperr.As(err)
	return appError != nil && appError.HTTPStatus == http.StatusNotFound
}
