// Copyright (c) 2026 Communia. All rights reserved.
// Author: dev@communia.app

package session_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/communia-hq/communia/internal/admin/session"
	"github.com/communia-hq/communia/internal/authz"
	"github.com/communia-hq/communia/internal/identity"
	"github.com/communia-hq/communia/internal/platform/apperr"
)

// stubProvider implements identity.Provider with canned responses.
type stubProvider struct {
	identity  *identity.VerifiedIdentity
	verifyErr error
	revokeErr error

	verifyCalls int
	revoked     []string
}

func (p *stubProvider) VerifyPassword(_ context.Context, _, _ string) (*identity.VerifiedIdentity, error) {
	p.verifyCalls++
	if p.verifyErr != nil {
		return nil, p.verifyErr
	}
	return p.identity, nil
}

func (p *stubProvider) Revoke(_ context.Context, artifact string) error {
	p.revoked = append(p.revoked, artifact)
	return p.revokeErr
}

// stubProfiles implements session.ProfileRepository over a map.
type stubProfiles struct {
	profiles map[string]*session.AdminProfile
	err      error
}

func (r *stubProfiles) FindBySubject(_ context.Context, subjectID string) (*session.AdminProfile, error) {
	if r.err != nil {
		return nil, r.err
	}
	profile, ok := r.profiles[subjectID]
	if !ok {
		return nil, apperr.NotFound("Admin profile")
	}
	return profile, nil
}

func adminProfile() *session.AdminProfile {
	return &session.AdminProfile{
		ID:          "3f7d7a1e-9c2a-4b8e-9a1f-0fd4c2b5e6a7",
		SubjectID:   "subject-42",
		Email:       "chair@communia.app",
		DisplayName: "Chair Person",
		Role:        authz.RoleAdmin,
	}
}

func verifiedIdentity() *identity.VerifiedIdentity {
	return &identity.VerifiedIdentity{
		SubjectID: "subject-42",
		Email:     "chair@communia.app",
		Artifact:  "provider-artifact",
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

// newLimiter backs the throttle with an in-process Redis.
func newLimiter(t *testing.T, limit int) *session.RedisAttemptLimiter {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return session.NewAttemptLimiter(client, limit, 15*time.Minute)
}

/*
TestService_Login_Success checks the happy path: verified credentials and
an existing profile produce a credential carrying the profile's role.
*/
func TestService_Login_Success(t *testing.T) {
	provider := &stubProvider{identity: verifiedIdentity()}
	profiles := &stubProfiles{profiles: map[string]*session.AdminProfile{
		"subject-42": adminProfile(),
	}}
	service := session.NewService(provider, profiles, newLimiter(t, 5), 12*time.Hour)

	issued, err := service.Login(context.Background(), session.LoginInput{
		Email:     "chair@communia.app",
		Password:  "correct horse",
		IPAddress: "203.0.113.9",
	})
	require.NoError(t, err)
	require.NotNil(t, issued)

	assert.Equal(t, authz.RoleAdmin, issued.Credential.Role)
	assert.Equal(t, "subject-42", issued.Credential.SubjectID)
	assert.Positive(t, issued.Credential.IssuedAt)
	assert.Equal(t, "provider-artifact", issued.Artifact)
	assert.WithinDuration(t, time.Now().Add(time.Hour), issued.ExpiresAt, 5*time.Second)
}

/*
TestService_Login_FallbackExpiry checks that a provider which reports no
artifact expiry still yields a bounded session.
*/
func TestService_Login_FallbackExpiry(t *testing.T) {
	verified := verifiedIdentity()
	verified.ExpiresAt = time.Time{}

	provider := &stubProvider{identity: verified}
	profiles := &stubProfiles{profiles: map[string]*session.AdminProfile{
		"subject-42": adminProfile(),
	}}
	service := session.NewService(provider, profiles, newLimiter(t, 5), 2*time.Hour)

	issued, err := service.Login(context.Background(), session.LoginInput{
		Email:    "chair@communia.app",
		Password: "correct horse",
	})
	require.NoError(t, err)

	assert.WithinDuration(t, time.Now().Add(2*time.Hour), issued.ExpiresAt, 5*time.Second)
}

/*
TestService_Login_MissingFields checks that empty credentials are rejected
before the provider is consulted.
*/
func TestService_Login_MissingFields(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"both_empty", "", ""},
		{"missing_password", "chair@communia.app", ""},
		{"missing_email", "", "secret"},
		{"whitespace_email", "   ", "secret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &stubProvider{identity: verifiedIdentity()}
			service := session.NewService(provider, &stubProfiles{}, newLimiter(t, 5), 0)

			_, err := service.Login(context.Background(), session.LoginInput{
				Email:    tt.email,
				Password: tt.password,
			})
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
			assert.Zero(t, provider.verifyCalls)
		})
	}
}

/*
TestService_Login_InvalidCredentials checks that wrong passwords collapse
to a generic 401 without leaking whether the email exists.
*/
func TestService_Login_InvalidCredentials(t *testing.T) {
	provider := &stubProvider{verifyErr: identity.ErrInvalidCredentials}
	service := session.NewService(provider, &stubProfiles{}, newLimiter(t, 5), 0)

	_, err := service.Login(context.Background(), session.LoginInput{
		Email:    "nobody@communia.app",
		Password: "wrong",
	})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusUnauthorized, ae.HTTPStatus)
	assert.Equal(t, "Invalid login credentials", ae.Message)
}

/*
TestService_Login_NoProfile checks that an authenticated subject without
an admin profile is forbidden, not unauthorized.
*/
func TestService_Login_NoProfile(t *testing.T) {
	provider := &stubProvider{identity: verifiedIdentity()}
	profiles := &stubProfiles{profiles: map[string]*session.AdminProfile{}}
	service := session.NewService(provider, profiles, newLimiter(t, 5), 0)

	_, err := service.Login(context.Background(), session.LoginInput{
		Email:    "chair@communia.app",
		Password: "correct horse",
	})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusForbidden, ae.HTTPStatus)
}

/*
TestService_Login_Throttled checks that repeated failures trip the limiter
and that the provider is no longer consulted once locked out.
*/
func TestService_Login_Throttled(t *testing.T) {
	provider := &stubProvider{verifyErr: identity.ErrInvalidCredentials}
	service := session.NewService(provider, &stubProfiles{}, newLimiter(t, 3), 0)

	input := session.LoginInput{
		Email:     "chair@communia.app",
		Password:  "wrong",
		IPAddress: "203.0.113.9",
	}

	for i := 0; i < 3; i++ {
		_, err := service.Login(context.Background(), input)
		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, apperr.As(err).HTTPStatus)
	}

	_, err := service.Login(context.Background(), input)
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusTooManyRequests, ae.HTTPStatus)
	assert.Equal(t, 3, provider.verifyCalls)
}

/*
TestService_Login_SuccessClearsThrottle checks that a successful login
resets the failure budget for the same client.
*/
func TestService_Login_SuccessClearsThrottle(t *testing.T) {
	limiter := newLimiter(t, 3)
	profiles := &stubProfiles{profiles: map[string]*session.AdminProfile{
		"subject-42": adminProfile(),
	}}

	input := session.LoginInput{
		Email:     "chair@communia.app",
		Password:  "pw",
		IPAddress: "203.0.113.9",
	}

	failing := session.NewService(&stubProvider{verifyErr: identity.ErrInvalidCredentials}, profiles, limiter, 0)
	for i := 0; i < 2; i++ {
		_, err := failing.Login(context.Background(), input)
		require.Error(t, err)
	}

	succeeding := session.NewService(&stubProvider{identity: verifiedIdentity()}, profiles, limiter, 0)
	_, err := succeeding.Login(context.Background(), input)
	require.NoError(t, err)

	// The budget is fresh again: two more failures stay under the limit.
	for i := 0; i < 2; i++ {
		_, err := failing.Login(context.Background(), input)
		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, apperr.As(err).HTTPStatus)
	}
}

/*
TestService_Login_ProviderOutage checks that a non-credential provider
failure surfaces as a wrapped internal error, not a 401.
*/
func TestService_Login_ProviderOutage(t *testing.T) {
	provider := &stubProvider{verifyErr: errors.New("connection refused")}
	service := session.NewService(provider, &stubProfiles{}, newLimiter(t, 5), 0)

	_, err := service.Login(context.Background(), session.LoginInput{
		Email:    "chair@communia.app",
		Password: "pw",
	})
	require.Error(t, err)
	assert.Nil(t, apperr.As(err))
	assert.Contains(t, err.Error(), "session_service_verify_failed")
}

/*
TestService_Logout covers revocation delegation and its idempotent cases.
*/
func TestService_Logout(t *testing.T) {
	t.Run("empty_artifact_is_noop", func(t *testing.T) {
		provider := &stubProvider{}
		service := session.NewService(provider, &stubProfiles{}, newLimiter(t, 5), 0)

		require.NoError(t, service.Logout(context.Background(), ""))
		assert.Empty(t, provider.revoked)
	})

	t.Run("delegates_to_provider", func(t *testing.T) {
		provider := &stubProvider{}
		service := session.NewService(provider, &stubProfiles{}, newLimiter(t, 5), 0)

		require.NoError(t, service.Logout(context.Background(), "artifact-1"))
		assert.Equal(t, []string{"artifact-1"}, provider.revoked)
	})

	t.Run("wraps_provider_failure", func(t *testing.T) {
		provider := &stubProvider{revokeErr: errors.New("boom")}
		service := session.NewService(provider, &stubProfiles{}, newLimiter(t, 5), 0)

		err := service.Logout(context.Background(), "artifact-1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "session_service_revoke_failed")
	})
}
