// Copyright (c) 2026 Communia. All rights reserved.
// Author: dev@communia.app

package identity_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/communia-hq/communia/internal/identity"
)

// unsignedToken builds a syntactically valid JWT with the given exp claim.
// The signature is junk: the client reads claims without verification.
func unsignedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()

	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	payload := base64.RawURLEncoding.EncodeToString(
		[]byte(fmt.Sprintf(`{"sub":"subject-1","exp":%d}`, expiresAt.Unix())))
	return header + "." + payload + ".signature"
}

/*
TestHostedProvider_VerifyPassword covers the success path: token request,
response decoding, and artifact expiry extraction.
*/
func TestHostedProvider_VerifyPassword(t *testing.T) {
	expiresAt := time.Now().Add(1 * time.Hour).Truncate(time.Second)

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodPost, request.Method)
		assert.Equal(t, "/token", request.URL.Path)
		assert.Equal(t, "password", request.URL.Query().Get("grant_type"))
		assert.Equal(t, "test-api-key", request.Header.Get("apikey"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
		assert.Equal(t, "admin@communia.app", body["email"])

		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(map[string]any{
			"access_token": unsignedToken(t, expiresAt),
			"user": map[string]string{
				"id":    "subject-1",
				"email": "admin@communia.app",
			},
		})
	}))
	defer server.Close()

	provider := identity.NewHostedProvider(server.URL, "test-api-key")

	verified, err := provider.VerifyPassword(context.Background(), "admin@communia.app", "secret")
	require.NoError(t, err)
	assert.Equal(t, "subject-1", verified.SubjectID)
	assert.Equal(t, "admin@communia.app", verified.Email)
	assert.NotEmpty(t, verified.Artifact)
	assert.Equal(t, expiresAt.Unix(), verified.ExpiresAt.Unix())
}

/*
TestHostedProvider_InvalidCredentials verifies that every 4xx answer
collapses into ErrInvalidCredentials, whatever the provider's error body.
*/
func TestHostedProvider_InvalidCredentials(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden} {
		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(status)
			_, _ = writer.Write([]byte(`{"error":"invalid_grant","error_description":"user not found"}`))
		}))

		provider := identity.NewHostedProvider(server.URL, "key")
		verified, err := provider.VerifyPassword(context.Background(), "x@x.com", "bad")

		assert.Nil(t, verified)
		assert.ErrorIs(t, err, identity.ErrInvalidCredentials, "status %d", status)
		server.Close()
	}
}

/*
TestHostedProvider_ServerError verifies that a 5xx is reported as provider
unavailability, distinct from a credential verdict.
*/
func TestHostedProvider_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	provider := identity.NewHostedProvider(server.URL, "key")
	verified, err := provider.VerifyPassword(context.Background(), "a@b.com", "pw")

	assert.Nil(t, verified)
	require.Error(t, err)
	assert.NotErrorIs(t, err, identity.ErrInvalidCredentials)
}

/*
TestHostedProvider_ContextCancellation verifies the caller's deadline is
honored: a hung provider cannot stall the session issuer.
*/
func TestHostedProvider_ContextCancellation(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		<-release
	}))
	defer func() {
		close(release)
		server.Close()
	}()

	provider := identity.NewHostedProvider(server.URL, "key")

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := provider.VerifyPassword(ctx, "a@b.com", "pw")

	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}

/*
TestHostedProvider_Revoke verifies logout tolerance: 2xx and 4xx both count
as success, only provider failure (5xx) is an error.
*/
func TestHostedProvider_Revoke(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr bool
	}{
		{"revoked", http.StatusNoContent, false},
		{"already_gone", http.StatusNotFound, false},
		{"provider_down", http.StatusInternalServerError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, "/logout", request.URL.Path)
				assert.Equal(t, "Bearer artifact-1", request.Header.Get("Authorization"))
				writer.WriteHeader(tt.status)
			}))
			defer server.Close()

			provider := identity.NewHostedProvider(server.URL, "key")
			err := provider.Revoke(context.Background(), "artifact-1")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
