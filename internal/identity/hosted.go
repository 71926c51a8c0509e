// Copyright (c) 2026 Communia. All rights reserved.
// Author: dev@communia.app

package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// httpClientTimeout is a hard cap on a single provider round trip, layered
// under whatever deadline the caller's context carries.
const httpClientTimeout = 15 * time.Second

// HostedProvider talks to the managed auth service over HTTP.
//
// # Endpoints
//
//   - POST {base}/token?grant_type=password — password verification; returns
//     an access token and the account record.
//   - POST {base}/logout — revokes an access token.
type HostedProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHostedProvider constructs a client for the hosted auth service.
func NewHostedProvider(baseURL, apiKey string) *HostedProvider {
	return &HostedProvider{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: httpClientTimeout},
	}
}

// tokenResponse mirrors the provider's password-grant response body.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	User        struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

// VerifyPassword implements [Provider] against the hosted token endpoint.
//
// Any 4xx answer collapses into [ErrInvalidCredentials]; the provider's own
// error body is never surfaced to callers, let alone clients.
func (provider *HostedProvider) VerifyPassword(ctx context.Context, email, password string) (*VerifiedIdentity, error) {
	body, err := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, fmt.Errorf("identity: failed to encode token request: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost,
		provider.baseURL+"/token?grant_type=password", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("identity: failed to build token request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("apikey", provider.apiKey)

	response, err := provider.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("identity: token request failed: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, response.Body)
		_ = response.Body.Close()
	}()

	if response.StatusCode >= 400 && response.StatusCode < 500 {
		return nil, ErrInvalidCredentials
	}
	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("identity: provider returned status %d", response.StatusCode)
	}

	var token tokenResponse
	if err := json.NewDecoder(response.Body).Decode(&token); err != nil {
		return nil, fmt.Errorf("identity: failed to decode token response: %w", err)
	}
	if token.AccessToken == "" || token.User.ID == "" {
		return nil, fmt.Errorf("identity: incomplete token response")
	}

	return &VerifiedIdentity{
		SubjectID: token.User.ID,
		Email:     token.User.Email,
		Artifact:  token.AccessToken,
		ExpiresAt: artifactExpiry(token.AccessToken),
	}, nil
}

// Revoke implements [Provider] against the hosted logout endpoint.
func (provider *HostedProvider) Revoke(ctx context.Context, artifact string) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodPost,
		provider.baseURL+"/logout", nil)
	if err != nil {
		return fmt.Errorf("identity: failed to build logout request: %w", err)
	}
	request.Header.Set("Authorization", "Bearer "+artifact)
	request.Header.Set("apikey", provider.apiKey)

	response, err := provider.client.Do(request)
	if err != nil {
		return fmt.Errorf("identity: logout request failed: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, response.Body)
		_ = response.Body.Close()
	}()

	// Unknown or already-revoked artifacts are a success per the contract.
	if response.StatusCode >= 500 {
		return fmt.Errorf("identity: provider returned status %d on logout", response.StatusCode)
	}

	return nil
}

// artifactExpiry extracts the expiry claim from the provider's access token.
//
// The token is parsed WITHOUT signature verification: the provider signed
// it and the provider will verify it. Communia only needs the exp claim to
// size the session cookie lifetime. A token whose claims cannot be read
// simply yields a zero expiry and the caller falls back to its default TTL.
func artifactExpiry(artifact string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(artifact, claims); err != nil {
		return time.Time{}
	}

	expiry, err := claims.GetExpirationTime()
	if err != nil || expiry == nil {
		return time.Time{}
	}

	return expiry.Time
}
