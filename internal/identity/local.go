// Copyright (c) 2026 Communia. All rights reserved.
// Author: dev@communia.app

package identity

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// localArtifactTTL is the lifetime reported for locally issued artifacts.
const localArtifactTTL = 12 * time.Hour

// LocalProvider verifies credentials against the admin_users table.
//
// # Scope
//
// Development and test environments only. It keeps the same [Provider]
// contract as the hosted service so the session issuer cannot tell them
// apart, but issues throwaway random artifacts and tracks nothing.
type LocalProvider struct {
	pool *pgxpool.Pool
}

// NewLocalProvider constructs a database-backed provider.
func NewLocalProvider(pool *pgxpool.Pool) *LocalProvider {
	return &LocalProvider{pool: pool}
}

/*
VerifyPassword implements [Provider] with a bcrypt comparison.

Description: Looks up the account by lowercased email and compares the
stored hash in constant time. A missing row and a failed comparison return
the identical error.

Parameters:
  - ctx: context.Context
  - email: string
  - password: string

Returns:
  - *VerifiedIdentity: Subject, email, and a fresh random artifact
  - error: ErrInvalidCredentials or database errors
*/
func (provider *LocalProvider) VerifyPassword(ctx context.Context, email, password string) (*VerifiedIdentity, error) {
	const query = `
		SELECT id, email, password_hash
		FROM admin_users
		WHERE email = lower($1)`

	var (
		subjectID    string
		storedEmail  string
		passwordHash string
	)

	err := provider.pool.QueryRow(ctx, query, email).Scan(&subjectID, &storedEmail, &passwordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Same error as a bad password: existence must not leak.
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("identity: local lookup failed: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	artifact, err := randomArtifact()
	if err != nil {
		return nil, fmt.Errorf("identity: failed to issue local artifact: %w", err)
	}

	return &VerifiedIdentity{
		SubjectID: subjectID,
		Email:     storedEmail,
		Artifact:  artifact,
		ExpiresAt: time.Now().Add(localArtifactTTL),
	}, nil
}

// Revoke implements [Provider]. Local artifacts are not tracked, so there
// is nothing to revoke; the call succeeds to satisfy the contract.
func (provider *LocalProvider) Revoke(ctx context.Context, artifact string) error {
	return nil
}

// randomArtifact returns 32 bytes of hex-encoded randomness.
func randomArtifact() (string, error) {
	buffer := make([]byte, 32)
	if _, err := rand.Read(buffer); err != nil {
		return "", err
	}
	return hex.EncodeToString(buffer), nil
}
