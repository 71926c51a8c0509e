// Copyright (c) 2026 Communia. All rights reserved.
// Author: dev@communia.app

/*
Package identity abstracts the external authentication system of record.

Communia does not verify passwords, hash credentials, or issue provider
sessions itself — that is the identity provider's job. This package defines
the narrow contract the session issuer consumes, plus two implementations:

  - [HostedProvider]: HTTP client for the managed auth service (production).
  - [LocalProvider]: PostgreSQL + bcrypt verification (development, tests).

The access gate never touches this package; only the session issuer calls
it, always under a context deadline.
*/
package identity

import (
	"context"
	"errors"
	"time"
)

// ErrInvalidCredentials is returned for every verification failure the
// caller is allowed to see. Unknown email and wrong password collapse into
// this one error so account existence never leaks.
var ErrInvalidCredentials = errors.New("identity: invalid credentials")

// VerifiedIdentity is the provider's answer to a successful password check.
type VerifiedIdentity struct {
	// SubjectID is the provider's stable identifier for the account.
	SubjectID string

	// Email as registered with the provider.
	Email string

	// Artifact is the provider-issued session artifact. Opaque to callers;
	// it is returned to the client and presented back for revocation.
	Artifact string

	// ExpiresAt is the artifact expiry, or zero when the provider did not
	// report one.
	ExpiresAt time.Time
}

// Provider is the external system of record for authentication.
//
// # Contract
//
// Implementations must honor ctx cancellation: the session issuer wraps
// every call in a deadline so a hung provider cannot stall request handling.
type Provider interface {
	// VerifyPassword checks an email/password pair.
	//
	// Returns [ErrInvalidCredentials] for any rejection — wrong password and
	// unregistered email must be indistinguishable. Other errors indicate
	// provider unavailability, not a verdict on the credentials.
	VerifyPassword(ctx context.Context, email, password string) (*VerifiedIdentity, error)

	// Revoke invalidates a previously issued session artifact. Revoking an
	// unknown or already-revoked artifact is not an error.
	Revoke(ctx context.Context, artifact string) error
}
