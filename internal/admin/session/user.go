// Copyright (c) 2026 Communia. All rights reserved.
// Author: dev@communia.app

/*
Package session implements the admin session issuer.

It is the upstream counterpart of the access gate: it authenticates a
caller against the identity provider, loads the caller's admin profile,
and mints the session credential that [authz.Gate] re-validates on every
protected request.

Architecture:

  - Service: Orchestrates login/logout business logic.
  - Repository: Abstracted interfaces for Postgres (profiles) and Redis
    (login throttling).
  - Identity: Delegated entirely to [identity.Provider]; this package never
    sees a password hash.
*/
package session

import (
	"time"

	"github.com/communia-hq/communia/internal/authz"
)

// AdminProfile links an authenticated subject to an administrative role.
//
// # Rules
//   - SubjectID is the identity provider's stable account identifier and
//     is unique across profiles.
//   - Role is one of the enumerated [authz.Role] levels.
//   - A subject without a profile row is authenticated but NOT an admin.
type AdminProfile struct {
	ID          string     `json:"id"`
	SubjectID   string     `json:"subject_id"`
	Email       string     `json:"email"`
	DisplayName string     `json:"display_name"`
	Role        authz.Role `json:"role"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// IssuedSession is the outcome of a successful login.
//
// The Credential is what the access gate later consumes; the Artifact is
// the identity provider's own session token, passed through to the client
// for provider-side operations (refresh, revocation).
type IssuedSession struct {
	Profile    *AdminProfile
	Credential authz.SessionCredential
	Artifact   string
	ExpiresAt  time.Time
}
