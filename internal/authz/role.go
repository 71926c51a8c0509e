// Copyright (c) 2026 Communia. All rights reserved.
// Author: dev@communia.app

/*
Package authz implements the admin access-control core for Communia.

Every request aimed at the admin surface passes through this package before
any protected handler runs. It answers three questions, in order:

  - Is this path protected at all, and at what level? ([Classifier])
  - Does the request carry a structurally valid session credential? ([DecodeCredential])
  - Is the credential's role sufficient for the path? ([Gate])

Architecture:

  - Pure computation only. The gate performs no I/O and holds no mutable
    state, so it runs inline on every request with no locking.
  - Every failure on untrusted input downgrades to a [Decision]; there is
    no error or panic path out of [Gate.Authorize].
*/
package authz

// Role represents an ordered admin privilege level.
//
// # Usage
//
// Roles compare via [Role.AtLeast] — a total order, never direct equality —
// so adding an intermediate level requires no change to gate logic.
type Role string

const (
	// Full control, including administrator account management.
	RoleSuperAdmin Role = "super_admin"

	// Day-to-day content management access.
	RoleAdmin Role = "admin"
)

// AtLeast checks if the current role meets or exceeds the required target role.
func (r Role) AtLeast(target Role) bool {
	return r.level() >= target.level()
}

// Known reports whether the role is one of the enumerated privilege levels.
//
// Credentials carrying an unknown role are rejected during structural
// validation rather than silently treated as level zero.
func (r Role) Known() bool {
	return r.level() > 0
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r Role) level() int {

	// Linear scale (10-20) leaves room for future intermediate roles
	switch r {
	case RoleSuperAdmin:
		return 20
	case RoleAdmin:
		return 10
	default:
		return 0
	}
}
