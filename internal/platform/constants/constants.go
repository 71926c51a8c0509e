// Copyright (c) 2026 Communia. All rights reserved.
// Author: dev@communia.app

/*
Package constants provides centralized, immutable values for the entire service.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Admin Access Control: Session cookie and redirect targets.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "communia-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Admin Access Control

const (
	// AdminSessionCookie carries the encoded admin session credential.
	// Scoped to the whole site so the gate sees it on every admin path.
	AdminSessionCookie = "admin_session"

	// AdminLoginPath is the admin entry page unauthenticated callers are
	// redirected to.
	AdminLoginPath = "/admin"

	// AdminDefaultPath is the safe landing page for authenticated callers
	// whose role is insufficient for the page they requested.
	AdminDefaultPath = "/admin/dashboard"

	// DefaultAdminSessionTTL bounds the session cookie lifetime when the
	// identity provider does not report an artifact expiry.
	DefaultAdminSessionTTL = 12 * time.Hour

	// IdentityCallTimeout caps a single identity-provider round trip. The
	// session issuer is the only component allowed to block on the provider;
	// a hung call must never leak into the access gate.
	IdentityCallTimeout = 10 * time.Second
)

// # Login Throttling

const (
	// DefaultLoginAttemptLimit is how many failed logins a single client
	// may accumulate inside the attempt window.
	DefaultLoginAttemptLimit = 5

	// DefaultLoginAttemptWindow is the sliding window for failed-login counting.
	DefaultLoginAttemptWindow = 15 * time.Minute

	// RedisPrefixLoginAttempts namespaces throttle counters in Redis.
	RedisPrefixLoginAttempts = "admin:login_attempts:"
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// # JSON Field Identifiers

const (
	FieldError       = "error"
	FieldCode        = "code"
	FieldMessage     = "message"
	FieldStatus      = "status"
	FieldChecks      = "checks"
	FieldAccessToken = "access_token"
)

// # Validation Field Names

const (
	FieldEmail    = "email"
	FieldPassword = "password"
)
