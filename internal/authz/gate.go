// Copyright (c) 2026 Communia. All rights reserved.
// Author: dev@communia.app

package authz

// Decision is the outcome of authorizing a request path.
//
// Every possible input — including hostile ones — resolves to exactly one
// of these three values. The gate has no error or panic path.
type Decision int

const (
	// Allow passes the request through to the next handler unchanged.
	Allow Decision = iota

	// RedirectToLogin sends the caller to the admin entry page. Used when
	// no usable session is present.
	RedirectToLogin

	// RedirectToDefault sends an authenticated-but-underprivileged caller
	// to the safe landing page (dashboard). They hold a valid session, so
	// bouncing them back to login would be both confusing and wrong.
	RedirectToDefault
)

// String returns the decision name for structured logging.
func (decision Decision) String() string {
	switch decision {
	case Allow:
		return "allow"
	case RedirectToLogin:
		return "redirect_to_login"
	case RedirectToDefault:
		return "redirect_to_default"
	default:
		return "unknown"
	}
}

// Reason identifies why a non-Allow decision was made.
//
// # Usage
//
// Reasons exist for log enrichment only. Absent and malformed sessions
// both redirect to login with no distinct user-visible message; callers
// must never branch client-facing behavior on the reason.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonNoSession
	ReasonMalformedSession
	ReasonInsufficientRole
)

// String returns the reason name for structured logging.
func (reason Reason) String() string {
	switch reason {
	case ReasonNoSession:
		return "no_session"
	case ReasonMalformedSession:
		return "malformed_session"
	case ReasonInsufficientRole:
		return "insufficient_role"
	default:
		return "none"
	}
}

// Verdict bundles the gate's decision with its internal reason and, when a
// structurally valid credential was presented, the decoded credential so
// downstream handlers can reuse the identity without re-parsing the cookie.
type Verdict struct {
	Decision   Decision
	Reason     Reason
	Credential *SessionCredential
}

// Gate is the request-scoped authorization core.
//
// # Concurrency
//
// A Gate holds only an immutable [Classifier], performs no I/O, and keeps
// no per-request state. One instance serves all concurrent requests.
type Gate struct {
	classifier *Classifier
}

// NewGate constructs a Gate over the given classifier.
func NewGate(classifier *Classifier) *Gate {
	return &Gate{classifier: classifier}
}

// Authorize decides whether a request for path, carrying rawCredential
// (nil when the client presented none), may proceed.
//
// # Flow
//  1. Bypass allow-list (API, assets, public entry points) → Allow.
//  2. Classify the path → public paths Allow regardless of credential.
//  3. Absent credential → RedirectToLogin.
//  4. Defensive decode; any malformed input → RedirectToLogin.
//  5. Role comparison via the total order → Allow or RedirectToDefault.
func (gate *Gate) Authorize(path string, rawCredential []byte) Verdict {

	// ── 1. Pre-check allow-list ───────────────────────────────────────────
	if gate.classifier.Bypassed(path) {
		return Verdict{Decision: Allow}
	}

	// ── 2. Classification ─────────────────────────────────────────────────
	requiredRole, protected := gate.classifier.Classify(path)
	if !protected {
		return Verdict{Decision: Allow}
	}

	// ── 3. Credential Presence ────────────────────────────────────────────
	if len(rawCredential) == 0 {
		return Verdict{Decision: RedirectToLogin, Reason: ReasonNoSession}
	}

	// ── 4. Defensive Decode ───────────────────────────────────────────────
	credential, err := DecodeCredential(rawCredential)
	if err != nil {
		// Untrusted client input: downgrade to a decision, never fault.
		return Verdict{Decision: RedirectToLogin, Reason: ReasonMalformedSession}
	}

	// ── 5. Role Sufficiency ───────────────────────────────────────────────
	if !credential.Role.AtLeast(requiredRole) {
		return Verdict{
			Decision:   RedirectToDefault,
			Reason:     ReasonInsufficientRole,
			Credential: credential,
		}
	}

	return Verdict{Decision: Allow, Credential: credential}
}
