// Copyright (c) 2026 Communia. All rights reserved.
// Author: dev@communia.app

package authz

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// maxCredentialSize caps the raw credential length accepted by the decoder.
// A legitimate credential is well under 200 bytes; anything larger is
// rejected before base64 or JSON work is attempted.
const maxCredentialSize = 4096

// ErrMalformedCredential is the sentinel wrapped by every decode failure.
//
// The gate treats any decode error as "no session"; the sentinel exists so
// tests and log enrichment can distinguish malformed input from other errors.
var ErrMalformedCredential = errors.New("authz: malformed session credential")

// SessionCredential is the client-held, server-issued token asserting an
// admin identity and role. It is minted once at login and re-validated on
// every protected request.
//
// # Wire Format
//
// A JSON object encoded with URL-safe base64 (no padding), carried in a
// cookie. IssuedAt is Unix seconds so the encode→decode round trip is
// lossless across clients and clock representations.
type SessionCredential struct {
	Role      Role   `json:"role"`
	SubjectID string `json:"subject_id"`
	IssuedAt  int64  `json:"issued_at"`
}

// Issued returns the credential's issue time as a [time.Time].
func (credential SessionCredential) Issued() time.Time {
	return time.Unix(credential.IssuedAt, 0)
}

// EncodeCredential serializes a credential into its URL-safe wire form.
func EncodeCredential(credential SessionCredential) (string, error) {
	payload, err := json.Marshal(credential)
	if err != nil {
		return "", fmt.Errorf("authz: failed to encode credential: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(payload), nil
}

// DecodeCredential parses and structurally validates a raw credential.
//
// # Security
//
// The input is untrusted: it arrives straight from a client cookie. Every
// failure mode (oversized input, bad base64, bad JSON, wrong field types,
// missing subject, unknown role, absent or non-positive issue time) returns
// an error wrapping [ErrMalformedCredential] — never a panic.
//
// Validation goes beyond "does it parse": each field is checked after
// decoding, so a syntactically valid JSON object with a fabricated role
// string is rejected the same way as garbage bytes.
func DecodeCredential(raw []byte) (*SessionCredential, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrMalformedCredential)
	}
	if len(raw) > maxCredentialSize {
		return nil, fmt.Errorf("%w: input exceeds %d bytes", ErrMalformedCredential, maxCredentialSize)
	}

	payload, err := base64.RawURLEncoding.DecodeString(string(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid encoding", ErrMalformedCredential)
	}

	credential := &SessionCredential{}
	if err := json.Unmarshal(payload, credential); err != nil {
		return nil, fmt.Errorf("%w: invalid structure", ErrMalformedCredential)
	}

	// Structural validation: parse success alone is not trust.
	if credential.SubjectID == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrMalformedCredential)
	}
	if !credential.Role.Known() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrMalformedCredential, credential.Role)
	}
	if credential.IssuedAt <= 0 {
		return nil, fmt.Errorf("%w: missing issue time", ErrMalformedCredential)
	}

	return credential, nil
}
