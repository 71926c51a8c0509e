// Copyright (c) 2026 Communia. All rights reserved.
// Author: dev@communia.app

package authz_test

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/communia-hq/communia/internal/authz"
)

/*
TestCredential_RoundTrip verifies that encode→decode is lossless for role,
subject, and issue time.
*/
func TestCredential_RoundTrip(t *testing.T) {
	original := authz.SessionCredential{
		Role:      authz.RoleSuperAdmin,
		SubjectID: "b3b9f0aa-1c24-4e1d-9d9e-6f1f0c9a2b41",
		IssuedAt:  1767225600,
	}

	encoded, err := authz.EncodeCredential(original)
	require.NoError(t, err)

	// The wire form must be URL-safe: cookie values cannot carry '+' or '/'.
	assert.NotContains(t, encoded, "+")
	assert.NotContains(t, encoded, "/")
	assert.NotContains(t, encoded, "=")

	decoded, err := authz.DecodeCredential([]byte(encoded))
	require.NoError(t, err)
	assert.Equal(t, original, *decoded)
}

/*
TestCredential_DecodeMalformed verifies that every malformed payload yields
an [authz.ErrMalformedCredential] error and never a panic. The decoder is
the single point where untrusted client bytes are interpreted.
*/
func TestCredential_DecodeMalformed(t *testing.T) {
	validJSON := func(body string) string {
		return base64.RawURLEncoding.EncodeToString([]byte(body))
	}

	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"not_base64", "%%not-base64%%"},
		{"base64_of_garbage", validJSON("not json at all")},
		{"truncated_json", validJSON(`{"role":"admin","subject_id"`)},
		{"json_array", validJSON(`["admin"]`)},
		{"json_scalar", validJSON(`"admin"`)},
		{"wrong_role_type", validJSON(`{"role":42,"subject_id":"s","issued_at":1}`)},
		{"wrong_subject_type", validJSON(`{"role":"admin","subject_id":7,"issued_at":1}`)},
		{"wrong_issued_type", validJSON(`{"role":"admin","subject_id":"s","issued_at":"now"}`)},
		{"missing_subject", validJSON(`{"role":"admin","issued_at":1}`)},
		{"empty_subject", validJSON(`{"role":"admin","subject_id":"","issued_at":1}`)},
		{"unknown_role", validJSON(`{"role":"owner","subject_id":"s","issued_at":1}`)},
		{"missing_issued_at", validJSON(`{"role":"admin","subject_id":"s"}`)},
		{"negative_issued_at", validJSON(`{"role":"admin","subject_id":"s","issued_at":-5}`)},
		{"oversized", strings.Repeat("A", 5000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			credential, err := authz.DecodeCredential([]byte(tt.raw))
			assert.Nil(t, credential)
			require.Error(t, err)
			assert.ErrorIs(t, err, authz.ErrMalformedCredential)
		})
	}
}

/*
TestCredential_DecodeValid verifies a well-formed payload decodes with all
fields intact, tolerating unknown extra fields for forward compatibility.
*/
func TestCredential_DecodeValid(t *testing.T) {
	payload := `{"role":"admin","subject_id":"subject-1","issued_at":1700000000,"extra":"ignored"}`
	raw := base64.RawURLEncoding.EncodeToString([]byte(payload))

	credential, err := authz.DecodeCredential([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, authz.RoleAdmin, credential.Role)
	assert.Equal(t, "subject-1", credential.SubjectID)
	assert.Equal(t, int64(1700000000), credential.IssuedAt)
	assert.Equal(t, int64(1700000000), credential.Issued().Unix())
}
