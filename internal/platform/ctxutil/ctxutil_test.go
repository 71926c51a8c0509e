// Copyright (c) 2026 Communia. All rights reserved.
// Author: dev@communia.app

package ctxutil_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/communia-hq/communia/internal/authz"
	"github.com/communia-hq/communia/internal/platform/ctxutil"
)

/*
TestContext_RequestID verifies that Request IDs can be injected and retrieved.
*/
func TestContext_RequestID(t *testing.T) {
	ctx := context.Background()
	requestID := "test-request-id"

	// 1. Initially should be empty
	assert.Empty(t, ctxutil.GetRequestID(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithRequestID(ctx, requestID)
	assert.Equal(t, requestID, ctxutil.GetRequestID(ctx))
}

/*
TestContext_Logger verifies that a custom logger can be stored in context.
*/
func TestContext_Logger(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// 1. Initially should return the default logger
	assert.Equal(t, slog.Default(), ctxutil.GetLogger(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithLogger(ctx, logger)
	assert.Equal(t, logger, ctxutil.GetLogger(ctx))
}

/*
TestContext_AdminSession verifies that a validated credential can be stored
in context and that anonymous contexts return nil.
*/
func TestContext_AdminSession(t *testing.T) {
	ctx := context.Background()
	credential := &authz.SessionCredential{
		Role:      authz.RoleSuperAdmin,
		SubjectID: "subject-123",
		IssuedAt:  1700000000,
	}

	// 1. Initially should be nil
	assert.Nil(t, ctxutil.GetAdminSession(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithAdminSession(ctx, credential)
	retrieved := ctxutil.GetAdminSession(ctx)

	assert.NotNil(t, retrieved)
	assert.Equal(t, "subject-123", retrieved.SubjectID)
	assert.Equal(t, authz.RoleSuperAdmin, retrieved.Role)
}
