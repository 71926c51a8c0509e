// Copyright (c) 2026 Communia. All rights reserved.
// Author: dev@communia.app

// Package ctxutil provides helpers for interacting with values stored in [context.Context].
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/communia-hq/communia/internal/authz"
	"github.com/communia-hq/communia/internal/platform/ctxkey"
)

// # Request Tracing

// WithRequestID returns a new context with the provided request ID attached.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID retrieves the request ID from the context.
// Returns an empty string if not found.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeyRequestID).(string)
	return id
}

// # Structured Logging

// WithLogger returns a new context with the provided logger attached.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger retrieves the logger from the context.
// If no logger is found, it returns the global default logger.
func GetLogger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return logger
}

// # Admin Identity

// WithAdminSession returns a new context with the validated session
// credential attached. Only the access gate writes this value, and only
// after the credential has passed structural validation.
func WithAdminSession(ctx context.Context, credential *authz.SessionCredential) context.Context {
	return context.WithValue(ctx, ctxkey.KeySession, credential)
}

// GetAdminSession retrieves the validated [*authz.SessionCredential]
// from the context. Returns nil for anonymous requests.
func GetAdminSession(ctx context.Context) *authz.SessionCredential {
	credential, ok := ctx.Value(ctxkey.KeySession).(*authz.SessionCredential)
	if !ok {
		return nil
	}
	return credential
}
