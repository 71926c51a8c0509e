// Copyright (c) 2026 Communia. All rights reserved.
// Author: dev@communia.app

package middleware

import (
	"log/slog"
	"net/http"

	"github.com/communia-hq/communia/internal/authz"
	"github.com/communia-hq/communia/internal/platform/constants"
	"github.com/communia-hq/communia/internal/platform/ctxutil"
)

// AdminGate enforces admin access control on every request it wraps.
//
// # Flow
//  1. Read the session cookie (absent cookie → nil credential).
//  2. Ask the [authz.Gate] for a verdict — pure computation, no I/O.
//  3. Map the decision onto HTTP: Allow passes through (with the validated
//     credential injected into context), RedirectToLogin bounces to the
//     admin entry page, RedirectToDefault bounces to the dashboard.
//
// # Usage
//
// Mount in front of the admin page surface. The gate itself decides which
// paths are protected; wrapping public paths is harmless.
func AdminGate(gate *authz.Gate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// ── 1. Credential Extraction ──────────────────────────────────────
			var rawCredential []byte
			if cookie, err := request.Cookie(constants.AdminSessionCookie); err == nil && cookie.Value != "" {
				rawCredential = []byte(cookie.Value)
			}

			// ── 2. Authorization ──────────────────────────────────────────────
			verdict := gate.Authorize(request.URL.Path, rawCredential)

			// ── 3. Decision → HTTP ────────────────────────────────────────────
			switch verdict.Decision {
			case authz.RedirectToLogin:
				logVerdict(request, verdict)
				http.Redirect(writer, request, constants.AdminLoginPath, http.StatusFound)

			case authz.RedirectToDefault:
				logVerdict(request, verdict)
				http.Redirect(writer, request, constants.AdminDefaultPath, http.StatusFound)

			default:
				if verdict.Credential != nil {
					ctx := ctxutil.WithAdminSession(request.Context(), verdict.Credential)
					request = request.WithContext(ctx)
				}
				next.ServeHTTP(writer, request)
			}
		})
	}
}

// logVerdict records a denied admin request. Reasons are internal detail:
// the client only ever sees a redirect.
func logVerdict(request *http.Request, verdict authz.Verdict) {
	ctxutil.GetLogger(request.Context()).InfoContext(request.Context(), "admin_access_denied",
		slog.String("decision", verdict.Decision.String()),
		slog.String("reason", verdict.Reason.String()),
	)
}
