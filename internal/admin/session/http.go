// Copyright (c) 2026 Communia. All rights reserved.
// Author: dev@communia.app

package session

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/communia-hq/communia/internal/authz"
	"github.com/communia-hq/communia/internal/platform/constants"
	"github.com/communia-hq/communia/internal/platform/middleware"
	requestutil "github.com/communia-hq/communia/internal/platform/request"
	"github.com/communia-hq/communia/internal/platform/respond"
	"github.com/communia-hq/communia/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements the admin authentication HTTP endpoints.
type Handler struct {
	sessionService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{sessionService: service}
}

// Routes returns a [chi.Router] configured with the session endpoints.
//
// # Endpoints
//   - POST /login  : Authenticates and sets the admin session cookie.
//   - POST /logout : Clears the cookie and revokes the provider session.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/login", handler.login)
	router.Post("/logout", handler.logout)

	return router
}

// # Request Payloads

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

/*
Login authenticates an administrator and establishes a session.

POST /api/v1/auth/login

Description: Validates input, delegates verification to the identity
provider, and on success sets the HttpOnly session cookie the access gate
consumes on every subsequent admin request.

Request:
  - Body: loginRequest (Email, Password)

Response:
  - 200: Profile identifiers, role, and the provider's session artifact
  - 400: VALIDATION_ERROR: Missing email or password
  - 401: UNAUTHORIZED: Bad credentials (identical for unknown email)
  - 403: FORBIDDEN: Authenticated but not an administrator
  - 429: RATE_LIMITED: Too many failed attempts
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(constants.FieldEmail, input.Email).
		Required(constants.FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	issued, err := handler.sessionService.Login(request.Context(), LoginInput{
		Email:     input.Email,
		Password:  input.Password,
		IPAddress: middleware.RealIP(request),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	encoded, err := authz.EncodeCredential(issued.Credential)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Site-wide path: the gate must see this cookie on every admin page.
	// SameSite=Lax so top-level navigations to /admin/* still carry it.
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.AdminSessionCookie,
		Value:    encoded,
		Path:     "/",
		Expires:  issued.ExpiresAt,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	respond.OK(writer, map[string]any{
		"profile_id":               issued.Profile.ID,
		"subject_id":               issued.Profile.SubjectID,
		"email":                    issued.Profile.Email,
		"role":                     issued.Profile.Role,
		"name":                     issued.Profile.DisplayName,
		constants.FieldAccessToken: issued.Artifact,
	})
}

/*
Logout terminates the current admin session.

POST /api/v1/auth/logout

Description: Clears the session cookie and, when the caller presents the
provider artifact as a Bearer token, revokes it upstream. Always succeeds
from the client's point of view.

Response:
  - 204: No Content: Session terminated
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	if artifact := requestutil.BearerToken(request); artifact != "" {
		// Best effort: a provider hiccup must not keep the client "logged in".
		_ = handler.sessionService.Logout(request.Context(), artifact)
	}

	http.SetCookie(writer, &http.Cookie{
		Name:     constants.AdminSessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	respond.NoContent(writer)
}
