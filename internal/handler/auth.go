package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/auth-service/internal/apperror"
	"github.com/sakif/auth-service/internal/auth"
	"github.com/sakif/auth-service/internal/model"
	"github.com/sakif/auth-service/internal/service"
)

// authResponse is the success body for register and login:
// a signed bearer token plus the public user projection.
type authResponse struct {
	Token string           `json:"token"`
	User  model.PublicUser `json:"user"`
}

// AuthHandler wraps the AuthService for the HTTP boundary.
//
// Responsibilities:
//   - HandleRegister → validate body, register, sign token, 201
//   - HandleLogin    → validate body, verify credentials, sign token, 200
//   - HandleMe       → return the authenticated user's profile
//
// Token signing happens HERE, not in the service: the signing secret and
// algorithm belong to the HTTP boundary, and the service stays testable
// without a live key. The service returns AuthResult with an empty token
// and the handler overwrites it after signing.
type AuthHandler struct {
	service *service.AuthService
	tokens  *auth.TokenService
	logger  *slog.Logger
}

// NewAuthHandler creates an AuthHandler. All dependencies are injected;
// the handler has no knowledge of how they're constructed.
func NewAuthHandler(
	service *service.AuthService,
	tokens *auth.TokenService,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		service: service,
		tokens:  tokens,
		logger:  logger,
	}
}

// HandleRegister creates a new account.
//
// HTTP: POST /auth/register
// Body: {"email": "...", "password": "...", "name": "..."}
//
// Responses:
//   - 201 {token, user:{id,email,name}} on success
//   - 400 {error} for validation failures and duplicate emails
//   - 500 {error:"Internal server error"} for anything without a safe message
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeBody(r, &req); err != nil {
		writeAppError(w, err, http.StatusBadRequest)
		return
	}
	if err := req.validate(); err != nil {
		writeAppError(w, err, http.StatusBadRequest)
		return
	}

	result, err := h.service.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		if !isAppError(err) {
			h.logger.Error("register failed", slog.String("error", err.Error()))
		}
		writeAppError(w, err, http.StatusBadRequest)
		return
	}

	token, err := h.tokens.Generate(result.User.ID, result.User.Email)
	if err != nil {
		h.logger.Error("register: token signing failed", slog.String("error", err.Error()))
		writeAppError(w, err, http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{Token: token, User: result.User})
}

// HandleLogin verifies credentials and issues a token.
//
// HTTP: POST /auth/login
// Body: {"email": "...", "password": "..."}
//
// Responses:
//   - 200 {token, user:{id,email,name}} on success
//   - 401 {error} for validation failures and bad credentials — every
//     message-bearing failure on this path is a 401, so unknown email and
//     wrong password are indistinguishable
//   - 500 {error:"Internal server error"} otherwise
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		writeAppError(w, err, http.StatusUnauthorized)
		return
	}
	if err := req.validate(); err != nil {
		writeAppError(w, err, http.StatusUnauthorized)
		return
	}

	result, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if !isAppError(err) {
			h.logger.Error("login failed", slog.String("error", err.Error()))
		}
		writeAppError(w, err, http.StatusUnauthorized)
		return
	}

	token, err := h.tokens.Generate(result.User.ID, result.User.Email)
	if err != nil {
		h.logger.Error("login: token signing failed", slog.String("error", err.Error()))
		writeAppError(w, err, http.StatusUnauthorized)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{Token: token, User: result.User})
}

// HandleMe returns the authenticated user's profile.
//
// HTTP: GET /auth/me
// Auth: required — RequireAuth has already validated the bearer token and
// put the userID in the context.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		// Unreachable behind RequireAuth, but don't assume the wiring.
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Invalid or missing token"})
		return
	}

	user, err := h.service.GetUserByID(r.Context(), userID)
	if err != nil {
		h.logger.Error("me: user lookup failed",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
		writeAppError(w, err, http.StatusUnauthorized)
		return
	}

	writeJSON(w, http.StatusOK, map[string]model.PublicUser{"user": user})
}

// isAppError reports whether err carries a user-facing message.
func isAppError(err error) bool {
	var appErr *apperror.AppError
	return errors.As(err, &appErr)
}
