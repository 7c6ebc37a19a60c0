// Package service contains the business logic layer.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses requests, signs tokens, writes responses
//	Service (business layer) → duplicate checks, credential verification
//	Repository (data layer)  → reads/writes the database
//
// The service knows nothing about HTTP, status codes, or JWTs. It returns
// domain errors (apperror) and lets the handler translate them. Keeping
// token signing out of this layer means it can be tested without a signing
// secret, and a different transport (gRPC, CLI) could reuse it unchanged.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sakif/auth-service/internal/apperror"
	"github.com/sakif/auth-service/internal/auth"
	"github.com/sakif/auth-service/internal/model"
	"github.com/sakif/auth-service/internal/repository"
)

// AuthService handles registration and credential verification.
//
// Dependencies are injected via NewAuthService:
//   - users     repository.UserRepository → account persistence
//   - passwords *auth.PasswordService     → bcrypt hashing
//   - logger    *slog.Logger              → structured logging
type AuthService struct {
	users     repository.UserRepository
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewAuthService creates an AuthService with all required dependencies.
// Called from the composition root in internal/server.
func NewAuthService(
	users repository.UserRepository,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		passwords: passwords,
		logger:    logger,
	}
}

// AuthResult is returned by Register and Login.
//
// Token is always empty at this layer — signing needs the JWT secret, which
// belongs to the HTTP boundary. The handler fills it in after a success.
type AuthResult struct {
	Token string
	User  model.PublicUser
}

// Register creates a new account.
//
// The existence check before the insert is a fast path for a clean error
// message, not the correctness mechanism: the store's UNIQUE constraint on
// email is what decides a race between two concurrent registrations. Either
// way the caller sees the same duplicate-account error.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (*AuthResult, error) {
	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return nil, apperror.DuplicateAccount()
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		return nil, fmt.Errorf("service/auth: checking existing email: %w", err)
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("service/auth: hashing password: %w", err)
	}

	user := &model.User{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// Lost the race against a concurrent registration → duplicate
		// error propagates from the store as-is.
		return nil, err
	}

	s.logger.Info("user registered",
		slog.String("userID", user.ID),
		slog.String("email", user.Email),
	)

	return &AuthResult{Token: "", User: user.Public()}, nil
}

// Login verifies an email/password pair.
//
// Unknown email and wrong password both fail with the identical
// invalid-credentials error. Distinguishing them would let an attacker
// probe which addresses are registered.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.InvalidCredentials()
		}
		return nil, fmt.Errorf("service/auth: looking up email: %w", err)
	}

	if !s.passwords.Verify(user.PasswordHash, password) {
		return nil, apperror.InvalidCredentials()
	}

	s.logger.Info("user logged in", slog.String("userID", user.ID))

	return &AuthResult{Token: "", User: user.Public()}, nil
}

// GetUserByID returns the public projection for the given internal ID.
// Used by the /auth/me handler after the middleware validates the token.
//
// Like Register and Login, this returns the projection, not the entity —
// nothing crossing the service boundary ever carries a password hash.
func (s *AuthService) GetUserByID(ctx context.Context, id string) (model.PublicUser, error) {
	if id == "" {
		return model.PublicUser{}, errors.New("service/auth: user ID must not be empty")
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return model.PublicUser{}, fmt.Errorf("service/auth: fetching user %s: %w", id, err)
	}
	return user.Public(), nil
}
