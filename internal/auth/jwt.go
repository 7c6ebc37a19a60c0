// Package auth provides password hashing and JWT issuance for the API.
//
// AUTHENTICATION FLOW:
//  1. POST /auth/register or /auth/login succeeds
//  2. The handler signs a JWT carrying the user's id and email
//  3. The client presents it as "Authorization: Bearer <token>"
//  4. Middleware validates the signature and puts the userID in the context
//
// JWT is stateless — the server stores no session. Everything needed to
// authenticate a request (subject, email, expiry) is inside the signed
// token, and the HMAC signature makes it tamper-proof without a DB lookup.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "auth-service"

// tokenTTL bounds how long an issued token stays valid. The client must
// log in again after expiry.
const tokenTTL = 24 * time.Hour

// TokenService handles JWT creation and validation.
//
// It holds the HMAC secret used for both signing and verifying. The secret
// is process configuration — see internal/config.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a TokenService with the given secret.
//
// A short secret makes HS256 brute-forceable, so anything under 32
// characters is rejected. This is enforced again at config load time; a
// missing or short secret is a fatal startup error, never a runtime one.
func NewTokenService(secret string) (*TokenService, error) {
	if len(secret) < 32 {
		return nil, errors.New("auth: JWT secret must be at least 32 characters")
	}
	return &TokenService{secret: []byte(secret)}, nil
}

// Claims is the JWT payload: the standard registered claims plus the
// user's email. The user ID travels in "sub" (Subject), the standard
// claim for identifying who the token belongs to.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Generate creates and signs a token bound to the given user id and email.
//
// Signing algorithm: HS256 (HMAC-SHA256) — symmetric, same key signs and
// verifies. Fine for a single service holding its own secret.
func (s *TokenService) Generate(userID, email string) (string, error) {
	now := time.Now()

	c := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			Issuer:    issuer,
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}
	return signed, nil
}

// generateWithDuration signs a token with a custom expiry. Used by tests
// to produce already-expired tokens.
func (s *TokenService) generateWithDuration(userID, email string, d time.Duration) (string, error) {
	now := time.Now()

	c := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(d)),
			Issuer:    issuer,
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
}

// Validate parses and verifies a JWT string and returns the userID from
// its "sub" claim.
//
// The jwt library checks the signature, the expiry, and the issuer.
// Restricting the algorithm to HS256 (jwt.WithValidMethods) closes the
// algorithm-confusion hole where a token claiming alg "none" or an
// asymmetric scheme could slip through.
func (s *TokenService) Validate(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&Claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", errors.New("auth: token expired")
		}
		return "", fmt.Errorf("auth: invalid token: %w", err)
	}

	c, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", errors.New("auth: invalid token claims")
	}
	if c.Subject == "" {
		return "", errors.New("auth: token has no subject")
	}

	return c.Subject, nil
}
