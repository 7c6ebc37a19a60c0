package handler

// Request body shapes and their validation rules.
//
// Validation happens here, before the service runs, so malformed input
// never reaches the business logic. The bounds and messages are part of
// the API contract:
//
//	register: email format; password 8–100 chars; name 2–255 chars
//	login:    email format; password non-empty
//
// No validation library is used — the corpus convention is hand-rolled
// checks at the boundary, and the rule set here is three fields deep.

import (
	"encoding/json"
	"net/http"
	"net/mail"
	"unicode/utf8"

	"github.com/sakif/auth-service/internal/apperror"
)

const (
	minPasswordLen = 8
	maxPasswordLen = 100
	minNameLen     = 2
	maxNameLen     = 255
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (r *registerRequest) validate() error {
	if !validEmail(r.Email) {
		return apperror.ValidationFailed("email", "Invalid email address")
	}
	// Bounds count characters, not bytes: a four-rune CJK password is
	// still too short, and a 90-rune multibyte one is still in range.
	passwordLen := utf8.RuneCountInString(r.Password)
	if passwordLen < minPasswordLen {
		return apperror.ValidationFailed("password", "Password must be at least 8 characters")
	}
	if passwordLen > maxPasswordLen {
		return apperror.ValidationFailed("password", "Password must be less than 100 characters")
	}
	nameLen := utf8.RuneCountInString(r.Name)
	if nameLen < minNameLen {
		return apperror.ValidationFailed("name", "Name must be at least 2 characters")
	}
	if nameLen > maxNameLen {
		return apperror.ValidationFailed("name", "Name must be less than 255 characters")
	}
	return nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *loginRequest) validate() error {
	if !validEmail(r.Email) {
		return apperror.ValidationFailed("email", "Invalid email address")
	}
	if r.Password == "" {
		return apperror.ValidationFailed("password", "Password is required")
	}
	return nil
}

// decodeBody decodes a JSON request body into dst, mapping decode failures
// to a validation error so the endpoint's normal error shape applies.
func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperror.ValidationFailed("body", "Invalid JSON body")
	}
	return nil
}

// validEmail checks the address parses per RFC 5322 and is a bare address
// (no display name). net/mail accepts "Name <a@b>"; we don't.
func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
