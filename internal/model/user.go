// Package model defines the data structures used throughout the application.
package model

import "time"

// User represents a registered account.
//
// Email is the sole lookup key for login and carries a UNIQUE constraint in
// the database — that constraint, not the service's pre-check, is what makes
// duplicate registration safe under concurrency.
//
// PasswordHash is tagged `json:"-"` so it can never leak through an encoder.
// Anything that crosses the HTTP boundary should additionally go through
// Public(), which doesn't have the field at all.
type User struct {
	ID           string    `json:"id"        db:"id"`
	Email        string    `json:"email"     db:"email"`
	Name         string    `json:"name"      db:"name"`
	PasswordHash string    `json:"-"         db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// PublicUser is the projection of a User that is safe to return to clients.
type PublicUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Public returns the client-facing projection of the user.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
	}
}
