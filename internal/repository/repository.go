// Package repository declares the storage interfaces consumed by the
// service layer. The service programs against these interfaces; the
// concrete implementation (sqlite) is chosen at the composition root.
package repository

import (
	"context"

	"github.com/sakif/auth-service/internal/model"
)

// UserRepository is the persistence contract for user accounts.
//
// Create must enforce email uniqueness at the schema level and return an
// apperror duplicate-account error on a conflict — the service's
// find-then-create sequence is not atomic, so the constraint is the
// authoritative guard against concurrent duplicate registration.
//
// FindByEmail and FindByID return an error wrapping apperror.ErrNotFound
// when no row matches.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
}
