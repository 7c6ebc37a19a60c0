package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/xid"
	sqlite3 "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/sakif/auth-service/internal/apperror"
	"github.com/sakif/auth-service/internal/model"
	"github.com/sakif/auth-service/internal/repository"
)

// compile-time check that *DB implements repository.UserRepository
var _ repository.UserRepository = (*DB)(nil)

// Create inserts a new user, generating the ID and timestamps.
//
// The caller's struct is filled in-place, mirroring how the row looks after
// the insert.
//
// If the email is already taken, SQLite rejects the insert on the UNIQUE
// constraint and we translate that into the duplicate-account error — the
// same one the service's pre-check produces. Two concurrent registrations
// for one email therefore always end as one success and one duplicate
// failure, whichever interleaving the race takes.
func (db *DB) Create(ctx context.Context, user *model.User) error {
	now := time.Now().UTC()
	user.ID = xid.New().String()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (id, email, name, password_hash, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		user.ID,
		user.Email,
		user.Name,
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.DuplicateAccount()
		}
		return fmt.Errorf("sqlite: inserting user: %w", err)
	}

	return nil
}

// FindByEmail retrieves a user by email, the login lookup key.
// Returns apperror.ErrNotFound (wrapped) when no account has that email.
// The comparison is as-stored: no case folding or trimming.
func (db *DB) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return db.findOne(ctx,
		`SELECT id, email, name, password_hash, created_at, updated_at
		 FROM users WHERE email = ?`,
		email,
	)
}

// FindByID retrieves a user by internal ID.
// Returns apperror.ErrNotFound (wrapped) when no user exists with that ID.
func (db *DB) FindByID(ctx context.Context, id string) (*model.User, error) {
	return db.findOne(ctx,
		`SELECT id, email, name, password_hash, created_at, updated_at
		 FROM users WHERE id = ?`,
		id,
	)
}

func (db *DB) findOne(ctx context.Context, query, key string) (*model.User, error) {
	var u model.User

	err := db.conn.QueryRowContext(ctx, query, key).Scan(
		&u.ID,
		&u.Email,
		&u.Name,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", key)
		}
		return nil, fmt.Errorf("sqlite: querying user: %w", err)
	}

	return &u, nil
}

// isUniqueViolation reports whether err is SQLite's UNIQUE-constraint
// failure. modernc.org/sqlite returns *sqlite.Error with the extended
// result code, so the check is on the code, not the message text.
func isUniqueViolation(err error) bool {
	var se *sqlite3.Error
	return errors.As(err, &se) && se.Code() == sqlite3lib.SQLITE_CONSTRAINT_UNIQUE
}
