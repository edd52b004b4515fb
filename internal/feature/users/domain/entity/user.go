// Package entity defines the domain entities for the users feature.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account.
type User struct {
	// ID is the unique identifier for the user.
	ID uuid.UUID

	// Email is the login key. It is stored as given (case-sensitive) and is
	// unique among alive users.
	Email string

	// PasswordHash is the bcrypt hash of the password. Plaintext is never stored.
	PasswordHash string

	FirstName string
	LastName  string

	// IsActive is the account status flag.
	IsActive bool

	CreatedAt time.Time
	UpdatedAt time.Time

	// DeletedAt is set when the user is soft-deleted. Nil means alive.
	DeletedAt *time.Time
}

// IsAlive reports whether the user has not been soft-deleted.
func (u *User) IsAlive() bool {
	return u.DeletedAt == nil
}
