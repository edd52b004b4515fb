// Package usecase implements the business logic for the users feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when no alive user matches an email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when an alive user already has the email.
	ErrEmailAlreadyExists = errors.New("email already exists")
)
