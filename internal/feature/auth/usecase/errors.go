// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when attempting to create a user with an email that already exists.
	ErrEmailAlreadyExists = errors.New("User already exists with this email")

	// ErrInvalidCredentials is returned by Login for an unknown email or a wrong password alike.
	ErrInvalidCredentials = errors.New("Invalid credentials")

	// ErrInvalidToken is returned when a bearer token is malformed, badly signed or expired.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenRevoked is returned when a token was revoked by logout.
	ErrTokenRevoked = errors.New("token has been revoked")

	// ErrNameRequired is returned when the name is empty after trimming.
	ErrNameRequired = errors.New("Name is required")

	// ErrNameTooLong is returned when the trimmed name exceeds maxNameLength.
	ErrNameTooLong = errors.New("Name cannot be more than 50 characters")

	// ErrWeakPassword is returned when the password is shorter than minPasswordLength.
	ErrWeakPassword = errors.New("Password must be at least 6 characters")
)
