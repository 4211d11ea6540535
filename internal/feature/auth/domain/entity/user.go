// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered user in the system.
type User struct {
	// ID is an opaque unique identifier (UUID string).
	ID string

	// Name is the display name given at registration.
	Name string

	// Email is the login key, stored trimmed and lowercased.
	Email string

	// PasswordHash is the bcrypt hash of the password. It is never returned in reads.
	PasswordHash string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PublicUser is the projection of a User safe to return to clients.
type PublicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Public returns the fields of u that may leave the server.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email}
}
