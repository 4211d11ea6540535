// Package dto defines data transfer objects for the auth feature's HTTP transport layer.
package dto

import "lead_backend/internal/feature/auth/domain/entity"

// RegisterReq represents the request body for POST /api/auth/register.
// It uses Gin's binding tags for validation (required, email format, lengths).
// The name length is checked by the usecase after trimming.
type RegisterReq struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// UserEnvelope wraps the public user the way the client expects: data.user.
type UserEnvelope struct {
	User entity.PublicUser `json:"user"`
}

// AuthRes is returned by register and login.
type AuthRes struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Token   string       `json:"token"`
	Data    UserEnvelope `json:"data"`
}
