// Package handler provides the HTTP handlers for the auth feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"lead_backend/internal/feature/auth/domain/entity"
	"lead_backend/internal/feature/auth/transport/http/dto"
	"lead_backend/internal/feature/auth/usecase"
	"lead_backend/internal/platform/http/response"
	jwtmw "lead_backend/internal/platform/jwt"
	"lead_backend/internal/platform/metrics"
)

// AuthUsecase defines the credential operations the handler needs.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type AuthUsecase interface {
	Register(ctx context.Context, name, email, password string) (*usecase.AuthResult, error)
	Login(ctx context.Context, email, password string) (*usecase.AuthResult, error)
	Logout(ctx context.Context, token entity.Token) error
	Me(ctx context.Context, userID string) (*entity.User, error)
}

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	auth         AuthUsecase
	secureCookie bool
}

// NewAuthHandler creates a new AuthHandler. secureCookie marks the token
// cookie Secure and is set in production.
func NewAuthHandler(auth AuthUsecase, secureCookie bool) *AuthHandler {
	return &AuthHandler{auth: auth, secureCookie: secureCookie}
}

// Register handles POST /api/auth/register.
// - 400 on validation errors or a taken email
// - 201 with token and public user on success
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		response.ValidationFailed(c, response.BindingErrors(err))
		return
	}

	res, err := h.auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		metrics.RecordAuthAttempt("register", false)
		switch {
		case errors.Is(err, usecase.ErrEmailAlreadyExists):
			slog.Warn("register conflict", "email", req.Email, "remote_addr", c.ClientIP())
			response.Fail(c, http.StatusBadRequest, usecase.ErrEmailAlreadyExists.Error())
		case errors.Is(err, usecase.ErrNameRequired), errors.Is(err, usecase.ErrNameTooLong):
			response.ValidationFailed(c, []response.FieldError{{Field: "name", Message: err.Error()}})
		case errors.Is(err, usecase.ErrWeakPassword):
			response.ValidationFailed(c, []response.FieldError{{Field: "password", Message: err.Error()}})
		default:
			response.Internal(c, err)
		}
		return
	}

	metrics.RecordAuthAttempt("register", true)
	slog.Info("user registered", "user_id", res.User.ID, "remote_addr", c.ClientIP())
	h.respondWithToken(c, http.StatusCreated, "User registered successfully", res)
}

// Login handles POST /api/auth/login.
// Unknown email and wrong password produce the same 401 body.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		response.ValidationFailed(c, response.BindingErrors(err))
		return
	}

	res, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		metrics.RecordAuthAttempt("login", false)
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			slog.Warn("login failed", "email", req.Email, "remote_addr", c.ClientIP())
			response.Fail(c, http.StatusUnauthorized, usecase.ErrInvalidCredentials.Error())
			return
		}
		response.Internal(c, err)
		return
	}

	metrics.RecordAuthAttempt("login", true)
	slog.Info("user login successful", "user_id", res.User.ID, "remote_addr", c.ClientIP())
	h.respondWithToken(c, http.StatusOK, "Login successful", res)
}

func (h *AuthHandler) respondWithToken(c *gin.Context, status int, msg string, res *usecase.AuthResult) {
	jwtmw.SetTokenCookie(c, res.Token, time.Until(res.Claims.ExpiresAt), h.secureCookie)
	c.JSON(status, dto.AuthRes{
		Success: true,
		Message: msg,
		Token:   res.Token,
		Data:    dto.UserEnvelope{User: res.User.Public()},
	})
}

// Logout handles POST /api/auth/logout. The presented token is revoked and
// the cookie cleared.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, ok := jwtmw.TokenFrom(c); ok {
		if err := h.auth.Logout(c.Request.Context(), token); err != nil {
			response.Internal(c, err)
			return
		}
	}
	jwtmw.ClearTokenCookie(c, h.secureCookie)
	response.Message(c, http.StatusOK, "Logout successful")
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := jwtmw.UserIDFrom(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, response.MsgUnauthorized)
		return
	}

	user, err := h.auth.Me(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			response.Fail(c, http.StatusUnauthorized, "User not found")
			return
		}
		response.Internal(c, err)
		return
	}

	response.Data(c, http.StatusOK, "", dto.UserEnvelope{User: user.Public()})
}
