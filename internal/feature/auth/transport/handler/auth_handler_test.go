package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lead_backend/internal/feature/auth/domain/entity"
	"lead_backend/internal/feature/auth/usecase"
	jwtmw "lead_backend/internal/platform/jwt"
)

// mockAuthUsecase is a mock implementation of the AuthUsecase interface.
type mockAuthUsecase struct {
	RegisterFunc func(ctx context.Context, name, email, password string) (*usecase.AuthResult, error)
	LoginFunc    func(ctx context.Context, email, password string) (*usecase.AuthResult, error)
	LogoutFunc   func(ctx context.Context, token entity.Token) error
	MeFunc       func(ctx context.Context, userID string) (*entity.User, error)
}

func (m *mockAuthUsecase) Register(ctx context.Context, name, email, password string) (*usecase.AuthResult, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, name, email, password)
	}
	return nil, errors.New("register not stubbed")
}

func (m *mockAuthUsecase) Login(ctx context.Context, email, password string) (*usecase.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return nil, errors.New("login not stubbed")
}

func (m *mockAuthUsecase) Logout(ctx context.Context, token entity.Token) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, token)
	}
	return nil
}

func (m *mockAuthUsecase) Me(ctx context.Context, userID string) (*entity.User, error) {
	if m.MeFunc != nil {
		return m.MeFunc(ctx, userID)
	}
	return nil, usecase.ErrUserNotFound
}

func authResult() *usecase.AuthResult {
	now := time.Now()
	return &usecase.AuthResult{
		Token:  "signed.jwt.token",
		Claims: entity.Token{ID: "jti-1", UserID: "u-1", IssuedAt: now, ExpiresAt: now.Add(time.Hour)},
		User:   &entity.User{ID: "u-1", Name: "Test User", Email: "test@example.com", PasswordHash: "hash"},
	}
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	return got
}

func TestAuthHandler_Register(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name            string
		requestBody     gin.H
		registerFunc    func(ctx context.Context, name, email, password string) (*usecase.AuthResult, error)
		expectedStatus  int
		expectedMessage string
	}{
		{
			name:        "success: user registration",
			requestBody: gin.H{"name": "Test User", "email": "test@example.com", "password": "password123"},
			registerFunc: func(ctx context.Context, name, email, password string) (*usecase.AuthResult, error) {
				return authResult(), nil
			},
			expectedStatus:  http.StatusCreated,
			expectedMessage: "User registered successfully",
		},
		{
			name:            "failure: invalid email address",
			requestBody:     gin.H{"name": "Test User", "email": "invalid-email", "password": "password123"},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Validation failed",
		},
		{
			name:            "failure: short password",
			requestBody:     gin.H{"name": "Test User", "email": "test@example.com", "password": "short"},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Validation failed",
		},
		{
			name:            "failure: missing name",
			requestBody:     gin.H{"email": "test@example.com", "password": "password123"},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Validation failed",
		},
		{
			name:        "failure: whitespace-only name",
			requestBody: gin.H{"name": "   ", "email": "test@example.com", "password": "password123"},
			registerFunc: func(ctx context.Context, name, email, password string) (*usecase.AuthResult, error) {
				return nil, usecase.ErrNameRequired
			},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Validation failed",
		},
		{
			name:        "failure: duplicate email",
			requestBody: gin.H{"name": "Test User", "email": "existing@example.com", "password": "password123"},
			registerFunc: func(ctx context.Context, name, email, password string) (*usecase.AuthResult, error) {
				return nil, usecase.ErrEmailAlreadyExists
			},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "User already exists with this email",
		},
		{
			name:        "failure: store error",
			requestBody: gin.H{"name": "Test User", "email": "test@example.com", "password": "password123"},
			registerFunc: func(ctx context.Context, name, email, password string) (*usecase.AuthResult, error) {
				return nil, errors.New("connection refused")
			},
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: "Server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAuthHandler(&mockAuthUsecase{RegisterFunc: tt.registerFunc}, false)
			r := gin.New()
			r.POST("/api/auth/register", h.Register)

			w := doJSON(t, r, http.MethodPost, "/api/auth/register", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			body := decode(t, w)
			assert.Equal(t, tt.expectedMessage, body["message"])
			assert.Equal(t, tt.expectedStatus < 300, body["success"])
		})
	}
}

func TestAuthHandler_Register_ResponseShape(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := NewAuthHandler(&mockAuthUsecase{
		RegisterFunc: func(ctx context.Context, name, email, password string) (*usecase.AuthResult, error) {
			return authResult(), nil
		},
	}, true)
	r := gin.New()
	r.POST("/api/auth/register", h.Register)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register",
		gin.H{"name": "Test User", "email": "test@example.com", "password": "password123"})
	require.Equal(t, http.StatusCreated, w.Code)

	body := decode(t, w)
	assert.Equal(t, "signed.jwt.token", body["token"])
	user := body["data"].(map[string]any)["user"].(map[string]any)
	assert.Equal(t, "u-1", user["id"])
	assert.Equal(t, "test@example.com", user["email"])
	assert.NotContains(t, user, "password")
	assert.NotContains(t, w.Body.String(), "hash")

	cookie := w.Header().Get("Set-Cookie")
	assert.Contains(t, cookie, jwtmw.CookieName+"=signed.jwt.token")
	assert.Contains(t, cookie, "HttpOnly")
	assert.Contains(t, cookie, "Secure")
	assert.Contains(t, cookie, "SameSite=Strict")
}

func TestAuthHandler_Login(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name            string
		requestBody     gin.H
		loginFunc       func(ctx context.Context, email, password string) (*usecase.AuthResult, error)
		expectedStatus  int
		expectedMessage string
		expectToken     bool
	}{
		{
			name:        "success: login",
			requestBody: gin.H{"email": "test@example.com", "password": "password123"},
			loginFunc: func(ctx context.Context, email, password string) (*usecase.AuthResult, error) {
				return authResult(), nil
			},
			expectedStatus:  http.StatusOK,
			expectedMessage: "Login successful",
			expectToken:     true,
		},
		{
			name:        "failure: wrong credentials",
			requestBody: gin.H{"email": "test@example.com", "password": "wrongpass"},
			loginFunc: func(ctx context.Context, email, password string) (*usecase.AuthResult, error) {
				return nil, usecase.ErrInvalidCredentials
			},
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "Invalid credentials",
		},
		{
			name:            "failure: missing password",
			requestBody:     gin.H{"email": "test@example.com"},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Validation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAuthHandler(&mockAuthUsecase{LoginFunc: tt.loginFunc}, false)
			r := gin.New()
			r.POST("/api/auth/login", h.Login)

			w := doJSON(t, r, http.MethodPost, "/api/auth/login", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			body := decode(t, w)
			assert.Equal(t, tt.expectedMessage, body["message"])
			if tt.expectToken {
				assert.Equal(t, "signed.jwt.token", body["token"])
			} else {
				assert.NotContains(t, body, "token")
			}
		})
	}
}

func TestAuthHandler_LogoutAndMe(t *testing.T) {
	gin.SetMode(gin.TestMode)

	claims := authResult().Claims
	var revoked entity.Token
	mock := &mockAuthUsecase{
		LogoutFunc: func(ctx context.Context, token entity.Token) error {
			revoked = token
			return nil
		},
		MeFunc: func(ctx context.Context, userID string) (*entity.User, error) {
			if userID == "u-1" {
				return authResult().User, nil
			}
			return nil, usecase.ErrUserNotFound
		},
	}
	h := NewAuthHandler(mock, false)

	// stands in for AuthRequired
	authenticate := func(userID string) gin.HandlerFunc {
		return func(c *gin.Context) {
			c.Set(jwtmw.ContextUserID, userID)
			c.Set(jwtmw.ContextToken, claims)
			c.Next()
		}
	}

	r := gin.New()
	r.POST("/api/auth/logout", authenticate("u-1"), h.Logout)
	r.GET("/api/auth/me", authenticate("u-1"), h.Me)
	r.GET("/api/auth/me-missing", authenticate("ghost"), h.Me)

	t.Run("logout revokes and clears the cookie", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/auth/logout", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Logout successful", decode(t, w)["message"])
		assert.Equal(t, claims.ID, revoked.ID)
		assert.Contains(t, w.Header().Get("Set-Cookie"), "Max-Age=0")
	})

	t.Run("me returns the public user", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/auth/me", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, true, body["success"])
		user := body["data"].(map[string]any)["user"].(map[string]any)
		assert.Equal(t, "Test User", user["name"])
	})

	t.Run("me for a deleted user is unauthorized", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/auth/me-missing", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
