package jwtmw

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"lead_backend/internal/feature/auth/domain/entity"
	authusecase "lead_backend/internal/feature/auth/usecase"
	"lead_backend/internal/platform/http/response"
)

const (
	// ContextUserID holds the authenticated user's ID (string).
	ContextUserID = "userID"
	// ContextToken holds the verified entity.Token.
	ContextToken = "token"
	// CookieName is the cookie carrying the token as a fallback to the header.
	CookieName = "token"
)

// TokenVerifier resolves a raw bearer token to its claims.
// Implemented by the auth usecase.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (entity.Token, error)
}

// ExtractToken returns the bearer token from the Authorization header,
// falling back to the token cookie.
func ExtractToken(c *gin.Context) string {
	if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	if cookie, err := c.Cookie(CookieName); err == nil {
		return cookie
	}
	return ""
}

// AuthRequired returns a gin middleware that rejects requests without a
// valid token and stores the caller's identity in the context.
func AuthRequired(v TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. トークン取得（ヘッダ優先、なければCookie）
		tokenStr := ExtractToken(c)
		if tokenStr == "" {
			response.Fail(c, http.StatusUnauthorized, response.MsgUnauthorized)
			return
		}

		// 2. 署名・有効期限・失効・ユーザー存在の検証
		claims, err := v.VerifyToken(c.Request.Context(), tokenStr)
		if err != nil {
			if errors.Is(err, authusecase.ErrInvalidToken) || errors.Is(err, authusecase.ErrTokenRevoked) {
				slog.Warn("token rejected", "error", err, "remote_addr", c.ClientIP())
				response.Fail(c, http.StatusUnauthorized, response.MsgUnauthorized)
				return
			}
			response.Internal(c, err)
			return
		}

		// 3. 後続ハンドラ向けにユーザー情報をセット
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextToken, claims)
		c.Next()
	}
}

// UserIDFrom returns the authenticated user ID set by AuthRequired.
func UserIDFrom(c *gin.Context) (string, bool) {
	id := c.GetString(ContextUserID)
	return id, id != ""
}

// TokenFrom returns the verified token claims set by AuthRequired.
func TokenFrom(c *gin.Context) (entity.Token, bool) {
	v, ok := c.Get(ContextToken)
	if !ok {
		return entity.Token{}, false
	}
	t, ok := v.(entity.Token)
	return t, ok
}
