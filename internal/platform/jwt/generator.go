// Package jwtmw signs and verifies bearer tokens and provides the gin gate
// that guards authenticated routes.
package jwtmw

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"lead_backend/internal/feature/auth/domain/entity"
)

// Manager issues and parses HS256 tokens.
type Manager struct {
	secret     []byte
	expiration time.Duration
}

// NewManager creates a Manager with the provided secret and expiration duration.
func NewManager(secret string, expiration time.Duration) *Manager {
	return &Manager{
		secret:     []byte(secret),
		expiration: expiration,
	}
}

// Expiration returns the configured token lifetime.
func (m *Manager) Expiration() time.Duration {
	return m.expiration
}

// GenerateToken creates a signed token whose subject is userID.
func (m *Manager) GenerateToken(userID string) (string, entity.Token, error) {
	now := time.Now()
	claims := entity.Token{
		ID:        uuid.NewString(),
		UserID:    userID,
		IssuedAt:  now,
		ExpiresAt: now.Add(m.expiration),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        claims.ID,
		Subject:   claims.UserID,
		IssuedAt:  jwt.NewNumericDate(claims.IssuedAt),
		ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
	})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", entity.Token{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, claims, nil
}

// ParseToken verifies signature (HMAC only) and expiry and returns the claims.
func (m *Manager) ParseToken(tokenStr string) (entity.Token, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	}, jwt.WithExpirationRequired(), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return entity.Token{}, err
	}
	if claims.Subject == "" {
		return entity.Token{}, errors.New("token has no subject")
	}

	out := entity.Token{ID: claims.ID, UserID: claims.Subject}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
