// Package di provides dependency injection factories for creating application components.
package di

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	authadapters "lead_backend/internal/feature/auth/adapters"
	"lead_backend/internal/feature/auth/usecase"
	"lead_backend/internal/platform/session"
)

// NewRevocationRepository creates a RevocationRepository implementation.
// If Redis is available, it returns a Redis-backed implementation.
// Otherwise, it falls back to the revoked_tokens table.
func NewRevocationRepository(rdb *redis.Client, db *gorm.DB) usecase.RevocationRepository {
	if rdb != nil {
		return session.NewRevocationRedis(rdb, "revoked")
	}
	return authadapters.NewRevocationRepository(db)
}
