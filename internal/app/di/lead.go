package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	leadadapters "lead_backend/internal/feature/lead/adapters"
	"lead_backend/internal/feature/lead/usecase"
	"lead_backend/internal/platform/cache"
)

// NewLeadRepository returns the gorm lead store wrapped in the Redis
// lookup cache. With a nil rdb the wrapper passes everything through.
func NewLeadRepository(rdb *redis.Client, db *gorm.DB, ttl time.Duration) usecase.LeadRepository {
	return cache.NewCachingLeadRepository(rdb, ttl, leadadapters.NewLeadRepository(db), "leads")
}
