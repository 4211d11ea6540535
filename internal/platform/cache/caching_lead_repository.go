// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"lead_backend/internal/feature/lead/domain/entity"
	"lead_backend/internal/feature/lead/usecase"
)

// CachingLeadRepository decorates a LeadRepository with Redis caching of
// single-lead lookups. Listings always go to the store.
type CachingLeadRepository struct {
	inner     usecase.LeadRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.LeadRepository = (*CachingLeadRepository)(nil)

// NewCachingLeadRepository は LeadRepository を Redis キャッシュでデコレートします。
// ttl=0 の場合は 5分にフォールバックします。namespace が空なら "leads" を使います。
// rdb が nil の場合はキャッシュを使いません。
func NewCachingLeadRepository(rdb *redis.Client, ttl time.Duration, inner usecase.LeadRepository, namespace string) *CachingLeadRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "leads"
	}
	return &CachingLeadRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Create passes through; a new lead has nothing cached yet.
func (c *CachingLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	return c.inner.Create(ctx, lead)
}

// List passes through.
func (c *CachingLeadRepository) List(ctx context.Context, f entity.Filter, p entity.Page) ([]entity.Lead, int64, error) {
	return c.inner.List(ctx, f, p)
}

// FindByID はまずキャッシュを確認し、なければストアから取得してキャッシュします。
// 見つからなかった結果はキャッシュしません。
func (c *CachingLeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	if c.rdb == nil {
		return c.inner.FindByID(ctx, id)
	}

	key := c.cacheKey(id)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.Lead
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to the store
	lead, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(lead); err == nil {
		if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
			slog.Warn("lead cache write failed", "lead_id", id, "error", err)
		}
	}
	return lead, nil
}

// Update writes through and drops the cached copy.
func (c *CachingLeadRepository) Update(ctx context.Context, lead *entity.Lead) error {
	if err := c.inner.Update(ctx, lead); err != nil {
		return err
	}
	c.invalidate(ctx, lead.ID)
	return nil
}

// Delete removes the lead and its cached copy.
func (c *CachingLeadRepository) Delete(ctx context.Context, id string) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx, id)
	return nil
}

func (c *CachingLeadRepository) invalidate(ctx context.Context, id string) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, c.cacheKey(id)).Err(); err != nil {
		slog.Warn("lead cache invalidation failed", "lead_id", id, "error", err)
	}
}

// cacheKey generates the cache key for a lead.
func (c *CachingLeadRepository) cacheKey(id string) string {
	return c.namespace + ":id:" + safe(id)
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
