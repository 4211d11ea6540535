// Package session keeps token revocations in redis.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"lead_backend/internal/feature/auth/domain/entity"
	"lead_backend/internal/feature/auth/usecase"
)

// RevocationRedis implements usecase.RevocationRepository using Redis.
// Entries expire with the token they revoke.
type RevocationRedis struct {
	client *redis.Client
	prefix string
}

// Compile-time check to ensure RevocationRedis implements RevocationRepository.
var _ usecase.RevocationRepository = (*RevocationRedis)(nil)

// NewRevocationRedis は新しい RevocationRedis を生成します。prefix が空なら "revoked" を使います。
func NewRevocationRedis(client *redis.Client, prefix string) *RevocationRedis {
	if prefix == "" {
		prefix = "revoked"
	}
	return &RevocationRedis{
		client: client,
		prefix: prefix,
	}
}

// key はトークンIDに対応する Redis キーを返します。
func (r *RevocationRedis) key(tokenID string) string {
	return fmt.Sprintf("%s:%s", r.prefix, tokenID)
}

// Revoke stores the token ID with a TTL equal to the token's remaining lifetime.
func (r *RevocationRedis) Revoke(ctx context.Context, token entity.Token) error {
	ttl := token.TTL()
	if ttl <= 0 {
		// Already expired; the gate rejects it without help.
		return nil
	}
	return r.client.Set(ctx, r.key(token.ID), token.UserID, ttl).Err()
}

// IsRevoked reports whether the token ID is present.
func (r *RevocationRedis) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := r.client.Get(ctx, r.key(tokenID)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// DeleteExpired is a no-op; Redis expires entries via TTL.
func (r *RevocationRedis) DeleteExpired(ctx context.Context) (int64, error) {
	return 0, nil
}
