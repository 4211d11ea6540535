package usecase

import (
	"context"

	"lead_backend/internal/feature/auth/domain/entity"
)

// RevocationRepository remembers tokens revoked by logout until they expire.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type RevocationRepository interface {
	// Revoke records the token's ID until its expiry.
	Revoke(ctx context.Context, token entity.Token) error

	// IsRevoked reports whether the token ID was revoked.
	IsRevoked(ctx context.Context, tokenID string) (bool, error)

	// DeleteExpired removes entries whose tokens have expired anyway.
	// Returns the number of deleted entries.
	DeleteExpired(ctx context.Context) (int64, error)
}
