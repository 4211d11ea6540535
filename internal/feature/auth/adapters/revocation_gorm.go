package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lead_backend/internal/feature/auth/domain/entity"
	"lead_backend/internal/feature/auth/usecase"
)

// revocationGorm is the database-backed RevocationRepository used when redis is unavailable.
type revocationGorm struct {
	db *gorm.DB
}

// Compile-time check to ensure revocationGorm implements RevocationRepository.
var _ usecase.RevocationRepository = (*revocationGorm)(nil)

// NewRevocationRepository creates a revocationGorm.
func NewRevocationRepository(db *gorm.DB) *revocationGorm {
	return &revocationGorm{db: db}
}

// Revoke stores the token ID. Revoking twice is not an error.
func (r *revocationGorm) Revoke(ctx context.Context, token entity.Token) error {
	model := &RevokedTokenModel{
		ID:        token.ID,
		UserID:    token.UserID,
		ExpiresAt: token.ExpiresAt,
		CreatedAt: time.Now().UTC(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(model).Error
}

// IsRevoked reports whether an unexpired revocation exists for the token ID.
func (r *revocationGorm) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&RevokedTokenModel{}).
		Where("id = ? AND expires_at > ?", tokenID, time.Now().UTC()).
		Count(&count).Error
	return count > 0, err
}

// DeleteExpired removes revocations whose tokens have expired.
func (r *revocationGorm) DeleteExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ?", time.Now().UTC()).
		Delete(&RevokedTokenModel{})
	return result.RowsAffected, result.Error
}
