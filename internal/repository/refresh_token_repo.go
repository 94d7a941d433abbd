package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"fikhidmatik/internal/domain"
)

// RefreshTokenRepository persists the opaque refresh token families. Tokens
// are stored hashed; a rotated token records which row replaced it so a
// replayed token can be traced back to its family.
type RefreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

func (r *RefreshTokenRepository) Create(ctx context.Context, t *domain.RefreshToken) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *RefreshTokenRepository) GetByHash(ctx context.Context, hash string) (*domain.RefreshToken, error) {
	var t domain.RefreshToken
	err := r.db.WithContext(ctx).Where("token_hash = ?", hash).First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Rotate stores the replacement and revokes the presented token in one
// transaction, so a failure cannot leave both tokens usable.
func (r *RefreshTokenRepository) Rotate(ctx context.Context, oldID int64, replacement *domain.RefreshToken) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(replacement).Error; err != nil {
			return err
		}
		return tx.Model(&domain.RefreshToken{}).
			Where("id = ? AND revoked_at IS NULL", oldID).
			Updates(map[string]any{
				"revoked_at":     time.Now().UTC(),
				"replaced_by_id": replacement.ID,
			}).Error
	})
}

// RevokeByUser kills every live token the user holds. Used when a revoked
// token is replayed.
func (r *RefreshTokenRepository) RevokeByUser(ctx context.Context, userID int64) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Model(&domain.RefreshToken{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", now).Error
}

func (r *RefreshTokenRepository) DeleteExpired(ctx context.Context) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).
		Where("expires_at < ?", now).
		Delete(&domain.RefreshToken{}).Error
}
