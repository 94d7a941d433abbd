package auth

import (
	"context"

	"gorm.io/gorm"

	"fikhidmatik/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
	DB() *gorm.DB
}

type RefreshTokenRepository interface {
	Create(ctx context.Context, t *domain.RefreshToken) error
	GetByHash(ctx context.Context, hash string) (*domain.RefreshToken, error)
	Rotate(ctx context.Context, oldID int64, replacement *domain.RefreshToken) error
	RevokeByUser(ctx context.Context, userID int64) error
}

type tokenGenerator interface {
	GenerateToken(userID int64, role domain.UserRole) (string, error)
}
