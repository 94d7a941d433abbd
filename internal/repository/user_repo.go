package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"fikhidmatik/internal/domain"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

type userModel struct {
	ID                int64     `gorm:"column:id;primaryKey"`
	Email             string    `gorm:"column:email;uniqueIndex;not null"`
	Phone             *string   `gorm:"column:phone;index"`
	PasswordHash      string    `gorm:"column:password_hash"`
	FullName          string    `gorm:"column:full_name"`
	Role              string    `gorm:"column:role"`
	Avatar            *string   `gorm:"column:avatar"`
	IsActive          bool      `gorm:"column:is_active"`
	IsVerified        bool      `gorm:"column:is_verified"`
	PreferredLanguage string    `gorm:"column:preferred_language"`
	CreatedAt         time.Time `gorm:"column:created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at"`
}

func (userModel) TableName() string { return "users" }

func toDomainUser(m userModel) *domain.User {
	var phone, avatar string
	if m.Phone != nil {
		phone = *m.Phone
	}
	if m.Avatar != nil {
		avatar = *m.Avatar
	}

	return &domain.User{
		ID:                m.ID,
		Email:             m.Email,
		Phone:             phone,
		PasswordHash:      m.PasswordHash,
		FullName:          m.FullName,
		Role:              domain.UserRole(m.Role),
		Avatar:            avatar,
		IsActive:          m.IsActive,
		IsVerified:        m.IsVerified,
		PreferredLanguage: m.PreferredLanguage,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

func toUserModel(u *domain.User) userModel {
	email := strings.TrimSpace(strings.ToLower(u.Email))

	var phone, avatar *string
	if u.Phone != "" {
		v := u.Phone
		phone = &v
	}
	if u.Avatar != "" {
		v := u.Avatar
		avatar = &v
	}

	return userModel{
		ID:                u.ID,
		Email:             email,
		Phone:             phone,
		PasswordHash:      u.PasswordHash,
		FullName:          u.FullName,
		Role:              string(u.Role),
		Avatar:            avatar,
		IsActive:          u.IsActive,
		IsVerified:        u.IsVerified,
		PreferredLanguage: u.PreferredLanguage,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*u = *toDomainUser(m)
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&userModel{}).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt > 0, nil
}

func (r *UserRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&userModel{}).
		Where("phone = ?", strings.TrimSpace(phone)).
		Count(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt > 0, nil
}

func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	return r.db.WithContext(ctx).Save(&m).Error
}

// DB exposes the underlying handle for multi-repo transactions.
func (r *UserRepository) DB() *gorm.DB {
	return r.db
}
