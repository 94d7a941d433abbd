package domain

import "time"

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleArtisan  UserRole = "artisan"
	RoleAdmin    UserRole = "admin"
)

type User struct {
	ID                int64     `json:"id"`
	Email             string    `json:"email" gorm:"uniqueIndex;not null" validate:"required,email"`
	Phone             string    `json:"phone,omitempty"`
	PasswordHash      string    `json:"-"`
	FullName          string    `json:"full_name" validate:"required"`
	Role              UserRole  `json:"role"`
	Avatar            string    `json:"avatar,omitempty"`
	IsActive          bool      `json:"is_active"`
	IsVerified        bool      `json:"is_verified"`
	PreferredLanguage string    `json:"preferred_language"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
