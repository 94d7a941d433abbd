package repository

import (
	"gorm.io/gorm"

	"fikhidmatik/internal/domain"
)

// AutoMigrate creates or updates every table the repositories touch. The user
// and booking tables migrate through their row models so column definitions
// stay in one place.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel{},
		&domain.Artisan{},
		&domain.ArtisanService{},
		&domain.ArtisanPortfolio{},
		&bookingModel{},
		&domain.Review{},
		&domain.RefreshToken{},
		&domain.Conversation{},
		&domain.Message{},
	)
}
