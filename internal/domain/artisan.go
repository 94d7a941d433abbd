package domain

import "time"

type PriceType string

const (
	PriceFixed      PriceType = "fixed"
	PriceHourly     PriceType = "hourly"
	PriceNegotiable PriceType = "negotiable"
)

// Artisan is the provider profile attached 1:1 to a user with role=artisan.
// Rating, TotalReviews and CompletedJobs are running aggregates maintained by
// the review and booking modules; Rating always equals the 2-decimal rounded
// mean of all review ratings for this artisan.
type Artisan struct {
	ID     int64 `json:"id"`
	UserID int64 `json:"user_id" gorm:"uniqueIndex;not null"`

	Bio             string   `json:"bio,omitempty" gorm:"type:text"`
	ExperienceYears int      `json:"experience_years"`
	City            string   `json:"city" validate:"required"`
	Address         string   `json:"address,omitempty"`
	Latitude        *float64 `json:"latitude,omitempty"`
	Longitude       *float64 `json:"longitude,omitempty"`
	ServiceRadiusKm int      `json:"service_radius_km"`

	IsAvailable  bool   `json:"is_available"`
	WorkingHours string `json:"working_hours,omitempty" gorm:"type:json"`

	Rating        float64 `json:"rating"`
	TotalReviews  int     `json:"total_reviews"`
	CompletedJobs int     `json:"completed_jobs"`

	IsVerified bool   `json:"is_verified"`
	IDDocument string `json:"id_document,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ArtisanService struct {
	ID        int64 `json:"id"`
	ArtisanID int64 `json:"artisan_id" gorm:"index;not null"`

	Category    string    `json:"category" validate:"required"`
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	PriceMin    *float64  `json:"price_min,omitempty"`
	PriceMax    *float64  `json:"price_max,omitempty"`
	PriceType   PriceType `json:"price_type"`

	CreatedAt time.Time `json:"created_at"`
}

type ArtisanPortfolio struct {
	ID        int64 `json:"id"`
	ArtisanID int64 `json:"artisan_id" gorm:"index;not null"`

	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty" gorm:"type:text"`
	ImageURL    string `json:"image_url" validate:"required"`
	BeforeImage string `json:"before_image,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (ArtisanPortfolio) TableName() string { return "artisan_portfolio" }
