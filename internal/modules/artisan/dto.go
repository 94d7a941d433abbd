package artisan

import "fikhidmatik/internal/domain"

// UpdateProfileRequest uses pointers so that only fields present in the JSON
// body are applied.
type UpdateProfileRequest struct {
	Bio             *string  `json:"bio"`
	ExperienceYears *int     `json:"experience_years"`
	City            *string  `json:"city"`
	Address         *string  `json:"address"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
	ServiceRadiusKm *int     `json:"service_radius_km"`
	IsAvailable     *bool    `json:"is_available"`
	WorkingHours    *string  `json:"working_hours"`
	IDDocument      *string  `json:"id_document"`
}

type CreateServiceRequest struct {
	Category    string   `json:"category" binding:"required"`
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	PriceMin    *float64 `json:"price_min"`
	PriceMax    *float64 `json:"price_max"`
	PriceType   string   `json:"price_type" binding:"omitempty,oneof=fixed hourly negotiable"`
}

type CreatePortfolioRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url" binding:"required"`
	BeforeImage string `json:"before_image"`
}

// ListItem is a listing row with the owner's display fields and services.
type ListItem struct {
	ID           int64                   `json:"id"`
	UserID       int64                   `json:"user_id"`
	FullName     string                  `json:"full_name"`
	Avatar       string                  `json:"avatar,omitempty"`
	Bio          string                  `json:"bio,omitempty"`
	City         string                  `json:"city"`
	Rating       float64                 `json:"rating"`
	TotalReviews int                     `json:"total_reviews"`
	IsAvailable  bool                    `json:"is_available"`
	IsVerified   bool                    `json:"is_verified"`
	Services     []domain.ArtisanService `json:"services"`
}

// Detail is a full profile view.
type Detail struct {
	domain.Artisan
	FullName  string                    `json:"full_name"`
	Avatar    string                    `json:"avatar,omitempty"`
	Services  []domain.ArtisanService   `json:"services"`
	Portfolio []domain.ArtisanPortfolio `json:"portfolio"`
}
