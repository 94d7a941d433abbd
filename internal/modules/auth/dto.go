package auth

type RegisterRequest struct {
	Email             string `json:"email" binding:"required,email"`
	Phone             string `json:"phone"`
	Password          string `json:"password" binding:"required,min=8"`
	FullName          string `json:"full_name" binding:"required"`
	Role              string `json:"role" binding:"omitempty,oneof=customer artisan"`
	PreferredLanguage string `json:"preferred_language" binding:"omitempty,oneof=fr ar"`
}

type ServiceInput struct {
	Category    string   `json:"category" binding:"required"`
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	PriceMin    *float64 `json:"price_min"`
	PriceMax    *float64 `json:"price_max"`
	PriceType   string   `json:"price_type" binding:"omitempty,oneof=fixed hourly negotiable"`
}

type ArtisanProfileInput struct {
	Bio             string         `json:"bio"`
	ExperienceYears int            `json:"experience_years"`
	City            string         `json:"city" binding:"required"`
	Address         string         `json:"address"`
	Latitude        *float64       `json:"latitude"`
	Longitude       *float64       `json:"longitude"`
	ServiceRadiusKm int            `json:"service_radius_km"`
	WorkingHours    string         `json:"working_hours"`
	Services        []ServiceInput `json:"services"`
}

type RegisterArtisanRequest struct {
	User    RegisterRequest     `json:"user" binding:"required"`
	Artisan ArtisanProfileInput `json:"artisan" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}
