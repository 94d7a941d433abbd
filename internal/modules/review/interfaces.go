package review

import (
	"context"

	"fikhidmatik/internal/domain"
)

type ReviewRepository interface {
	Create(ctx context.Context, rv *domain.Review) error
	GetByID(ctx context.Context, id int64) (*domain.Review, error)
	ExistsForBooking(ctx context.Context, bookingID int64) (bool, error)
	ListByArtisan(ctx context.Context, artisanID int64, skip, limit int) ([]domain.Review, error)
	SetArtisanResponse(ctx context.Context, reviewID int64, response string) (bool, error)
	Distribution(ctx context.Context, artisanID int64) (map[int]int, error)
	SubRatingAverages(ctx context.Context, artisanID int64) (quality, punctuality, communication float64, err error)
}

type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

type ArtisanRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Artisan, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Artisan, error)
}
