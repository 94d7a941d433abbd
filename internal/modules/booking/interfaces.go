package booking

import (
	"context"

	"fikhidmatik/internal/domain"
)

type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByCustomer(ctx context.Context, customerID int64, status string) ([]domain.Booking, error)
	ListByArtisan(ctx context.Context, artisanID int64, status string) ([]domain.Booking, error)
	Transition(ctx context.Context, id int64, newStatus domain.BookingStatus, allowed ...domain.BookingStatus) (bool, error)
	Complete(ctx context.Context, id, artisanID int64, finalPrice *float64) (bool, error)
	UpdateFields(ctx context.Context, id int64, fields map[string]any) error
}

type ArtisanRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Artisan, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Artisan, error)
	IncrementCompletedJobs(ctx context.Context, artisanID int64) error
}
