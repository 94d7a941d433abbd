package review

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"fikhidmatik/internal/domain"
)

type Service struct {
	reviews  ReviewRepository
	bookings BookingRepository
	artisans ArtisanRepository
}

func NewService(reviews ReviewRepository, bookings BookingRepository, artisans ArtisanRepository) *Service {
	return &Service{reviews: reviews, bookings: bookings, artisans: artisans}
}

// Create writes the one review a customer gets per completed booking. The
// existence pre-check gives the friendly error; the unique index on
// booking_id is the real guarantee under concurrency.
func (s *Service) Create(ctx context.Context, userID int64, req CreateRequest) (*domain.Review, error) {
	b, err := s.bookings.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if b.CustomerID != userID {
		return nil, ErrForbidden
	}
	if b.Status != domain.BookingCompleted {
		return nil, ErrBookingNotComplete
	}

	exists, err := s.reviews.ExistsForBooking(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyReviewed
	}

	rv := &domain.Review{
		BookingID:           b.ID,
		CustomerID:          b.CustomerID,
		ArtisanID:           b.ArtisanID,
		Rating:              req.Rating,
		QualityRating:       req.QualityRating,
		PunctualityRating:   req.PunctualityRating,
		CommunicationRating: req.CommunicationRating,
		Comment:             req.Comment,
	}
	if err := s.reviews.Create(ctx, rv); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyReviewed
		}
		return nil, err
	}
	return rv, nil
}

func (s *Service) ListByArtisan(ctx context.Context, artisanID int64, skip, limit int) ([]domain.Review, error) {
	rvs, err := s.reviews.ListByArtisan(ctx, artisanID, skip, limit)
	if err != nil {
		return nil, err
	}
	if rvs == nil {
		rvs = []domain.Review{}
	}
	return rvs, nil
}

// Respond records the artisan's one-time reply to a review about them.
func (s *Service) Respond(ctx context.Context, userID, reviewID int64, req RespondRequest) (*domain.Review, error) {
	a, err := s.artisans.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	rv, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if rv.ArtisanID != a.ID {
		return nil, ErrForbidden
	}

	ok, err := s.reviews.SetArtisanResponse(ctx, rv.ID, req.Response)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAlreadyResponded
	}
	return s.reviews.GetByID(ctx, rv.ID)
}

// Stats assembles the aggregate view: the stored running mean plus the
// floor-bucketed distribution and sub-rating means.
func (s *Service) Stats(ctx context.Context, artisanID int64) (*domain.ReviewStats, error) {
	a, err := s.artisans.GetByID(ctx, artisanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArtisanNotFound
		}
		return nil, err
	}

	dist, err := s.reviews.Distribution(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	quality, punctuality, communication, err := s.reviews.SubRatingAverages(ctx, a.ID)
	if err != nil {
		return nil, err
	}

	return &domain.ReviewStats{
		TotalReviews:        a.TotalReviews,
		AverageRating:       a.Rating,
		Distribution:        dist,
		QualityRating:       quality,
		PunctualityRating:   punctuality,
		CommunicationRating: communication,
	}, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "23505")
}
