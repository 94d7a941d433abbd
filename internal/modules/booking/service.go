package booking

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"fikhidmatik/internal/domain"
)

type Service struct {
	bookings BookingRepository
	artisans ArtisanRepository
}

func NewService(bookings BookingRepository, artisans ArtisanRepository) *Service {
	return &Service{bookings: bookings, artisans: artisans}
}

func (s *Service) Create(ctx context.Context, customerID int64, req CreateRequest) (*domain.Booking, error) {
	a, err := s.artisans.GetByID(ctx, req.ArtisanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArtisanNotFound
		}
		return nil, err
	}
	if !a.IsAvailable {
		return nil, ErrArtisanUnavailable
	}

	b := &domain.Booking{
		CustomerID:         customerID,
		ArtisanID:          a.ID,
		ServiceCategory:    req.ServiceCategory,
		ServiceDescription: req.ServiceDescription,
		ScheduledDate:      req.ScheduledDate,
		ScheduledTime:      req.ScheduledTime,
		EstimatedDuration:  req.EstimatedDuration,
		Address:            req.Address,
		City:               req.City,
		Latitude:           req.Latitude,
		Longitude:          req.Longitude,
		EstimatedPrice:     req.EstimatedPrice,
		Status:             domain.BookingPending,
		PaymentStatus:      domain.PaymentPending,
		CustomerNotes:      req.CustomerNotes,
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// GetByID returns the booking only to its customer or its artisan.
func (s *Service) GetByID(ctx context.Context, userID, bookingID int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.authorize(ctx, userID, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) ListMine(ctx context.Context, customerID int64, status string) ([]domain.Booking, error) {
	bs, err := s.bookings.ListByCustomer(ctx, customerID, status)
	if err != nil {
		return nil, err
	}
	if bs == nil {
		bs = []domain.Booking{}
	}
	return bs, nil
}

func (s *Service) ListForArtisan(ctx context.Context, userID int64, status string) ([]domain.Booking, error) {
	a, err := s.profileOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	bs, err := s.bookings.ListByArtisan(ctx, a.ID, status)
	if err != nil {
		return nil, err
	}
	if bs == nil {
		bs = []domain.Booking{}
	}
	return bs, nil
}

// Update is the loose write path carried over from the original API surface.
// It patches fields without transition enforcement; the dedicated action
// endpoints are the guarded path.
func (s *Service) Update(ctx context.Context, userID, bookingID int64, req UpdateRequest) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.authorize(ctx, userID, b); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if req.Status != nil {
		if !validStatus(*req.Status) {
			return nil, ErrInvalidTransition
		}
		fields["status"] = *req.Status
	}
	if req.FinalPrice != nil {
		fields["final_price"] = *req.FinalPrice
	}
	if req.CustomerNotes != nil {
		fields["customer_notes"] = *req.CustomerNotes
	}
	if req.ArtisanNotes != nil {
		fields["artisan_notes"] = *req.ArtisanNotes
	}

	if err := s.bookings.UpdateFields(ctx, bookingID, fields); err != nil {
		return nil, err
	}

	// The completed job counter is credited only when the booking's artisan
	// is the one closing it, matching the action endpoint's bookkeeping. A
	// customer patching status does not earn the artisan a credit.
	if req.Status != nil &&
		domain.BookingStatus(*req.Status) == domain.BookingCompleted &&
		b.Status != domain.BookingCompleted {
		a, err := s.artisans.GetByUserID(ctx, userID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if err == nil && a.ID == b.ArtisanID {
			if err := s.artisans.IncrementCompletedJobs(ctx, b.ArtisanID); err != nil {
				return nil, err
			}
		}
	}

	return s.bookings.GetByID(ctx, bookingID)
}

// Accept moves a pending booking to accepted. Artisan only.
func (s *Service) Accept(ctx context.Context, userID, bookingID int64) (*domain.Booking, error) {
	return s.artisanTransition(ctx, userID, bookingID, domain.BookingAccepted, domain.BookingPending)
}

// Reject moves a pending booking to rejected. Artisan only.
func (s *Service) Reject(ctx context.Context, userID, bookingID int64) (*domain.Booking, error) {
	return s.artisanTransition(ctx, userID, bookingID, domain.BookingRejected, domain.BookingPending)
}

// Start moves an accepted booking to in_progress. Artisan only.
func (s *Service) Start(ctx context.Context, userID, bookingID int64) (*domain.Booking, error) {
	return s.artisanTransition(ctx, userID, bookingID, domain.BookingInProgress, domain.BookingAccepted)
}

// Complete closes out an in-progress booking, optionally recording the final
// price, and credits the artisan's completed job count.
func (s *Service) Complete(ctx context.Context, userID, bookingID int64, req CompleteRequest) (*domain.Booking, error) {
	a, b, err := s.ownedByArtisan(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}

	ok, err := s.bookings.Complete(ctx, b.ID, a.ID, req.FinalPrice)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidTransition
	}
	return s.bookings.GetByID(ctx, b.ID)
}

// Cancel lets the customer withdraw a booking that has not started yet.
func (s *Service) Cancel(ctx context.Context, userID, bookingID int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if b.CustomerID != userID {
		return nil, ErrForbidden
	}

	ok, err := s.bookings.Transition(ctx, b.ID, domain.BookingCancelled,
		domain.BookingPending, domain.BookingAccepted)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidTransition
	}
	return s.bookings.GetByID(ctx, b.ID)
}

func (s *Service) artisanTransition(ctx context.Context, userID, bookingID int64, to domain.BookingStatus, from ...domain.BookingStatus) (*domain.Booking, error) {
	_, b, err := s.ownedByArtisan(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}

	ok, err := s.bookings.Transition(ctx, b.ID, to, from...)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidTransition
	}
	return s.bookings.GetByID(ctx, b.ID)
}

func (s *Service) ownedByArtisan(ctx context.Context, userID, bookingID int64) (*domain.Artisan, *domain.Booking, error) {
	a, err := s.artisans.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// A caller without an artisan profile cannot own any booking.
			return nil, nil, ErrForbidden
		}
		return nil, nil, err
	}

	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	if b.ArtisanID != a.ID {
		return nil, nil, ErrForbidden
	}
	return a, b, nil
}

func (s *Service) authorize(ctx context.Context, userID int64, b *domain.Booking) error {
	if b.CustomerID == userID {
		return nil
	}

	a, err := s.artisans.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrForbidden
		}
		return err
	}
	if a.ID != b.ArtisanID {
		return ErrForbidden
	}
	return nil
}

func (s *Service) profileOf(ctx context.Context, userID int64) (*domain.Artisan, error) {
	a, err := s.artisans.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return a, nil
}

func validStatus(s string) bool {
	switch domain.BookingStatus(s) {
	case domain.BookingPending, domain.BookingAccepted, domain.BookingRejected,
		domain.BookingInProgress, domain.BookingCompleted, domain.BookingCancelled:
		return true
	}
	return false
}
