package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"fikhidmatik/internal/domain"
)

// Mock repositories

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	if b != nil {
		b.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByCustomer(ctx context.Context, customerID int64, status string) ([]domain.Booking, error) {
	args := m.Called(ctx, customerID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByArtisan(ctx context.Context, artisanID int64, status string) ([]domain.Booking, error) {
	args := m.Called(ctx, artisanID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) Transition(ctx context.Context, id int64, newStatus domain.BookingStatus, allowed ...domain.BookingStatus) (bool, error) {
	callArgs := []any{ctx, id, newStatus}
	for _, a := range allowed {
		callArgs = append(callArgs, a)
	}
	args := m.Called(callArgs...)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepository) Complete(ctx context.Context, id, artisanID int64, finalPrice *float64) (bool, error) {
	args := m.Called(ctx, id, artisanID, finalPrice)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepository) UpdateFields(ctx context.Context, id int64, fields map[string]any) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

type MockArtisanRepository struct {
	mock.Mock
}

func (m *MockArtisanRepository) GetByID(ctx context.Context, id int64) (*domain.Artisan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Artisan), args.Error(1)
}

func (m *MockArtisanRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Artisan, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Artisan), args.Error(1)
}

func (m *MockArtisanRepository) IncrementCompletedJobs(ctx context.Context, artisanID int64) error {
	args := m.Called(ctx, artisanID)
	return args.Error(0)
}

func TestService_Create_Success(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockArtisans := new(MockArtisanRepository)

	mockArtisans.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.Artisan{ID: 5, UserID: 50, IsAvailable: true}, nil)
	mockBookings.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(mockBookings, mockArtisans)

	b, err := service.Create(context.Background(), 1, CreateRequest{
		ArtisanID:          5,
		ServiceCategory:    "plumbing",
		ServiceDescription: "Leaking sink",
		ScheduledTime:      "10:00",
		Address:            "12 Rue Hassan II",
		City:               "Casablanca",
	})

	assert.NoError(t, err)
	assert.NotNil(t, b)
	assert.Equal(t, domain.BookingPending, b.Status)
	assert.Equal(t, domain.PaymentPending, b.PaymentStatus)
	assert.Equal(t, int64(1), b.CustomerID)
}

func TestService_Create_ArtisanNotFound(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockArtisans := new(MockArtisanRepository)

	mockArtisans.On("GetByID", mock.Anything, int64(5)).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(mockBookings, mockArtisans)

	_, err := service.Create(context.Background(), 1, CreateRequest{ArtisanID: 5})
	assert.ErrorIs(t, err, ErrArtisanNotFound)
}

func TestService_Create_ArtisanUnavailable(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockArtisans := new(MockArtisanRepository)

	mockArtisans.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.Artisan{ID: 5, IsAvailable: false}, nil)

	service := NewService(mockBookings, mockArtisans)

	_, err := service.Create(context.Background(), 1, CreateRequest{ArtisanID: 5})
	assert.ErrorIs(t, err, ErrArtisanUnavailable)
}

func TestService_Accept_Success(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockArtisans := new(MockArtisanRepository)

	mockArtisans.On("GetByUserID", mock.Anything, int64(50)).
		Return(&domain.Artisan{ID: 5, UserID: 50}, nil)
	mockBookings.On("GetByID", mock.Anything, int64(7)).
		Return(&domain.Booking{ID: 7, ArtisanID: 5, Status: domain.BookingPending}, nil).Once()
	mockBookings.On("Transition", mock.Anything, int64(7), domain.BookingAccepted, domain.BookingPending).
		Return(true, nil)
	mockBookings.On("GetByID", mock.Anything, int64(7)).
		Return(&domain.Booking{ID: 7, ArtisanID: 5, Status: domain.BookingAccepted}, nil)

	service := NewService(mockBookings, mockArtisans)

	b, err := service.Accept(context.Background(), 50, 7)
	assert.NoError(t, err)
	assert.Equal(t, domain.BookingAccepted, b.Status)
}

func TestService_Accept_WrongArtisan(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockArtisans := new(MockArtisanRepository)

	mockArtisans.On("GetByUserID", mock.Anything, int64(60)).
		Return(&domain.Artisan{ID: 6, UserID: 60}, nil)
	mockBookings.On("GetByID", mock.Anything, int64(7)).
		Return(&domain.Booking{ID: 7, ArtisanID: 5}, nil)

	service := NewService(mockBookings, mockArtisans)

	_, err := service.Accept(context.Background(), 60, 7)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestService_Accept_AlreadyRejected(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockArtisans := new(MockArtisanRepository)

	mockArtisans.On("GetByUserID", mock.Anything, int64(50)).
		Return(&domain.Artisan{ID: 5, UserID: 50}, nil)
	mockBookings.On("GetByID", mock.Anything, int64(7)).
		Return(&domain.Booking{ID: 7, ArtisanID: 5, Status: domain.BookingRejected}, nil)
	mockBookings.On("Transition", mock.Anything, int64(7), domain.BookingAccepted, domain.BookingPending).
		Return(false, nil)

	service := NewService(mockBookings, mockArtisans)

	_, err := service.Accept(context.Background(), 50, 7)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestService_Start_FromAcceptedOnly(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockArtisans := new(MockArtisanRepository)

	mockArtisans.On("GetByUserID", mock.Anything, int64(50)).
		Return(&domain.Artisan{ID: 5, UserID: 50}, nil)
	mockBookings.On("GetByID", mock.Anything, int64(7)).
		Return(&domain.Booking{ID: 7, ArtisanID: 5, Status: domain.BookingPending}, nil)
	mockBookings.On("Transition", mock.Anything, int64(7), domain.BookingInProgress, domain.BookingAccepted).
		Return(false, nil)

	service := NewService(mockBookings, mockArtisans)

	_, err := service.Start(context.Background(), 50, 7)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestService_Complete_Success(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockArtisans := new(MockArtisanRepository)

	price := 450.0
	mockArtisans.On("GetByUserID", mock.Anything, int64(50)).
		Return(&domain.Artisan{ID: 5, UserID: 50}, nil)
	mockBookings.On("GetByID", mock.Anything, int64(7)).
		Return(&domain.Booking{ID: 7, ArtisanID: 5, Status: domain.BookingInProgress}, nil).Once()
	mockBookings.On("Complete", mock.Anything, int64(7), int64(5), &price).Return(true, nil)
	mockBookings.On("GetByID", mock.Anything, int64(7)).
		Return(&domain.Booking{ID: 7, ArtisanID: 5, Status: domain.BookingCompleted, FinalPrice: &price}, nil)

	service := NewService(mockBookings, mockArtisans)

	b, err := service.Complete(context.Background(), 50, 7, CompleteRequest{FinalPrice: &price})
	assert.NoError(t, err)
	assert.Equal(t, domain.BookingCompleted, b.Status)
	assert.Equal(t, price, *b.FinalPrice)
}

func TestService_Cancel_ByCustomer(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockArtisans := new(MockArtisanRepository)

	mockBookings.On("GetByID", mock.Anything, int64(7)).
		Return(&domain.Booking{ID: 7, CustomerID: 1, Status: domain.BookingAccepted}, nil).Once()
	mockBookings.On("Transition", mock.Anything, int64(7), domain.BookingCancelled, domain.BookingPending, domain.BookingAccepted).
		Return(true, nil)
	mockBookings.On("GetByID", mock.Anything, int64(7)).
		Return(&domain.Booking{ID: 7, CustomerID: 1, Status: domain.BookingCancelled}, nil)

	service := NewService(mockBookings, mockArtisans)

	b, err := service.Cancel(context.Background(), 1, 7)
	assert.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, b.Status)
}

func TestService_Cancel_NotOwner(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockArtisans := new(MockArtisanRepository)

	mockBookings.On("GetByID", mock.Anything, int64(7)).
		Return(&domain.Booking{ID: 7, CustomerID: 1, Status: domain.BookingPending}, nil)

	service := NewService(mockBookings, mockArtisans)

	_, err := service.Cancel(context.Background(), 2, 7)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestService_Cancel_Completed(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockArtisans := new(MockArtisanRepository)

	mockBookings.On("GetByID", mock.Anything, int64(7)).
		Return(&domain.Booking{ID: 7, CustomerID: 1, Status: domain.BookingCompleted}, nil)
	mockBookings.On("Transition", mock.Anything, int64(7), domain.BookingCancelled, domain.BookingPending, domain.BookingAccepted).
		Return(false, nil)

	service := NewService(mockBookings, mockArtisans)

	_, err := service.Cancel(context.Background(), 1, 7)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestService_GetByID_ForbiddenForStranger(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockArtisans := new(MockArtisanRepository)

	mockBookings.On("GetByID", mock.Anything, int64(7)).
		Return(&domain.Booking{ID: 7, CustomerID: 1, ArtisanID: 5}, nil)
	mockArtisans.On("GetByUserID", mock.Anything, int64(99)).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(mockBookings, mockArtisans)

	_, err := service.GetByID(context.Background(), 99, 7)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestService_Update_InvalidStatusValue(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockArtisans := new(MockArtisanRepository)

	mockBookings.On("GetByID", mock.Anything, int64(7)).
		Return(&domain.Booking{ID: 7, CustomerID: 1}, nil)

	service := NewService(mockBookings, mockArtisans)

	bad := "paused"
	_, err := service.Update(context.Background(), 1, 7, UpdateRequest{Status: &bad})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestService_Update_ArtisanCompletingCreditsJobs(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockArtisans := new(MockArtisanRepository)

	done := string(domain.BookingCompleted)
	mockBookings.On("GetByID", mock.Anything, int64(7)).
		Return(&domain.Booking{ID: 7, CustomerID: 1, ArtisanID: 5, Status: domain.BookingInProgress}, nil).Once()
	mockArtisans.On("GetByUserID", mock.Anything, int64(50)).
		Return(&domain.Artisan{ID: 5, UserID: 50}, nil)
	mockBookings.On("UpdateFields", mock.Anything, int64(7), mock.Anything).Return(nil)
	mockArtisans.On("IncrementCompletedJobs", mock.Anything, int64(5)).Return(nil)
	mockBookings.On("GetByID", mock.Anything, int64(7)).
		Return(&domain.Booking{ID: 7, CustomerID: 1, ArtisanID: 5, Status: domain.BookingCompleted}, nil)

	service := NewService(mockBookings, mockArtisans)

	b, err := service.Update(context.Background(), 50, 7, UpdateRequest{Status: &done})
	assert.NoError(t, err)
	assert.Equal(t, domain.BookingCompleted, b.Status)
	mockArtisans.AssertCalled(t, "IncrementCompletedJobs", mock.Anything, int64(5))
}

func TestService_Update_CustomerCompletingDoesNotCredit(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockArtisans := new(MockArtisanRepository)

	done := string(domain.BookingCompleted)
	mockBookings.On("GetByID", mock.Anything, int64(7)).
		Return(&domain.Booking{ID: 7, CustomerID: 1, ArtisanID: 5, Status: domain.BookingInProgress}, nil).Once()
	mockBookings.On("UpdateFields", mock.Anything, int64(7), mock.Anything).Return(nil)
	mockArtisans.On("GetByUserID", mock.Anything, int64(1)).Return(nil, gorm.ErrRecordNotFound)
	mockBookings.On("GetByID", mock.Anything, int64(7)).
		Return(&domain.Booking{ID: 7, CustomerID: 1, ArtisanID: 5, Status: domain.BookingCompleted}, nil)

	service := NewService(mockBookings, mockArtisans)

	b, err := service.Update(context.Background(), 1, 7, UpdateRequest{Status: &done})
	assert.NoError(t, err)
	assert.Equal(t, domain.BookingCompleted, b.Status)
	mockArtisans.AssertNotCalled(t, "IncrementCompletedJobs", mock.Anything, mock.Anything)
}

func TestService_Accept_NoArtisanProfile(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockArtisans := new(MockArtisanRepository)

	mockArtisans.On("GetByUserID", mock.Anything, int64(3)).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(mockBookings, mockArtisans)

	_, err := service.Accept(context.Background(), 3, 7)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestService_ListForArtisan_NoProfile(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockArtisans := new(MockArtisanRepository)

	mockArtisans.On("GetByUserID", mock.Anything, int64(3)).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(mockBookings, mockArtisans)

	_, err := service.ListForArtisan(context.Background(), 3, "")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}
