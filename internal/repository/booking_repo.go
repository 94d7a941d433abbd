package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"fikhidmatik/internal/domain"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID         int64 `gorm:"column:id;primaryKey"`
	CustomerID int64 `gorm:"column:customer_id;index;not null"`
	ArtisanID  int64 `gorm:"column:artisan_id;index;not null"`

	ServiceCategory    string `gorm:"column:service_category"`
	ServiceDescription string `gorm:"column:service_description"`

	ScheduledDate     time.Time `gorm:"column:scheduled_date"`
	ScheduledTime     string    `gorm:"column:scheduled_time"`
	EstimatedDuration *int      `gorm:"column:estimated_duration"`

	Address   string   `gorm:"column:address"`
	City      string   `gorm:"column:city"`
	Latitude  *float64 `gorm:"column:latitude"`
	Longitude *float64 `gorm:"column:longitude"`

	EstimatedPrice *float64 `gorm:"column:estimated_price"`
	FinalPrice     *float64 `gorm:"column:final_price"`

	Status        string `gorm:"column:status;index"`
	PaymentStatus string `gorm:"column:payment_status"`

	StripePaymentID *string `gorm:"column:stripe_payment_id"`

	CustomerNotes *string `gorm:"column:customer_notes"`
	ArtisanNotes  *string `gorm:"column:artisan_notes"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	deref := func(p *string) string {
		if p != nil {
			return *p
		}
		return ""
	}

	return &domain.Booking{
		ID:                 m.ID,
		CustomerID:         m.CustomerID,
		ArtisanID:          m.ArtisanID,
		ServiceCategory:    m.ServiceCategory,
		ServiceDescription: m.ServiceDescription,
		ScheduledDate:      m.ScheduledDate,
		ScheduledTime:      m.ScheduledTime,
		EstimatedDuration:  m.EstimatedDuration,
		Address:            m.Address,
		City:               m.City,
		Latitude:           m.Latitude,
		Longitude:          m.Longitude,
		EstimatedPrice:     m.EstimatedPrice,
		FinalPrice:         m.FinalPrice,
		Status:             domain.BookingStatus(m.Status),
		PaymentStatus:      domain.PaymentStatus(m.PaymentStatus),
		StripePaymentID:    deref(m.StripePaymentID),
		CustomerNotes:      deref(m.CustomerNotes),
		ArtisanNotes:       deref(m.ArtisanNotes),
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	opt := func(s string) *string {
		if s == "" {
			return nil
		}
		v := s
		return &v
	}

	return bookingModel{
		ID:                 b.ID,
		CustomerID:         b.CustomerID,
		ArtisanID:          b.ArtisanID,
		ServiceCategory:    b.ServiceCategory,
		ServiceDescription: b.ServiceDescription,
		ScheduledDate:      b.ScheduledDate,
		ScheduledTime:      b.ScheduledTime,
		EstimatedDuration:  b.EstimatedDuration,
		Address:            b.Address,
		City:               b.City,
		Latitude:           b.Latitude,
		Longitude:          b.Longitude,
		EstimatedPrice:     b.EstimatedPrice,
		FinalPrice:         b.FinalPrice,
		Status:             string(b.Status),
		PaymentStatus:      string(b.PaymentStatus),
		StripePaymentID:    opt(b.StripePaymentID),
		CustomerNotes:      opt(b.CustomerNotes),
		ArtisanNotes:       opt(b.ArtisanNotes),
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) ListByCustomer(ctx context.Context, customerID int64, status string) ([]domain.Booking, error) {
	return r.list(ctx, "customer_id = ?", customerID, status)
}

func (r *BookingRepository) ListByArtisan(ctx context.Context, artisanID int64, status string) ([]domain.Booking, error) {
	return r.list(ctx, "artisan_id = ?", artisanID, status)
}

func (r *BookingRepository) list(ctx context.Context, cond string, id int64, status string) ([]domain.Booking, error) {
	q := r.db.WithContext(ctx).Where(cond, id)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var ms []bookingModel
	if err := q.Order("created_at DESC").Find(&ms).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Booking, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// Transition moves the booking to newStatus only if its current status is one
// of allowed. The conditional update is the store-level guard: of two
// concurrent transitions at most one sees rows affected.
func (r *BookingRepository) Transition(ctx context.Context, id int64, newStatus domain.BookingStatus, allowed ...domain.BookingStatus) (bool, error) {
	current := make([]string, 0, len(allowed))
	for _, s := range allowed {
		current = append(current, string(s))
	}

	tx := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("id = ? AND status IN ?", id, current).
		Updates(map[string]any{
			"status":     string(newStatus),
			"updated_at": time.Now().UTC(),
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

// Complete moves an in-progress booking to completed and bumps the artisan's
// completed_jobs counter in the same transaction.
func (r *BookingRepository) Complete(ctx context.Context, id, artisanID int64, finalPrice *float64) (bool, error) {
	var ok bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{
			"status":     string(domain.BookingCompleted),
			"updated_at": time.Now().UTC(),
		}
		if finalPrice != nil {
			updates["final_price"] = *finalPrice
		}

		res := tx.Model(&bookingModel{}).
			Where("id = ? AND status = ?", id, string(domain.BookingInProgress)).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}

		if err := tx.Model(&domain.Artisan{}).
			Where("id = ?", artisanID).
			UpdateColumn("completed_jobs", gorm.Expr("completed_jobs + 1")).Error; err != nil {
			return err
		}

		ok = true
		return nil
	})
	return ok, err
}

// UpdateFields is the loose write path: it patches columns without
// state-machine enforcement.
func (r *BookingRepository) UpdateFields(ctx context.Context, id int64, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	fields["updated_at"] = time.Now().UTC()
	return r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("id = ?", id).
		Updates(fields).Error
}
