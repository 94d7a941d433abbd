package domain

import "time"

type BookingStatus string

const (
	BookingPending    BookingStatus = "pending"
	BookingAccepted   BookingStatus = "accepted"
	BookingRejected   BookingStatus = "rejected"
	BookingInProgress BookingStatus = "in_progress"
	BookingCompleted  BookingStatus = "completed"
	BookingCancelled  BookingStatus = "cancelled"
)

// IsTerminal reports whether no further transition leaves the status.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingRejected || s == BookingCompleted || s == BookingCancelled
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

type Booking struct {
	ID         int64 `json:"id"`
	CustomerID int64 `json:"customer_id" gorm:"index;not null"`
	ArtisanID  int64 `json:"artisan_id" gorm:"index;not null"`

	ServiceCategory    string `json:"service_category" validate:"required"`
	ServiceDescription string `json:"service_description" gorm:"type:text" validate:"required"`

	ScheduledDate     time.Time `json:"scheduled_date" validate:"required"`
	ScheduledTime     string    `json:"scheduled_time" validate:"required"`
	EstimatedDuration *int      `json:"estimated_duration,omitempty"`

	Address   string   `json:"address" validate:"required"`
	City      string   `json:"city" validate:"required"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`

	EstimatedPrice *float64 `json:"estimated_price,omitempty"`
	FinalPrice     *float64 `json:"final_price,omitempty"`

	Status        BookingStatus `json:"status"`
	PaymentStatus PaymentStatus `json:"payment_status"`

	// Pass-through reference for the external payment processor.
	StripePaymentID string `json:"stripe_payment_id,omitempty"`

	CustomerNotes string `json:"customer_notes,omitempty" gorm:"type:text"`
	ArtisanNotes  string `json:"artisan_notes,omitempty" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
