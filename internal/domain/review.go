package domain

import "time"

// Review is written exactly once per completed booking. CustomerID and
// ArtisanID are denormalized from the booking for direct querying.
type Review struct {
	ID         int64 `json:"id"`
	BookingID  int64 `json:"booking_id" gorm:"uniqueIndex;not null"`
	CustomerID int64 `json:"customer_id" gorm:"index;not null"`
	ArtisanID  int64 `json:"artisan_id" gorm:"index;not null"`

	Rating              float64  `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5" validate:"required,gte=1,lte=5"`
	QualityRating       *float64 `json:"quality_rating,omitempty"`
	PunctualityRating   *float64 `json:"punctuality_rating,omitempty"`
	CommunicationRating *float64 `json:"communication_rating,omitempty"`

	Comment string `json:"comment,omitempty" gorm:"type:text"`

	ArtisanResponse *string    `json:"artisan_response,omitempty" gorm:"type:text"`
	RespondedAt     *time.Time `json:"responded_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ReviewStats is the per-artisan aggregate view. AverageRating comes from the
// stored running mean on the artisan row, not from recomputation.
type ReviewStats struct {
	TotalReviews        int         `json:"total_reviews"`
	AverageRating       float64     `json:"average_rating"`
	Distribution        map[int]int `json:"distribution"`
	QualityRating       float64     `json:"quality_rating"`
	PunctualityRating   float64     `json:"punctuality_rating"`
	CommunicationRating float64     `json:"communication_rating"`
}
