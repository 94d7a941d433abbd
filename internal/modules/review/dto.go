package review

type CreateRequest struct {
	BookingID           int64    `json:"booking_id" validate:"required,gt=0"`
	Rating              float64  `json:"rating" validate:"required,gte=1,lte=5"`
	QualityRating       *float64 `json:"quality_rating,omitempty" validate:"omitempty,gte=1,lte=5"`
	PunctualityRating   *float64 `json:"punctuality_rating,omitempty" validate:"omitempty,gte=1,lte=5"`
	CommunicationRating *float64 `json:"communication_rating,omitempty" validate:"omitempty,gte=1,lte=5"`
	Comment             string   `json:"comment,omitempty"`
}

type RespondRequest struct {
	Response string `json:"response" validate:"required"`
}
