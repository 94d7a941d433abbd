package booking

import "time"

type CreateRequest struct {
	ArtisanID          int64     `json:"artisan_id" validate:"required,gt=0"`
	ServiceCategory    string    `json:"service_category" validate:"required"`
	ServiceDescription string    `json:"service_description" validate:"required"`
	ScheduledDate      time.Time `json:"scheduled_date" validate:"required"`
	ScheduledTime      string    `json:"scheduled_time" validate:"required"`
	EstimatedDuration  *int      `json:"estimated_duration,omitempty"`
	Address            string    `json:"address" validate:"required"`
	City               string    `json:"city" validate:"required"`
	Latitude           *float64  `json:"latitude,omitempty"`
	Longitude          *float64  `json:"longitude,omitempty"`
	EstimatedPrice     *float64  `json:"estimated_price,omitempty"`
	CustomerNotes      string    `json:"customer_notes,omitempty"`
}

// UpdateRequest is the generic PUT body. Only present fields are patched and
// a status written here bypasses the transition endpoints.
type UpdateRequest struct {
	Status        *string  `json:"status,omitempty"`
	FinalPrice    *float64 `json:"final_price,omitempty" validate:"omitempty,gte=0"`
	CustomerNotes *string  `json:"customer_notes,omitempty"`
	ArtisanNotes  *string  `json:"artisan_notes,omitempty"`
}

type CompleteRequest struct {
	FinalPrice *float64 `json:"final_price,omitempty" validate:"omitempty,gte=0"`
}
