package domain

import "time"

type Conversation struct {
	ID         int64  `json:"id"`
	CustomerID int64  `json:"customer_id" gorm:"index;not null"`
	ArtisanID  int64  `json:"artisan_id" gorm:"index;not null"`
	BookingID  *int64 `json:"booking_id,omitempty"`

	LastMessageAt time.Time `json:"last_message_at"`
	CreatedAt     time.Time `json:"created_at"`
}

type Message struct {
	ID             int64 `json:"id"`
	ConversationID int64 `json:"conversation_id" gorm:"index;not null"`
	SenderID       int64 `json:"sender_id" gorm:"not null"`

	Content string `json:"content" gorm:"type:text;not null" validate:"required"`
	IsRead  bool   `json:"is_read"`

	CreatedAt time.Time `json:"created_at"`
}
