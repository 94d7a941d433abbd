package chat

type CreateConversationRequest struct {
	ArtisanID      int64  `json:"artisan_id" validate:"required,gt=0"`
	BookingID      *int64 `json:"booking_id,omitempty"`
	InitialMessage string `json:"initial_message,omitempty"`
}

type SendMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

// WSEvent is the frame pushed to connected participants when a message lands.
type WSEvent struct {
	Type           string `json:"type"`
	ConversationID int64  `json:"conversation_id"`
	Message        any    `json:"message,omitempty"`
}
