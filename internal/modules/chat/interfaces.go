package chat

import (
	"context"

	"fikhidmatik/internal/domain"
)

type ChatRepository interface {
	GetOrCreateConversation(ctx context.Context, customerID, artisanID int64, bookingID *int64) (*domain.Conversation, error)
	GetConversation(ctx context.Context, id int64) (*domain.Conversation, error)
	ListConversations(ctx context.Context, userID, artisanID int64) ([]domain.Conversation, error)
	CreateMessage(ctx context.Context, m *domain.Message) error
	ListMessages(ctx context.Context, conversationID int64, limit int) ([]domain.Message, error)
	MarkRead(ctx context.Context, conversationID, readerID int64) error
}

type ArtisanRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Artisan, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Artisan, error)
}
