package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"fikhidmatik/internal/domain"
)

type ChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

// GetOrCreateConversation returns the existing conversation for the
// customer/artisan pair or creates one.
func (r *ChatRepository) GetOrCreateConversation(ctx context.Context, customerID, artisanID int64, bookingID *int64) (*domain.Conversation, error) {
	var conv domain.Conversation
	err := r.db.WithContext(ctx).
		Where("customer_id = ? AND artisan_id = ?", customerID, artisanID).
		First(&conv).Error
	if err == nil {
		return &conv, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	conv = domain.Conversation{
		CustomerID:    customerID,
		ArtisanID:     artisanID,
		BookingID:     bookingID,
		LastMessageAt: time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&conv).Error; err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *ChatRepository) GetConversation(ctx context.Context, id int64) (*domain.Conversation, error) {
	var conv domain.Conversation
	if err := r.db.WithContext(ctx).First(&conv, id).Error; err != nil {
		return nil, err
	}
	return &conv, nil
}

// ListConversations returns all conversations the user participates in,
// either side, most recent activity first.
func (r *ChatRepository) ListConversations(ctx context.Context, userID, artisanID int64) ([]domain.Conversation, error) {
	var out []domain.Conversation
	err := r.db.WithContext(ctx).
		Where("customer_id = ? OR artisan_id = ?", userID, artisanID).
		Order("last_message_at DESC").
		Find(&out).Error
	return out, err
}

// CreateMessage persists the message and bumps the conversation's
// last_message_at in one transaction.
func (r *ChatRepository) CreateMessage(ctx context.Context, m *domain.Message) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Conversation{}).
			Where("id = ?", m.ConversationID).
			Update("last_message_at", time.Now().UTC()).Error
	})
}

func (r *ChatRepository) ListMessages(ctx context.Context, conversationID int64, limit int) ([]domain.Message, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []domain.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// MarkRead flags all messages from the peer as read.
func (r *ChatRepository) MarkRead(ctx context.Context, conversationID, readerID int64) error {
	return r.db.WithContext(ctx).Model(&domain.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND is_read = ?", conversationID, readerID, false).
		Update("is_read", true).Error
}
