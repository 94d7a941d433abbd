package chat

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"fikhidmatik/internal/domain"
)

type Service struct {
	chats    ChatRepository
	artisans ArtisanRepository
	hub      *Hub
}

func NewService(chats ChatRepository, artisans ArtisanRepository, hub *Hub) *Service {
	return &Service{chats: chats, artisans: artisans, hub: hub}
}

// StartConversation opens (or finds) the conversation between the calling
// customer and the artisan, optionally sending an initial message.
func (s *Service) StartConversation(ctx context.Context, userID int64, req CreateConversationRequest) (*domain.Conversation, *domain.Message, error) {
	a, err := s.artisans.GetByID(ctx, req.ArtisanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrArtisanNotFound
		}
		return nil, nil, err
	}
	if a.UserID == userID {
		return nil, nil, ErrSelfConversation
	}

	conv, err := s.chats.GetOrCreateConversation(ctx, userID, a.ID, req.BookingID)
	if err != nil {
		return nil, nil, err
	}

	var msg *domain.Message
	if req.InitialMessage != "" {
		msg, err = s.deliver(ctx, conv, userID, a.UserID, req.InitialMessage)
		if err != nil {
			return nil, nil, err
		}
	}
	return conv, msg, nil
}

// ListConversations returns every conversation the user takes part in, as
// customer or as artisan.
func (s *Service) ListConversations(ctx context.Context, userID int64) ([]domain.Conversation, error) {
	artisanID := int64(0)
	if a, err := s.artisans.GetByUserID(ctx, userID); err == nil {
		artisanID = a.ID
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	convs, err := s.chats.ListConversations(ctx, userID, artisanID)
	if err != nil {
		return nil, err
	}
	if convs == nil {
		convs = []domain.Conversation{}
	}
	return convs, nil
}

// Messages returns the conversation history and marks the peer's messages as
// read for the caller.
func (s *Service) Messages(ctx context.Context, userID, conversationID int64, limit int) ([]domain.Message, error) {
	conv, err := s.participantConversation(ctx, userID, conversationID)
	if err != nil {
		return nil, err
	}

	msgs, err := s.chats.ListMessages(ctx, conv.ID, limit)
	if err != nil {
		return nil, err
	}
	if msgs == nil {
		msgs = []domain.Message{}
	}

	if err := s.chats.MarkRead(ctx, conv.ID, userID); err != nil {
		return nil, err
	}
	return msgs, nil
}

// SendMessage persists the message and pushes it to the peer's live
// connection when one exists.
func (s *Service) SendMessage(ctx context.Context, userID, conversationID int64, req SendMessageRequest) (*domain.Message, error) {
	conv, err := s.participantConversation(ctx, userID, conversationID)
	if err != nil {
		return nil, err
	}

	peerID, err := s.peerUserID(ctx, conv, userID)
	if err != nil {
		return nil, err
	}
	return s.deliver(ctx, conv, userID, peerID, req.Content)
}

func (s *Service) deliver(ctx context.Context, conv *domain.Conversation, senderID, peerID int64, content string) (*domain.Message, error) {
	msg := &domain.Message{
		ConversationID: conv.ID,
		SenderID:       senderID,
		Content:        content,
	}
	if err := s.chats.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}

	s.hub.SendToUser(peerID, WSEvent{
		Type:           "message",
		ConversationID: conv.ID,
		Message:        msg,
	})
	return msg, nil
}

func (s *Service) participantConversation(ctx context.Context, userID, conversationID int64) (*domain.Conversation, error) {
	conv, err := s.chats.GetConversation(ctx, conversationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, err
	}

	if conv.CustomerID == userID {
		return conv, nil
	}

	a, err := s.artisans.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotParticipant
		}
		return nil, err
	}
	if a.ID != conv.ArtisanID {
		return nil, ErrNotParticipant
	}
	return conv, nil
}

func (s *Service) peerUserID(ctx context.Context, conv *domain.Conversation, senderID int64) (int64, error) {
	if conv.CustomerID == senderID {
		a, err := s.artisans.GetByID(ctx, conv.ArtisanID)
		if err != nil {
			return 0, err
		}
		return a.UserID, nil
	}
	return conv.CustomerID, nil
}
