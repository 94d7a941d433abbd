package chat

import "errors"

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrArtisanNotFound      = errors.New("artisan not found")
	ErrNotParticipant       = errors.New("not a participant of this conversation")
	ErrSelfConversation     = errors.New("cannot start a conversation with yourself")
)
