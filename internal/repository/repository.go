package repository

import (
	"homilybot/internal/domain"
)

// ConversationRepository defines conversation state persistence.
// Load returns a default empty record when none exists for the user.
type ConversationRepository interface {
	Load(userID int64) (*domain.Conversation, error)
	Save(userID int64, conv *domain.Conversation) error
}
