package testutil

import (
	"homilybot/internal/telegram"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTextMessage creates a plain text message from a user
func NewTextMessage(userID, chatID int64, text string) *telegram.Message {
	return &telegram.Message{
		From: &telegram.User{ID: userID},
		Chat: &telegram.Chat{ID: chatID},
		Text: text,
	}
}

// NewCommandMessage creates a message carrying a bot command and its argument
func NewCommandMessage(userID, chatID int64, command, argument string) *telegram.Message {
	msg := NewTextMessage(userID, chatID, command+" "+argument)
	msg.Entities = []telegram.Entity{
		{Type: "bot_command", Offset: 0, Length: len(command)},
	}
	return msg
}

// NewDocumentMessage creates a message carrying a document attachment
func NewDocumentMessage(userID, chatID int64, doc *telegram.Document) *telegram.Message {
	msg := NewTextMessage(userID, chatID, "")
	msg.Document = doc
	return msg
}
