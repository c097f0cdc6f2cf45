package telegram

import "strings"

// Update is one inbound event from the Telegram API
type Update struct {
	ID      int64    `json:"update_id"`
	Message *Message `json:"message"`
}

// Message is an inbound chat message
type Message struct {
	ID       int       `json:"message_id"`
	From     *User     `json:"from"`
	Chat     *Chat     `json:"chat"`
	Text     string    `json:"text"`
	Entities []Entity  `json:"entities"`
	Document *Document `json:"document"`
}

// User identifies the message sender
type User struct {
	ID int64 `json:"id"`
}

// Chat identifies the conversation the message arrived in
type Chat struct {
	ID int64 `json:"id"`
}

// Entity marks a typed span inside the message text
type Entity struct {
	Type   string `json:"type"`
	Offset int    `json:"offset"`
	Length int    `json:"length"`
}

// Document is a file attachment reference
type Document struct {
	FileID   string `json:"file_id"`
	UniqueID string `json:"file_unique_id"`
	FileName string `json:"file_name"`
	FilePath string `json:"file_path"`
}

const entityBotCommand = "bot_command"

// CommandArgument returns the trimmed text following the first bot command
// in the message, and whether the message carries a command at all.
func (m *Message) CommandArgument() (string, bool) {
	for _, ent := range m.Entities {
		if ent.Type != entityBotCommand {
			continue
		}
		end := ent.Offset + ent.Length
		if end > len(m.Text) {
			end = len(m.Text)
		}
		return strings.TrimSpace(m.Text[end:]), true
	}
	return "", false
}
