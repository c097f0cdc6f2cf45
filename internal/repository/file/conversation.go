package file

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"homilybot/internal/domain"
)

// ConversationRepo implements repository.ConversationRepository on top of
// one JSON document per user, kept under a single state directory
type ConversationRepo struct {
	dir string
}

// NewConversationRepo creates a file-backed repository rooted at dir
func NewConversationRepo(dir string) *ConversationRepo {
	return &ConversationRepo{dir: dir}
}

// Load reads the user's record, returning a default one if absent
func (r *ConversationRepo) Load(userID int64) (*domain.Conversation, error) {
	data, err := os.ReadFile(r.path(userID))
	if errors.Is(err, fs.ErrNotExist) {
		return domain.NewConversation(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read conversation %d: %w", userID, err)
	}

	conv := &domain.Conversation{}
	if err := json.Unmarshal(data, conv); err != nil {
		return nil, fmt.Errorf("decode conversation %d: %w", userID, err)
	}
	conv.Normalize()

	return conv, nil
}

// Save overwrites the user's record, last write wins
func (r *ConversationRepo) Save(userID int64, conv *domain.Conversation) error {
	data, err := json.Marshal(conv)
	if err != nil {
		return fmt.Errorf("encode conversation %d: %w", userID, err)
	}
	if err := os.WriteFile(r.path(userID), data, 0o644); err != nil {
		return fmt.Errorf("write conversation %d: %w", userID, err)
	}
	return nil
}

func (r *ConversationRepo) path(userID int64) string {
	return filepath.Join(r.dir, fmt.Sprintf("%d.json", userID))
}
