package postgres

import (
	"database/sql"

	"homilybot/internal/domain"
)

// ConversationRepo implements repository.ConversationRepository
type ConversationRepo struct {
	db *sql.DB
}

// NewConversationRepo creates a new conversation repository
func NewConversationRepo(db *sql.DB) *ConversationRepo {
	return &ConversationRepo{db: db}
}

// Load reads the user's record, returning a default one if absent
func (r *ConversationRepo) Load(userID int64) (*domain.Conversation, error) {
	conv := &domain.Conversation{}
	query := `SELECT credentials, pending_file_path, pending_date, status FROM conversations WHERE user_id = $1`
	err := r.db.QueryRow(query, userID).Scan(
		&conv.Credentials,
		&conv.PendingFilePath,
		&conv.PendingDate,
		&conv.Status,
	)

	if err == sql.ErrNoRows {
		// First contact from this user
		return domain.NewConversation(), nil
	}
	if err != nil {
		return nil, err
	}
	conv.Normalize()

	return conv, nil
}

// Save upserts the user's record, last write wins
func (r *ConversationRepo) Save(userID int64, conv *domain.Conversation) error {
	query := `
		INSERT INTO conversations (user_id, credentials, pending_file_path, pending_date, status)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id)
		DO UPDATE SET
			credentials = EXCLUDED.credentials,
			pending_file_path = EXCLUDED.pending_file_path,
			pending_date = EXCLUDED.pending_date,
			status = EXCLUDED.status
	`
	_, err := r.db.Exec(query, userID, conv.Credentials, conv.PendingFilePath, conv.PendingDate, string(conv.Status))
	return err
}
