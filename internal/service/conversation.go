package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"homilybot/internal/domain"
	"homilybot/internal/repository"
	"homilybot/internal/telegram"
	"homilybot/internal/wordpress"

	"go.uber.org/zap"
)

// Chat defines the Telegram calls the service issues
type Chat interface {
	SendText(chatID int64, text string) error
	ResolveFilePath(fileID string) (string, error)
	DownloadFile(remotePath string) (io.ReadCloser, error)
}

// Publisher defines the two-step publish calls against the content API
type Publisher interface {
	UploadMedia(ctx context.Context, title, filename string, file io.Reader) (*wordpress.Media, error)
	CreatePost(ctx context.Context, title, content string, categories []int) (*wordpress.Post, error)
}

// PublisherFactory builds a Publisher for one user's credentials
type PublisherFactory func(apiKey, secret string) Publisher

// Replies sent back to the user
const (
	replyCredentialsSaved = "Ok, credentials saved."
	replyRequireLogin     = "Before we proceed, send me your credentials with the /login command."
	replyAskDate          = "Document saved. When was it recorded?"
	replyPublishing       = "Ok, about to publish the audio."
)

const postTitlePrefix = "Gospel and Homily "

// ConversationService applies one transition per inbound message:
// it loads the user's state, lets Decide pick a branch, executes the
// branch's remote calls and persists the new state only on full success
type ConversationService struct {
	repo         repository.ConversationRepository
	chat         Chat
	newPublisher PublisherFactory
	mediaDir     string
	categoryID   int
	logger       *zap.Logger
}

// NewConversationService creates a new conversation service
func NewConversationService(
	repo repository.ConversationRepository,
	chat Chat,
	newPublisher PublisherFactory,
	mediaDir string,
	categoryID int,
	logger *zap.Logger,
) *ConversationService {
	return &ConversationService{
		repo:         repo,
		chat:         chat,
		newPublisher: newPublisher,
		mediaDir:     mediaDir,
		categoryID:   categoryID,
		logger:       logger,
	}
}

// HandleMessage processes one inbound message end to end
func (s *ConversationService) HandleMessage(ctx context.Context, msg *telegram.Message) error {
	if msg == nil || msg.From == nil || msg.Chat == nil {
		return nil
	}
	userID := msg.From.ID

	conv, err := s.repo.Load(userID)
	if err != nil {
		return fmt.Errorf("load conversation: %w", err)
	}

	decision := Decide(conv, msg)

	switch decision.Kind {
	case DecideSaveCredentials:
		conv.Credentials = decision.Credentials
		if err := s.repo.Save(userID, conv); err != nil {
			return fmt.Errorf("save conversation: %w", err)
		}
		s.reply(msg.Chat.ID, replyCredentialsSaved)

	case DecideRequireLogin:
		s.reply(msg.Chat.ID, replyRequireLogin)

	case DecideArchiveDocument:
		return s.archiveDocument(msg.Chat.ID, userID, conv, decision.Document)

	case DecidePublish:
		return s.publish(ctx, msg.Chat.ID, userID, conv, decision.Date)

	case DecideIgnore:
	}

	return nil
}

// archiveDocument downloads the attachment locally and asks for the
// recording date
func (s *ConversationService) archiveDocument(chatID, userID int64, conv *domain.Conversation, doc *telegram.Document) error {
	remotePath := doc.FilePath
	if remotePath == "" {
		var err error
		remotePath, err = s.chat.ResolveFilePath(doc.FileID)
		if err != nil {
			return fmt.Errorf("resolve file %s: %w", doc.FileID, err)
		}
	}

	localPath := filepath.Join(s.mediaDir, fmt.Sprintf("%s__%s.mp3", doc.UniqueID, doc.FileName))
	if err := s.download(localPath, remotePath); err != nil {
		return fmt.Errorf("download %s: %w", remotePath, err)
	}

	s.logger.Info("Saved document",
		zap.Int64("user_id", userID),
		zap.String("local_path", localPath),
		zap.String("remote_path", remotePath),
	)

	conv.PendingFilePath = localPath
	conv.Status = domain.StatusAwaitingDate
	if err := s.repo.Save(userID, conv); err != nil {
		return fmt.Errorf("save conversation: %w", err)
	}

	s.reply(chatID, replyAskDate)
	return nil
}

// publish runs the two-step publish: upload the pending media, then create a
// post referencing it. State is persisted only after both steps succeed, so a
// failed attempt keeps the pending file and the date can be sent again.
// Known limitation: the user gets no failure reply.
func (s *ConversationService) publish(ctx context.Context, chatID, userID int64, conv *domain.Conversation, date string) error {
	apiKey, secret, err := conv.SplitCredentials()
	if err != nil {
		return err
	}
	publisher := s.newPublisher(apiKey, secret)
	conv.PendingDate = date

	s.reply(chatID, replyPublishing)

	file, err := os.Open(conv.PendingFilePath)
	if err != nil {
		return fmt.Errorf("open pending file: %w", err)
	}
	defer file.Close()

	title := postTitlePrefix + date

	media, err := publisher.UploadMedia(ctx, title, filepath.Base(conv.PendingFilePath), file)
	if err != nil {
		return fmt.Errorf("upload media: %w", err)
	}
	s.logger.Info("Uploaded media", zap.Int64("user_id", userID), zap.String("link", media.Link))

	post, err := publisher.CreatePost(ctx, title, media.Description.Rendered, []int{s.categoryID})
	if err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	s.logger.Info("Created post", zap.Int64("user_id", userID), zap.String("link", post.Link))

	conv.ClearPending()
	if err := s.repo.Save(userID, conv); err != nil {
		return fmt.Errorf("save conversation: %w", err)
	}

	s.reply(chatID, "Published here: "+post.Link)
	return nil
}

// download writes the remote file content to localPath
func (s *ConversationService) download(localPath, remotePath string) error {
	body, err := s.chat.DownloadFile(remotePath)
	if err != nil {
		return err
	}
	defer body.Close()

	out, err := os.Create(localPath)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, body); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// reply sends a best-effort notification, failures are only logged
func (s *ConversationService) reply(chatID int64, text string) {
	if err := s.chat.SendText(chatID, text); err != nil {
		s.logger.Error("Failed to send message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}
