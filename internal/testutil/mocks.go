package testutil

import (
	"context"
	"io"

	"homilybot/internal/domain"
	"homilybot/internal/wordpress"

	"github.com/stretchr/testify/mock"
)

// MockConversationRepository is a mock for repository.ConversationRepository
type MockConversationRepository struct {
	mock.Mock
}

func (m *MockConversationRepository) Load(userID int64) (*domain.Conversation, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conversation), args.Error(1)
}

func (m *MockConversationRepository) Save(userID int64, conv *domain.Conversation) error {
	args := m.Called(userID, conv)
	return args.Error(0)
}

// MockChat is a mock for service.Chat
type MockChat struct {
	mock.Mock
}

func (m *MockChat) SendText(chatID int64, text string) error {
	args := m.Called(chatID, text)
	return args.Error(0)
}

func (m *MockChat) ResolveFilePath(fileID string) (string, error) {
	args := m.Called(fileID)
	return args.String(0), args.Error(1)
}

func (m *MockChat) DownloadFile(remotePath string) (io.ReadCloser, error) {
	args := m.Called(remotePath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

// MockPublisher is a mock for service.Publisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) UploadMedia(_ context.Context, title, filename string, _ io.Reader) (*wordpress.Media, error) {
	args := m.Called(title, filename)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wordpress.Media), args.Error(1)
}

func (m *MockPublisher) CreatePost(_ context.Context, title, content string, categories []int) (*wordpress.Post, error) {
	args := m.Called(title, content, categories)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wordpress.Post), args.Error(1)
}
