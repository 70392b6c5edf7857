package testutil

import (
	"context"

	"relaybot/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock for UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetLanguage(ctx context.Context, userID int64) (domain.Language, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.Language), args.Error(1)
}

func (m *MockUserRepository) SetLanguage(ctx context.Context, userID int64, lang domain.Language) error {
	args := m.Called(ctx, userID, lang)
	return args.Error(0)
}

func (m *MockUserRepository) IsBlocked(ctx context.Context, userID int64) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) SetBlocked(ctx context.Context, userID int64, blocked bool) error {
	args := m.Called(ctx, userID, blocked)
	return args.Error(0)
}

// MockTransport is a mock for transport.Transport
type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) SendText(chatID int64, text string) error {
	args := m.Called(chatID, text)
	return args.Error(0)
}

func (m *MockTransport) SendHTML(chatID int64, text string) error {
	args := m.Called(chatID, text)
	return args.Error(0)
}

func (m *MockTransport) PromptLanguage(chatID int64, text string) error {
	args := m.Called(chatID, text)
	return args.Error(0)
}

func (m *MockTransport) Forward(toChatID, fromChatID int64, messageID int) error {
	args := m.Called(toChatID, fromChatID, messageID)
	return args.Error(0)
}

func (m *MockTransport) AnswerCallback(callbackID string) error {
	args := m.Called(callbackID)
	return args.Error(0)
}

func (m *MockTransport) EditText(chatID int64, messageID int, text string) error {
	args := m.Called(chatID, messageID, text)
	return args.Error(0)
}
