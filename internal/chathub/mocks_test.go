package chathub_test

import (
	"meetgo/backend/internal/models"

	"github.com/stretchr/testify/mock"
)

type MockClient struct {
	userID      uint
	roomID      string
	closed      bool
	RecvChannel chan models.ChatMessage
}

func newMockClient(userID uint) *MockClient {
	return &MockClient{
		userID:      userID,
		RecvChannel: make(chan models.ChatMessage, 10),
	}
}

func (c *MockClient) GetUserID() uint {
	return c.userID
}

func (c *MockClient) GetRoomID() string {
	return c.roomID
}

func (c *MockClient) SetRoomID(roomID string) {
	c.roomID = roomID
}

func (c *MockClient) GetSendChannel() chan<- models.ChatMessage {
	return c.RecvChannel
}

func (c *MockClient) Run() {
	// Not needed for testing
}

func (c *MockClient) Close() {
	c.closed = true
}

type MockEventHandler struct {
	mock.Mock
}

func (m *MockEventHandler) HandleEvent(msg *models.ChatMessage, userID uint) error {
	args := m.Called(msg, userID)
	return args.Error(0)
}
