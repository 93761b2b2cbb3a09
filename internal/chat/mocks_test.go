package chat_test

import (
	"time"

	"meetgo/backend/internal/models"

	"github.com/stretchr/testify/mock"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) GetUserByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) GetUserByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) SaveUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockStorage) DeleteUserByID(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockStorage) SetUserOwner(id uint, isOwner bool) error {
	args := m.Called(id, isOwner)
	return args.Error(0)
}

func (m *MockStorage) GetPostByID(postID uint) (*models.Post, error) {
	args := m.Called(postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockStorage) PostExists(postID uint) (bool, error) {
	args := m.Called(postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) SavePost(post *models.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockStorage) DeletePostByID(postID uint) error {
	args := m.Called(postID)
	return args.Error(0)
}

func (m *MockStorage) DeleteLikesByPostID(postID uint) error {
	args := m.Called(postID)
	return args.Error(0)
}

func (m *MockStorage) ListExpiredPostIDs(before time.Time) ([]uint, error) {
	args := m.Called(before)
	return args.Get(0).([]uint), args.Error(1)
}

func (m *MockStorage) SaveRoom(room *models.ChatRoom) error {
	args := m.Called(room)
	return args.Error(0)
}

func (m *MockStorage) GetRoomByID(roomID string) (*models.ChatRoom, error) {
	args := m.Called(roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChatRoom), args.Error(1)
}

func (m *MockStorage) CountActiveRooms() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) InvitedUserExists(userID, postID uint) (bool, error) {
	args := m.Called(userID, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) SaveInvitedUser(invited *models.InvitedUser) error {
	args := m.Called(invited)
	return args.Error(0)
}

func (m *MockStorage) DeleteInvitedUser(userID, postID uint) error {
	args := m.Called(userID, postID)
	return args.Error(0)
}

func (m *MockStorage) DeleteInvitedUsersByPostID(postID uint) error {
	args := m.Called(postID)
	return args.Error(0)
}

func (m *MockStorage) DeleteInvitedUsersByUserID(userID uint) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockStorage) ListInvitedUsersByPostID(postID uint) ([]models.InvitedUser, error) {
	args := m.Called(postID)
	return args.Get(0).([]models.InvitedUser), args.Error(1)
}

func (m *MockStorage) ListInvitedUsersByUserID(userID uint) ([]models.InvitedUser, error) {
	args := m.Called(userID)
	return args.Get(0).([]models.InvitedUser), args.Error(1)
}

func (m *MockStorage) MarkInvitedUsersRead(userID, postID uint) error {
	args := m.Called(userID, postID)
	return args.Error(0)
}

func (m *MockStorage) MarkInvitedUserUnread(userID, postID uint) error {
	args := m.Called(userID, postID)
	return args.Error(0)
}

func (m *MockStorage) MarkQrChecked(userID, postID uint) error {
	args := m.Called(userID, postID)
	return args.Error(0)
}

func (m *MockStorage) CountInvitedUsersByPostID(postID uint) (int64, error) {
	args := m.Called(postID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) SaveMessage(history *models.ChatHistory) error {
	args := m.Called(history)
	return args.Error(0)
}

func (m *MockStorage) ListMessagesByRoomID(roomID string) ([]models.ChatHistory, error) {
	args := m.Called(roomID)
	return args.Get(0).([]models.ChatHistory), args.Error(1)
}

func (m *MockStorage) DeleteMessagesByRoomID(roomID string) error {
	args := m.Called(roomID)
	return args.Error(0)
}

func (m *MockStorage) CacheMessage(msg models.ChatMessage) error {
	args := m.Called(msg)
	return args.Error(0)
}

func (m *MockStorage) GetCachedMessages(roomID string) ([]models.ChatMessage, error) {
	args := m.Called(roomID)
	return args.Get(0).([]models.ChatMessage), args.Error(1)
}

func (m *MockStorage) ArchiveRoom(roomID string) error {
	args := m.Called(roomID)
	return args.Error(0)
}

func (m *MockStorage) GetResignRoomByID(roomID string) (*models.ResignChatRoom, error) {
	args := m.Called(roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ResignChatRoom), args.Error(1)
}

func (m *MockStorage) ListResignMessagesByRoomID(roomID string) ([]models.ResignChatMessage, error) {
	args := m.Called(roomID)
	return args.Get(0).([]models.ResignChatMessage), args.Error(1)
}

func (m *MockStorage) PublishMessage(roomID string, msg models.ChatMessage) error {
	args := m.Called(roomID, msg)
	return args.Error(0)
}
