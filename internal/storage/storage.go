package storage

import (
	"context"
	"time"

	"meetgo/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Topic returns the pub/sub channel name for a room. One topic per room.
func Topic(roomID string) string {
	return "chat:room:" + roomID
}

// TopicPattern matches every room topic, used by the hub's listener.
const TopicPattern = "chat:room:*"

// Storage is the persistence seam of the backend: the PostgreSQL system of
// record, the Redis live-message cache and the Redis pub/sub broker behind
// one interface so services can be tested against a mock.
type Storage interface {
	// Users
	GetUserByID(id uint) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	SaveUser(user *models.User) error
	DeleteUserByID(id uint) error
	SetUserOwner(id uint, isOwner bool) error

	// Posts and likes
	GetPostByID(postID uint) (*models.Post, error)
	PostExists(postID uint) (bool, error)
	SavePost(post *models.Post) error
	DeletePostByID(postID uint) error
	DeleteLikesByPostID(postID uint) error
	ListExpiredPostIDs(before time.Time) ([]uint, error)

	// Room directory
	SaveRoom(room *models.ChatRoom) error
	GetRoomByID(roomID string) (*models.ChatRoom, error)
	CountActiveRooms() (int64, error)

	// Membership ledger
	InvitedUserExists(userID, postID uint) (bool, error)
	SaveInvitedUser(invited *models.InvitedUser) error
	DeleteInvitedUser(userID, postID uint) error
	DeleteInvitedUsersByPostID(postID uint) error
	DeleteInvitedUsersByUserID(userID uint) error
	ListInvitedUsersByPostID(postID uint) ([]models.InvitedUser, error)
	ListInvitedUsersByUserID(userID uint) ([]models.InvitedUser, error)
	MarkInvitedUsersRead(userID, postID uint) error
	MarkInvitedUserUnread(userID, postID uint) error
	MarkQrChecked(userID, postID uint) error
	CountInvitedUsersByPostID(postID uint) (int64, error)

	// Durable message log
	SaveMessage(history *models.ChatHistory) error
	ListMessagesByRoomID(roomID string) ([]models.ChatHistory, error)
	DeleteMessagesByRoomID(roomID string) error

	// Live message cache
	CacheMessage(msg models.ChatMessage) error
	GetCachedMessages(roomID string) ([]models.ChatMessage, error)

	// Room archive
	ArchiveRoom(roomID string) error
	GetResignRoomByID(roomID string) (*models.ResignChatRoom, error)
	ListResignMessagesByRoomID(roomID string) ([]models.ResignChatMessage, error)

	// Pub/sub broker
	PublishMessage(roomID string, msg models.ChatMessage) error
}

// Service implements Storage over gorm/PostgreSQL and go-redis.
type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService constructs the service. The Redis client may be nil for
// tools that only touch the database (e.g. the admin CLI).
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

var _ Storage = (*Service)(nil)
