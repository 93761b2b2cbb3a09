package storage

import (
	"encoding/json"
	"errors"
	"log"

	"meetgo/backend/internal/config"
	"meetgo/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func cacheKey(roomID string) string {
	return "chat:messages:" + roomID
}

// SaveMessage appends a message to the durable log and fills in the generated ID.
func (s *Service) SaveMessage(history *models.ChatHistory) error {
	if err := s.DB.Create(history).Error; err != nil {
		log.Printf("ERROR: Failed to save message for room %s: %v", history.RoomID, err)
		return err
	}
	return nil
}

// ListMessagesByRoomID returns the full durable log of a room in send order.
func (s *Service) ListMessagesByRoomID(roomID string) ([]models.ChatHistory, error) {
	var history []models.ChatHistory
	err := s.DB.Where("room_id = ?", roomID).Order("created_at asc").Find(&history).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return history, nil
		}
		log.Printf("ERROR: Failed to get chat history for room %s: %v", roomID, err)
		return nil, err
	}
	return history, nil
}

// DeleteMessagesByRoomID removes the live log of a room. Tolerates the room
// having no messages or having already been archived.
func (s *Service) DeleteMessagesByRoomID(roomID string) error {
	return s.DB.Unscoped().Where("room_id = ?", roomID).Delete(&models.ChatHistory{}).Error
}

// CacheMessage pushes a message onto the room's Redis list, trims it to the
// recent window and refreshes the TTL. The cache is a best-effort fast path;
// the durable log stays authoritative.
func (s *Service) CacheMessage(msg models.ChatMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	key := cacheKey(msg.RoomID)
	pipe := s.Redis.TxPipeline()
	pipe.RPush(s.Ctx, key, data)
	pipe.LTrim(s.Ctx, key, int64(-config.RecentMessageLimit), -1)
	pipe.Expire(s.Ctx, key, config.MessageCacheTTL)
	if _, err := pipe.Exec(s.Ctx); err != nil {
		log.Printf("ERROR: Failed to cache message for room %s: %v", msg.RoomID, err)
		return err
	}
	return nil
}

// GetCachedMessages returns the room's recent messages from Redis. A missing
// key yields an empty slice, never an error.
func (s *Service) GetCachedMessages(roomID string) ([]models.ChatMessage, error) {
	entries, err := s.Redis.LRange(s.Ctx, cacheKey(roomID), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	messages := make([]models.ChatMessage, 0, len(entries))
	for _, entry := range entries {
		var msg models.ChatMessage
		if err := json.Unmarshal([]byte(entry), &msg); err != nil {
			log.Printf("ERROR: Corrupt cached message in room %s: %v", roomID, err)
			continue
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

// PublishMessage publishes a message to the room's pub/sub topic.
// Fire-and-forget toward subscribers; delivery failures never roll back the
// store writes that preceded them.
func (s *Service) PublishMessage(roomID string, msg models.ChatMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	if err := s.Redis.Publish(s.Ctx, Topic(roomID), string(data)).Err(); err != nil {
		return err
	}
	return nil
}

// SubscribeRooms opens the pattern subscription covering every room topic.
func (s *Service) SubscribeRooms() *redis.PubSub {
	return s.Redis.PSubscribe(s.Ctx, TopicPattern)
}
