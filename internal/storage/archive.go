package storage

import (
	"errors"
	"log"
	"strconv"

	"meetgo/backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ArchiveRoom destroys a live room inside one transaction: its directory row
// becomes a ResignChatRoom, every message becomes a ResignChatMessage, then
// the live rows (messages, memberships, directory) are deleted.
//
// The operation is idempotent. A room that is missing or already archived is
// a no-op, not an error; concurrent owner QUITs and the post-deletion path
// can all call this for the same room id.
func (s *Service) ArchiveRoom(roomID string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var room models.ChatRoom
		err := tx.Where("room_id = ?", roomID).First(&room).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		// ON CONFLICT DO NOTHING keeps re-archival from duplicating the
		// snapshot if two teardowns interleave.
		resign := models.NewResignChatRoom(&room)
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(resign).Error; err != nil {
			return err
		}

		var history []models.ChatHistory
		if err := tx.Where("room_id = ?", roomID).Order("created_at asc").Find(&history).Error; err != nil {
			return err
		}
		for i := range history {
			if err := tx.Create(models.NewResignChatMessage(&history[i])).Error; err != nil {
				return err
			}
		}

		if err := tx.Unscoped().Where("room_id = ?", roomID).Delete(&models.ChatHistory{}).Error; err != nil {
			return err
		}
		if postID, convErr := strconv.ParseUint(roomID, 10, 64); convErr == nil {
			if err := tx.Unscoped().Where("post_id = ?", uint(postID)).Delete(&models.InvitedUser{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Unscoped().Where("room_id = ?", roomID).Delete(&models.ChatRoom{}).Error; err != nil {
			return err
		}

		log.Printf("Room %s archived (%d messages).", roomID, len(history))
		return nil
	})
}

// GetResignRoomByID looks up the archive copy of a destroyed room.
// Returns (nil, nil) when the room was never archived.
func (s *Service) GetResignRoomByID(roomID string) (*models.ResignChatRoom, error) {
	var room models.ResignChatRoom
	err := s.DB.Where("room_id = ?", roomID).First(&room).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// ListResignMessagesByRoomID returns the archived message history of a room.
func (s *Service) ListResignMessagesByRoomID(roomID string) ([]models.ResignChatMessage, error) {
	var messages []models.ResignChatMessage
	err := s.DB.Where("room_id = ?", roomID).Order("created_at asc").Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}
