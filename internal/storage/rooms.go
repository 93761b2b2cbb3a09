package storage

import (
	"errors"
	"log"

	"meetgo/backend/internal/models"

	"gorm.io/gorm"
)

// SaveRoom writes a room directory row.
func (s *Service) SaveRoom(room *models.ChatRoom) error {
	return s.DB.Save(room).Error
}

// GetRoomByID loads a live room. Returns (nil, nil) when the room does not
// exist (destroyed or never created); callers fall through to the archive.
func (s *Service) GetRoomByID(roomID string) (*models.ChatRoom, error) {
	var room models.ChatRoom
	err := s.DB.Where("room_id = ?", roomID).First(&room).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		log.Printf("ERROR: Failed to get room %s: %v", roomID, err)
		return nil, err
	}
	return &room, nil
}

// CountActiveRooms returns how many rooms are currently live.
func (s *Service) CountActiveRooms() (int64, error) {
	var count int64
	err := s.DB.Model(&models.ChatRoom{}).Count(&count).Error
	return count, err
}
