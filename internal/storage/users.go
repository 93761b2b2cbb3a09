package storage

import (
	"errors"
	"log"
	"time"

	"meetgo/backend/internal/models"

	"gorm.io/gorm"
)

// GetUserByID loads a user by primary key. Returns (nil, nil) when missing.
func (s *Service) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	err := s.DB.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername loads a user by login identity. Returns (nil, nil) when missing.
func (s *Service) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// SaveUser persists a user (insert or update).
func (s *Service) SaveUser(user *models.User) error {
	return s.DB.Save(user).Error
}

// DeleteUserByID removes a user permanently (account withdrawal).
func (s *Service) DeleteUserByID(id uint) error {
	return s.DB.Unscoped().Delete(&models.User{}, id).Error
}

// SetUserOwner flips the owner flag without loading the row.
func (s *Service) SetUserOwner(id uint, isOwner bool) error {
	return s.DB.Model(&models.User{}).
		Where("id = ?", id).
		Update("is_owner", isOwner).Error
}

// GetPostByID loads a post by primary key. Returns (nil, nil) when missing.
func (s *Service) GetPostByID(postID uint) (*models.Post, error) {
	var post models.Post
	err := s.DB.First(&post, postID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// PostExists reports whether the backing post of a room is still live.
func (s *Service) PostExists(postID uint) (bool, error) {
	var count int64
	err := s.DB.Model(&models.Post{}).Where("id = ?", postID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// SavePost persists a post (insert or update).
func (s *Service) SavePost(post *models.Post) error {
	return s.DB.Save(post).Error
}

// DeletePostByID removes a post permanently. Deleting an already-deleted post
// is a no-op so the teardown paths can overlap safely.
func (s *Service) DeletePostByID(postID uint) error {
	return s.DB.Unscoped().Delete(&models.Post{}, postID).Error
}

// DeleteLikesByPostID removes every like of a post, part of the
// owner-departure cascade.
func (s *Service) DeleteLikesByPostID(postID uint) error {
	err := s.DB.Unscoped().Where("post_id = ?", postID).Delete(&models.Like{}).Error
	if err != nil {
		log.Printf("ERROR: Failed to delete likes for post %d: %v", postID, err)
	}
	return err
}

// ListExpiredPostIDs returns the ids of posts whose meetup time has passed,
// used by the background teardown worker.
func (s *Service) ListExpiredPostIDs(before time.Time) ([]uint, error) {
	var ids []uint
	err := s.DB.Model(&models.Post{}).
		Where("time < ?", before).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
