package storage

import (
	"log"
	"time"

	"meetgo/backend/internal/models"

	"gorm.io/gorm/clause"
)

// InvitedUserExists reports whether a membership record exists for (user, post).
func (s *Service) InvitedUserExists(userID, postID uint) (bool, error) {
	var count int64
	err := s.DB.Model(&models.InvitedUser{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// SaveInvitedUser inserts a membership record. The ON CONFLICT clause rides
// the composite unique index on (user_id, post_id), so two ENTER events that
// race past the existence check still produce a single row.
func (s *Service) SaveInvitedUser(invited *models.InvitedUser) error {
	err := s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "post_id"}},
		DoNothing: true,
	}).Create(invited).Error
	if err != nil {
		log.Printf("ERROR: Failed to save invited user %d for post %d: %v", invited.UserID, invited.PostID, err)
	}
	return err
}

// DeleteInvitedUser removes one user's membership in one room.
func (s *Service) DeleteInvitedUser(userID, postID uint) error {
	return s.DB.Unscoped().
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.InvitedUser{}).Error
}

// DeleteInvitedUsersByPostID removes every membership of a room (cascade on
// room destruction).
func (s *Service) DeleteInvitedUsersByPostID(postID uint) error {
	return s.DB.Unscoped().
		Where("post_id = ?", postID).
		Delete(&models.InvitedUser{}).Error
}

// DeleteInvitedUsersByUserID removes every membership of a user (account
// withdrawal path).
func (s *Service) DeleteInvitedUsersByUserID(userID uint) error {
	return s.DB.Unscoped().
		Where("user_id = ?", userID).
		Delete(&models.InvitedUser{}).Error
}

// ListInvitedUsersByPostID returns the room's membership records with the
// user rows preloaded for display.
func (s *Service) ListInvitedUsersByPostID(postID uint) ([]models.InvitedUser, error) {
	var invited []models.InvitedUser
	err := s.DB.Preload("User").
		Where("post_id = ?", postID).
		Find(&invited).Error
	if err != nil {
		return nil, err
	}
	return invited, nil
}

// ListInvitedUsersByUserID returns every room membership of a user, backing
// the "my rooms" feed with its unread markers.
func (s *Service) ListInvitedUsersByUserID(userID uint) ([]models.InvitedUser, error) {
	var invited []models.InvitedUser
	err := s.DB.Where("user_id = ?", userID).Find(&invited).Error
	if err != nil {
		return nil, err
	}
	return invited, nil
}

// MarkInvitedUsersRead sets ReadCheck=true on the user's records in a room.
// Called on ENTER; idempotent housekeeping, not row creation.
func (s *Service) MarkInvitedUsersRead(userID, postID uint) error {
	return s.DB.Model(&models.InvitedUser{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Update("read_check", true).Error
}

// MarkInvitedUserUnread sets ReadCheck=false and stamps ReadCheckTime.
// Called when the user views the post details. Only the true-to-false
// transition is stamped; a repeated view leaves the timestamp alone.
func (s *Service) MarkInvitedUserUnread(userID, postID uint) error {
	now := time.Now()
	return s.DB.Model(&models.InvitedUser{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Where("read_check = ?", true).
		Updates(map[string]interface{}{
			"read_check":      false,
			"read_check_time": &now,
		}).Error
}

// MarkQrChecked records the one-time attendance verification.
func (s *Service) MarkQrChecked(userID, postID uint) error {
	return s.DB.Model(&models.InvitedUser{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Update("qr_check", true).Error
}

// CountInvitedUsersByPostID returns the live membership count of a room.
// The enterUserCnt snapshot on every message comes from this query, not from
// a cached counter.
func (s *Service) CountInvitedUsersByPostID(postID uint) (int64, error) {
	var count int64
	err := s.DB.Model(&models.InvitedUser{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}
