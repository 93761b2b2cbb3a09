package models

import (
	"time"

	"gorm.io/gorm"
)

// InvitedUser is the membership record of one user in one room. The composite
// unique index makes duplicate joins a database-level no-op even when two
// ENTER events race past the existence check.
type InvitedUser struct {
	gorm.Model

	PostID uint `gorm:"not null;uniqueIndex:idx_invited_user_post" json:"postId"`
	UserID uint `gorm:"not null;uniqueIndex:idx_invited_user_post" json:"userId"`
	User   User `gorm:"foreignKey:UserID" json:"-"`

	// QrCheck becomes true once the one-time attendance verification is done.
	QrCheck bool `json:"qrCheck"`
	// ReadCheck is set true on ENTER and false when the user views the post
	// details. The polarity follows the two historical call sites; do not
	// read it as a plain "isRead" flag.
	ReadCheck bool `json:"readCheck"`
	// ReadCheckTime is stamped whenever ReadCheck flips on a detail view.
	ReadCheckTime *time.Time `json:"readCheckTime"`
}

// NewInvitedUser builds a membership record in its default state.
func NewInvitedUser(postID, userID uint) *InvitedUser {
	return &InvitedUser{
		PostID:    postID,
		UserID:    userID,
		QrCheck:   false,
		ReadCheck: true,
	}
}
