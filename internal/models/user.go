package models

import (
	"gorm.io/gorm"
)

// User represents a registered member of the meetup platform.
type User struct {
	gorm.Model

	// Username is the login identity (email).
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	// Password is the bcrypt hash, never serialized.
	Password string `gorm:"not null" json:"-"`
	// NickName is the display name shown in chat.
	NickName string `gorm:"not null" json:"nickName"`
	// ProfileURL points at the user's avatar image.
	ProfileURL string `json:"profileUrl"`
	// IsOwner marks that the user currently owns a live post (and its room).
	IsOwner bool `json:"isOwner"`
	// MannerTemp is the reputation score, seeded at 36.5.
	MannerTemp float64 `gorm:"default:36.5" json:"mannerTemp"`

	// Admin-side restriction state.
	IsBlocked    bool  `json:"-"`
	BlockEndTime int64 `json:"-"`
}
