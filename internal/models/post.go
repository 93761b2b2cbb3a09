package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Post is a location-based meetup announcement. While a post is live its
// primary key doubles as the chat room id (string-encoded).
type Post struct {
	gorm.Model

	// UserID is the owner of the post (and of the room bound to it).
	UserID  uint   `gorm:"not null;index" json:"userId"`
	Title   string `gorm:"not null" json:"title"`
	Content string `gorm:"type:text" json:"content"`
	// Place is the human-readable meeting location.
	Place     string  `json:"place"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	// Personnel is the max number of participants.
	Personnel int `json:"personnel"`
	// Time is when the meetup ends; the post (and room) are torn down after it.
	Time time.Time `gorm:"index" json:"time"`

	Categories pq.StringArray `gorm:"type:text[]" json:"categories"`
	Tags       pq.StringArray `gorm:"type:text[]" json:"tags"`
}

// Like records that a user liked a post. Cascade-deleted on room destruction.
type Like struct {
	gorm.Model

	PostID uint `gorm:"not null;index" json:"postId"`
	UserID uint `gorm:"not null" json:"userId"`
}
