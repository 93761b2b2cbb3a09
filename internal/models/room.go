package models

import "time"

// ChatRoom is the directory row for a live room. RoomID is the string-encoded
// id of the post that opened the room; Username records the owner so QUIT
// handling can decide the owner-departure branch without loading the post.
type ChatRoom struct {
	// RoomID is the unique identifier for the chat room.
	RoomID string `gorm:"primaryKey" json:"roomId"`
	// Username is the login identity of the room owner.
	Username string `gorm:"not null" json:"username"`
	// NickName is the owner's display name at creation time.
	NickName  string    `json:"nickName"`
	CreatedAt time.Time `json:"createdAt"`
}

// ResignChatRoom is the write-once archive copy of a destroyed ChatRoom,
// keyed by the same room id. Created only during room destruction.
type ResignChatRoom struct {
	RoomID     string    `gorm:"primaryKey" json:"roomId"`
	Username   string    `gorm:"not null" json:"username"`
	NickName   string    `json:"nickName"`
	CreatedAt  time.Time `json:"createdAt"`
	ResignedAt time.Time `json:"resignedAt"`
}

// NewResignChatRoom snapshots a live room into its archive form.
func NewResignChatRoom(room *ChatRoom) *ResignChatRoom {
	return &ResignChatRoom{
		RoomID:     room.RoomID,
		Username:   room.Username,
		NickName:   room.NickName,
		CreatedAt:  room.CreatedAt,
		ResignedAt: time.Now(),
	}
}
