package models

import "gorm.io/gorm"

// ChatHistory is the durable, append-only copy of a chat message in
// PostgreSQL. It is the system of record; the Redis list per room is only a
// fast retrieval path. The embedded gorm.Model provides the message ID and
// insertion timestamps.
type ChatHistory struct {
	gorm.Model

	RoomID string `gorm:"not null;index:idx_room_msg" json:"roomId"`
	UserID uint   `gorm:"not null;index:idx_room_msg" json:"userId"`
	// Sender and ProfileURL are denormalized so archived messages keep the
	// display identity the room saw at send time.
	Sender     string `json:"sender"`
	ProfileURL string `json:"profileUrl"`
	Type       string `gorm:"not null" json:"type"`
	Message    string `gorm:"type:text" json:"message"`
	FileURL    string `json:"fileUrl"`
	// EnterUserCnt is the membership count snapshot at send time.
	EnterUserCnt int64 `json:"enterUserCnt"`
	// QuitOwner marks the QUIT message that destroyed the room.
	QuitOwner bool `json:"quitOwner"`
	// SentAt is the client-facing timestamp in CreatedAtLayout form.
	SentAt string `json:"sentAt"`
}

// NewChatHistory converts an enriched wire message into its durable form.
func NewChatHistory(msg *ChatMessage) *ChatHistory {
	return &ChatHistory{
		RoomID:       msg.RoomID,
		UserID:       msg.UserID,
		Sender:       msg.Sender,
		ProfileURL:   msg.ProfileURL,
		Type:         string(msg.Type),
		Message:      msg.Message,
		FileURL:      msg.FileURL,
		EnterUserCnt: msg.EnterUserCnt,
		QuitOwner:    msg.QuitOwner,
		SentAt:       msg.CreatedAt,
	}
}

// ToChatMessage rebuilds the wire form, used when the live cache is cold and
// recent messages are served from the durable log.
func (h *ChatHistory) ToChatMessage() ChatMessage {
	return ChatMessage{
		Type:         MessageType(h.Type),
		RoomID:       h.RoomID,
		Message:      h.Message,
		FileURL:      h.FileURL,
		UserID:       h.UserID,
		Sender:       h.Sender,
		ProfileURL:   h.ProfileURL,
		EnterUserCnt: h.EnterUserCnt,
		QuitOwner:    h.QuitOwner,
		CreatedAt:    h.SentAt,
	}
}

// ResignChatMessage is the write-once archive copy of a ChatHistory row,
// created while the room is being destroyed and never mutated afterwards.
type ResignChatMessage struct {
	gorm.Model

	RoomID       string `gorm:"not null;index" json:"roomId"`
	UserID       uint   `gorm:"not null" json:"userId"`
	Sender       string `json:"sender"`
	ProfileURL   string `json:"profileUrl"`
	Type         string `json:"type"`
	Message      string `gorm:"type:text" json:"message"`
	FileURL      string `json:"fileUrl"`
	EnterUserCnt int64  `json:"enterUserCnt"`
	QuitOwner    bool   `json:"quitOwner"`
	SentAt       string `json:"sentAt"`
}

// NewResignChatMessage snapshots a durable message into its archive form.
func NewResignChatMessage(h *ChatHistory) *ResignChatMessage {
	return &ResignChatMessage{
		RoomID:       h.RoomID,
		UserID:       h.UserID,
		Sender:       h.Sender,
		ProfileURL:   h.ProfileURL,
		Type:         h.Type,
		Message:      h.Message,
		FileURL:      h.FileURL,
		EnterUserCnt: h.EnterUserCnt,
		QuitOwner:    h.QuitOwner,
		SentAt:       h.SentAt,
	}
}
