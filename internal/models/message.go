package models

// MessageType classifies an inbound chat event.
type MessageType string

const (
	// MessageTypeEnter is sent when a user joins a room.
	MessageTypeEnter MessageType = "ENTER"
	// MessageTypeQuit is sent when a user leaves a room. A QUIT from the room
	// owner destroys the room.
	MessageTypeQuit MessageType = "QUIT"
	// MessageTypeTalk is a plain text message.
	MessageTypeTalk MessageType = "TALK"
	// MessageTypeFile is a message carrying an uploaded file URL.
	MessageTypeFile MessageType = "FILE"
)

// CreatedAtLayout is the display timestamp format (dd,MM,yyyy,HH,mm,ss).
// Existing clients parse this shape, so it must stay bit-exact.
const CreatedAtLayout = "02,01,2006,15,04,05"

// ChatMessage is the wire form of a chat event. Inbound it carries only
// Type/RoomID/Message/FileURL; the chat service fills in the sender fields,
// the membership count snapshot and the timestamp before it is cached,
// persisted and published.
type ChatMessage struct {
	Type    MessageType `json:"type"`
	RoomID  string      `json:"roomId"`
	Message string      `json:"message"`
	FileURL string      `json:"fileUrl,omitempty"`

	// Enriched by the chat service.
	UserID       uint   `json:"userId"`
	Sender       string `json:"sender"`
	ProfileURL   string `json:"profileUrl"`
	EnterUserCnt int64  `json:"enterUserCnt"`
	QuitOwner    bool   `json:"quitOwner"`
	CreatedAt    string `json:"createdAt"`
}
