package chathub

import "meetgo/backend/internal/models"

// Client is the interface for any type of connection. It abstracts the
// underlying communication mechanism, allowing the hub to manage different
// client types uniformly.
type Client interface {
	// GetUserID returns the id of the user behind the connection.
	GetUserID() uint
	// GetRoomID returns the room the client is currently attached to, or ""
	// when the client has not entered a room yet.
	GetRoomID() string
	// SetRoomID attaches the client to a room for fan-out purposes.
	SetRoomID(string)

	// GetSendChannel returns the channel the hub writes outbound messages to.
	GetSendChannel() chan<- models.ChatMessage

	// Run starts the client's read and write pumps.
	Run()
	// Close shuts down the client's connection and channels. Safe to call
	// more than once.
	Close()
}
