package chat

import "errors"

var (
	// ErrUserNotFound aborts an event before any mutation: the acting user id
	// does not resolve to a registered user.
	ErrUserNotFound = errors.New("chat: user does not exist")

	// ErrRoomNotFound is returned when an event references a room that has
	// neither a directory row, a backing post, nor an archive entry.
	ErrRoomNotFound = errors.New("chat: room does not exist")

	// ErrInvalidEvent rejects a malformed event (unknown type, non-numeric
	// room id) before any store is touched.
	ErrInvalidEvent = errors.New("chat: invalid event")
)
