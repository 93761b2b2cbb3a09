package chathub

import (
	"log"

	"meetgo/backend/internal/models"

	"github.com/redis/go-redis/v9"
)

// EventHandler processes one inbound chat event. Implemented by chat.Service.
type EventHandler interface {
	HandleEvent(msg *models.ChatMessage, userID uint) error
}

// Subscriber opens the pub/sub subscription covering every room topic.
// Implemented by storage.Service.
type Subscriber interface {
	SubscribeRooms() *redis.PubSub
}

// IncomingEvent pairs an inbound wire message with the authenticated user it
// came from.
type IncomingEvent struct {
	Msg    models.ChatMessage
	UserID uint
}

// ManagerService is the connection hub. It owns the client registry and fans
// published messages out to the clients attached to the message's room. All
// state is touched from the single Run goroutine.
type ManagerService struct {
	Clients map[uint]Client

	IncomingCh   chan IncomingEvent
	RegisterCh   chan Client
	UnregisterCh chan Client
	// PubSubCh receives messages from the broker listener, including those
	// published by other server instances.
	PubSubCh chan models.ChatMessage

	Chat       EventHandler
	Subscriber Subscriber
}

// NewManagerService creates a hub wired to the given orchestrator. The
// subscriber may be nil in tests, which disables the broker listener.
func NewManagerService(chat EventHandler, sub Subscriber) *ManagerService {
	return &ManagerService{
		Clients:      make(map[uint]Client),
		IncomingCh:   make(chan IncomingEvent),
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		PubSubCh:     make(chan models.ChatMessage),
		Chat:         chat,
		Subscriber:   sub,
	}
}

// Run is the hub's main dispatch loop.
func (m *ManagerService) Run() {
	m.StartPubSubListener()

	for {
		select {
		case client := <-m.RegisterCh:
			m.Clients[client.GetUserID()] = client

		case client := <-m.UnregisterCh:
			if _, ok := m.Clients[client.GetUserID()]; ok {
				delete(m.Clients, client.GetUserID())
				client.Close()
			}

		case ev := <-m.IncomingCh:
			// Room attachment is hub state, so it is mutated here and nowhere
			// else. A client sits in one room at a time.
			if ev.Msg.Type == models.MessageTypeEnter {
				if client, ok := m.Clients[ev.UserID]; ok {
					client.SetRoomID(ev.Msg.RoomID)
				}
			}

			// The orchestrator persists and publishes; delivery to clients
			// comes back through PubSubCh.
			if err := m.Chat.HandleEvent(&ev.Msg, ev.UserID); err != nil {
				log.Printf("ERROR: Failed to handle %s event from user %d: %v", ev.Msg.Type, ev.UserID, err)
			}

			if ev.Msg.Type == models.MessageTypeQuit {
				if client, ok := m.Clients[ev.UserID]; ok {
					client.SetRoomID("")
				}
			}

		case msg := <-m.PubSubCh:
			m.fanOut(msg)
		}
	}
}

// fanOut delivers a published message to every client attached to its room.
// A client with a full send buffer is dropped rather than allowed to block
// the hub.
func (m *ManagerService) fanOut(msg models.ChatMessage) {
	for userID, client := range m.Clients {
		if client.GetRoomID() != msg.RoomID {
			continue
		}
		select {
		case client.GetSendChannel() <- msg:
		default:
			log.Printf("WARNING: Dropping slow client %d in room %s", userID, msg.RoomID)
			delete(m.Clients, userID)
			client.Close()
		}
	}
}
