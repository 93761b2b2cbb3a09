package chathub

import (
	"encoding/json"
	"log"

	"meetgo/backend/internal/models"
)

// StartPubSubListener starts the goroutine that relays broker messages into
// the hub. The pattern subscription covers every room topic, so messages
// published by any server instance reach every hub's clients.
func (m *ManagerService) StartPubSubListener() {
	if m.Subscriber == nil {
		return
	}

	go func() {
		pubsub := m.Subscriber.SubscribeRooms()
		defer pubsub.Close()

		for msg := range pubsub.Channel() {
			var chatMsg models.ChatMessage
			if err := json.Unmarshal([]byte(msg.Payload), &chatMsg); err != nil {
				log.Printf("ERROR: Failed to unmarshal broker message: %v", err)
				continue
			}
			m.PubSubCh <- chatMsg
		}
	}()
}
