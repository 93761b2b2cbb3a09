package chathub_test

import (
	"testing"
	"time"

	"meetgo/backend/internal/chathub"
	"meetgo/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestManager_RegisterUnregister(t *testing.T) {
	hub := chathub.NewManagerService(new(MockEventHandler), nil)

	clientA := newMockClient(7)

	go hub.Run()

	hub.RegisterCh <- clientA
	time.Sleep(100 * time.Millisecond)
	assert.Contains(t, hub.Clients, uint(7))

	hub.UnregisterCh <- clientA
	time.Sleep(100 * time.Millisecond)
	assert.NotContains(t, hub.Clients, uint(7))
	assert.True(t, clientA.closed)
}

func TestManager_IncomingGoesToEventHandler(t *testing.T) {
	handlerMock := new(MockEventHandler)
	hub := chathub.NewManagerService(handlerMock, nil)

	handlerMock.On("HandleEvent", mock.AnythingOfType("*models.ChatMessage"), uint(7)).Return(nil)

	go hub.Run()

	hub.IncomingCh <- chathub.IncomingEvent{
		Msg:    models.ChatMessage{Type: models.MessageTypeTalk, RoomID: "42", Message: "hello"},
		UserID: 7,
	}
	time.Sleep(100 * time.Millisecond)

	handlerMock.AssertCalled(t, "HandleEvent", mock.AnythingOfType("*models.ChatMessage"), uint(7))
}

func TestManager_FanOutMatchesRoom(t *testing.T) {
	hub := chathub.NewManagerService(new(MockEventHandler), nil)

	inRoom := newMockClient(7)
	inRoom.SetRoomID("42")
	otherRoom := newMockClient(8)
	otherRoom.SetRoomID("43")
	hub.Clients[7] = inRoom
	hub.Clients[8] = otherRoom

	go hub.Run()

	hub.PubSubCh <- models.ChatMessage{Type: models.MessageTypeTalk, RoomID: "42", Message: "hello"}
	time.Sleep(100 * time.Millisecond)

	select {
	case msg := <-inRoom.RecvChannel:
		assert.Equal(t, "hello", msg.Message)
	default:
		t.Error("client in room 42 did not receive the message")
	}

	select {
	case <-otherRoom.RecvChannel:
		t.Error("client in room 43 received a message for room 42")
	default:
	}
}

func TestManager_RoomAttachmentFollowsEnterAndQuit(t *testing.T) {
	handlerMock := new(MockEventHandler)
	hub := chathub.NewManagerService(handlerMock, nil)
	handlerMock.On("HandleEvent", mock.AnythingOfType("*models.ChatMessage"), uint(7)).Return(nil)

	client := newMockClient(7)

	go hub.Run()

	hub.RegisterCh <- client

	// The hub attaches the client to the room while processing the ENTER, so
	// a fan-out arriving right after the event reaches it.
	hub.IncomingCh <- chathub.IncomingEvent{
		Msg:    models.ChatMessage{Type: models.MessageTypeEnter, RoomID: "42"},
		UserID: 7,
	}
	hub.PubSubCh <- models.ChatMessage{Type: models.MessageTypeTalk, RoomID: "42", Message: "hello"}

	select {
	case msg := <-client.RecvChannel:
		assert.Equal(t, "hello", msg.Message)
	case <-time.After(time.Second):
		t.Fatal("client did not receive fan-out after ENTER")
	}

	// After a QUIT the client is detached and fan-outs pass it by.
	hub.IncomingCh <- chathub.IncomingEvent{
		Msg:    models.ChatMessage{Type: models.MessageTypeQuit, RoomID: "42"},
		UserID: 7,
	}
	hub.PubSubCh <- models.ChatMessage{Type: models.MessageTypeTalk, RoomID: "42", Message: "after quit"}
	time.Sleep(100 * time.Millisecond)

	select {
	case msg := <-client.RecvChannel:
		t.Errorf("client received %q after quitting the room", msg.Message)
	default:
	}
}

func TestManager_SlowClientIsDropped(t *testing.T) {
	hub := chathub.NewManagerService(new(MockEventHandler), nil)

	slow := newMockClient(7)
	slow.SetRoomID("42")
	slow.RecvChannel = make(chan models.ChatMessage) // unbuffered, nobody reading
	hub.Clients[7] = slow

	go hub.Run()

	hub.PubSubCh <- models.ChatMessage{Type: models.MessageTypeTalk, RoomID: "42", Message: "hello"}
	time.Sleep(100 * time.Millisecond)

	assert.NotContains(t, hub.Clients, uint(7))
	assert.True(t, slow.closed)
}
