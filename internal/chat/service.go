// Package chat implements the chat room lifecycle and message-delivery core:
// membership bookkeeping, owner-departure teardown, the cache/durable write
// pair and fan-out through the pub/sub broker.
package chat

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"meetgo/backend/internal/models"
	"meetgo/backend/internal/storage"
)

// Notifier receives ops-side notifications about room teardowns. Optional;
// a nil notifier disables notifications.
type Notifier interface {
	RoomArchived(roomID, ownerNick string)
}

// UserInfo is the member listing entry for a room.
type UserInfo struct {
	UserID     uint   `json:"userId"`
	NickName   string `json:"nickName"`
	ProfileURL string `json:"profileUrl"`
}

// Service is the chat orchestrator. It is the sole writer of membership
// records, messages and live rooms; policy lives here, the storage layer
// stays CRUD.
type Service struct {
	Storage  storage.Storage
	notifier Notifier
}

// NewService creates the orchestrator.
func NewService(s storage.Storage) *Service {
	return &Service{Storage: s}
}

// SetNotifier attaches an ops notifier (e.g. the Telegram bot).
func (s *Service) SetNotifier(n Notifier) {
	s.notifier = n
}

// HandleEvent processes one inbound chat event end to end: validation,
// sender enrichment, type-specific membership/lifecycle effects, the
// cache-then-durable write pair, and finally the pub/sub publish. Publish
// happens only after both writes succeed; a failed store write aborts the
// event with nothing published.
func (s *Service) HandleEvent(msg *models.ChatMessage, userID uint) error {
	postID, err := parseRoomID(msg.RoomID)
	if err != nil {
		return err
	}

	switch msg.Type {
	case models.MessageTypeEnter, models.MessageTypeQuit, models.MessageTypeTalk, models.MessageTypeFile:
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidEvent, msg.Type)
	}

	user, err := s.Storage.GetUserByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	// Common enrichment. The membership count is a live query against the
	// ledger, snapshotted onto the message.
	enterUserCnt, err := s.Storage.CountInvitedUsersByPostID(postID)
	if err != nil {
		return err
	}
	msg.UserID = user.ID
	msg.Sender = user.NickName
	msg.ProfileURL = user.ProfileURL
	msg.EnterUserCnt = enterUserCnt
	msg.QuitOwner = false
	msg.CreatedAt = time.Now().Format(models.CreatedAtLayout)

	// True once the owner-departure branch has already written the durable
	// copy so the archive sweep could include it.
	persisted := false

	switch msg.Type {
	case models.MessageTypeEnter:
		if err := s.handleEnter(msg, user, postID); err != nil {
			return err
		}
	case models.MessageTypeQuit:
		persisted, err = s.handleQuit(msg, user, postID)
		if err != nil {
			return err
		}
	}

	// Cache first (fast path), then the durable log (system of record).
	// There is no cross-store transaction; a crash between the two leaves the
	// cache ahead, which is acceptable because the cache is rebuildable.
	if err := s.Storage.CacheMessage(*msg); err != nil {
		return err
	}
	if !persisted {
		if err := s.Storage.SaveMessage(models.NewChatHistory(msg)); err != nil {
			return err
		}
	}

	if err := s.Storage.PublishMessage(msg.RoomID, *msg); err != nil {
		// Best-effort delivery: the event is committed, subscribers may miss it.
		log.Printf("ERROR: Failed to publish message for room %s: %v", msg.RoomID, err)
	}
	return nil
}

// handleEnter refreshes the user's read state and guarantees a single
// membership record per (user, room). A room whose backing post is gone is
// closed for good; nobody re-enters it.
func (s *Service) handleEnter(msg *models.ChatMessage, user *models.User, postID uint) error {
	live, err := s.Storage.PostExists(postID)
	if err != nil {
		return err
	}
	if !live {
		return ErrRoomNotFound
	}

	msg.Message = msg.Sender + " entered"

	if err := s.Storage.MarkInvitedUsersRead(user.ID, postID); err != nil {
		return err
	}

	exists, err := s.Storage.InvitedUserExists(user.ID, postID)
	if err != nil {
		return err
	}
	if !exists {
		// The unique index on (user_id, post_id) backs this up against
		// concurrent duplicate ENTERs.
		if err := s.Storage.SaveInvitedUser(models.NewInvitedUser(postID, user.ID)); err != nil {
			return err
		}
	}
	return nil
}

// handleQuit removes the membership record and, when the acting user owns the
// room, destroys it: final message persisted, likes and post cascaded, owner
// flag cleared, room and history archived. Returns whether the durable copy
// of msg was already written.
func (s *Service) handleQuit(msg *models.ChatMessage, user *models.User, postID uint) (bool, error) {
	msg.Message = msg.Sender + " left"

	exists, err := s.Storage.InvitedUserExists(user.ID, postID)
	if err != nil {
		return false, err
	}
	if exists {
		if err := s.Storage.DeleteInvitedUser(user.ID, postID); err != nil {
			return false, err
		}
	}

	ownerUsername, err := s.roomOwner(msg.RoomID)
	if err != nil {
		return false, err
	}
	if user.Username != ownerUsername {
		return false, nil
	}

	// Owner departure: the room dies with this message.
	msg.QuitOwner = true
	msg.Message = "(owner) " + msg.Sender + " left. The room is closed; once you leave you cannot re-enter."

	// Durable copy goes in before the archive sweep so the final message is
	// part of the archived history.
	if err := s.Storage.SaveMessage(models.NewChatHistory(msg)); err != nil {
		return false, err
	}

	if err := s.Storage.DeleteLikesByPostID(postID); err != nil {
		return true, err
	}
	if err := s.Storage.DeletePostByID(postID); err != nil {
		return true, err
	}
	if err := s.Storage.SetUserOwner(user.ID, false); err != nil {
		return true, err
	}
	if err := s.Storage.ArchiveRoom(msg.RoomID); err != nil {
		return true, err
	}
	// Defensive: tolerate a teardown that raced us and left live rows behind.
	if err := s.Storage.DeleteMessagesByRoomID(msg.RoomID); err != nil {
		return true, err
	}

	if s.notifier != nil {
		s.notifier.RoomArchived(msg.RoomID, msg.Sender)
	}
	return true, nil
}

// roomOwner resolves the recorded owner of a room, falling back to the
// archive when the live directory row is already gone.
func (s *Service) roomOwner(roomID string) (string, error) {
	room, err := s.Storage.GetRoomByID(roomID)
	if err != nil {
		return "", err
	}
	if room != nil {
		return room.Username, nil
	}

	resign, err := s.Storage.GetResignRoomByID(roomID)
	if err != nil {
		return "", err
	}
	if resign != nil {
		return resign.Username, nil
	}
	return "", ErrRoomNotFound
}

// GetRecentMessages serves the room's recent history from the live cache,
// rebuilding it from the durable log on a cold cache. Cache absence is never
// an error.
func (s *Service) GetRecentMessages(roomID string) ([]models.ChatMessage, error) {
	cached, err := s.Storage.GetCachedMessages(roomID)
	if err != nil {
		log.Printf("ERROR: Message cache unavailable for room %s: %v", roomID, err)
	}
	if len(cached) > 0 {
		return cached, nil
	}

	history, err := s.Storage.ListMessagesByRoomID(roomID)
	if err != nil {
		return nil, err
	}

	messages := make([]models.ChatMessage, 0, len(history))
	for i := range history {
		msg := history[i].ToChatMessage()
		messages = append(messages, msg)
		if err := s.Storage.CacheMessage(msg); err != nil {
			// Repopulation is best-effort.
			break
		}
	}
	return messages, nil
}

// GetRoomMembers lists the users currently invited to a room.
func (s *Service) GetRoomMembers(roomID string) ([]UserInfo, error) {
	postID, err := parseRoomID(roomID)
	if err != nil {
		return nil, err
	}

	invited, err := s.Storage.ListInvitedUsersByPostID(postID)
	if err != nil {
		return nil, err
	}

	members := make([]UserInfo, 0, len(invited))
	for i := range invited {
		members = append(members, UserInfo{
			UserID:     invited[i].UserID,
			NickName:   invited[i].User.NickName,
			ProfileURL: invited[i].User.ProfileURL,
		})
	}
	return members, nil
}

// GetFileList returns the URLs of every file shared in a room.
func (s *Service) GetFileList(roomID string) ([]string, error) {
	history, err := s.Storage.ListMessagesByRoomID(roomID)
	if err != nil {
		return nil, err
	}

	files := make([]string, 0)
	for i := range history {
		if history[i].FileURL != "" {
			files = append(files, history[i].FileURL)
		}
	}
	return files, nil
}

func parseRoomID(roomID string) (uint, error) {
	id, err := strconv.ParseUint(roomID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: room id %q", ErrInvalidEvent, roomID)
	}
	return uint(id), nil
}
