// Package post manages the meetup post lifecycle. A post and its chat room
// are born and die together: creating a post opens the room, deleting or
// expiring the post destroys and archives it.
package post

import (
	"errors"
	"log"
	"strconv"
	"time"

	"meetgo/backend/internal/models"
	"meetgo/backend/internal/storage"
)

var (
	// ErrUserNotFound means the acting user id does not resolve.
	ErrUserNotFound = errors.New("post: user does not exist")
	// ErrPostNotFound means the post id does not resolve to a live post.
	ErrPostNotFound = errors.New("post: post does not exist")
	// ErrNotOwner rejects a mutation attempted by someone else's post.
	ErrNotOwner = errors.New("post: user does not own this post")
	// ErrAlreadyOwner rejects a second live post per user.
	ErrAlreadyOwner = errors.New("post: user already hosts a live meetup")
)

// Scheduler books a future teardown for a post. Implemented by the asynq
// queue client; nil disables scheduling (expiry is then swept by the worker's
// periodic scan alone).
type Scheduler interface {
	ScheduleDestroy(postID uint, at time.Time) error
}

// Service handles the business logic of posts and their rooms.
type Service struct {
	Storage   storage.Storage
	scheduler Scheduler
}

// NewService creates a post service.
func NewService(s storage.Storage) *Service {
	return &Service{Storage: s}
}

// SetScheduler attaches the background teardown scheduler.
func (s *Service) SetScheduler(sched Scheduler) {
	s.scheduler = sched
}

// RoomID returns the chat room id bound to a post.
func RoomID(postID uint) string {
	return strconv.FormatUint(uint64(postID), 10)
}

// CreatePost stores a new post, opens its chat room and marks the author as
// owner. One live post per user.
func (s *Service) CreatePost(userID uint, post *models.Post) (*models.Post, error) {
	user, err := s.Storage.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.IsOwner {
		return nil, ErrAlreadyOwner
	}

	post.UserID = userID
	if err := s.Storage.SavePost(post); err != nil {
		return nil, err
	}

	room := &models.ChatRoom{
		RoomID:    RoomID(post.ID),
		Username:  user.Username,
		NickName:  user.NickName,
		CreatedAt: time.Now(),
	}
	if err := s.Storage.SaveRoom(room); err != nil {
		return nil, err
	}

	if err := s.Storage.SetUserOwner(userID, true); err != nil {
		return nil, err
	}

	if s.scheduler != nil && !post.Time.IsZero() {
		if err := s.scheduler.ScheduleDestroy(post.ID, post.Time); err != nil {
			// The periodic expiry scan will still catch it.
			log.Printf("ERROR: Failed to schedule teardown for post %d: %v", post.ID, err)
		}
	}

	return post, nil
}

// DeletePost destroys a post and its room on behalf of its owner.
func (s *Service) DeletePost(userID, postID uint) error {
	post, err := s.Storage.GetPostByID(postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	if post.UserID != userID {
		return ErrNotOwner
	}
	return s.Destroy(postID)
}

// Destroy tears a post and its room down: likes, post row and owner flag go,
// then the room and its history move into the archive. Idempotent: the
// owner-QUIT path, the delete endpoint and the expiry worker can all hit the
// same post.
func (s *Service) Destroy(postID uint) error {
	post, err := s.Storage.GetPostByID(postID)
	if err != nil {
		return err
	}
	if post != nil {
		if err := s.Storage.DeleteInvitedUsersByPostID(postID); err != nil {
			return err
		}
		if err := s.Storage.DeleteLikesByPostID(postID); err != nil {
			return err
		}
		if err := s.Storage.DeletePostByID(postID); err != nil {
			return err
		}
		if err := s.Storage.SetUserOwner(post.UserID, false); err != nil {
			return err
		}
	}
	return s.Storage.ArchiveRoom(RoomID(postID))
}

// DestroyExpired sweeps every post whose meetup time has passed.
func (s *Service) DestroyExpired(now time.Time) error {
	ids, err := s.Storage.ListExpiredPostIDs(now)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if err := s.Destroy(id); err != nil {
			log.Printf("ERROR: Failed to destroy expired post %d: %v", id, err)
		}
	}
	return nil
}

// GetPostDetails loads a post for display and flips the viewer's membership
// record to unread, stamping the view time.
func (s *Service) GetPostDetails(viewerID, postID uint) (*models.Post, error) {
	post, err := s.Storage.GetPostByID(postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	if err := s.Storage.MarkInvitedUserUnread(viewerID, postID); err != nil {
		return nil, err
	}
	return post, nil
}

// VerifyAttendance records the one-time QR attendance check for a member.
func (s *Service) VerifyAttendance(userID, postID uint) error {
	exists, err := s.Storage.InvitedUserExists(userID, postID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrPostNotFound
	}
	return s.Storage.MarkQrChecked(userID, postID)
}

// ListMyRooms returns the user's memberships with their unread markers.
func (s *Service) ListMyRooms(userID uint) ([]models.InvitedUser, error) {
	return s.Storage.ListInvitedUsersByUserID(userID)
}
