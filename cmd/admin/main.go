package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"meetgo/backend/internal/post"
	"meetgo/backend/internal/storage"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	storageSvc := storage.NewStorageService(db, nil) // No redis needed for admin CLI

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "ban":
		if len(os.Args) < 3 {
			fmt.Println("Usage: admin ban <user_id> [duration_in_hours]")
			os.Exit(1)
		}
		userID := parseID(os.Args[2])
		var duration int
		if len(os.Args) > 3 {
			var err error
			duration, err = strconv.Atoi(os.Args[3])
			if err != nil {
				fmt.Println("Invalid duration. Please provide an integer.")
				os.Exit(1)
			}
		}
		if err := banUser(storageSvc, userID, duration); err != nil {
			log.Fatalf("Error banning user: %v", err)
		}
		fmt.Printf("User %d has been banned.\n", userID)
	case "unban":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin unban <user_id>")
			os.Exit(1)
		}
		userID := parseID(os.Args[2])
		if err := unbanUser(storageSvc, userID); err != nil {
			log.Fatalf("Error unbanning user: %v", err)
		}
		fmt.Printf("User %d has been unbanned.\n", userID)
	case "withdraw":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin withdraw <user_id>")
			os.Exit(1)
		}
		userID := parseID(os.Args[2])
		if err := withdrawUser(storageSvc, userID); err != nil {
			log.Fatalf("Error withdrawing user: %v", err)
		}
		fmt.Printf("User %d has been withdrawn.\n", userID)
	case "destroy":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin destroy <post_id>")
			os.Exit(1)
		}
		postID := parseID(os.Args[2])
		posts := post.NewService(storageSvc)
		if err := posts.Destroy(postID); err != nil {
			log.Fatalf("Error destroying post: %v", err)
		}
		fmt.Printf("Post %d and its room have been destroyed.\n", postID)
	case "resign":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin resign <room_id>")
			os.Exit(1)
		}
		roomID := os.Args[2]
		if err := printResignRoom(storageSvc, roomID); err != nil {
			log.Fatalf("Error reading archived room: %v", err)
		}
	default:
		fmt.Println("Unknown command")
		os.Exit(1)
	}
}

func parseID(arg string) uint {
	id, err := strconv.ParseUint(arg, 10, 32)
	if err != nil {
		fmt.Println("Invalid id. Please provide an integer.")
		os.Exit(1)
	}
	return uint(id)
}

func banUser(s storage.Storage, userID uint, duration int) error {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user %d does not exist", userID)
	}
	user.IsBlocked = true
	if duration > 0 {
		user.BlockEndTime = time.Now().Add(time.Duration(duration) * time.Hour).Unix()
	}
	return s.SaveUser(user)
}

func unbanUser(s storage.Storage, userID uint) error {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user %d does not exist", userID)
	}
	user.IsBlocked = false
	user.BlockEndTime = 0
	return s.SaveUser(user)
}

// withdrawUser removes an account: memberships first, then the user row.
// An owner must destroy their post first so the room goes through its
// regular archival instead of being orphaned.
func withdrawUser(s storage.Storage, userID uint) error {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user %d does not exist", userID)
	}
	if user.IsOwner {
		return fmt.Errorf("user %d still owns a live post; run destroy first", userID)
	}

	if err := s.DeleteInvitedUsersByUserID(userID); err != nil {
		return err
	}
	return s.DeleteUserByID(userID)
}

func printResignRoom(s storage.Storage, roomID string) error {
	room, err := s.GetResignRoomByID(roomID)
	if err != nil {
		return err
	}
	if room == nil {
		return fmt.Errorf("room %s is not archived", roomID)
	}
	fmt.Printf("Room %s (owner %s) resigned at %s\n", room.RoomID, room.NickName, room.ResignedAt.Format(time.RFC3339))

	messages, err := s.ListResignMessagesByRoomID(roomID)
	if err != nil {
		return err
	}
	for _, m := range messages {
		fmt.Printf("[%s] %s %s: %s\n", m.SentAt, m.Type, m.Sender, m.Message)
	}
	return nil
}
