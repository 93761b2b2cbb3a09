// Package telegram runs the ops bot: it pushes room-teardown notifications to
// the admin chat and answers a small set of inspection commands.
package telegram

import (
	"fmt"
	"log"
	"strings"

	"meetgo/backend/internal/storage"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// BotService wraps the Telegram Bot API for operational duties.
type BotService struct {
	BotAPI      *tgbotapi.BotAPI
	Storage     storage.Storage
	AdminChatID int64
}

// NewBotService creates a bot bound to the admin chat.
func NewBotService(token string, adminChatID int64, s storage.Storage) (*BotService, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	bot.Debug = false
	log.Printf("Authorized on account %s", bot.Self.UserName)

	return &BotService{
		BotAPI:      bot,
		Storage:     s,
		AdminChatID: adminChatID,
	}, nil
}

// RoomArchived implements chat.Notifier: one message to the admin chat per
// destroyed room. Best-effort; a failed send is only logged.
func (s *BotService) RoomArchived(roomID, ownerNick string) {
	text := fmt.Sprintf("Room %s closed by owner %s and archived.", roomID, ownerNick)
	if _, err := s.BotAPI.Send(tgbotapi.NewMessage(s.AdminChatID, text)); err != nil {
		log.Printf("ERROR: Failed to notify admin chat: %v", err)
	}
}

// Run polls Telegram for updates and serves the admin commands. Blocks.
func (s *BotService) Run() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	for update := range s.BotAPI.GetUpdatesChan(u) {
		if update.Message == nil || !update.Message.IsCommand() {
			continue
		}
		// Only the admin chat may drive the bot.
		if update.Message.Chat.ID != s.AdminChatID {
			continue
		}

		var reply string
		switch update.Message.Command() {
		case "stats":
			reply = s.statsReply()
		case "resign":
			reply = s.resignReply(strings.TrimSpace(update.Message.CommandArguments()))
		default:
			reply = "Commands: /stats, /resign <roomID>"
		}

		if _, err := s.BotAPI.Send(tgbotapi.NewMessage(update.Message.Chat.ID, reply)); err != nil {
			log.Printf("ERROR: Failed to send bot reply: %v", err)
		}
	}
}

func (s *BotService) statsReply() string {
	count, err := s.Storage.CountActiveRooms()
	if err != nil {
		return fmt.Sprintf("Failed to count rooms: %v", err)
	}
	return fmt.Sprintf("Active rooms: %d", count)
}

func (s *BotService) resignReply(roomID string) string {
	if roomID == "" {
		return "Usage: /resign <roomID>"
	}
	room, err := s.Storage.GetResignRoomByID(roomID)
	if err != nil {
		return fmt.Sprintf("Lookup failed: %v", err)
	}
	if room == nil {
		return fmt.Sprintf("No archived room %s.", roomID)
	}

	messages, err := s.Storage.ListResignMessagesByRoomID(roomID)
	if err != nil {
		return fmt.Sprintf("Lookup failed: %v", err)
	}
	return fmt.Sprintf("Room %s: owner %s (%s), created %s, archived %s, %d messages.",
		room.RoomID, room.NickName, room.Username,
		room.CreatedAt.Format("2006-01-02 15:04:05"),
		room.ResignedAt.Format("2006-01-02 15:04:05"),
		len(messages))
}
