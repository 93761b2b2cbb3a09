package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"meetgo/backend/internal/api/handler"
	"meetgo/backend/internal/chat"
	"meetgo/backend/internal/chathub"
	"meetgo/backend/internal/config"
	"meetgo/backend/internal/models"
	"meetgo/backend/internal/post"
	"meetgo/backend/internal/queue"
	"meetgo/backend/internal/storage"
	"meetgo/backend/internal/telegram"
	"meetgo/backend/internal/upload"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies(cfg *config.Config) (*gorm.DB, *redis.Client) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   cfg.RedisDB,
	})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Like{},
		&models.ChatRoom{},
		&models.ResignChatRoom{},
		&models.ChatHistory{},
		&models.ResignChatMessage{},
		&models.InvitedUser{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func main() {
	log.Println("Starting MeetGo Backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	db, rdb := setupDependencies(cfg)
	s := storage.NewStorageService(db, rdb)

	chatSvc := chat.NewService(s)
	posts := post.NewService(s)

	queueClient := queue.NewClient(cfg.RedisAddr)
	defer queueClient.Close()
	posts.SetScheduler(queueClient)

	hub := chathub.NewManagerService(chatSvc, s)

	if cfg.BotToken != "" {
		botService, err := telegram.NewBotService(cfg.BotToken, cfg.AdminChatID, s)
		if err != nil {
			log.Fatalf("Failed to start Telegram bot: %v", err)
		}
		chatSvc.SetNotifier(botService)
		go botService.Run()
	}

	uploader, err := upload.NewService()
	if err != nil {
		log.Fatalf("Failed to configure file uploads: %v", err)
	}

	worker := queue.NewServer(cfg.RedisAddr, posts)
	go func() {
		if err := worker.Run(context.Background()); err != nil {
			log.Fatalf("Failed to run background worker: %v", err)
		}
	}()

	go hub.Run()

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:           12 * time.Hour,
		AllowCredentials: false,
	}))

	h := handler.NewHandler(hub, chatSvc, posts, s, uploader, cfg.JWTSecret)

	r.POST("/register", h.Register)
	r.POST("/login", h.Login)

	auth := r.Group("/", h.AuthRequired())
	{
		auth.GET("/ws", h.ServeWebSocket)

		auth.POST("/posts", h.CreatePost)
		auth.GET("/posts/:postID", h.GetPostDetails)
		auth.DELETE("/posts/:postID", h.DeletePost)
		auth.POST("/posts/:postID/attendance", h.VerifyAttendance)

		auth.GET("/rooms", h.GetMyRooms)
		auth.GET("/rooms/:roomID/messages", h.GetRecentMessages)
		auth.GET("/rooms/:roomID/members", h.GetRoomMembers)
		auth.GET("/rooms/:roomID/files", h.GetFileList)

		auth.POST("/upload", h.UploadFile)
	}

	server := &http.Server{
		Addr:           cfg.HTTPAddr,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Fatal(server.ListenAndServe())
}
