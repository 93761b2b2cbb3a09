package handler

import (
	"meetgo/backend/internal/chat"
	"meetgo/backend/internal/chathub"
	"meetgo/backend/internal/post"
	"meetgo/backend/internal/storage"
	"meetgo/backend/internal/upload"
)

// Handler carries the ingress dependencies for all HTTP and WebSocket routes.
type Handler struct {
	Hub       *chathub.ManagerService
	Chat      *chat.Service
	Posts     *post.Service
	Storage   storage.Storage
	Uploader  upload.Uploader
	jwtSecret []byte
}

// NewHandler wires the ingress layer.
func NewHandler(hub *chathub.ManagerService, chatSvc *chat.Service, posts *post.Service, s storage.Storage, up upload.Uploader, jwtSecret string) *Handler {
	return &Handler{
		Hub:       hub,
		Chat:      chatSvc,
		Posts:     posts,
		Storage:   s,
		Uploader:  up,
		jwtSecret: []byte(jwtSecret),
	}
}
