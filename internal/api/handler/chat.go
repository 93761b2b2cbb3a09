package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetRecentMessages returns the room's recent history (cache fast path).
func (h *Handler) GetRecentMessages(c *gin.Context) {
	roomID := c.Param("roomID")

	messages, err := h.Chat.GetRecentMessages(roomID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load messages"})
		return
	}
	c.JSON(http.StatusOK, messages)
}

// GetRoomMembers lists the users invited to a room.
func (h *Handler) GetRoomMembers(c *gin.Context) {
	roomID := c.Param("roomID")

	members, err := h.Chat.GetRoomMembers(roomID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to load members"})
		return
	}
	c.JSON(http.StatusOK, members)
}

// GetFileList returns the URLs of every file shared in a room.
func (h *Handler) GetFileList(c *gin.Context) {
	roomID := c.Param("roomID")

	files, err := h.Chat.GetFileList(roomID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load files"})
		return
	}
	c.JSON(http.StatusOK, files)
}

// UploadFile stores a multipart file and returns its stable URL for use in a
// FILE message.
func (h *Handler) UploadFile(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file field is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}

	url, err := h.Uploader.Upload(data)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload file"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// GetMyRooms returns the caller's memberships with unread markers.
func (h *Handler) GetMyRooms(c *gin.Context) {
	rooms, err := h.Posts.ListMyRooms(currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load rooms"})
		return
	}
	c.JSON(http.StatusOK, rooms)
}
