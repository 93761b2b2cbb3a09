package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"

	"meetgo/backend/internal/models"
	"meetgo/backend/internal/post"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		err := v.RegisterValidation("future", func(fl validator.FieldLevel) bool {
			t, ok := fl.Field().Interface().(time.Time)
			return ok && t.After(time.Now())
		})
		if err != nil {
			log.Fatalf("Failed to register future validation: %v", err)
		}
	}
}

type createPostRequest struct {
	Title      string    `json:"title" binding:"required"`
	Content    string    `json:"content" binding:"required"`
	Place      string    `json:"place" binding:"required"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Personnel  int       `json:"personnel" binding:"required,min=2"`
	Time       time.Time `json:"time" binding:"required,future"`
	Categories []string  `json:"categories"`
	Tags       []string  `json:"tags"`
}

// CreatePost opens a new meetup post and its chat room.
func (h *Handler) CreatePost(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p := &models.Post{
		Title:      req.Title,
		Content:    req.Content,
		Place:      req.Place,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		Personnel:  req.Personnel,
		Time:       req.Time,
		Categories: pq.StringArray(req.Categories),
		Tags:       pq.StringArray(req.Tags),
	}

	created, err := h.Posts.CreatePost(currentUserID(c), p)
	if err != nil {
		if errors.Is(err, post.ErrAlreadyOwner) {
			c.JSON(http.StatusConflict, gin.H{"error": "You already host a live meetup"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// DeletePost destroys the caller's post and archives its room.
func (h *Handler) DeletePost(c *gin.Context) {
	postID, err := parsePostID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post id"})
		return
	}

	if err := h.Posts.DeletePost(currentUserID(c), postID); err != nil {
		switch {
		case errors.Is(err, post.ErrPostNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		case errors.Is(err, post.ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "Only the owner can delete a post"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

// GetPostDetails returns a post and marks the viewer's membership as read.
func (h *Handler) GetPostDetails(c *gin.Context) {
	postID, err := parsePostID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post id"})
		return
	}

	p, err := h.Posts.GetPostDetails(currentUserID(c), postID)
	if err != nil {
		if errors.Is(err, post.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load post"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// VerifyAttendance records a member's one-time QR attendance check.
func (h *Handler) VerifyAttendance(c *gin.Context) {
	postID, err := parsePostID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post id"})
		return
	}

	if err := h.Posts.VerifyAttendance(currentUserID(c), postID); err != nil {
		if errors.Is(err, post.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No membership for this post"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify attendance"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Attendance verified"})
}

func parsePostID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("postID"), 10, 32)
	return uint(id), err
}
