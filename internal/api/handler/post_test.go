package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"meetgo/backend/internal/api/handler"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCreatePost_RejectsPastMeetupTime(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := handler.NewHandler(nil, nil, nil, nil, nil, "secret")

	r := gin.New()
	r.POST("/posts", h.CreatePost)

	body := `{"title":"Board games","content":"Bring a friend","place":"Cafe","personnel":4,"time":"` +
		time.Now().Add(-time.Hour).Format(time.RFC3339) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/posts", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "future")
}
