package handler

import (
	"net/http"

	"gramalert/backend/internal/feedhub"
	"gramalert/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allows connections from any origin. Tighten for production.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket upgrades the connection and registers the caller as a live
// subscriber to the grievance feed. Each connection gets its own
// subscription ID, so one user can watch from several tabs.
func (h *Handler) ServeWebSocket(c *gin.Context) {
	tokenString, ok := bearerToken(c)
	if !ok {
		tokenString = c.Query("token") // browsers cannot set WS headers
	}
	if tokenString == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token missing"})
		return
	}

	if _, err := validateAndGetUsername(tokenString); err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token or expired"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to upgrade connection"})
		return
	}

	client := &feedhub.WebSocketClient{
		ID:   uuid.New().String(),
		Hub:  h.Hub,
		Conn: conn,
		Send: make(chan models.GrievanceSnapshot, 256),
	}

	h.Hub.RegisterCh <- client
	client.Run()
}
