package handlers

import (
	"net/http"

	"beatbattle_backend/internal/middleware"
	"beatbattle_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// SessionHandler drives the notification pipeline lifecycle over HTTP.
type SessionHandler struct {
	*BaseHandler
	sessions *services.SessionService
}

func NewSessionHandler(base *BaseHandler, sessions *services.SessionService) *SessionHandler {
	return &SessionHandler{
		BaseHandler: base,
		sessions:    sessions,
	}
}

func (h *SessionHandler) RegisterRoutes(r *gin.RouterGroup) {
	session := r.Group("/session")
	session.Use(middleware.AuthMiddleware())
	{
		session.POST("/start", h.Start)
		session.POST("/end", h.End)
	}
}

// Start ensures the principal has a live session and poller. Called after
// sign-in; repeated calls reuse the existing session.
// POST /api/v1/session/start
func (h *SessionHandler) Start(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	session := h.sessions.Obtain(userID)
	c.JSON(http.StatusOK, gin.H{
		"message":      "Session active",
		"user_id":      session.PrincipalID,
		"unread_count": session.Center.UnreadCount(),
	})
}

// End tears the principal's session down: the poller stops and all mirrored
// state is discarded. Ending twice is a no-op.
// POST /api/v1/session/end
func (h *SessionHandler) End(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	h.sessions.SignOut(userID)
	c.JSON(http.StatusOK, gin.H{"message": "Session ended"})
}
