package handlers

import (
	"net/http"

	"beatbattle_backend/internal/middleware"
	"beatbattle_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// ModalHandler exposes the per-session modal slots. Each slot holds at most
// one payload; a new dispatch replaces whatever the client has not closed yet.
type ModalHandler struct {
	*BaseHandler
	sessions *services.SessionService
}

func NewModalHandler(base *BaseHandler, sessions *services.SessionService) *ModalHandler {
	return &ModalHandler{
		BaseHandler: base,
		sessions:    sessions,
	}
}

func (h *ModalHandler) RegisterRoutes(r *gin.RouterGroup) {
	modals := r.Group("/modals")
	modals.Use(middleware.AuthMiddleware())
	{
		modals.GET("/match", h.MatchFound)
		modals.POST("/match/close", h.CloseMatchFound)
		modals.GET("/result", h.BattleResult)
		modals.POST("/result/close", h.CloseBattleResult)
	}
}

// MatchFound returns the pending match-found modal, if any.
// GET /api/v1/modals/match
func (h *ModalHandler) MatchFound(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	session := h.sessions.Obtain(userID)
	payload, open := session.MatchModal.Get()
	if !open {
		c.JSON(http.StatusOK, gin.H{"open": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"open": true, "payload": payload})
}

// CloseMatchFound dismisses the match-found modal. Closing an already-closed
// modal is a no-op.
// POST /api/v1/modals/match/close
func (h *ModalHandler) CloseMatchFound(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	session := h.sessions.Obtain(userID)
	session.MatchModal.Close()
	c.JSON(http.StatusOK, gin.H{"message": "Modal closed"})
}

// BattleResult returns the pending battle-result modal, if any.
// GET /api/v1/modals/result
func (h *ModalHandler) BattleResult(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	session := h.sessions.Obtain(userID)
	payload, open := session.ResultModal.Get()
	if !open {
		c.JSON(http.StatusOK, gin.H{"open": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"open": true, "payload": payload})
}

// CloseBattleResult dismisses the battle-result modal.
// POST /api/v1/modals/result/close
func (h *ModalHandler) CloseBattleResult(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	session := h.sessions.Obtain(userID)
	session.ResultModal.Close()
	c.JSON(http.StatusOK, gin.H{"message": "Modal closed"})
}
