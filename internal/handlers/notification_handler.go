package handlers

import (
	"net/http"

	"beatbattle_backend/internal/middleware"
	"beatbattle_backend/internal/services"
	"beatbattle_backend/internal/services/dto"
	"beatbattle_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	*BaseHandler
	sessions *services.SessionService
}

func NewNotificationHandler(base *BaseHandler, sessions *services.SessionService) *NotificationHandler {
	return &NotificationHandler{
		BaseHandler: base,
		sessions:    sessions,
	}
}

func (h *NotificationHandler) RegisterRoutes(r *gin.RouterGroup) {
	notifications := r.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware())
	{
		notifications.GET("", h.List)
		notifications.POST("", h.Create)
		notifications.GET("/unread-count", h.UnreadCount)
		notifications.POST("/refresh", h.Refresh)
		notifications.PUT("/read-all", h.ConsumeAll)
		notifications.PUT("/:id/read", h.Consume)
		notifications.DELETE("/:id", h.Consume)
	}
}

// List returns the principal's notification mirror, newest first.
// GET /api/v1/notifications
func (h *NotificationHandler) List(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	session := h.sessions.Obtain(userID)
	rows := session.Center.Notifications()
	total := len(rows)

	page, pageSize := ParsePagination(c)
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	rows = rows[start:end]

	responses := make([]dto.NotificationResponse, 0, len(rows))
	for i := range rows {
		responses = append(responses, services.BuildNotificationResponse(&rows[i]))
	}

	c.JSON(http.StatusOK, dto.NotificationListResponse{
		Notifications: responses,
		Total:         total,
		UnreadCount:   session.Center.UnreadCount(),
		LastError:     session.Center.LastError(),
	})
}

// Create adds a notification for the principal. The row is visible locally
// right away; the durable insert runs in the background.
// POST /api/v1/notifications
func (h *NotificationHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var draft dto.NotificationDraft
	if !h.BindAndValidateJSON(c, &draft) {
		return
	}

	session := h.sessions.Obtain(userID)
	n, err := session.Center.Add(c.Request.Context(), draft)
	if err != nil {
		h.HandleServiceError(c, apperrors.NewBadRequestError(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, services.BuildNotificationResponse(n))
}

// UnreadCount reports how many mirrored rows are unread.
// GET /api/v1/notifications/unread-count
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	session := h.sessions.Obtain(userID)
	c.JSON(http.StatusOK, gin.H{"unread_count": session.Center.UnreadCount()})
}

// Consume marks a notification as handled, which removes it locally and
// deletes the persisted row. Reading and deleting are the same irreversible
// operation, so the read and delete routes share this handler.
// PUT /api/v1/notifications/:id/read, DELETE /api/v1/notifications/:id
func (h *NotificationHandler) Consume(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		h.HandleServiceError(c, apperrors.NewBadRequestError("notification id is required"))
		return
	}

	session := h.sessions.Obtain(userID)
	if err := session.Center.Consume(c.Request.Context(), id); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification consumed"})
}

// ConsumeAll clears the principal's notifications entirely.
// PUT /api/v1/notifications/read-all
func (h *NotificationHandler) ConsumeAll(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	session := h.sessions.Obtain(userID)
	if err := session.Center.ConsumeAll(c.Request.Context()); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All notifications consumed"})
}

// Refresh forces an immediate resync without waiting for the next poll tick.
// POST /api/v1/notifications/refresh
func (h *NotificationHandler) Refresh(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	session := h.sessions.Obtain(userID)
	if err := session.Center.Refresh(c.Request.Context()); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Refreshed",
		"unread_count": session.Center.UnreadCount(),
	})
}
