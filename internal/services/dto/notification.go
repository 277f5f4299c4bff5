package dto

import "time"

// ---------------- Requests ----------------

// NotificationDraft creates a local-first notification. The server assigns the
// owner from the authenticated principal.
type NotificationDraft struct {
	Kind            string  `json:"kind" validate:"required,is-notification-kind"`
	Title           string  `json:"title" validate:"required,max=100"`
	Message         string  `json:"message" validate:"omitempty,max=1000"`
	RelatedBattleID *string `json:"related_battle_id,omitempty"`
}

// ---------------- Responses ----------------

type NotificationResponse struct {
	ID              string     `json:"id"`
	UserID          string     `json:"user_id"`
	Kind            string     `json:"kind"`
	Title           string     `json:"title"`
	Message         string     `json:"message"`
	RelatedBattleID *string    `json:"related_battle_id,omitempty"`
	IsRead          bool       `json:"is_read"`
	ReadAt          *time.Time `json:"read_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Total         int                    `json:"total"`
	UnreadCount   int                    `json:"unread_count"`
	LastError     string                 `json:"last_error,omitempty"`
}
