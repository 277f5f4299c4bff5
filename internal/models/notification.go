package models

import (
	"time"

	"gorm.io/datatypes"
)

type NotificationKind string

const (
	NotificationKindInfo    NotificationKind = "info"
	NotificationKindSuccess NotificationKind = "success"
	NotificationKindWarning NotificationKind = "warning"

	// Battle kinds reference a battle row and trigger a one-shot modal.
	NotificationKindBattleMatched NotificationKind = "battle_matched"
	NotificationKindBattleWin     NotificationKind = "battle_win"
	NotificationKindBattleLose    NotificationKind = "battle_lose"
	NotificationKindBattleDraw    NotificationKind = "battle_draw"
)

// IsBattleResult reports whether the kind is delivered through the
// battle-result modal. battle_draw is included even though the backend
// normally encodes draws as battle_win/battle_lose with a zero rating change.
func (k NotificationKind) IsBattleResult() bool {
	switch k {
	case NotificationKindBattleWin, NotificationKindBattleLose, NotificationKindBattleDraw:
		return true
	}
	return false
}

// IsOneShot reports whether the kind is consumed by a single UI presentation
// and deleted afterwards instead of staying in the list.
func (k NotificationKind) IsOneShot() bool {
	return k == NotificationKindBattleMatched || k.IsBattleResult()
}

func (k NotificationKind) Valid() bool {
	switch k {
	case NotificationKindInfo, NotificationKindSuccess, NotificationKindWarning,
		NotificationKindBattleMatched, NotificationKindBattleWin,
		NotificationKindBattleLose, NotificationKindBattleDraw:
		return true
	}
	return false
}

type Notification struct {
	BaseModel
	UserID          string           `gorm:"not null;index" json:"user_id"`
	Kind            NotificationKind `gorm:"not null" json:"kind"`
	Title           string           `gorm:"not null" json:"title"`
	Message         string           `json:"message"`
	RelatedBattleID *string          `gorm:"index" json:"related_battle_id,omitempty"`
	Data            datatypes.JSON   `json:"data,omitempty"`
	IsRead          bool             `gorm:"default:false" json:"is_read"`
	ReadAt          *time.Time       `json:"read_at,omitempty"`
}

// Dispatchable reports whether the row should trigger a one-shot modal:
// unread, one-shot kind, and carrying a battle reference.
func (n *Notification) Dispatchable() bool {
	return !n.IsRead && n.Kind.IsOneShot() && n.RelatedBattleID != nil && *n.RelatedBattleID != ""
}
