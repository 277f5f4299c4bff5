package repositories

import (
	"errors"
	"fmt"
	"time"

	"beatbattle_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrNotificationNotFound    = errors.New("notification not found")
	ErrInvalidNotificationData = errors.New("invalid notification data")
)

// NotificationRepository is the persistence contract for notification rows.
// All reads and writes are scoped to the owning user.
type NotificationRepository interface {
	ListForUser(userID string) ([]models.Notification, error)
	Insert(notification *models.Notification) error
	DeleteOne(id, userID string) error
	DeleteAll(userID string) error
	// UpdateReadFlag exists for contract completeness; the pipeline routes
	// "read" through DeleteOne because a consumed one-shot row has no further use.
	UpdateReadFlag(id, userID string, read bool) error
	UnreadCount(userID string) (int64, error)
}

type NotificationRepositoryImpl struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &NotificationRepositoryImpl{db: db}
}

// ListForUser returns every notification owned by userID, newest first.
func (r *NotificationRepositoryImpl) ListForUser(userID string) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

func (r *NotificationRepositoryImpl) Insert(notification *models.Notification) error {
	if err := r.validate(notification); err != nil {
		return err
	}
	return r.db.Create(notification).Error
}

func (r *NotificationRepositoryImpl) DeleteOne(id, userID string) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Notification{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *NotificationRepositoryImpl) DeleteAll(userID string) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.Notification{}).Error
}

func (r *NotificationRepositoryImpl) UpdateReadFlag(id, userID string, read bool) error {
	updates := map[string]interface{}{"is_read": read}
	if read {
		updates["read_at"] = time.Now()
	} else {
		updates["read_at"] = nil
	}

	result := r.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *NotificationRepositoryImpl) UnreadCount(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *NotificationRepositoryImpl) validate(notification *models.Notification) error {
	if notification.UserID == "" {
		return errors.New("user ID is required")
	}
	if notification.Title == "" {
		return errors.New("notification title is required")
	}
	if !notification.Kind.Valid() {
		return fmt.Errorf("invalid notification kind: %s", notification.Kind)
	}
	if notification.Kind.IsOneShot() && (notification.RelatedBattleID == nil || *notification.RelatedBattleID == "") {
		return ErrInvalidNotificationData
	}
	return nil
}
