package repositories

import (
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/sokoni/app/models"
	"github.com/shashiranjanraj/sokoni/pkg/notification"
)

// NotificationRepository persists in-app notifications. It satisfies
// notification.Store so the dispatch layer can write through it.
type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// SaveNotification implements notification.Store.
func (r *NotificationRepository) SaveNotification(userID uint, d notification.DatabaseData) error {
	n := models.Notification{
		UserID:   userID,
		Category: d.Category,
		Title:    d.Title,
		Body:     d.Body,
		Link:     d.Link,
	}
	return r.db.Create(&n).Error
}

// ByUser returns a page of the user's notifications, newest first.
func (r *NotificationRepository) ByUser(userID uint, page, limit int) ([]models.Notification, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var total int64
	base := r.db.Model(&models.Notification{}).Where("user_id = ?", userID)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.Notification
	err := r.db.Where("user_id = ?", userID).Order("id desc").
		Limit(limit).Offset((page - 1) * limit).Find(&items).Error
	return items, total, err
}

// UnreadCount returns how many notifications the user has not opened.
func (r *NotificationRepository) UnreadCount(userID uint) (int64, error) {
	var n int64
	err := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).Count(&n).Error
	return n, err
}

// MarkRead stamps a single notification as read, scoped to its owner.
func (r *NotificationRepository) MarkRead(userID, id uint) error {
	return r.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		UpdateColumn("read_at", time.Now()).Error
}

// MarkAllRead stamps every unread notification for the user.
func (r *NotificationRepository) MarkAllRead(userID uint) error {
	return r.db.Model(&models.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		UpdateColumn("read_at", time.Now()).Error
}
