package models

import (
	"time"

	"gorm.io/gorm"
)

// Notification categories.
const (
	NotifyOrder      = "order"
	NotifyModeration = "moderation"
	NotifyReport     = "report"
	NotifySystem     = "system"
)

// Notification is a persisted in-app notification. Delivery to the
// user (database row, email, websocket push) is best effort and never
// blocks the operation that produced it.
type Notification struct {
	gorm.Model
	UserID   uint       `gorm:"not null;index" json:"user_id"`
	Category string     `gorm:"size:50;not null;index" json:"category"`
	Title    string     `gorm:"size:255;not null" json:"title"`
	Body     string     `gorm:"type:text" json:"body"`
	Link     string     `gorm:"size:500" json:"link,omitempty"`
	ReadAt   *time.Time `json:"read_at,omitempty"`
}

// IsRead reports whether the user has opened the notification.
func (n *Notification) IsRead() bool { return n.ReadAt != nil }
