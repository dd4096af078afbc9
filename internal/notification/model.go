package notification

import (
	"time"
)

// Notification types
const (
	TypeMessage     = "message"
	TypeApplication = "application"
	TypeEvent       = "event"
	TypeSystem      = "system"
)

// Notification is a per-user in-app alert.
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Type      string    `gorm:"size:30;not null" json:"type"` // message, application, event, system
	Title     string    `gorm:"size:150;not null" json:"title"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Link      string    `gorm:"size:255" json:"link,omitempty"`
	IsRead    bool      `gorm:"default:false" json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidType reports whether t is a known notification type.
func ValidType(t string) bool {
	switch t {
	case TypeMessage, TypeApplication, TypeEvent, TypeSystem:
		return true
	}
	return false
}
