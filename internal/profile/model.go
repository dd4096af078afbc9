package profile

import (
	"time"
)

// Profile roles
const (
	RolePerformer = "performer"
	RoleOrganizer = "organizer"
)

// Profile holds per-user role, bio and notification preferences.
// Exactly one row exists per user.
type Profile struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;uniqueIndex" json:"user_id"`

	Role string `gorm:"size:20;not null;default:'performer'" json:"role"` // performer, organizer
	Bio  string `gorm:"type:text" json:"bio"`

	EmailNotifications bool `gorm:"default:true" json:"email_notifications"`
	ApplicationUpdates bool `gorm:"default:true" json:"application_updates"`
	ShowProfile        bool `gorm:"default:true" json:"show_profile"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidRole reports whether name is a known profile role.
func ValidRole(name string) bool {
	return name == RolePerformer || name == RoleOrganizer
}

// DirectoryEntry is one row of the public user directory.
type DirectoryEntry struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Bio      string `json:"bio"`
}
