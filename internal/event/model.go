package event

import (
	"time"
)

// Event lifecycle statuses
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusCancelled = "cancelled"
)

// Application lifecycle statuses
const (
	ApplicationPending  = "pending"
	ApplicationAccepted = "accepted"
	ApplicationRejected = "rejected"
)

// Talent types
const (
	TalentMusician = "musician"
	TalentDancer   = "dancer"
	TalentSpeaker  = "speaker"
	TalentOther    = "other"
)

// ValidTalentType reports whether t is a known talent type.
func ValidTalentType(t string) bool {
	switch t {
	case TalentMusician, TalentDancer, TalentSpeaker, TalentOther:
		return true
	}
	return false
}

// ValidStatus reports whether s is a known event status.
func ValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusPublished, StatusCancelled:
		return true
	}
	return false
}

// ============================
// Reference data
// ============================

type Category struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Venue struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:150;not null" json:"name"`
	Address  string `gorm:"size:255" json:"address"`
	City     string `gorm:"size:100;index" json:"city"`
	Capacity int    `json:"capacity"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ============================
// Event and children
// ============================

// Event is an organizer-owned booking. Times are "HH:MM" strings so
// lexicographic order matches chronological order.
type Event struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`

	CategoryID *uint     `gorm:"index" json:"category_id,omitempty"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	VenueID    *uint     `gorm:"index" json:"venue_id,omitempty"`
	Venue      *Venue    `gorm:"foreignKey:VenueID" json:"venue,omitempty"`

	Date      time.Time `gorm:"not null;index" json:"date"`
	StartTime string    `gorm:"size:5;not null" json:"start_time"`
	EndTime   string    `gorm:"size:5;not null" json:"end_time"`

	OrganizerID        uint   `gorm:"not null;index" json:"organizer_id"`
	Status             string `gorm:"size:20;not null;default:'draft';index" json:"status"`
	AllowManualInvites bool   `gorm:"default:false" json:"allow_manual_invites"`

	Talents []EventTalent `gorm:"foreignKey:EventID" json:"talents,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EventTalent is an open slot within an event. Slots are replaced wholesale
// on each event edit, so nothing else may hold a foreign key to them.
type EventTalent struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	EventID        uint   `gorm:"not null;index" json:"event_id"`
	TalentType     string `gorm:"size:30;not null" json:"talent_type"`
	Description    string `gorm:"type:text" json:"description"`
	QuantityNeeded int    `gorm:"default:1" json:"quantity_needed"`

	CreatedAt time.Time `json:"created_at"`
}

// EventApplication is a performer's bid for one slot type of one event.
// The composite unique index enforces one bid per (event, performer, type).
type EventApplication struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	EventID     uint   `gorm:"not null;index;uniqueIndex:idx_application_triple" json:"event_id"`
	PerformerID uint   `gorm:"not null;index;uniqueIndex:idx_application_triple" json:"performer_id"`
	TalentType  string `gorm:"size:30;not null;uniqueIndex:idx_application_triple" json:"talent_type"`
	Message     string `gorm:"type:text" json:"message"`
	Status      string `gorm:"size:20;not null;default:'pending';index" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ============================
// Requests
// ============================

type TalentSlotInput struct {
	TalentType     string `json:"talent_type"`
	Description    string `json:"description"`
	QuantityNeeded int    `json:"quantity_needed"`
}

type EventInput struct {
	Title              string            `json:"title" binding:"required"`
	Description        string            `json:"description"`
	CategoryID         *uint             `json:"category_id"`
	VenueID            *uint             `json:"venue_id"`
	Date               string            `json:"date" binding:"required"` // "2006-01-02"
	StartTime          string            `json:"start_time" binding:"required"`
	EndTime            string            `json:"end_time" binding:"required"`
	Status             string            `json:"status"` // draft or published
	AllowManualInvites bool              `json:"allow_manual_invites"`
	TalentSlots        []TalentSlotInput `json:"talent_slots"`
}

// ListFilter narrows the published event browse view.
type ListFilter struct {
	CategoryID *uint
	Date       *time.Time
	City       string
	Search     string
}

// Actor identifies the caller of a service operation: user id, profile
// role, and the client IP for the audit trail.
type Actor struct {
	UserID uint
	Role   string
	IP     string
}
