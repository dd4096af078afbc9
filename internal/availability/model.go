package availability

import (
	"time"
)

// Availability is a user-declared free/busy window: either one-off
// (Date set) or recurring by weekday (DayOfWeek set, IsRecurring true).
// Times are "HH:MM" strings. The partial unique index guards dated rows
// against duplicates.
type Availability struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index;uniqueIndex:idx_availability_window" json:"user_id"`

	Date        *time.Time `gorm:"uniqueIndex:idx_availability_window" json:"date,omitempty"`
	DayOfWeek   *int       `json:"day_of_week,omitempty"` // 0=Monday .. 6=Sunday
	IsRecurring bool       `gorm:"default:false" json:"is_recurring"`

	StartTime string `gorm:"size:5;not null;uniqueIndex:idx_availability_window" json:"start_time"`
	EndTime   string `gorm:"size:5;not null;uniqueIndex:idx_availability_window" json:"end_time"`

	IsAvailable bool   `gorm:"default:true" json:"is_available"`
	Note        string `gorm:"size:255" json:"note"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EntryInput is one row of a bulk replace payload. Malformed rows are
// skipped, not rejected.
type EntryInput struct {
	Date        string `json:"date"`        // "2006-01-02", one-off rows
	DayOfWeek   *int   `json:"day_of_week"` // recurring rows
	IsRecurring bool   `json:"is_recurring"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	IsAvailable *bool  `json:"is_available"`
	Note        string `json:"note"`
}
