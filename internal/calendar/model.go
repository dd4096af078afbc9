package calendar

import (
	"fmt"
	"time"

	"github.com/gigstage/gigstage-backend/internal/event"
)

// Calendar entry types
const (
	TypePerformance = "performance"
	TypeRehearsal   = "rehearsal"
	TypeMeeting     = "meeting"
	TypeOther       = "other"
)

// ValidEventType reports whether t is a known calendar entry type.
func ValidEventType(t string) bool {
	switch t {
	case TypePerformance, TypeRehearsal, TypeMeeting, TypeOther:
		return true
	}
	return false
}

// CalendarEvent is a personal calendar entry. RelatedEventID weakly links
// the entry to a published Event and is set to NULL when that event goes
// away.
type CalendarEvent struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index" json:"user_id"`

	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	EventType   string `gorm:"size:30;not null;default:'other'" json:"event_type"`

	Date      time.Time `gorm:"not null;index" json:"date"`
	StartTime string    `gorm:"size:5;not null" json:"start_time"`
	EndTime   string    `gorm:"size:5;not null" json:"end_time"`
	Location  string    `gorm:"size:255" json:"location"`

	RelatedEventID *uint `gorm:"index" json:"related_event_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Entry sources
const (
	SourcePersonal   = "personal"
	SourceOrganizing = "organizing"
	SourcePerforming = "performing"
)

// Entry is the read-only union of a personal calendar row and an event
// commitment, tagged with where it came from. It is what the aggregated
// feed is made of.
type Entry struct {
	Source    string    `json:"source"`
	ID        uint      `json:"id"`
	EventID   *uint     `json:"event_id,omitempty"`
	Title     string    `json:"title"`
	EventType string    `json:"event_type,omitempty"`
	Date      time.Time `json:"date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Location  string    `json:"location,omitempty"`
}

// entryFromPersonal maps a CalendarEvent row into the unified shape.
func entryFromPersonal(ce CalendarEvent) Entry {
	return Entry{
		Source:    SourcePersonal,
		ID:        ce.ID,
		EventID:   ce.RelatedEventID,
		Title:     ce.Title,
		EventType: ce.EventType,
		Date:      ce.Date,
		StartTime: ce.StartTime,
		EndTime:   ce.EndTime,
		Location:  ce.Location,
	}
}

// entryFromEvent maps an Event commitment into the unified shape.
func entryFromEvent(ev event.Event, source string) Entry {
	eventID := ev.ID
	location := ""
	if ev.Venue != nil {
		location = ev.Venue.Name
		if ev.Venue.City != "" {
			location = fmt.Sprintf("%s, %s", ev.Venue.Name, ev.Venue.City)
		}
	}
	return Entry{
		Source:    source,
		ID:        ev.ID,
		EventID:   &eventID,
		Title:     ev.Title,
		Date:      ev.Date,
		StartTime: ev.StartTime,
		EndTime:   ev.EndTime,
		Location:  location,
	}
}

func sourceRank(source string) int {
	switch source {
	case SourcePersonal:
		return 0
	case SourceOrganizing:
		return 1
	default:
		return 2
	}
}
