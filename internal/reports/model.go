package reports

import (
	"time"
)

// Export formats
const (
	FormatCSV   = "csv"
	FormatExcel = "excel"
	FormatPDF   = "pdf"
)

// RosterRow is one application in an organizer's event roster export.
type RosterRow struct {
	ApplicationID uint      `json:"application_id"`
	EventTitle    string    `json:"event_title"`
	EventDate     time.Time `json:"event_date"`
	Performer     string    `json:"performer"`
	Email         string    `json:"email"`
	TalentType    string    `json:"talent_type"`
	Status        string    `json:"status"`
	AppliedAt     time.Time `json:"applied_at"`
}

// FeedRow is one line of a calendar feed export.
type FeedRow struct {
	Source    string
	Title     string
	Date      time.Time
	StartTime string
	EndTime   string
	Location  string
}
