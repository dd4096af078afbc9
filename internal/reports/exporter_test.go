package reports

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"
)

func sampleRoster() []RosterRow {
	return []RosterRow{
		{
			ApplicationID: 1, EventTitle: "Summer Gala",
			EventDate: time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC),
			Performer: "perf", Email: "perf@example.com",
			TalentType: "musician", Status: "accepted",
			AppliedAt: time.Date(2030, 4, 1, 9, 30, 0, 0, time.UTC),
		},
		{
			ApplicationID: 2, EventTitle: "Summer Gala",
			EventDate: time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC),
			Performer: "solo", Email: "solo@example.com",
			TalentType: "dancer", Status: "pending",
			AppliedAt: time.Date(2030, 4, 2, 14, 0, 0, 0, time.UTC),
		},
	}
}

func TestExportRosterCSV(t *testing.T) {
	data, filename, contentType, err := NewExporter().ExportRoster(FormatCSV, sampleRoster())
	if err != nil {
		t.Fatalf("ExportRoster: %v", err)
	}
	if contentType != "text/csv" {
		t.Errorf("content type = %q", contentType)
	}
	if !strings.HasPrefix(filename, "application_roster_") || !strings.HasSuffix(filename, ".csv") {
		t.Errorf("filename = %q", filename)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(records))
	}
	if records[0][0] != "ID" || records[0][5] != "Talent Type" {
		t.Errorf("header = %v", records[0])
	}
	if records[1][3] != "perf" || records[1][6] != "accepted" {
		t.Errorf("row 1 = %v", records[1])
	}
	if records[2][2] != "2030-05-01" {
		t.Errorf("event date = %q", records[2][2])
	}
}

func TestExportRosterExcel(t *testing.T) {
	data, filename, contentType, err := NewExporter().ExportRoster(FormatExcel, sampleRoster())
	if err != nil {
		t.Fatalf("ExportRoster: %v", err)
	}
	if contentType != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("content type = %q", contentType)
	}
	if !strings.HasSuffix(filename, ".xlsx") {
		t.Errorf("filename = %q", filename)
	}
	// xlsx payloads are zip archives
	if len(data) < 4 || data[0] != 'P' || data[1] != 'K' {
		t.Error("xlsx payload should start with a zip signature")
	}
}

func TestExportRosterUnknownFormat(t *testing.T) {
	if _, _, _, err := NewExporter().ExportRoster("tsv", nil); err == nil {
		t.Error("unknown format must be rejected")
	}
}

func TestExportCalendarPDF(t *testing.T) {
	rows := []FeedRow{
		{
			Source: "personal", Title: "Band practice, the long one that will not fit on a single line",
			Date: time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC), StartTime: "10:00", EndTime: "12:00",
			Location: "Rehearsal room B, far side of town, third floor",
		},
	}
	data, filename, contentType, err := NewExporter().ExportCalendarPDF("mia", rows)
	if err != nil {
		t.Fatalf("ExportCalendarPDF: %v", err)
	}
	if contentType != "application/pdf" {
		t.Errorf("content type = %q", contentType)
	}
	if !strings.HasPrefix(filename, "calendar_") || !strings.HasSuffix(filename, ".pdf") {
		t.Errorf("filename = %q", filename)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("payload should start with a PDF header")
	}
}
