package reports

import (
	"context"

	"github.com/gigstage/gigstage-backend/internal/apperr"
	"github.com/gigstage/gigstage-backend/internal/calendar"
)

type Service interface {
	// RosterExport builds the application roster download for an event,
	// organizer-scoped.
	RosterExport(ctx context.Context, callerID, eventID uint, format string) ([]byte, string, string, error)

	// CalendarExport renders the caller's aggregated feed as a PDF.
	CalendarExport(ctx context.Context, userID uint, username, role string) ([]byte, string, string, error)
}

type service struct {
	repo        Repository
	calendarSvc calendar.Service
	exporter    Exporter
}

func NewService(repo Repository, calendarSvc calendar.Service, exporter Exporter) Service {
	return &service{repo: repo, calendarSvc: calendarSvc, exporter: exporter}
}

func (s *service) RosterExport(ctx context.Context, callerID, eventID uint, format string) ([]byte, string, string, error) {
	organizerID, err := s.repo.EventOrganizer(ctx, eventID)
	if err != nil {
		return nil, "", "", apperr.NotFound("event not found")
	}
	if organizerID != callerID {
		return nil, "", "", apperr.PermissionDenied("only the event's organizer can export its roster")
	}

	rows, err := s.repo.RosterByEvent(ctx, eventID)
	if err != nil {
		return nil, "", "", err
	}

	data, filename, contentType, err := s.exporter.ExportRoster(format, rows)
	if err != nil {
		return nil, "", "", apperr.Validation(err.Error())
	}
	return data, filename, contentType, nil
}

func (s *service) CalendarExport(ctx context.Context, userID uint, username, role string) ([]byte, string, string, error) {
	entries, err := s.calendarSvc.ComputeFeed(ctx, userID, role)
	if err != nil {
		return nil, "", "", err
	}

	rows := make([]FeedRow, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, FeedRow{
			Source:    entry.Source,
			Title:     entry.Title,
			Date:      entry.Date,
			StartTime: entry.StartTime,
			EndTime:   entry.EndTime,
			Location:  entry.Location,
		})
	}

	return s.exporter.ExportCalendarPDF(username, rows)
}
