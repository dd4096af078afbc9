package calendar

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/gigstage/gigstage-backend/internal/apperr"
	"github.com/gigstage/gigstage-backend/internal/profile"
)

type Service interface {
	AddEntry(ctx context.Context, userID uint, input EntryCreateInput) (*CalendarEvent, error)
	DeleteEntry(ctx context.Context, userID, entryID uint) error

	// ComputeFeed merges the subject's personal entries with their event
	// commitments into one sorted, deduplicated sequence.
	ComputeFeed(ctx context.Context, subjectID uint, role string) ([]Entry, error)

	// EventsJSON renders event commitments as colored blocks for the
	// calendar widget.
	EventsJSON(ctx context.Context, userID uint) ([]EventBlock, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

type EntryCreateInput struct {
	Title          string `json:"title" binding:"required"`
	Description    string `json:"description"`
	EventType      string `json:"event_type"`
	Date           string `json:"date" binding:"required"`
	StartTime      string `json:"start_time" binding:"required"`
	EndTime        string `json:"end_time" binding:"required"`
	Location       string `json:"location"`
	RelatedEventID *uint  `json:"related_event_id"`
}

func (s *service) AddEntry(ctx context.Context, userID uint, in EntryCreateInput) (*CalendarEvent, error) {
	date, err := time.Parse("2006-01-02", in.Date)
	if err != nil {
		return nil, apperr.Validation("invalid date, expected YYYY-MM-DD")
	}
	if _, err := time.Parse("15:04", in.StartTime); err != nil {
		return nil, apperr.Validation("invalid start_time, expected HH:MM")
	}
	if _, err := time.Parse("15:04", in.EndTime); err != nil {
		return nil, apperr.Validation("invalid end_time, expected HH:MM")
	}

	eventType := in.EventType
	if eventType == "" {
		eventType = TypeOther
	}
	if !ValidEventType(eventType) {
		return nil, apperr.Validation("invalid event type")
	}

	ce := &CalendarEvent{
		UserID:         userID,
		Title:          in.Title,
		Description:    in.Description,
		EventType:      eventType,
		Date:           date,
		StartTime:      in.StartTime,
		EndTime:        in.EndTime,
		Location:       in.Location,
		RelatedEventID: in.RelatedEventID,
	}
	if err := s.repo.Create(ctx, ce); err != nil {
		return nil, err
	}
	return ce, nil
}

func (s *service) DeleteEntry(ctx context.Context, userID, entryID uint) error {
	ce, err := s.repo.FindByID(ctx, entryID)
	if err != nil {
		return apperr.NotFound("calendar entry not found")
	}
	if ce.UserID != userID {
		return apperr.PermissionDenied("not your calendar entry")
	}
	return s.repo.Delete(ctx, entryID)
}

func (s *service) ComputeFeed(ctx context.Context, subjectID uint, role string) ([]Entry, error) {
	today := time.Now().Truncate(24 * time.Hour)

	personal, err := s.repo.ListPersonalFrom(ctx, subjectID, today)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(personal))
	linked := make(map[uint]bool)
	for _, ce := range personal {
		entries = append(entries, entryFromPersonal(ce))
		if ce.RelatedEventID != nil {
			linked[*ce.RelatedEventID] = true
		}
	}

	// Events already represented by a personal entry via related_event
	// are not duplicated.
	switch role {
	case profile.RoleOrganizer:
		organized, err := s.repo.OrganizedEventsFrom(ctx, subjectID, today)
		if err != nil {
			return nil, err
		}
		for _, ev := range organized {
			if linked[ev.ID] {
				continue
			}
			entries = append(entries, entryFromEvent(ev, SourceOrganizing))
		}
	case profile.RolePerformer:
		performing, err := s.repo.PerformingEventsFrom(ctx, subjectID, today)
		if err != nil {
			return nil, err
		}
		for _, ev := range performing {
			if linked[ev.ID] {
				continue
			}
			entries = append(entries, entryFromEvent(ev, SourcePerforming))
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.StartTime != b.StartTime {
			return a.StartTime < b.StartTime
		}
		if sourceRank(a.Source) != sourceRank(b.Source) {
			return sourceRank(a.Source) < sourceRank(b.Source)
		}
		return a.ID < b.ID
	})

	return entries, nil
}

// EventBlock is one timed block for the calendar widget.
type EventBlock struct {
	ID              uint   `json:"id"`
	Title           string `json:"title"`
	Start           string `json:"start"`
	End             string `json:"end"`
	URL             string `json:"url"`
	BackgroundColor string `json:"backgroundColor"`
	BorderColor     string `json:"borderColor"`
	Display         string `json:"display"`
}

func (s *service) EventsJSON(ctx context.Context, userID uint) ([]EventBlock, error) {
	today := time.Now().Truncate(24 * time.Hour)

	organized, err := s.repo.OrganizedEventsFrom(ctx, userID, today)
	if err != nil {
		return nil, err
	}
	performing, err := s.repo.PerformingEventsFrom(ctx, userID, today)
	if err != nil {
		return nil, err
	}

	blocks := make([]EventBlock, 0, len(organized)+len(performing))
	for _, ev := range organized {
		day := ev.Date.Format("2006-01-02")
		blocks = append(blocks, EventBlock{
			ID:              ev.ID,
			Title:           fmt.Sprintf("[Organizing] %s", ev.Title),
			Start:           day + "T" + ev.StartTime,
			End:             day + "T" + ev.EndTime,
			URL:             fmt.Sprintf("/events/%d/", ev.ID),
			BackgroundColor: "#2563eb",
			BorderColor:     "#1d4ed8",
			Display:         "block",
		})
	}
	for _, ev := range performing {
		day := ev.Date.Format("2006-01-02")
		blocks = append(blocks, EventBlock{
			ID:              ev.ID,
			Title:           fmt.Sprintf("[Performing] %s", ev.Title),
			Start:           day + "T" + ev.StartTime,
			End:             day + "T" + ev.EndTime,
			URL:             fmt.Sprintf("/events/%d/", ev.ID),
			BackgroundColor: "#22c55e",
			BorderColor:     "#16a34a",
			Display:         "block",
		})
	}

	return blocks, nil
}
