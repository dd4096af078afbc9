package event

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gigstage/gigstage-backend/internal/apperr"
	"github.com/gigstage/gigstage-backend/internal/auditlog"
	"github.com/gigstage/gigstage-backend/internal/notification"
	"github.com/gigstage/gigstage-backend/internal/profile"
)

type Service interface {
	CreateEvent(ctx context.Context, actor Actor, input EventInput) (*Event, error)
	UpdateEvent(ctx context.Context, actor Actor, eventID uint, input EventInput) (*Event, error)
	DeleteEvent(ctx context.Context, actor Actor, eventID uint) error
	GetEvent(ctx context.Context, eventID uint) (*Event, error)
	ListPublished(ctx context.Context, filter ListFilter) ([]Event, error)
	ListMyEvents(ctx context.Context, actor Actor) ([]Event, error)

	Apply(ctx context.Context, actor Actor, eventID uint, talentType, message string) (*EventApplication, error)
	Withdraw(ctx context.Context, actor Actor, eventID uint, talentType string) error
	Decide(ctx context.Context, actor Actor, applicationID uint, newStatus string) (*EventApplication, error)
	ListEventApplications(ctx context.Context, actor Actor, eventID uint) ([]EventApplication, error)
	ListMyApplications(ctx context.Context, actor Actor) ([]EventApplication, error)

	ListCategories(ctx context.Context) ([]Category, error)
	ListVenues(ctx context.Context) ([]Venue, error)
}

type service struct {
	repo     Repository
	notifSvc notification.Service
	auditSvc auditlog.Service
}

func NewService(repo Repository, notifSvc notification.Service, auditSvc auditlog.Service) Service {
	return &service{repo: repo, notifSvc: notifSvc, auditSvc: auditSvc}
}

// ===========================
// Event lifecycle
// ===========================

func (s *service) CreateEvent(ctx context.Context, actor Actor, input EventInput) (*Event, error) {
	if actor.Role != profile.RoleOrganizer {
		return nil, apperr.PermissionDenied("only organizers can create events")
	}

	ev, err := buildEvent(actor.UserID, input)
	if err != nil {
		return nil, err
	}

	slots := buildSlots(input.TalentSlots)

	if err := s.repo.CreateEventWithSlots(ctx, ev, slots); err != nil {
		return nil, err
	}
	ev.Talents = slots

	s.audit(ctx, actor, &ev.ID, "event_created", map[string]interface{}{
		"title":  ev.Title,
		"status": ev.Status,
		"slots":  len(slots),
	}, "success")

	return ev, nil
}

func (s *service) UpdateEvent(ctx context.Context, actor Actor, eventID uint, input EventInput) (*Event, error) {
	existing, err := s.repo.FindEventByID(ctx, eventID)
	if err != nil {
		return nil, apperr.NotFound("event not found")
	}
	if existing.OrganizerID != actor.UserID {
		return nil, apperr.PermissionDenied("only the event's organizer can edit it")
	}

	updated, err := buildEvent(actor.UserID, input)
	if err != nil {
		return nil, err
	}
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt

	// Callers resend the full desired slot list on every edit.
	slots := buildSlots(input.TalentSlots)

	if err := s.repo.UpdateEventWithSlots(ctx, updated, slots); err != nil {
		return nil, err
	}
	updated.Talents = slots

	return updated, nil
}

func (s *service) DeleteEvent(ctx context.Context, actor Actor, eventID uint) error {
	ev, err := s.repo.FindEventByID(ctx, eventID)
	if err != nil {
		return apperr.NotFound("event not found")
	}
	if ev.OrganizerID != actor.UserID {
		return apperr.PermissionDenied("only the event's organizer can delete it")
	}
	if ev.Status != StatusDraft {
		return apperr.InvalidState("only draft events can be deleted")
	}

	if err := s.repo.DeleteEventCascade(ctx, eventID); err != nil {
		return err
	}

	s.audit(ctx, actor, &eventID, "event_deleted", map[string]interface{}{
		"title": ev.Title,
	}, "success")

	return nil
}

func (s *service) GetEvent(ctx context.Context, eventID uint) (*Event, error) {
	ev, err := s.repo.FindEventByID(ctx, eventID)
	if err != nil {
		return nil, apperr.NotFound("event not found")
	}
	return ev, nil
}

func (s *service) ListPublished(ctx context.Context, filter ListFilter) ([]Event, error) {
	return s.repo.ListPublished(ctx, filter)
}

func (s *service) ListMyEvents(ctx context.Context, actor Actor) ([]Event, error) {
	if actor.Role != profile.RoleOrganizer {
		return nil, apperr.PermissionDenied("only organizers have an event dashboard")
	}
	return s.repo.ListByOrganizer(ctx, actor.UserID)
}

// ===========================
// Applications
// ===========================

func (s *service) Apply(ctx context.Context, actor Actor, eventID uint, talentType, message string) (*EventApplication, error) {
	if actor.Role != profile.RolePerformer {
		return nil, apperr.PermissionDenied("only performers can apply")
	}
	if !ValidTalentType(talentType) {
		return nil, apperr.Validation("invalid talent type")
	}

	ev, err := s.repo.FindEventByID(ctx, eventID)
	if err != nil {
		return nil, apperr.NotFound("event not found")
	}

	slotExists := false
	for _, slot := range ev.Talents {
		if slot.TalentType == talentType {
			slotExists = true
			break
		}
	}
	if !slotExists {
		return nil, apperr.NotFound("no open slot of that type for this event")
	}

	if _, err := s.repo.FindApplication(ctx, eventID, actor.UserID, talentType); err == nil {
		return nil, apperr.Conflict("you have already applied for this slot")
	}

	app := &EventApplication{
		EventID:     eventID,
		PerformerID: actor.UserID,
		TalentType:  talentType,
		Message:     message,
		Status:      ApplicationPending,
	}
	if err := s.repo.CreateApplication(ctx, app); err != nil {
		// The unique index is the last line of defense against a racing
		// duplicate apply.
		return nil, apperr.Wrap(apperr.KindConflict, "you have already applied for this slot", err)
	}

	return app, nil
}

func (s *service) Withdraw(ctx context.Context, actor Actor, eventID uint, talentType string) error {
	app, err := s.repo.FindApplication(ctx, eventID, actor.UserID, talentType)
	if err != nil {
		return apperr.NotFound("no pending application for this slot")
	}
	if app.Status != ApplicationPending {
		return apperr.NotFound("no pending application for this slot")
	}

	return s.repo.DeleteApplication(ctx, app.ID)
}

func (s *service) Decide(ctx context.Context, actor Actor, applicationID uint, newStatus string) (*EventApplication, error) {
	if newStatus != ApplicationAccepted && newStatus != ApplicationRejected {
		return nil, apperr.InvalidState("status must be accepted or rejected")
	}

	app, err := s.repo.FindApplicationByID(ctx, applicationID)
	if err != nil {
		return nil, apperr.NotFound("application not found")
	}

	ev, err := s.repo.FindEventByID(ctx, app.EventID)
	if err != nil {
		return nil, apperr.NotFound("event not found")
	}
	if ev.OrganizerID != actor.UserID {
		return nil, apperr.PermissionDenied("only the event's organizer can decide applications")
	}
	if app.Status != ApplicationPending {
		return nil, apperr.InvalidState("application has already been decided")
	}

	if err := s.repo.UpdateApplicationStatus(ctx, app.ID, newStatus); err != nil {
		return nil, err
	}
	app.Status = newStatus

	// Tell the performer. Delivery is best-effort and never fails the
	// decision itself.
	title := fmt.Sprintf("Application %s", newStatus)
	body := fmt.Sprintf("Your application for %q (%s) was %s.", ev.Title, app.TalentType, newStatus)
	link := fmt.Sprintf("/events/%d/", ev.ID)
	if err := s.notifSvc.Notify(ctx, app.PerformerID, notification.TypeApplication, title, body, link); err != nil {
		log.Printf("⚠️ failed to notify performer %d: %v", app.PerformerID, err)
	}

	s.audit(ctx, actor, &ev.ID, "application_decided", map[string]interface{}{
		"application_id": app.ID,
		"performer_id":   app.PerformerID,
		"status":         newStatus,
	}, "success")

	return app, nil
}

func (s *service) ListEventApplications(ctx context.Context, actor Actor, eventID uint) ([]EventApplication, error) {
	ev, err := s.repo.FindEventByID(ctx, eventID)
	if err != nil {
		return nil, apperr.NotFound("event not found")
	}
	if ev.OrganizerID != actor.UserID {
		return nil, apperr.PermissionDenied("only the event's organizer can view applications")
	}
	return s.repo.ListApplicationsByEvent(ctx, eventID)
}

func (s *service) ListMyApplications(ctx context.Context, actor Actor) ([]EventApplication, error) {
	if actor.Role != profile.RolePerformer {
		return nil, apperr.PermissionDenied("only performers have applications")
	}
	return s.repo.ListApplicationsByPerformer(ctx, actor.UserID)
}

// ===========================
// Reference data
// ===========================

func (s *service) ListCategories(ctx context.Context) ([]Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *service) ListVenues(ctx context.Context) ([]Venue, error) {
	return s.repo.ListVenues(ctx)
}

// ===========================
// Helpers
// ===========================

func buildEvent(organizerID uint, in EventInput) (*Event, error) {
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
	if in.EndTime <= in.StartTime {
		return nil, apperr.Validation("end_time must be after start_time")
	}

	status := in.Status
	if status == "" {
		status = StatusDraft
	}
	if !ValidStatus(status) {
		return nil, apperr.Validation("invalid event status")
	}

	return &Event{
		Title:              in.Title,
		Description:        in.Description,
		CategoryID:         in.CategoryID,
		VenueID:            in.VenueID,
		Date:               date,
		StartTime:          in.StartTime,
		EndTime:            in.EndTime,
		OrganizerID:        organizerID,
		Status:             status,
		AllowManualInvites: in.AllowManualInvites,
	}, nil
}

// buildSlots keeps well-formed slot rows and skips the rest; a malformed
// row never aborts the batch.
func buildSlots(inputs []TalentSlotInput) []EventTalent {
	slots := make([]EventTalent, 0, len(inputs))
	for _, in := range inputs {
		if !ValidTalentType(in.TalentType) {
			log.Printf("⚠️ skipping talent slot with invalid type %q", in.TalentType)
			continue
		}
		qty := in.QuantityNeeded
		if qty <= 0 {
			qty = 1
		}
		slots = append(slots, EventTalent{
			TalentType:     in.TalentType,
			Description:    in.Description,
			QuantityNeeded: qty,
		})
	}
	return slots
}

func (s *service) audit(ctx context.Context, actor Actor, eventID *uint, action string, details map[string]interface{}, status string) {
	if s.auditSvc == nil {
		return
	}
	userID := actor.UserID
	if err := s.auditSvc.LogAction(ctx, &userID, eventID, action, details, actor.IP, status); err != nil {
		log.Printf("⚠️ audit log write failed for %s: %v", action, err)
	}
}
