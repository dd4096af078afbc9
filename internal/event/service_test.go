package event_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gigstage/gigstage-backend/internal/apperr"
	"github.com/gigstage/gigstage-backend/internal/auth"
	"github.com/gigstage/gigstage-backend/internal/calendar"
	"github.com/gigstage/gigstage-backend/internal/event"
	"github.com/gigstage/gigstage-backend/internal/notification"
	"github.com/gigstage/gigstage-backend/internal/profile"
)

const (
	organizerID = uint(1)
	performerID = uint(2)
)

func setup(t *testing.T) (event.Service, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&auth.User{}, &profile.Profile{},
		&event.Category{}, &event.Venue{}, &event.Event{}, &event.EventTalent{}, &event.EventApplication{},
		&calendar.CalendarEvent{}, &notification.Notification{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	// Email mirroring is off so notifications stay purely in-app here.
	users := []auth.User{
		{ID: organizerID, Username: "org", Email: "org@example.com", PasswordHash: "x"},
		{ID: performerID, Username: "perf", Email: "perf@example.com", PasswordHash: "x"},
	}
	for i := range users {
		if err := db.Create(&users[i]).Error; err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}
	profiles := []profile.Profile{
		{UserID: organizerID, Role: profile.RoleOrganizer, ApplicationUpdates: true, ShowProfile: true},
		{UserID: performerID, Role: profile.RolePerformer, ApplicationUpdates: true, ShowProfile: true},
	}
	for i := range profiles {
		if err := db.Create(&profiles[i]).Error; err != nil {
			t.Fatalf("seed profile: %v", err)
		}
	}

	notifSvc := notification.NewService(notification.NewRepository(db))
	svc := event.NewService(event.NewRepository(db), notifSvc, nil)
	return svc, db
}

func organizer() event.Actor {
	return event.Actor{UserID: organizerID, Role: profile.RoleOrganizer}
}

func performer() event.Actor {
	return event.Actor{UserID: performerID, Role: profile.RolePerformer}
}

func draftInput() event.EventInput {
	return event.EventInput{
		Title:     "Summer Gala",
		Date:      "2030-05-01",
		StartTime: "19:00",
		EndTime:   "23:00",
		TalentSlots: []event.TalentSlotInput{
			{TalentType: event.TalentMusician, QuantityNeeded: 2},
			{TalentType: event.TalentDancer},
		},
	}
}

func TestCreateEventValidation(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	in := draftInput()
	in.EndTime = "18:00"
	if _, err := svc.CreateEvent(ctx, organizer(), in); !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("end before start should be a validation error, got %v", err)
	}

	in = draftInput()
	in.Date = "01/05/2030"
	if _, err := svc.CreateEvent(ctx, organizer(), in); !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("bad date should be a validation error, got %v", err)
	}

	if _, err := svc.CreateEvent(ctx, performer(), draftInput()); !apperr.IsKind(err, apperr.KindPermissionDenied) {
		t.Errorf("performer creating an event should be denied, got %v", err)
	}
}

func TestCreateEventSkipsMalformedSlots(t *testing.T) {
	svc, _ := setup(t)

	in := draftInput()
	in.TalentSlots = append(in.TalentSlots, event.TalentSlotInput{TalentType: "juggler"})

	ev, err := svc.CreateEvent(context.Background(), organizer(), in)
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if len(ev.Talents) != 2 {
		t.Errorf("slots = %d, want 2 (unknown type skipped)", len(ev.Talents))
	}
	if ev.Status != event.StatusDraft {
		t.Errorf("status = %q, want draft default", ev.Status)
	}
	for _, slot := range ev.Talents {
		if slot.QuantityNeeded < 1 {
			t.Errorf("slot %q quantity = %d, want >= 1", slot.TalentType, slot.QuantityNeeded)
		}
	}
}

func TestApplyWithdrawReapply(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	in := draftInput()
	in.Status = event.StatusPublished
	ev, err := svc.CreateEvent(ctx, organizer(), in)
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	app, err := svc.Apply(ctx, performer(), ev.ID, event.TalentMusician, "I play bass")
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if app.Status != event.ApplicationPending {
		t.Errorf("status = %q, want pending", app.Status)
	}

	// Same slot again is a conflict, even with a different message.
	_, err = svc.Apply(ctx, performer(), ev.ID, event.TalentMusician, "again")
	if !apperr.IsKind(err, apperr.KindConflict) {
		t.Errorf("duplicate apply should conflict, got %v", err)
	}

	// A different slot type of the same event is fine.
	if _, err := svc.Apply(ctx, performer(), ev.ID, event.TalentDancer, ""); err != nil {
		t.Errorf("apply for a second slot type: %v", err)
	}

	// Withdraw frees the slot for a fresh application.
	if err := svc.Withdraw(ctx, performer(), ev.ID, event.TalentMusician); err != nil {
		t.Fatalf("Withdraw: %v", err)
	}
	if err := svc.Withdraw(ctx, performer(), ev.ID, event.TalentMusician); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("double withdraw should be not-found, got %v", err)
	}
	if _, err := svc.Apply(ctx, performer(), ev.ID, event.TalentMusician, "take two"); err != nil {
		t.Errorf("re-apply after withdraw: %v", err)
	}
}

func TestApplyEdgeCases(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	ev, err := svc.CreateEvent(ctx, organizer(), draftInput())
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	if _, err := svc.Apply(ctx, organizer(), ev.ID, event.TalentMusician, ""); !apperr.IsKind(err, apperr.KindPermissionDenied) {
		t.Errorf("organizer applying should be denied, got %v", err)
	}
	if _, err := svc.Apply(ctx, performer(), ev.ID, "juggler", ""); !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("unknown talent type should be validation, got %v", err)
	}
	if _, err := svc.Apply(ctx, performer(), ev.ID, event.TalentSpeaker, ""); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("no slot of that type should be not-found, got %v", err)
	}
	if _, err := svc.Apply(ctx, performer(), 9999, event.TalentMusician, ""); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("missing event should be not-found, got %v", err)
	}
}

func TestDecideFlow(t *testing.T) {
	svc, db := setup(t)
	ctx := context.Background()

	ev, err := svc.CreateEvent(ctx, organizer(), draftInput())
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	app, err := svc.Apply(ctx, performer(), ev.ID, event.TalentMusician, "")
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if _, err := svc.Decide(ctx, organizer(), app.ID, "maybe"); !apperr.IsKind(err, apperr.KindInvalidState) {
		t.Errorf("unknown decision status should be invalid-state, got %v", err)
	}
	other := event.Actor{UserID: 99, Role: profile.RoleOrganizer}
	if _, err := svc.Decide(ctx, other, app.ID, event.ApplicationAccepted); !apperr.IsKind(err, apperr.KindPermissionDenied) {
		t.Errorf("foreign organizer should be denied, got %v", err)
	}

	decided, err := svc.Decide(ctx, organizer(), app.ID, event.ApplicationAccepted)
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if decided.Status != event.ApplicationAccepted {
		t.Errorf("status = %q, want accepted", decided.Status)
	}

	// Decisions are final.
	if _, err := svc.Decide(ctx, organizer(), app.ID, event.ApplicationRejected); !apperr.IsKind(err, apperr.KindInvalidState) {
		t.Errorf("re-deciding should be invalid-state, got %v", err)
	}

	// The performer got an in-app alert.
	var notifs []notification.Notification
	if err := db.Where("user_id = ?", performerID).Find(&notifs).Error; err != nil {
		t.Fatalf("load notifications: %v", err)
	}
	if len(notifs) != 1 || notifs[0].Type != notification.TypeApplication {
		t.Errorf("performer notifications = %+v, want one application alert", notifs)
	}
}

func TestDeleteEventRules(t *testing.T) {
	svc, db := setup(t)
	ctx := context.Background()

	in := draftInput()
	in.Status = event.StatusPublished
	published, err := svc.CreateEvent(ctx, organizer(), in)
	if err != nil {
		t.Fatalf("create published: %v", err)
	}
	if err := svc.DeleteEvent(ctx, organizer(), published.ID); !apperr.IsKind(err, apperr.KindInvalidState) {
		t.Errorf("deleting a published event should be invalid-state, got %v", err)
	}

	draft, err := svc.CreateEvent(ctx, organizer(), draftInput())
	if err != nil {
		t.Fatalf("create draft: %v", err)
	}
	if _, err := svc.Apply(ctx, performer(), draft.ID, event.TalentMusician, ""); err != nil {
		t.Fatalf("apply: %v", err)
	}
	ce := calendar.CalendarEvent{
		UserID: performerID, Title: "Gig prep", EventType: calendar.TypeRehearsal,
		Date: time.Date(2030, 4, 30, 0, 0, 0, 0, time.UTC), StartTime: "10:00", EndTime: "12:00",
		RelatedEventID: &draft.ID,
	}
	if err := db.Create(&ce).Error; err != nil {
		t.Fatalf("seed calendar entry: %v", err)
	}

	impostor := event.Actor{UserID: 42, Role: profile.RoleOrganizer}
	if err := svc.DeleteEvent(ctx, impostor, draft.ID); !apperr.IsKind(err, apperr.KindPermissionDenied) {
		t.Errorf("non-owner delete should be denied, got %v", err)
	}

	if err := svc.DeleteEvent(ctx, organizer(), draft.ID); err != nil {
		t.Fatalf("DeleteEvent: %v", err)
	}

	var apps, slots int64
	db.Model(&event.EventApplication{}).Where("event_id = ?", draft.ID).Count(&apps)
	db.Model(&event.EventTalent{}).Where("event_id = ?", draft.ID).Count(&slots)
	if apps != 0 || slots != 0 {
		t.Errorf("cascade left apps=%d slots=%d", apps, slots)
	}

	// The personal calendar entry survives, detached.
	var kept calendar.CalendarEvent
	if err := db.First(&kept, ce.ID).Error; err != nil {
		t.Fatalf("calendar entry should survive event deletion: %v", err)
	}
	if kept.RelatedEventID != nil {
		t.Errorf("related_event_id = %v, want NULL after event deletion", *kept.RelatedEventID)
	}
}

func TestSlotReplacementKeepsApplications(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	ev, err := svc.CreateEvent(ctx, organizer(), draftInput())
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if _, err := svc.Apply(ctx, performer(), ev.ID, event.TalentMusician, ""); err != nil {
		t.Fatalf("apply: %v", err)
	}

	in := draftInput()
	in.Title = "Summer Gala v2"
	in.TalentSlots = []event.TalentSlotInput{
		{TalentType: event.TalentMusician, QuantityNeeded: 3},
		{TalentType: event.TalentSpeaker},
	}
	updated, err := svc.UpdateEvent(ctx, organizer(), ev.ID, in)
	if err != nil {
		t.Fatalf("UpdateEvent: %v", err)
	}
	if len(updated.Talents) != 2 {
		t.Fatalf("slots = %d, want 2 after replacement", len(updated.Talents))
	}

	// The application keys off the talent type, not the slot row, so it
	// survives the wholesale slot swap.
	apps, err := svc.ListEventApplications(ctx, organizer(), ev.ID)
	if err != nil {
		t.Fatalf("ListEventApplications: %v", err)
	}
	if len(apps) != 1 || apps[0].TalentType != event.TalentMusician {
		t.Errorf("applications after edit = %+v, want the original one", apps)
	}
}

func TestListPublishedFilters(t *testing.T) {
	svc, db := setup(t)
	ctx := context.Background()

	venue := event.Venue{Name: "Blue Hall", City: "Lisbon"}
	if err := db.Create(&venue).Error; err != nil {
		t.Fatalf("seed venue: %v", err)
	}

	mk := func(title, status string, venueID *uint) {
		in := draftInput()
		in.Title = title
		in.Status = status
		in.VenueID = venueID
		if _, err := svc.CreateEvent(ctx, organizer(), in); err != nil {
			t.Fatalf("create %q: %v", title, err)
		}
	}
	mk("Jazz Night", event.StatusPublished, &venue.ID)
	mk("Open Mic", event.StatusPublished, nil)
	mk("Secret Draft", event.StatusDraft, nil)

	all, err := svc.ListPublished(ctx, event.ListFilter{})
	if err != nil {
		t.Fatalf("ListPublished: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("published = %d, want 2 (draft hidden)", len(all))
	}

	byCity, err := svc.ListPublished(ctx, event.ListFilter{City: "LISBON"})
	if err != nil {
		t.Fatalf("ListPublished(city): %v", err)
	}
	if len(byCity) != 1 || byCity[0].Title != "Jazz Night" {
		t.Errorf("city filter = %+v, want Jazz Night", byCity)
	}

	bySearch, err := svc.ListPublished(ctx, event.ListFilter{Search: "mic"})
	if err != nil {
		t.Fatalf("ListPublished(search): %v", err)
	}
	if len(bySearch) != 1 || bySearch[0].Title != "Open Mic" {
		t.Errorf("search filter = %+v, want Open Mic", bySearch)
	}
}
