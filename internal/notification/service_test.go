package notification_test

import (
	"context"
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gigstage/gigstage-backend/internal/apperr"
	"github.com/gigstage/gigstage-backend/internal/auth"
	"github.com/gigstage/gigstage-backend/internal/notification"
	"github.com/gigstage/gigstage-backend/internal/profile"
)

func setup(t *testing.T) (notification.Service, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&auth.User{}, &profile.Profile{}, &notification.Notification{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	u := auth.User{ID: 1, Username: "mia", Email: "mia@example.com", PasswordHash: "x"}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	p := profile.Profile{UserID: 1, Role: profile.RolePerformer, ApplicationUpdates: true, ShowProfile: true}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	if err := db.Model(&profile.Profile{}).Where("user_id = ?", 1).
		Update("email_notifications", false).Error; err != nil {
		t.Fatalf("mute email: %v", err)
	}

	return notification.NewService(notification.NewRepository(db)), db
}

func TestNotifyCreatesAlert(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	if err := svc.Notify(ctx, 1, notification.TypeApplication, "Application accepted", "congrats", "/events/5/"); err != nil {
		t.Fatalf("Notify: %v", err)
	}

	items, err := svc.List(ctx, 1, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("notifications = %d, want 1", len(items))
	}
	if items[0].Link != "/events/5/" || items[0].IsRead {
		t.Errorf("notification = %+v", items[0])
	}

	if err := svc.Notify(ctx, 1, "fax", "t", "m", ""); !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("unknown type should be validation, got %v", err)
	}
}

func TestNotifyHonorsApplicationOptOut(t *testing.T) {
	svc, db := setup(t)
	ctx := context.Background()

	if err := db.Model(&profile.Profile{}).Where("user_id = ?", 1).
		Update("application_updates", false).Error; err != nil {
		t.Fatalf("opt out: %v", err)
	}

	// Application alerts are suppressed without error.
	if err := svc.Notify(ctx, 1, notification.TypeApplication, "Application rejected", "sorry", ""); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	// Other kinds still land.
	if err := svc.Notify(ctx, 1, notification.TypeMessage, "New message", "hey", ""); err != nil {
		t.Fatalf("Notify message: %v", err)
	}

	items, err := svc.List(ctx, 1, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 1 || items[0].Type != notification.TypeMessage {
		t.Errorf("notifications = %+v, want only the message alert", items)
	}
}

func TestMarkReadFlow(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := svc.Notify(ctx, 1, notification.TypeSystem, "note", "body", ""); err != nil {
			t.Fatalf("Notify: %v", err)
		}
	}

	count, err := svc.UnreadCount(ctx, 1)
	if err != nil || count != 3 {
		t.Fatalf("unread = %d (err %v), want 3", count, err)
	}

	items, _ := svc.List(ctx, 1, 0)
	if err := svc.MarkRead(ctx, items[0].ID, 1); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	if err := svc.MarkRead(ctx, items[1].ID, 2); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("foreign mark-read should be not-found, got %v", err)
	}

	count, _ = svc.UnreadCount(ctx, 1)
	if count != 2 {
		t.Errorf("unread = %d, want 2", count)
	}

	if err := svc.MarkAllRead(ctx, 1); err != nil {
		t.Fatalf("MarkAllRead: %v", err)
	}
	count, _ = svc.UnreadCount(ctx, 1)
	if count != 0 {
		t.Errorf("unread = %d, want 0", count)
	}
}
