package availability

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gigstage/gigstage-backend/internal/apperr"
)

func setupService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&Availability{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewService(NewRepository(db)), db
}

func TestCreateValidatesWindow(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, "2030-06-01", "18:00", "17:00", "")
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("end before start should be validation, got %v", err)
	}
	_, err = svc.Create(ctx, 1, "2030-06-01", "18:00", "18:00", "")
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("zero-length window should be validation, got %v", err)
	}
	_, err = svc.Create(ctx, 1, "06/01/2030", "10:00", "12:00", "")
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("bad date should be validation, got %v", err)
	}

	// Nothing wrote through.
	var count int64
	db.Model(&Availability{}).Count(&count)
	if count != 0 {
		t.Errorf("rows = %d, want 0 after rejected creates", count)
	}

	a, err := svc.Create(ctx, 1, "2030-06-01", "10:00", "12:00", "matinee slot")
	if err != nil {
		t.Fatalf("valid create: %v", err)
	}
	if !a.IsAvailable {
		t.Error("created window should default to available")
	}

	// Same window again trips the unique index.
	_, err = svc.Create(ctx, 1, "2030-06-01", "10:00", "12:00", "")
	if !apperr.IsKind(err, apperr.KindConflict) {
		t.Errorf("duplicate window should conflict, got %v", err)
	}
}

func TestReplaceSkipsMalformedRows(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, 5, "2030-01-01", "09:00", "10:00", "stale"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	monday := 0
	badDay := 9
	saved, err := svc.Replace(ctx, 5, []EntryInput{
		{Date: "2030-07-01", StartTime: "10:00", EndTime: "12:00"},
		{DayOfWeek: &monday, IsRecurring: true, StartTime: "18:00", EndTime: "21:00"},
		{Date: "not-a-date", StartTime: "10:00", EndTime: "12:00"},
		{Date: "2030-07-02", StartTime: "", EndTime: "12:00"},
		{DayOfWeek: &badDay, IsRecurring: true, StartTime: "10:00", EndTime: "11:00"},
	})
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if saved != 2 {
		t.Errorf("saved = %d, want 2 (malformed rows skipped)", saved)
	}

	var rows []Availability
	if err := db.Where("user_id = ?", 5).Find(&rows).Error; err != nil {
		t.Fatalf("load rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2: the old set is replaced wholesale", len(rows))
	}
	for _, row := range rows {
		if row.Note == "stale" {
			t.Error("pre-existing row should have been deleted by replace")
		}
	}
}

func TestReplaceWithEmptySetClears(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, 2, "2030-03-03", "10:00", "11:00", ""); err != nil {
		t.Fatalf("seed: %v", err)
	}
	saved, err := svc.Replace(ctx, 2, nil)
	if err != nil {
		t.Fatalf("Replace(nil): %v", err)
	}
	if saved != 0 {
		t.Errorf("saved = %d, want 0", saved)
	}
	var count int64
	db.Model(&Availability{}).Where("user_id = ?", 2).Count(&count)
	if count != 0 {
		t.Errorf("rows = %d, want 0 after clearing replace", count)
	}
}

func TestFeedJSONShape(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	future := time.Now().AddDate(0, 1, 0).Format("2006-01-02")
	if _, err := svc.Create(ctx, 9, future, "10:00", "12:00", "soundcheck"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, 9, future, "14:00", "16:00", ""); err != nil {
		t.Fatalf("create: %v", err)
	}
	// A busy window is hidden from the feed.
	busy, err := svc.Create(ctx, 9, future, "20:00", "22:00", "")
	if err != nil {
		t.Fatalf("create busy row: %v", err)
	}
	if err := db.Model(&Availability{}).Where("id = ?", busy.ID).Update("is_available", false).Error; err != nil {
		t.Fatalf("flip busy row: %v", err)
	}

	blocks, err := svc.FeedJSON(ctx, 9)
	if err != nil {
		t.Fatalf("FeedJSON: %v", err)
	}
	if len(blocks) != 2 {
		t.Fatalf("blocks = %d, want 2 (busy window hidden)", len(blocks))
	}

	first := blocks[0]
	if first.Title != "soundcheck" {
		t.Errorf("title = %q, want the note text", first.Title)
	}
	if blocks[1].Title != "Available" {
		t.Errorf("title = %q, want Available fallback", blocks[1].Title)
	}
	if !strings.HasSuffix(first.Start, "T10:00") || !strings.HasSuffix(first.End, "T12:00") {
		t.Errorf("start/end = %q/%q, want day-prefixed clock strings", first.Start, first.End)
	}
	if first.BackgroundColor != "#38bdf8" || first.BorderColor != "#0ea5e9" || first.Display != "background" {
		t.Errorf("block styling = %+v", first)
	}
}

func TestDeleteScopedToOwner(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, 1, "2030-09-09", "10:00", "11:00", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(ctx, a.ID, 2); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("foreign delete should be not-found, got %v", err)
	}
	if err := svc.Delete(ctx, a.ID, 1); err != nil {
		t.Errorf("own delete: %v", err)
	}
}
