package auditlog

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupService(t *testing.T) Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&AuditLog{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewService(NewRepository(db))
}

func TestLogActionStoresDetails(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	userID := uint(4)
	eventID := uint(12)
	err := svc.LogAction(ctx, &userID, &eventID, "event_created",
		map[string]interface{}{"title": "Summer Gala", "slots": 2}, "10.0.0.8", "success")
	if err != nil {
		t.Fatalf("LogAction: %v", err)
	}
	// nil details degrade to an empty blob, never an error
	if err := svc.LogAction(ctx, nil, nil, "login_failed", nil, "10.0.0.9", "failure"); err != nil {
		t.Fatalf("LogAction(nil details): %v", err)
	}

	page, err := svc.GetAuditLogs(ctx, Filter{})
	if err != nil {
		t.Fatalf("GetAuditLogs: %v", err)
	}
	if page.Total != 2 {
		t.Fatalf("total = %d, want 2", page.Total)
	}

	var withDetails *AuditLog
	for i := range page.Data {
		if page.Data[i].Action == "event_created" {
			withDetails = &page.Data[i]
		}
	}
	if withDetails == nil {
		t.Fatal("event_created entry missing")
	}
	if withDetails.UserID == nil || *withDetails.UserID != 4 {
		t.Errorf("user id = %v", withDetails.UserID)
	}
	var details map[string]interface{}
	if err := json.Unmarshal(withDetails.Details, &details); err != nil {
		t.Fatalf("details not valid JSON: %v", err)
	}
	if details["title"] != "Summer Gala" {
		t.Errorf("details = %v", details)
	}
}

func TestGetAuditLogsFilterAndPaging(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	userA, userB := uint(1), uint(2)
	for i := 0; i < 5; i++ {
		if err := svc.LogAction(ctx, &userA, nil, "event_created", nil, "ip", "success"); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	if err := svc.LogAction(ctx, &userB, nil, "application_decided", nil, "ip", "success"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	page, err := svc.GetAuditLogs(ctx, Filter{UserID: &userA, Limit: 2, Page: 1})
	if err != nil {
		t.Fatalf("GetAuditLogs: %v", err)
	}
	if page.Total != 5 || len(page.Data) != 2 || page.TotalPages != 3 {
		t.Errorf("page = total %d, rows %d, pages %d; want 5/2/3", page.Total, len(page.Data), page.TotalPages)
	}

	byAction, err := svc.GetAuditLogs(ctx, Filter{Action: "DECIDED"})
	if err != nil {
		t.Fatalf("GetAuditLogs(action): %v", err)
	}
	if byAction.Total != 1 {
		t.Errorf("action filter matched %d, want 1 (case-insensitive substring)", byAction.Total)
	}
}
