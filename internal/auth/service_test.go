package auth

import (
	"context"
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gigstage/gigstage-backend/config"
	"github.com/gigstage/gigstage-backend/internal/apperr"
	"github.com/gigstage/gigstage-backend/internal/profile"
)

func setupService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&User{}, &profile.Profile{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := &config.Config{
		JWTAccessSecret:    "access-secret",
		JWTRefreshSecret:   "refresh-secret",
		JWTAccessTTLHours:  1,
		JWTRefreshTTLHours: 24,
		DefaultRole:        profile.RolePerformer,
	}
	return NewService(NewRepository(db), cfg), db
}

func TestRegisterCreatesUserAndProfileTogether(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{
		Username: "jazzhands",
		Email:    "Jazz@Example.com",
		Password: "secret123",
		Role:     profile.RoleOrganizer,
		Bio:      "booking agent",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Email != "jazz@example.com" {
		t.Errorf("email not lowercased: %q", user.Email)
	}

	var p profile.Profile
	if err := db.Where("user_id = ?", user.ID).First(&p).Error; err != nil {
		t.Fatalf("profile row missing after register: %v", err)
	}
	if p.Role != profile.RoleOrganizer {
		t.Errorf("profile role = %q, want organizer", p.Role)
	}
	if p.Bio != "booking agent" {
		t.Errorf("profile bio = %q", p.Bio)
	}
	if !p.EmailNotifications || !p.ApplicationUpdates || !p.ShowProfile {
		t.Error("default preference flags should all be on")
	}
}

func TestRegisterDefaultRoleAndValidation(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{Username: "drummer", Email: "d@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("Register without role: %v", err)
	}
	var p profile.Profile
	if err := db.Where("user_id = ?", user.ID).First(&p).Error; err != nil {
		t.Fatalf("profile row: %v", err)
	}
	if p.Role != profile.RolePerformer {
		t.Errorf("role = %q, want configured default", p.Role)
	}

	_, err = svc.Register(ctx, RegisterInput{Username: "x", Email: "x@example.com", Password: "pw", Role: "admin"})
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("unknown role should be a validation error, got %v", err)
	}
}

func TestRegisterDuplicateConflicts(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{Username: "solo", Email: "solo@example.com", Password: "pw"}); err != nil {
		t.Fatalf("seed register: %v", err)
	}

	_, err := svc.Register(ctx, RegisterInput{Username: "solo", Email: "other@example.com", Password: "pw"})
	if !apperr.IsKind(err, apperr.KindConflict) {
		t.Errorf("duplicate username should conflict, got %v", err)
	}

	_, err = svc.Register(ctx, RegisterInput{Username: "other", Email: "solo@example.com", Password: "pw"})
	if !apperr.IsKind(err, apperr.KindConflict) {
		t.Errorf("duplicate email should conflict, got %v", err)
	}
}

func TestLoginAndRefresh(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{Username: "gig", Email: "gig@example.com", Password: "rightpw"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	pair, user, err := svc.Login(ctx, LoginInput{Email: "GIG@example.com", Password: "rightpw"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("login must return both tokens")
	}
	if user.Username != "gig" {
		t.Errorf("login returned user %q", user.Username)
	}

	access, err := svc.Refresh(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if access == "" {
		t.Fatal("refresh must return a new access token")
	}

	if _, _, err := svc.Login(ctx, LoginInput{Email: "gig@example.com", Password: "wrongpw"}); err == nil {
		t.Error("wrong password must not log in")
	}
	if _, _, err := svc.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "pw"}); err == nil {
		t.Error("unknown email must not log in")
	}
	if _, err := svc.Refresh(ctx, pair.AccessToken); err == nil {
		t.Error("access token must not pass as a refresh token")
	}
}

func TestUpdateAccountConflicts(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	a, err := svc.Register(ctx, RegisterInput{Username: "alpha", Email: "a@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("register a: %v", err)
	}
	if _, err := svc.Register(ctx, RegisterInput{Username: "beta", Email: "b@example.com", Password: "pw"}); err != nil {
		t.Fatalf("register b: %v", err)
	}

	_, err = svc.UpdateAccount(ctx, a.ID, UpdateAccountInput{Username: "beta"})
	if !apperr.IsKind(err, apperr.KindConflict) {
		t.Errorf("taken username should conflict, got %v", err)
	}

	updated, err := svc.UpdateAccount(ctx, a.ID, UpdateAccountInput{Username: "gamma"})
	if err != nil {
		t.Fatalf("UpdateAccount: %v", err)
	}
	if updated.Username != "gamma" {
		t.Errorf("username = %q, want gamma", updated.Username)
	}
}
