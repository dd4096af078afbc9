package notification

import (
	"context"
	"log"

	"github.com/gigstage/gigstage-backend/internal/apperr"
	"github.com/gigstage/gigstage-backend/utils"
	"gorm.io/gorm"
)

type Service interface {
	// Notify creates an in-app alert for a user, honoring their profile
	// delivery preferences. Failures are reported but are never fatal to
	// the calling operation.
	Notify(ctx context.Context, userID uint, ntype, title, message, link string) error

	List(ctx context.Context, userID uint, limit int) ([]Notification, error)
	UnreadCount(ctx context.Context, userID uint) (int64, error)
	MarkRead(ctx context.Context, id uint, userID uint) error
	MarkAllRead(ctx context.Context, userID uint) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Notify(ctx context.Context, userID uint, ntype, title, message, link string) error {
	if !ValidType(ntype) {
		return apperr.Validation("invalid notification type")
	}

	prefs, err := s.repo.GetUserPrefs(ctx, userID)
	if err != nil {
		return err
	}

	// Application-status alerts are suppressed entirely when the user has
	// opted out of application updates.
	if ntype == TypeApplication && !prefs.ApplicationUpdates {
		return nil
	}

	n := &Notification{
		UserID:  userID,
		Type:    ntype,
		Title:   title,
		Message: message,
		Link:    link,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return err
	}

	// Best-effort email mirror.
	if prefs.EmailNotifications {
		go func(email, title, message string) {
			if err := utils.SendNotificationEmail(email, title, message); err != nil {
				log.Printf("⚠️ notification email to %s failed: %v", email, err)
			}
		}(prefs.Email, title, message)
	}

	return nil
}

func (s *service) List(ctx context.Context, userID uint, limit int) ([]Notification, error) {
	return s.repo.ListByUser(ctx, userID, limit)
}

func (s *service) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

func (s *service) MarkRead(ctx context.Context, id uint, userID uint) error {
	err := s.repo.MarkAsRead(ctx, id, userID)
	if err == gorm.ErrRecordNotFound {
		return apperr.NotFound("notification not found")
	}
	return err
}

func (s *service) MarkAllRead(ctx context.Context, userID uint) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}
