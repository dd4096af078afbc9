package calendar

import (
	"context"
	"time"

	"github.com/gigstage/gigstage-backend/internal/event"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, ce *CalendarEvent) error
	FindByID(ctx context.Context, id uint) (*CalendarEvent, error)
	Delete(ctx context.Context, id uint) error
	ListPersonalFrom(ctx context.Context, userID uint, from time.Time) ([]CalendarEvent, error)
	OrganizedEventsFrom(ctx context.Context, userID uint, from time.Time) ([]event.Event, error)
	PerformingEventsFrom(ctx context.Context, userID uint, from time.Time) ([]event.Event, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(ctx context.Context, ce *CalendarEvent) error {
	return r.db.WithContext(ctx).Create(ce).Error
}

func (r *repository) FindByID(ctx context.Context, id uint) (*CalendarEvent, error) {
	var ce CalendarEvent
	err := r.db.WithContext(ctx).First(&ce, id).Error
	if err != nil {
		return nil, err
	}
	return &ce, nil
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&CalendarEvent{}, id).Error
}

func (r *repository) ListPersonalFrom(ctx context.Context, userID uint, from time.Time) ([]CalendarEvent, error) {
	var items []CalendarEvent
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date >= ?", userID, from).
		Order("date ASC, start_time ASC").
		Find(&items).Error
	return items, err
}

// OrganizedEventsFrom returns the user's future published events.
func (r *repository) OrganizedEventsFrom(ctx context.Context, userID uint, from time.Time) ([]event.Event, error) {
	var events []event.Event
	err := r.db.WithContext(ctx).
		Preload("Venue").
		Where("organizer_id = ? AND status = ? AND date >= ?", userID, event.StatusPublished, from).
		Order("date ASC, start_time ASC").
		Find(&events).Error
	return events, err
}

// PerformingEventsFrom returns future events where the user holds an
// accepted application.
func (r *repository) PerformingEventsFrom(ctx context.Context, userID uint, from time.Time) ([]event.Event, error) {
	var events []event.Event
	err := r.db.WithContext(ctx).
		Preload("Venue").
		Joins("JOIN event_applications ON event_applications.event_id = events.id").
		Where("event_applications.performer_id = ? AND event_applications.status = ? AND events.date >= ?",
			userID, event.ApplicationAccepted, from).
		Order("events.date ASC, events.start_time ASC").
		Find(&events).Error
	return events, err
}
