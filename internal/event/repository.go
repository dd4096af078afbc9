package event

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	// Events
	CreateEventWithSlots(ctx context.Context, ev *Event, slots []EventTalent) error
	UpdateEventWithSlots(ctx context.Context, ev *Event, slots []EventTalent) error
	FindEventByID(ctx context.Context, id uint) (*Event, error)
	DeleteEventCascade(ctx context.Context, eventID uint) error
	ListPublished(ctx context.Context, filter ListFilter) ([]Event, error)
	ListByOrganizer(ctx context.Context, organizerID uint) ([]Event, error)

	// Applications
	CreateApplication(ctx context.Context, app *EventApplication) error
	FindApplication(ctx context.Context, eventID, performerID uint, talentType string) (*EventApplication, error)
	FindApplicationByID(ctx context.Context, id uint) (*EventApplication, error)
	UpdateApplicationStatus(ctx context.Context, id uint, status string) error
	DeleteApplication(ctx context.Context, id uint) error
	ListApplicationsByEvent(ctx context.Context, eventID uint) ([]EventApplication, error)
	ListApplicationsByPerformer(ctx context.Context, performerID uint) ([]EventApplication, error)

	// Reference data
	ListCategories(ctx context.Context) ([]Category, error)
	ListVenues(ctx context.Context) ([]Venue, error)
	CreateCategory(ctx context.Context, c *Category) error
	CreateVenue(ctx context.Context, v *Venue) error
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

// ------------------------------
// Events
// ------------------------------

func (r *repository) CreateEventWithSlots(ctx context.Context, ev *Event, slots []EventTalent) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(ev).Error; err != nil {
			return err
		}
		for i := range slots {
			slots[i].EventID = ev.ID
		}
		if len(slots) > 0 {
			if err := tx.Create(&slots).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateEventWithSlots saves the event and replaces its talent slots
// wholesale in the same transaction.
func (r *repository) UpdateEventWithSlots(ctx context.Context, ev *Event, slots []EventTalent) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(ev).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", ev.ID).Delete(&EventTalent{}).Error; err != nil {
			return err
		}
		for i := range slots {
			slots[i].ID = 0
			slots[i].EventID = ev.ID
		}
		if len(slots) > 0 {
			if err := tx.Create(&slots).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *repository) FindEventByID(ctx context.Context, id uint) (*Event, error) {
	var ev Event
	err := r.db.WithContext(ctx).
		Preload("Talents").
		Preload("Category").
		Preload("Venue").
		First(&ev, id).Error
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

// DeleteEventCascade removes the event with its slots and applications.
// Personal calendar links to the event are detached, not deleted.
func (r *repository) DeleteEventCascade(ctx context.Context, eventID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", eventID).Delete(&EventApplication{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", eventID).Delete(&EventTalent{}).Error; err != nil {
			return err
		}
		if err := tx.Table("calendar_events").
			Where("related_event_id = ?", eventID).
			Update("related_event_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&Event{}, eventID).Error
	})
}

func (r *repository) ListPublished(ctx context.Context, filter ListFilter) ([]Event, error) {
	q := r.db.WithContext(ctx).
		Preload("Talents").
		Preload("Category").
		Preload("Venue").
		Where("events.status = ?", StatusPublished)

	if filter.CategoryID != nil {
		q = q.Where("events.category_id = ?", *filter.CategoryID)
	}
	if filter.Date != nil {
		q = q.Where("events.date = ?", filter.Date.Truncate(24*time.Hour))
	}
	if filter.City != "" {
		q = q.Joins("JOIN venues ON venues.id = events.venue_id").
			Where("LOWER(venues.city) = ?", strings.ToLower(filter.City))
	}
	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Where("LOWER(events.title) LIKE ? OR LOWER(events.description) LIKE ?", like, like)
	}

	var events []Event
	err := q.Order("events.date ASC, events.start_time ASC").Find(&events).Error
	return events, err
}

func (r *repository) ListByOrganizer(ctx context.Context, organizerID uint) ([]Event, error) {
	var events []Event
	err := r.db.WithContext(ctx).
		Preload("Talents").
		Where("organizer_id = ?", organizerID).
		Order("date ASC, start_time ASC").
		Find(&events).Error
	return events, err
}

// ------------------------------
// Applications
// ------------------------------

func (r *repository) CreateApplication(ctx context.Context, app *EventApplication) error {
	return r.db.WithContext(ctx).Create(app).Error
}

func (r *repository) FindApplication(ctx context.Context, eventID, performerID uint, talentType string) (*EventApplication, error) {
	var app EventApplication
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND performer_id = ? AND talent_type = ?", eventID, performerID, talentType).
		First(&app).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *repository) FindApplicationByID(ctx context.Context, id uint) (*EventApplication, error) {
	var app EventApplication
	err := r.db.WithContext(ctx).First(&app, id).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *repository) UpdateApplicationStatus(ctx context.Context, id uint, status string) error {
	return r.db.WithContext(ctx).
		Model(&EventApplication{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *repository) DeleteApplication(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&EventApplication{}, id).Error
}

func (r *repository) ListApplicationsByEvent(ctx context.Context, eventID uint) ([]EventApplication, error) {
	var apps []EventApplication
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&apps).Error
	return apps, err
}

func (r *repository) ListApplicationsByPerformer(ctx context.Context, performerID uint) ([]EventApplication, error) {
	var apps []EventApplication
	err := r.db.WithContext(ctx).
		Where("performer_id = ?", performerID).
		Order("created_at DESC").
		Find(&apps).Error
	return apps, err
}

// ------------------------------
// Reference data
// ------------------------------

func (r *repository) ListCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *repository) ListVenues(ctx context.Context) ([]Venue, error) {
	var venues []Venue
	err := r.db.WithContext(ctx).Order("name ASC").Find(&venues).Error
	return venues, err
}

func (r *repository) CreateCategory(ctx context.Context, c *Category) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) CreateVenue(ctx context.Context, v *Venue) error {
	return r.db.WithContext(ctx).Create(v).Error
}
