package reports

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	RosterByEvent(ctx context.Context, eventID uint) ([]RosterRow, error)
	EventOrganizer(ctx context.Context, eventID uint) (uint, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

// RosterByEvent joins applications with the event and performer identity.
func (r *repository) RosterByEvent(ctx context.Context, eventID uint) ([]RosterRow, error) {
	var rows []RosterRow
	err := r.db.WithContext(ctx).
		Table("event_applications").
		Select(`event_applications.id as application_id,
			events.title as event_title,
			events.date as event_date,
			users.username as performer,
			users.email as email,
			event_applications.talent_type as talent_type,
			event_applications.status as status,
			event_applications.created_at as applied_at`).
		Joins("JOIN events ON events.id = event_applications.event_id").
		Joins("JOIN users ON users.id = event_applications.performer_id").
		Where("event_applications.event_id = ?", eventID).
		Order("event_applications.created_at ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) EventOrganizer(ctx context.Context, eventID uint) (uint, error) {
	var row struct{ OrganizerID uint }
	err := r.db.WithContext(ctx).
		Table("events").
		Select("organizer_id").
		Where("id = ?", eventID).
		First(&row).Error
	if err != nil {
		return 0, err
	}
	return row.OrganizerID, nil
}
