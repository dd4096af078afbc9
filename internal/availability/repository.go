package availability

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, a *Availability) error
	ReplaceAll(ctx context.Context, userID uint, entries []Availability) error
	ListByUser(ctx context.Context, userID uint) ([]Availability, error)
	ListDatedFrom(ctx context.Context, userID uint, from time.Time) ([]Availability, error)
	Delete(ctx context.Context, id, userID uint) error
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(ctx context.Context, a *Availability) error {
	return r.db.WithContext(ctx).Create(a).Error
}

// ReplaceAll swaps the user's entire availability set in one transaction.
func (r *repository) ReplaceAll(ctx context.Context, userID uint, entries []Availability) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&Availability{}).Error; err != nil {
			return err
		}
		for i := range entries {
			entries[i].ID = 0
			entries[i].UserID = userID
		}
		if len(entries) > 0 {
			if err := tx.Create(&entries).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *repository) ListByUser(ctx context.Context, userID uint) ([]Availability, error) {
	var items []Availability
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date ASC, day_of_week ASC, start_time ASC").
		Find(&items).Error
	return items, err
}

// ListDatedFrom returns one-off windows on or after the given date.
func (r *repository) ListDatedFrom(ctx context.Context, userID uint, from time.Time) ([]Availability, error) {
	var items []Availability
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date IS NOT NULL AND date >= ?", userID, from).
		Order("date ASC, start_time ASC").
		Find(&items).Error
	return items, err
}

func (r *repository) Delete(ctx context.Context, id, userID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&Availability{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
