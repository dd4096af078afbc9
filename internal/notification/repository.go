package notification

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	ListByUser(ctx context.Context, userID uint, limit int) ([]Notification, error)
	CountUnread(ctx context.Context, userID uint) (int64, error)
	MarkAsRead(ctx context.Context, id uint, userID uint) error
	MarkAllAsRead(ctx context.Context, userID uint) error
	GetUserPrefs(ctx context.Context, userID uint) (*UserPrefs, error)
}

// UserPrefs is the slice of the user's profile the notification path needs:
// delivery flags plus the email address for the SMTP mirror.
type UserPrefs struct {
	UserID             uint
	Email              string
	EmailNotifications bool
	ApplicationUpdates bool
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, n *Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *repository) ListByUser(ctx context.Context, userID uint, limit int) ([]Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var items []Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&items).Error
	return items, err
}

func (r *repository) CountUnread(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *repository) MarkAsRead(ctx context.Context, id uint, userID uint) error {
	res := r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) MarkAllAsRead(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}

func (r *repository) GetUserPrefs(ctx context.Context, userID uint) (*UserPrefs, error) {
	var prefs UserPrefs
	err := r.db.WithContext(ctx).
		Table("users").
		Select("users.id as user_id, users.email as email, profiles.email_notifications as email_notifications, profiles.application_updates as application_updates").
		Joins("JOIN profiles ON profiles.user_id = users.id").
		Where("users.id = ?", userID).
		Take(&prefs).Error
	if err != nil {
		return nil, err
	}
	return &prefs, nil
}
