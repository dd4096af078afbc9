package profile

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, p *Profile) error
	FindByUserID(ctx context.Context, userID uint) (*Profile, error)
	FirstOrCreate(ctx context.Context, userID uint, defaultRole string) (*Profile, error)
	Update(ctx context.Context, p *Profile) error
	Directory(ctx context.Context, search, role string) ([]DirectoryEntry, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(ctx context.Context, p *Profile) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindByUserID(ctx context.Context, userID uint) (*Profile, error) {
	var p Profile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FirstOrCreate returns the user's profile, creating one with the fallback
// role if it does not exist yet. The unique index on user_id keeps this
// exactly-once under concurrent callers: on a losing insert we re-fetch.
func (r *repository) FirstOrCreate(ctx context.Context, userID uint, defaultRole string) (*Profile, error) {
	var p Profile
	err := r.db.WithContext(ctx).
		Where(Profile{UserID: userID}).
		Attrs(Profile{Role: defaultRole, EmailNotifications: true, ApplicationUpdates: true, ShowProfile: true}).
		FirstOrCreate(&p).Error
	if err != nil {
		if isUniqueViolation(err) {
			return r.FindByUserID(ctx, userID)
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) Update(ctx context.Context, p *Profile) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// Directory lists visible users joined with their profiles, filtered by an
// optional username/email substring and role, ordered by username.
func (r *repository) Directory(ctx context.Context, search, role string) ([]DirectoryEntry, error) {
	q := r.db.WithContext(ctx).
		Table("profiles").
		Select("profiles.user_id as user_id, users.username as username, users.email as email, profiles.role as role, profiles.bio as bio").
		Joins("JOIN users ON users.id = profiles.user_id").
		Where("profiles.show_profile = ?", true)

	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(users.username) LIKE ? OR LOWER(users.email) LIKE ?", like, like)
	}
	if role != "" {
		q = q.Where("profiles.role = ?", role)
	}

	var entries []DirectoryEntry
	err := q.Order("users.username ASC").Scan(&entries).Error
	return entries, err
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if err == gorm.ErrDuplicatedKey {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}
