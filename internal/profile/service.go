package profile

import (
	"context"

	"github.com/gigstage/gigstage-backend/internal/apperr"
	"gorm.io/gorm"
)

type Service interface {
	GetProfile(ctx context.Context, userID uint) (*Profile, error)
	EnsureProfile(ctx context.Context, userID uint) (*Profile, error)
	UpdateBio(ctx context.Context, userID uint, bio string) (*Profile, error)
	UpdateSettings(ctx context.Context, userID uint, in SettingsInput) (*Profile, error)
	Directory(ctx context.Context, search, role string) ([]DirectoryEntry, error)
}

type service struct {
	repo        Repository
	defaultRole string
}

func NewService(r Repository, defaultRole string) Service {
	if !ValidRole(defaultRole) {
		defaultRole = RolePerformer
	}
	return &service{repo: r, defaultRole: defaultRole}
}

func (s *service) GetProfile(ctx context.Context, userID uint) (*Profile, error) {
	p, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.NotFound("profile not found")
		}
		return nil, err
	}
	return p, nil
}

// EnsureProfile returns the user's profile, creating one with the configured
// fallback role when a row is missing. Safe under concurrent callers.
func (s *service) EnsureProfile(ctx context.Context, userID uint) (*Profile, error) {
	return s.repo.FirstOrCreate(ctx, userID, s.defaultRole)
}

func (s *service) UpdateBio(ctx context.Context, userID uint, bio string) (*Profile, error) {
	p, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	p.Bio = bio
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

type SettingsInput struct {
	EmailNotifications *bool
	ApplicationUpdates *bool
	ShowProfile        *bool
}

func (s *service) UpdateSettings(ctx context.Context, userID uint, in SettingsInput) (*Profile, error) {
	p, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if in.EmailNotifications != nil {
		p.EmailNotifications = *in.EmailNotifications
	}
	if in.ApplicationUpdates != nil {
		p.ApplicationUpdates = *in.ApplicationUpdates
	}
	if in.ShowProfile != nil {
		p.ShowProfile = *in.ShowProfile
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Directory(ctx context.Context, search, role string) ([]DirectoryEntry, error) {
	if role != "" && !ValidRole(role) {
		return nil, apperr.Validation("invalid role filter")
	}
	return s.repo.Directory(ctx, search, role)
}
