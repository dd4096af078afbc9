package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gigstage/gigstage-backend/config"
	"github.com/gigstage/gigstage-backend/internal/apperr"
	"github.com/gigstage/gigstage-backend/internal/profile"
	"github.com/gigstage/gigstage-backend/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type Service interface {
	Register(ctx context.Context, input RegisterInput) (*User, error)
	Login(ctx context.Context, input LoginInput) (*TokenPair, *User, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	GetUserByID(ctx context.Context, userID uint) (*User, error)
	UpdateAccount(ctx context.Context, userID uint, input UpdateAccountInput) (*User, error)

	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token string, newPassword string) error
}

type service struct {
	repo          Repository
	defaultRole   string
	accessSecret  string
	refreshSecret string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewService(r Repository, cfg *config.Config) Service {
	return &service{
		repo:          r,
		defaultRole:   cfg.DefaultRole,
		accessSecret:  cfg.JWTAccessSecret,
		refreshSecret: cfg.JWTRefreshSecret,
		accessTTL:     time.Duration(cfg.JWTAccessTTLHours) * time.Hour,
		refreshTTL:    time.Duration(cfg.JWTRefreshTTLHours) * time.Hour,
	}
}

// =============================
// Register
// =============================

type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     string
	Bio      string
}

// Register creates the user and its profile in one transaction, so a user
// row never exists without exactly one profile row. The role is passed in
// directly; when absent it falls back to the configured default.
func (s *service) Register(ctx context.Context, in RegisterInput) (*User, error) {
	role := strings.ToLower(strings.TrimSpace(in.Role))
	if role == "" {
		role = s.defaultRole
	}
	if !profile.ValidRole(role) {
		return nil, apperr.Validation("invalid role")
	}

	if _, err := s.repo.FindByUsername(ctx, in.Username); err == nil {
		return nil, apperr.Conflict("username already taken")
	}
	if _, err := s.repo.FindByEmail(ctx, in.Email); err == nil {
		return nil, apperr.Conflict("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &User{
		Username:     in.Username,
		Email:        strings.ToLower(in.Email),
		PasswordHash: string(hash),
	}

	err = s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		p := &profile.Profile{
			UserID:             user.ID,
			Role:               role,
			Bio:                in.Bio,
			EmailNotifications: true,
			ApplicationUpdates: true,
			ShowProfile:        true,
		}
		return tx.Create(p).Error
	})
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") ||
			strings.Contains(strings.ToLower(err.Error()), "duplicate") {
			return nil, apperr.Conflict("username or email already registered")
		}
		return nil, err
	}

	return user, nil
}

// =============================
// Login
// =============================

type LoginInput struct {
	Email    string
	Password string
}

func (s *service) Login(ctx context.Context, in LoginInput) (*TokenPair, *User, error) {
	user, err := s.repo.FindByEmail(ctx, strings.ToLower(in.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, errors.New("invalid credentials")
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, nil, errors.New("invalid credentials")
	}

	accessToken, err := s.generateToken(user, s.accessSecret, s.accessTTL)
	if err != nil {
		return nil, nil, err
	}
	refreshToken, err := s.generateToken(user, s.refreshSecret, s.refreshTTL)
	if err != nil {
		return nil, nil, err
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, user, nil
}

func (s *service) generateToken(user *User, secret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"exp":     time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// =============================
// Refresh
// =============================

func (s *service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.refreshSecret), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid refresh token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["user_id"] == nil {
		return "", errors.New("invalid token claims")
	}

	userID := uint(claims["user_id"].(float64))
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return "", errors.New("user not found")
	}

	return s.generateToken(user, s.accessSecret, s.accessTTL)
}

// =============================
// Account Update
// =============================

type UpdateAccountInput struct {
	Username string
	Email    string
}

func (s *service) UpdateAccount(ctx context.Context, userID uint, in UpdateAccountInput) (*User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, apperr.NotFound("user not found")
	}

	if in.Username != "" && in.Username != user.Username {
		if existing, err := s.repo.FindByUsername(ctx, in.Username); err == nil && existing.ID != userID {
			return nil, apperr.Conflict("username already taken")
		}
		user.Username = in.Username
	}
	if in.Email != "" && strings.ToLower(in.Email) != user.Email {
		if existing, err := s.repo.FindByEmail(ctx, strings.ToLower(in.Email)); err == nil && existing.ID != userID {
			return nil, apperr.Conflict("email already registered")
		}
		user.Email = strings.ToLower(in.Email)
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// =============================
// Forgot Password
// =============================

func (s *service) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.repo.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return apperr.NotFound("user not found")
	}

	resetToken := uuid.NewString()
	key := fmt.Sprintf("reset_token:%s", resetToken)

	if err := utils.SetToken(key, fmt.Sprint(user.ID), 15*time.Minute); err != nil {
		return errors.New("could not save reset token")
	}

	if err := utils.SendResetLink(user.Email, resetToken); err != nil {
		return errors.New("failed to send email")
	}

	return nil
}

func (s *service) ResetPassword(ctx context.Context, token string, newPassword string) error {
	key := fmt.Sprintf("reset_token:%s", token)
	val, err := utils.GetToken(key)
	if err != nil {
		return errors.New("invalid or expired token")
	}

	var userID uint
	if _, err := fmt.Sscan(val, &userID); err != nil {
		return errors.New("invalid token data")
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return apperr.NotFound("user not found")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.PasswordHash = string(hash)
	if err := s.repo.Update(ctx, user); err != nil {
		return errors.New("failed to update password")
	}

	_ = utils.DeleteToken(key)

	return nil
}

// =============================
// Get User By ID
// =============================

func (s *service) GetUserByID(ctx context.Context, userID uint) (*User, error) {
	return s.repo.FindByID(ctx, userID)
}
