package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Dosada05/torvix-arena/models"
	"github.com/Dosada05/torvix-arena/repositories"
	"github.com/Dosada05/torvix-arena/session"
	"github.com/Dosada05/torvix-arena/storage"
	"github.com/Dosada05/torvix-arena/utils"
)

const (
	defaultBio   = "Gamer"
	maxNameLen   = 50
	maxBioLen    = 500
	maxAvatarLen = 2048
)

type UserService interface {
	// Login returns the user for email, creating it on first sight.
	Login(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdateProfile(ctx context.Context, sess *session.Session, input UpdateProfileInput) (*models.User, error)
	UploadAvatar(ctx context.Context, sess *session.Session, contentType string, file io.Reader) (*models.User, error)
}

type UpdateProfileInput struct {
	Name   *string `json:"name"`
	Bio    *string `json:"bio"`
	Avatar *string `json:"avatar"`
}

type userService struct {
	gateway  repositories.Gateway
	uploader storage.FileUploader
	logger   *slog.Logger
	now      func() time.Time
}

// NewUserService accepts a nil uploader; avatar uploads are then rejected.
func NewUserService(gateway repositories.Gateway, uploader storage.FileUploader, logger *slog.Logger) UserService {
	return &userService{gateway: gateway, uploader: uploader, logger: logger, now: time.Now}
}

// NormalizeEmail trims surrounding whitespace and lower-cases the address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// DeriveUserID maps an email to the stable user id: normalized, every "." replaced by "_".
func DeriveUserID(email string) string {
	return strings.ReplaceAll(NormalizeEmail(email), ".", "_")
}

func (s *userService) Login(ctx context.Context, email string) (*models.User, error) {
	email = NormalizeEmail(email)
	if !utils.IsValidEmail(email) {
		return nil, &ValidationError{Fields: map[string]string{"email": "must be a valid email address"}}
	}
	id := DeriveUserID(email)

	existing, err := s.gateway.GetUser(ctx, id)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to load user %s: %w", id, err)
	}

	user := &models.User{
		ID:       id,
		Email:    email,
		Name:     email[:strings.Index(email, "@")],
		Bio:      defaultBio,
		Avatar:   "",
		JoinedAt: s.now().UTC(),
	}
	if err := s.gateway.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user %s: %w", id, err)
	}
	s.logger.Info("new user registered", slog.String("user_id", id))
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.gateway.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user %s: %w", id, err)
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, sess *session.Session, input UpdateProfileInput) (*models.User, error) {
	if !sess.Active() {
		return nil, nil
	}

	var v validator
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		input.Name = &name
		v.check(name != "", "name", "must not be empty")
		v.check(utf8.RuneCountInString(name) <= maxNameLen, "name", fmt.Sprintf("must be at most %d characters", maxNameLen))
	}
	if input.Bio != nil {
		v.check(utf8.RuneCountInString(*input.Bio) <= maxBioLen, "bio", fmt.Sprintf("must be at most %d characters", maxBioLen))
	}
	if input.Avatar != nil {
		v.check(len(*input.Avatar) <= maxAvatarLen, "avatar", "is too long")
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	user, err := s.GetByID(ctx, sess.UserID())
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.Avatar != nil {
		user.Avatar = *input.Avatar
	}
	if err := s.gateway.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save user %s: %w", user.ID, err)
	}
	return user, nil
}

func (s *userService) UploadAvatar(ctx context.Context, sess *session.Session, contentType string, file io.Reader) (*models.User, error) {
	if !sess.Active() {
		return nil, nil
	}
	if s.uploader == nil {
		return nil, ErrAvatarStorageDisabled
	}
	ext, err := utils.GetExtensionFromContentType(contentType)
	if err != nil {
		return nil, &ValidationError{Fields: map[string]string{"avatar": err.Error()}}
	}

	user, err := s.GetByID(ctx, sess.UserID())
	if err != nil {
		return nil, err
	}

	key := storage.AvatarKey(user.Name, ext)
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload avatar for %s: %w", user.ID, err)
	}

	user.Avatar = result.Location
	if err := s.gateway.SaveUser(ctx, user); err != nil {
		if delErr := s.uploader.Delete(ctx, key); delErr != nil {
			s.logger.Warn("failed to remove orphaned avatar", slog.String("key", key), slog.Any("error", delErr))
		}
		return nil, fmt.Errorf("failed to save avatar for %s: %w", user.ID, err)
	}
	return user, nil
}
