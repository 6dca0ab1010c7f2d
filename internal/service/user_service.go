package service

import (
	"context"
	"net/url"
	"strings"

	"quorum/internal/models"
	"quorum/internal/repository"
)

type UserService struct {
	userRepo     repository.UserRepository
	activityRepo repository.ActivityRepository
}

type UpdateProfileInput struct {
	UserID      uint
	DisplayName string
	Bio         string
	AvatarURL   string
	Website     string
}

func NewUserService(
	userRepo repository.UserRepository,
	activityRepo repository.ActivityRepository,
) *UserService {
	return &UserService{
		userRepo:     userRepo,
		activityRepo: activityRepo,
	}
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GetProfile returns the user's profile, or an empty one when nothing has
// been saved yet.
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*models.UserProfile, error) {
	profile, err := s.userRepo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return &models.UserProfile{UserID: userID}, nil
	}
	return profile, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.UserProfile, error) {
	const maxDisplayNameLen = 100
	const maxBioLen = 1000

	displayName := strings.TrimSpace(in.DisplayName)
	if len(displayName) > maxDisplayNameLen {
		return nil, models.NewValidationError("Display name too long (max 100 characters)")
	}
	if len(in.Bio) > maxBioLen {
		return nil, models.NewValidationError("Bio too long (max 1000 characters)")
	}
	if in.Website != "" {
		if _, err := url.ParseRequestURI(in.Website); err != nil {
			return nil, models.NewValidationError("Website must be a valid URL")
		}
	}

	profile, err := s.userRepo.GetProfile(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		profile = &models.UserProfile{UserID: in.UserID}
	}

	profile.DisplayName = displayName
	profile.Bio = in.Bio
	profile.AvatarURL = in.AvatarURL
	profile.Website = in.Website

	if err := s.userRepo.SaveProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *UserService) ListActivity(ctx context.Context, userID uint, limit, offset int) ([]models.UserActivity, error) {
	return s.activityRepo.ListByUser(ctx, userID, limit, offset)
}
