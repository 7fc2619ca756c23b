package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/colloq/colloq/internal/app/models"
	"github.com/colloq/colloq/internal/app/models/dto"
)

// UserStore is the slice of user storage the user service needs
type UserStore interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	UpdateProfile(ctx context.Context, user *models.User) error
}

// FavoriteLister returns a user's favorited notes
type FavoriteLister interface {
	ListFavoritesByUser(ctx context.Context, userID int64) ([]*models.Note, error)
}

// UserService defines the interface for profile operations
type UserService interface {
	GetProfile(ctx context.Context, userID int64) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int64, req dto.UpdateProfileRequest) (*models.User, error)
	ListFavorites(ctx context.Context, userID int64) ([]*models.Note, error)
}

// userServiceImpl implements the UserService interface
type userServiceImpl struct {
	userRepo       UserStore
	universityRepo UniversityLookup
	noteRepo       FavoriteLister
	logger         zerolog.Logger
}

// NewUserService creates a new user service instance
func NewUserService(userRepo UserStore, universityRepo UniversityLookup, noteRepo FavoriteLister, logger zerolog.Logger) UserService {
	return &userServiceImpl{
		userRepo:       userRepo,
		universityRepo: universityRepo,
		noteRepo:       noteRepo,
		logger:         logger,
	}
}

// GetProfile returns the user's own record
func (s *userServiceImpl) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	return s.userRepo.GetUserByID(ctx, userID)
}

// UpdateProfile applies the provided fields to the user's profile. Fields
// left nil keep their current value.
func (s *userServiceImpl) UpdateProfile(ctx context.Context, userID int64, req dto.UpdateProfileRequest) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Nickname != nil {
		user.Nickname = strings.TrimSpace(*req.Nickname)
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}
	if req.AvatarURL != nil {
		user.AvatarURL = req.AvatarURL
	}
	if req.UniversityID != nil {
		if _, err := s.universityRepo.GetUniversityByID(ctx, *req.UniversityID); err != nil {
			return nil, err
		}
		user.UniversityID = req.UniversityID
	}

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", userID).Msg("Profile updated")
	return user, nil
}

// ListFavorites returns the approved notes the user has favorited
func (s *userServiceImpl) ListFavorites(ctx context.Context, userID int64) ([]*models.Note, error) {
	return s.noteRepo.ListFavoritesByUser(ctx, userID)
}
