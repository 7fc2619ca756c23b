package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/colloq/colloq/internal/app/models"
	"github.com/colloq/colloq/internal/app/models/dto"
	"github.com/colloq/colloq/internal/pkg/apperrors"
)

// UniversityStore is the slice of university storage the service needs
type UniversityStore interface {
	CreateUniversity(ctx context.Context, u *models.University) (int64, error)
	GetUniversityByID(ctx context.Context, id int64) (*models.University, error)
	ListApproved(ctx context.Context, search string) ([]*models.University, error)
}

// ReviewStore handles university reviews
type ReviewStore interface {
	CreateReview(ctx context.Context, review *models.Review) error
	ListByUniversity(ctx context.Context, universityID int64) ([]*models.Review, error)
}

// ImageRequestStore accepts image-replacement proposals
type ImageRequestStore interface {
	Create(ctx context.Context, req *models.UniversityImageRequest) (int64, error)
}

// UniversityService defines the interface for university directory operations
type UniversityService interface {
	List(ctx context.Context, search string) ([]*models.University, error)
	Get(ctx context.Context, id int64) (*models.University, error)
	Submit(ctx context.Context, req dto.CreateUniversityRequest, submitterID int64) (*models.University, error)
	ListReviews(ctx context.Context, universityID int64) ([]*models.Review, error)
	AddReview(ctx context.Context, universityID, userID int64, req dto.CreateReviewRequest) (*models.Review, error)
	RequestImage(ctx context.Context, universityID, userID int64, imageURL string) (*models.UniversityImageRequest, error)
}

// universityServiceImpl implements the UniversityService interface
type universityServiceImpl struct {
	universityRepo   UniversityStore
	reviewRepo       ReviewStore
	imageRequestRepo ImageRequestStore
	logger           zerolog.Logger
}

// NewUniversityService creates a new university service instance
func NewUniversityService(
	universityRepo UniversityStore,
	reviewRepo ReviewStore,
	imageRequestRepo ImageRequestStore,
	logger zerolog.Logger,
) UniversityService {
	return &universityServiceImpl{
		universityRepo:   universityRepo,
		reviewRepo:       reviewRepo,
		imageRequestRepo: imageRequestRepo,
		logger:           logger,
	}
}

// List returns approved universities, optionally filtered by search term
func (s *universityServiceImpl) List(ctx context.Context, search string) ([]*models.University, error) {
	return s.universityRepo.ListApproved(ctx, strings.TrimSpace(search))
}

// Get returns a single approved university. Unapproved records stay hidden
// from this public read path.
func (s *universityServiceImpl) Get(ctx context.Context, id int64) (*models.University, error) {
	u, err := s.universityRepo.GetUniversityByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !u.IsApproved {
		return nil, apperrors.ErrUniversityNotFound
	}
	return u, nil
}

// Submit creates an unapproved university proposal. Duplicate names are
// rejected regardless of the existing record's approval state.
func (s *universityServiceImpl) Submit(ctx context.Context, req dto.CreateUniversityRequest, submitterID int64) (*models.University, error) {
	u := &models.University{
		Name:          strings.TrimSpace(req.Name),
		NamePL:        req.NamePL,
		NameEN:        req.NameEN,
		City:          req.City,
		Region:        req.Region,
		Type:          req.Type,
		Description:   req.Description,
		ImageURL:      req.ImageURL,
		IsApproved:    false,
		SubmittedByID: &submitterID,
	}

	id, err := s.universityRepo.CreateUniversity(ctx, u)
	if err != nil {
		return nil, err
	}
	u.ID = id

	s.logger.Info().Int64("universityID", id).Int64("submitterID", submitterID).Msg("University proposal submitted")
	return u, nil
}

// ListReviews returns a university's reviews, newest first
func (s *universityServiceImpl) ListReviews(ctx context.Context, universityID int64) ([]*models.Review, error) {
	if _, err := s.Get(ctx, universityID); err != nil {
		return nil, err
	}
	return s.reviewRepo.ListByUniversity(ctx, universityID)
}

// AddReview appends a review to an approved university
func (s *universityServiceImpl) AddReview(ctx context.Context, universityID, userID int64, req dto.CreateReviewRequest) (*models.Review, error) {
	if _, err := s.Get(ctx, universityID); err != nil {
		return nil, err
	}

	review := &models.Review{
		UniversityID: universityID,
		UserID:       userID,
		Rating:       req.Rating,
		Content:      strings.TrimSpace(req.Content),
	}
	if err := s.reviewRepo.CreateReview(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// RequestImage files a pending image-replacement proposal for a university
func (s *universityServiceImpl) RequestImage(ctx context.Context, universityID, userID int64, imageURL string) (*models.UniversityImageRequest, error) {
	if _, err := s.Get(ctx, universityID); err != nil {
		return nil, err
	}

	req := &models.UniversityImageRequest{
		UniversityID:  universityID,
		ImageURL:      imageURL,
		Status:        models.ImageRequestPending,
		SubmittedByID: &userID,
	}
	id, err := s.imageRequestRepo.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	req.ID = id

	s.logger.Info().Int64("universityID", universityID).Int64("imageRequestID", id).Msg("Image replacement requested")
	return req, nil
}
