package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/colloq/colloq/internal/app/models"
	"github.com/colloq/colloq/internal/app/models/dto"
	"github.com/colloq/colloq/internal/app/repositories"
	"github.com/colloq/colloq/internal/pkg/apperrors"
)

// approvalStore is the pair of moderation transitions every moderated kind
// supports: approve makes the entity visible, delete removes it together
// with its descendants.
type approvalStore interface {
	Approve(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

// imageRequestModerator settles image-replacement requests
type imageRequestModerator interface {
	ListPending(ctx context.Context) ([]*models.UniversityImageRequest, error)
	Approve(ctx context.Context, id int64) error
	Reject(ctx context.Context, id int64) error
}

// pendingListers collects the per-kind pending queries for the aggregate view
type pendingListers struct {
	universities interface {
		ListPending(ctx context.Context) ([]*models.University, error)
	}
	faculties interface {
		ListPending(ctx context.Context) ([]*models.Faculty, error)
	}
	fields interface {
		ListPending(ctx context.Context) ([]*models.FieldOfStudy, error)
	}
	subjects interface {
		ListPending(ctx context.Context) ([]*models.Subject, error)
	}
	notes interface {
		ListPending(ctx context.Context) ([]*models.Note, error)
	}
}

// ModerationService gates community submissions behind admin approval. The
// admin role check itself lives in the routing middleware; every method here
// assumes the caller is already authorized.
type ModerationService interface {
	ListPending(ctx context.Context) (*dto.PendingItemsResponse, error)
	Approve(ctx context.Context, kind models.ModeratedKind, id int64) error
	Reject(ctx context.Context, kind models.ModeratedKind, id int64) error
	ApproveImageRequest(ctx context.Context, id int64) error
	RejectImageRequest(ctx context.Context, id int64) error
}

// moderationServiceImpl implements the ModerationService interface
type moderationServiceImpl struct {
	stores        map[models.ModeratedKind]approvalStore
	listers       pendingListers
	imageRequests imageRequestModerator
	logger        zerolog.Logger
}

// NewModerationService creates a new moderation service instance. The kind
// dispatch table is built once here, so an unknown kind can only come from a
// ParseModeratedKind bypass and is reported as such.
func NewModerationService(repos *repositories.Repositories, logger zerolog.Logger) ModerationService {
	return &moderationServiceImpl{
		stores: map[models.ModeratedKind]approvalStore{
			models.KindUniversity:   repos.UniversityRepository,
			models.KindFaculty:      repos.FacultyRepository,
			models.KindFieldOfStudy: repos.FieldRepository,
			models.KindSubject:      repos.SubjectRepository,
			models.KindNote:         repos.NoteRepository,
		},
		listers: pendingListers{
			universities: repos.UniversityRepository,
			faculties:    repos.FacultyRepository,
			fields:       repos.FieldRepository,
			subjects:     repos.SubjectRepository,
			notes:        repos.NoteRepository,
		},
		imageRequests: repos.ImageRequestRepository,
		logger:        logger,
	}
}

// store resolves the dispatch table; the kind is validated upstream so a miss
// is a programming error surfaced as ErrUnknownModeratedKind.
func (s *moderationServiceImpl) store(kind models.ModeratedKind) (approvalStore, error) {
	if st, ok := s.stores[kind]; ok {
		return st, nil
	}
	return nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownModeratedKind, string(kind))
}

// ListPending aggregates every unapproved entity across all moderated kinds
// plus pending image-replacement requests.
func (s *moderationServiceImpl) ListPending(ctx context.Context) (*dto.PendingItemsResponse, error) {
	universities, err := s.listers.universities.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	faculties, err := s.listers.faculties.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	fields, err := s.listers.fields.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	subjects, err := s.listers.subjects.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	notes, err := s.listers.notes.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	imageRequests, err := s.imageRequests.ListPending(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.PendingItemsResponse{
		Universities:  dto.NewUniversityResponses(universities),
		Faculties:     dto.NewFacultyResponses(faculties),
		Fields:        dto.NewFieldOfStudyResponses(fields),
		Subjects:      dto.NewSubjectResponses(subjects),
		Notes:         make([]dto.NoteResponse, 0, len(notes)),
		ImageRequests: make([]dto.ImageRequestResponse, 0, len(imageRequests)),
	}
	for _, n := range notes {
		resp.Notes = append(resp.Notes, dto.NewNoteResponse(n, ""))
	}
	for _, r := range imageRequests {
		resp.ImageRequests = append(resp.ImageRequests, dto.NewImageRequestResponse(r))
	}
	return resp, nil
}

// Approve makes an entity visible. Re-approving is a no-op; a missing id is
// a not-found error.
func (s *moderationServiceImpl) Approve(ctx context.Context, kind models.ModeratedKind, id int64) error {
	st, err := s.store(kind)
	if err != nil {
		return err
	}
	if err := st.Approve(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("kind", string(kind)).Int64("id", id).Msg("Entity approved")
	return nil
}

// Reject hard-deletes an entity; descendants and engagement records cascade
func (s *moderationServiceImpl) Reject(ctx context.Context, kind models.ModeratedKind, id int64) error {
	st, err := s.store(kind)
	if err != nil {
		return err
	}
	if err := st.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("kind", string(kind)).Int64("id", id).Msg("Entity rejected")
	return nil
}

// ApproveImageRequest copies the proposed image onto the university and
// settles the request.
func (s *moderationServiceImpl) ApproveImageRequest(ctx context.Context, id int64) error {
	if err := s.imageRequests.Approve(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("imageRequestID", id).Msg("Image request approved")
	return nil
}

// RejectImageRequest settles the request without touching the university
func (s *moderationServiceImpl) RejectImageRequest(ctx context.Context, id int64) error {
	if err := s.imageRequests.Reject(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("imageRequestID", id).Msg("Image request rejected")
	return nil
}
