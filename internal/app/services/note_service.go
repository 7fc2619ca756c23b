package services

import (
	"context"
	"mime/multipart"
	"strings"

	"github.com/rs/zerolog"

	"github.com/colloq/colloq/internal/app/models"
	"github.com/colloq/colloq/internal/app/models/dto"
	"github.com/colloq/colloq/internal/app/repositories"
	"github.com/colloq/colloq/internal/pkg/apperrors"
	"github.com/colloq/colloq/internal/pkg/filestorage"
	"github.com/colloq/colloq/internal/pkg/helpers"
)

// NoteStore is the slice of note storage the note service needs
type NoteStore interface {
	CreateNote(ctx context.Context, n *models.Note) (int64, error)
	GetNoteByID(ctx context.Context, id int64) (*models.Note, error)
	ListNotes(ctx context.Context, filter repositories.NoteFilter) ([]*models.Note, error)
	CountNotes(ctx context.Context, filter repositories.NoteFilter) (int64, error)
	ToggleVote(ctx context.Context, noteID, userID int64) (bool, int, error)
	ToggleFavorite(ctx context.Context, noteID, userID int64) (bool, error)
	CreateComment(ctx context.Context, c *models.Comment) error
	ListComments(ctx context.Context, noteID int64) ([]*models.Comment, error)
	GetAuthorNicknames(ctx context.Context, authorIDs []int64) (map[int64]string, error)
}

// SubjectLookup resolves a subject id to its record
type SubjectLookup interface {
	GetSubjectByID(ctx context.Context, id int64) (*models.Subject, error)
}

// VerifiedMarker flips a user's verified flag
type VerifiedMarker interface {
	MarkVerified(ctx context.Context, userID int64) error
}

// NoteService owns the note lifecycle and engagement toggles
type NoteService interface {
	Create(ctx context.Context, req dto.CreateNoteRequest, image *multipart.FileHeader, author *models.User) (*models.Note, error)
	Get(ctx context.Context, noteID int64, includeUnapproved bool) (dto.NoteResponse, error)
	List(ctx context.Context, universityID, subjectID int64, search string, page, size int) (*dto.PagedResponse, error)
	ToggleVote(ctx context.Context, noteID, userID int64) (dto.ToggleResponse, error)
	ToggleFavorite(ctx context.Context, noteID, userID int64) (dto.ToggleResponse, error)
	AddComment(ctx context.Context, noteID, userID int64, content string) (*models.Comment, error)
	ListComments(ctx context.Context, noteID int64) ([]*models.Comment, error)
}

// noteServiceImpl implements the NoteService interface
type noteServiceImpl struct {
	noteRepo       NoteStore
	universityRepo UniversityLookup
	subjectRepo    SubjectLookup
	userRepo       VerifiedMarker
	storage        filestorage.Storage
	logger         zerolog.Logger
}

// NewNoteService creates a new note service instance
func NewNoteService(
	noteRepo NoteStore,
	universityRepo UniversityLookup,
	subjectRepo SubjectLookup,
	userRepo VerifiedMarker,
	storage filestorage.Storage,
	logger zerolog.Logger,
) NoteService {
	return &noteServiceImpl{
		noteRepo:       noteRepo,
		universityRepo: universityRepo,
		subjectRepo:    subjectRepo,
		userRepo:       userRepo,
		storage:        storage,
		logger:         logger,
	}
}

// Create submits a note. Content or an image attachment is required; the note
// always starts unapproved with a zero score. The author's first submission
// flips their verified flag, a one-way transition.
func (s *noteServiceImpl) Create(ctx context.Context, req dto.CreateNoteRequest, image *multipart.FileHeader, author *models.User) (*models.Note, error) {
	hasContent := req.Content != nil && strings.TrimSpace(*req.Content) != ""
	if !hasContent && image == nil {
		return nil, apperrors.ErrNoteContentRequired
	}

	university, err := s.universityRepo.GetUniversityByID(ctx, req.UniversityID)
	if err != nil {
		return nil, err
	}
	if !university.IsApproved {
		return nil, apperrors.ErrParentNotApproved
	}

	if req.SubjectID != nil {
		subject, err := s.subjectRepo.GetSubjectByID(ctx, *req.SubjectID)
		if err != nil {
			return nil, err
		}
		if !subject.IsApproved {
			return nil, apperrors.ErrParentNotApproved
		}
	}

	var imageURL *string
	if image != nil {
		url, err := s.storage.SaveFile(image, "notes")
		if err != nil {
			return nil, err
		}
		imageURL = &url
	}

	note := &models.Note{
		Title:        req.Title,
		Content:      req.Content,
		ImageURL:     imageURL,
		VideoURL:     req.VideoURL,
		LinkURL:      req.LinkURL,
		Score:        0,
		IsApproved:   false,
		AuthorID:     author.ID,
		UniversityID: req.UniversityID,
		SubjectID:    req.SubjectID,
	}
	if _, err := s.noteRepo.CreateNote(ctx, note); err != nil {
		if imageURL != nil {
			if delErr := s.storage.DeleteFile(*imageURL); delErr != nil {
				s.logger.Warn().Err(delErr).Str("path", *imageURL).Msg("Failed to remove orphaned note image")
			}
		}
		return nil, err
	}

	if !author.IsVerified {
		if err := s.userRepo.MarkVerified(ctx, author.ID); err != nil {
			s.logger.Error().Err(err).Int64("userID", author.ID).Msg("Failed to mark user verified")
		}
	}

	s.logger.Info().Int64("noteID", note.ID).Int64("authorID", author.ID).Msg("Note submitted")
	return note, nil
}

// Get returns a single note. Unapproved notes are hidden unless the caller
// may see pending content.
func (s *noteServiceImpl) Get(ctx context.Context, noteID int64, includeUnapproved bool) (dto.NoteResponse, error) {
	note, err := s.noteRepo.GetNoteByID(ctx, noteID)
	if err != nil {
		return dto.NoteResponse{}, err
	}
	if !note.IsApproved && !includeUnapproved {
		return dto.NoteResponse{}, apperrors.ErrNoteNotFound
	}

	nicknames, err := s.noteRepo.GetAuthorNicknames(ctx, []int64{note.AuthorID})
	if err != nil {
		return dto.NoteResponse{}, err
	}
	return dto.NewNoteResponse(note, nicknames[note.AuthorID]), nil
}

// List returns a page of approved notes matching the filters, best scored
// first, with author nicknames attached.
func (s *noteServiceImpl) List(ctx context.Context, universityID, subjectID int64, search string, page, size int) (*dto.PagedResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)
	filter := repositories.NoteFilter{
		UniversityID: universityID,
		SubjectID:    subjectID,
		Search:       strings.TrimSpace(search),
		ApprovedOnly: true,
		Offset:       offset,
		Limit:        limit,
	}

	notes, err := s.noteRepo.ListNotes(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.noteRepo.CountNotes(ctx, filter)
	if err != nil {
		return nil, err
	}

	authorIDs := make([]int64, 0, len(notes))
	seen := make(map[int64]bool, len(notes))
	for _, n := range notes {
		if !seen[n.AuthorID] {
			seen[n.AuthorID] = true
			authorIDs = append(authorIDs, n.AuthorID)
		}
	}
	nicknames, err := s.noteRepo.GetAuthorNicknames(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.NoteResponse, 0, len(notes))
	for _, n := range notes {
		responses = append(responses, dto.NewNoteResponse(n, nicknames[n.AuthorID]))
	}
	return &dto.PagedResponse{
		Items:      responses,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}, nil
}

// ToggleVote flips the caller's vote on a note and reports the new state
func (s *noteServiceImpl) ToggleVote(ctx context.Context, noteID, userID int64) (dto.ToggleResponse, error) {
	if _, err := s.noteRepo.GetNoteByID(ctx, noteID); err != nil {
		return dto.ToggleResponse{}, err
	}

	active, score, err := s.noteRepo.ToggleVote(ctx, noteID, userID)
	if err != nil {
		return dto.ToggleResponse{}, err
	}
	return dto.ToggleResponse{Active: active, Score: score}, nil
}

// ToggleFavorite flips the caller's favorite on a note
func (s *noteServiceImpl) ToggleFavorite(ctx context.Context, noteID, userID int64) (dto.ToggleResponse, error) {
	note, err := s.noteRepo.GetNoteByID(ctx, noteID)
	if err != nil {
		return dto.ToggleResponse{}, err
	}

	active, err := s.noteRepo.ToggleFavorite(ctx, noteID, userID)
	if err != nil {
		return dto.ToggleResponse{}, err
	}
	return dto.ToggleResponse{Active: active, Score: note.Score}, nil
}

// AddComment appends a comment to an existing note
func (s *noteServiceImpl) AddComment(ctx context.Context, noteID, userID int64, content string) (*models.Comment, error) {
	if _, err := s.noteRepo.GetNoteByID(ctx, noteID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		NoteID:  noteID,
		UserID:  userID,
		Content: strings.TrimSpace(content),
	}
	if err := s.noteRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListComments returns a note's comments oldest first
func (s *noteServiceImpl) ListComments(ctx context.Context, noteID int64) ([]*models.Comment, error) {
	if _, err := s.noteRepo.GetNoteByID(ctx, noteID); err != nil {
		return nil, err
	}
	return s.noteRepo.ListComments(ctx, noteID)
}
