package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/colloq/colloq/internal/app/models"
	"github.com/colloq/colloq/internal/app/models/dto"
	"github.com/colloq/colloq/internal/pkg/apperrors"
)

// FacultyStore is the slice of faculty storage the hierarchy service needs
type FacultyStore interface {
	CreateFaculty(ctx context.Context, f *models.Faculty) (int64, error)
	GetFacultyByID(ctx context.Context, id int64) (*models.Faculty, error)
	ListApprovedByUniversity(ctx context.Context, universityID int64) ([]*models.Faculty, error)
}

// FieldStore is the slice of field-of-study storage the hierarchy service needs
type FieldStore interface {
	CreateField(ctx context.Context, f *models.FieldOfStudy) (int64, error)
	GetFieldByID(ctx context.Context, id int64) (*models.FieldOfStudy, error)
	ListApprovedByFaculty(ctx context.Context, facultyID int64) ([]*models.FieldOfStudy, error)
}

// SubjectStore is the slice of subject storage the hierarchy service needs
type SubjectStore interface {
	CreateSubject(ctx context.Context, s *models.Subject) (int64, error)
	ListApprovedByField(ctx context.Context, fieldID int64) ([]*models.Subject, error)
}

// HierarchyService maintains the university → faculty → field → subject tree.
// Children can only be attached to approved parents, and read paths only
// expose approved nodes.
type HierarchyService interface {
	ListFaculties(ctx context.Context, universityID int64) ([]*models.Faculty, error)
	SubmitFaculty(ctx context.Context, req dto.CreateFacultyRequest, submitterID int64) (*models.Faculty, error)
	ListFields(ctx context.Context, facultyID int64) ([]*models.FieldOfStudy, error)
	SubmitField(ctx context.Context, req dto.CreateFieldOfStudyRequest, submitterID int64) (*models.FieldOfStudy, error)
	ListSubjects(ctx context.Context, fieldID int64) ([]*models.Subject, error)
	SubmitSubject(ctx context.Context, req dto.CreateSubjectRequest, submitterID int64) (*models.Subject, error)
}

// hierarchyServiceImpl implements the HierarchyService interface
type hierarchyServiceImpl struct {
	universityRepo UniversityLookup
	facultyRepo    FacultyStore
	fieldRepo      FieldStore
	subjectRepo    SubjectStore
	logger         zerolog.Logger
}

// NewHierarchyService creates a new hierarchy service instance
func NewHierarchyService(
	universityRepo UniversityLookup,
	facultyRepo FacultyStore,
	fieldRepo FieldStore,
	subjectRepo SubjectStore,
	logger zerolog.Logger,
) HierarchyService {
	return &hierarchyServiceImpl{
		universityRepo: universityRepo,
		facultyRepo:    facultyRepo,
		fieldRepo:      fieldRepo,
		subjectRepo:    subjectRepo,
		logger:         logger,
	}
}

// requireApprovedUniversity checks that the parent university exists and is
// approved before a child may attach to it.
func (s *hierarchyServiceImpl) requireApprovedUniversity(ctx context.Context, id int64) error {
	u, err := s.universityRepo.GetUniversityByID(ctx, id)
	if err != nil {
		return err
	}
	if !u.IsApproved {
		return apperrors.ErrParentNotApproved
	}
	return nil
}

// ListFaculties returns the approved faculties of an approved university
func (s *hierarchyServiceImpl) ListFaculties(ctx context.Context, universityID int64) ([]*models.Faculty, error) {
	if err := s.requireApprovedUniversity(ctx, universityID); err != nil {
		if errors.Is(err, apperrors.ErrParentNotApproved) {
			return nil, apperrors.ErrUniversityNotFound
		}
		return nil, err
	}
	return s.facultyRepo.ListApprovedByUniversity(ctx, universityID)
}

// SubmitFaculty creates an unapproved faculty proposal under an approved university
func (s *hierarchyServiceImpl) SubmitFaculty(ctx context.Context, req dto.CreateFacultyRequest, submitterID int64) (*models.Faculty, error) {
	if err := s.requireApprovedUniversity(ctx, req.UniversityID); err != nil {
		return nil, err
	}

	f := &models.Faculty{
		Name:          strings.TrimSpace(req.Name),
		Description:   req.Description,
		UniversityID:  req.UniversityID,
		IsApproved:    false,
		SubmittedByID: &submitterID,
	}
	id, err := s.facultyRepo.CreateFaculty(ctx, f)
	if err != nil {
		return nil, err
	}
	f.ID = id

	s.logger.Info().Int64("facultyID", id).Int64("universityID", req.UniversityID).Msg("Faculty proposal submitted")
	return f, nil
}

// ListFields returns the approved fields of an approved faculty
func (s *hierarchyServiceImpl) ListFields(ctx context.Context, facultyID int64) ([]*models.FieldOfStudy, error) {
	faculty, err := s.facultyRepo.GetFacultyByID(ctx, facultyID)
	if err != nil {
		return nil, err
	}
	if !faculty.IsApproved {
		return nil, apperrors.ErrFacultyNotFound
	}
	return s.fieldRepo.ListApprovedByFaculty(ctx, facultyID)
}

// SubmitField creates an unapproved field proposal under an approved faculty.
// The legacy university shortcut on the field is filled from the owning faculty.
func (s *hierarchyServiceImpl) SubmitField(ctx context.Context, req dto.CreateFieldOfStudyRequest, submitterID int64) (*models.FieldOfStudy, error) {
	faculty, err := s.facultyRepo.GetFacultyByID(ctx, req.FacultyID)
	if err != nil {
		return nil, err
	}
	if !faculty.IsApproved {
		return nil, apperrors.ErrParentNotApproved
	}

	f := &models.FieldOfStudy{
		Name:          strings.TrimSpace(req.Name),
		DegreeLevel:   req.DegreeLevel,
		FacultyID:     req.FacultyID,
		UniversityID:  &faculty.UniversityID,
		IsApproved:    false,
		SubmittedByID: &submitterID,
	}
	id, err := s.fieldRepo.CreateField(ctx, f)
	if err != nil {
		return nil, err
	}
	f.ID = id

	s.logger.Info().Int64("fieldID", id).Int64("facultyID", req.FacultyID).Msg("Field of study proposal submitted")
	return f, nil
}

// ListSubjects returns the approved subjects of an approved field
func (s *hierarchyServiceImpl) ListSubjects(ctx context.Context, fieldID int64) ([]*models.Subject, error) {
	field, err := s.fieldRepo.GetFieldByID(ctx, fieldID)
	if err != nil {
		return nil, err
	}
	if !field.IsApproved {
		return nil, apperrors.ErrFieldNotFound
	}
	return s.subjectRepo.ListApprovedByField(ctx, fieldID)
}

// SubmitSubject creates an unapproved subject proposal under an approved field
func (s *hierarchyServiceImpl) SubmitSubject(ctx context.Context, req dto.CreateSubjectRequest, submitterID int64) (*models.Subject, error) {
	field, err := s.fieldRepo.GetFieldByID(ctx, req.FieldOfStudyID)
	if err != nil {
		return nil, err
	}
	if !field.IsApproved {
		return nil, apperrors.ErrParentNotApproved
	}

	subject := &models.Subject{
		Name:           strings.TrimSpace(req.Name),
		Semester:       req.Semester,
		FieldOfStudyID: req.FieldOfStudyID,
		IsApproved:     false,
		SubmittedByID:  &submitterID,
	}
	id, err := s.subjectRepo.CreateSubject(ctx, subject)
	if err != nil {
		return nil, err
	}
	subject.ID = id

	s.logger.Info().Int64("subjectID", id).Int64("fieldID", req.FieldOfStudyID).Msg("Subject proposal submitted")
	return subject, nil
}
