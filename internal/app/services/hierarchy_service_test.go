package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colloq/colloq/internal/app/models"
	"github.com/colloq/colloq/internal/app/models/dto"
	"github.com/colloq/colloq/internal/pkg/apperrors"
)

type fakeFacultyStore struct {
	faculties map[int64]*models.Faculty
	nextID    int64
	createErr error
}

func (f *fakeFacultyStore) CreateFaculty(_ context.Context, fac *models.Faculty) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.nextID++
	return f.nextID, nil
}

func (f *fakeFacultyStore) GetFacultyByID(_ context.Context, id int64) (*models.Faculty, error) {
	if fac, ok := f.faculties[id]; ok {
		return fac, nil
	}
	return nil, apperrors.ErrFacultyNotFound
}

func (f *fakeFacultyStore) ListApprovedByUniversity(_ context.Context, universityID int64) ([]*models.Faculty, error) {
	out := []*models.Faculty{}
	for _, fac := range f.faculties {
		if fac.UniversityID == universityID && fac.IsApproved {
			out = append(out, fac)
		}
	}
	return out, nil
}

type fakeFieldStore struct {
	fields map[int64]*models.FieldOfStudy
	nextID int64
	last   *models.FieldOfStudy
}

func (f *fakeFieldStore) CreateField(_ context.Context, field *models.FieldOfStudy) (int64, error) {
	f.nextID++
	f.last = field
	return f.nextID, nil
}

func (f *fakeFieldStore) GetFieldByID(_ context.Context, id int64) (*models.FieldOfStudy, error) {
	if field, ok := f.fields[id]; ok {
		return field, nil
	}
	return nil, apperrors.ErrFieldNotFound
}

func (f *fakeFieldStore) ListApprovedByFaculty(_ context.Context, facultyID int64) ([]*models.FieldOfStudy, error) {
	out := []*models.FieldOfStudy{}
	for _, field := range f.fields {
		if field.FacultyID == facultyID && field.IsApproved {
			out = append(out, field)
		}
	}
	return out, nil
}

type fakeSubjectStore struct {
	nextID int64
	last   *models.Subject
}

func (f *fakeSubjectStore) CreateSubject(_ context.Context, s *models.Subject) (int64, error) {
	f.nextID++
	f.last = s
	return f.nextID, nil
}

func (f *fakeSubjectStore) ListApprovedByField(_ context.Context, _ int64) ([]*models.Subject, error) {
	return []*models.Subject{}, nil
}

func newTestHierarchyService(unis *fakeUniversityLookup, faculties *fakeFacultyStore, fields *fakeFieldStore, subjects *fakeSubjectStore) HierarchyService {
	return NewHierarchyService(unis, faculties, fields, subjects, zerolog.Nop())
}

func TestListFaculties_UnapprovedUniversityHidden(t *testing.T) {
	svc := newTestHierarchyService(approvedUniversityLookup(), &fakeFacultyStore{}, &fakeFieldStore{}, &fakeSubjectStore{})

	// unapproved parents are indistinguishable from missing ones on reads
	_, err := svc.ListFaculties(context.Background(), 2)
	assert.ErrorIs(t, err, apperrors.ErrUniversityNotFound)
}

func TestSubmitFaculty_UnapprovedParent(t *testing.T) {
	svc := newTestHierarchyService(approvedUniversityLookup(), &fakeFacultyStore{}, &fakeFieldStore{}, &fakeSubjectStore{})

	req := dto.CreateFacultyRequest{UniversityID: 2, Name: "Wydział Fizyki"}
	_, err := svc.SubmitFaculty(context.Background(), req, 7)
	assert.ErrorIs(t, err, apperrors.ErrParentNotApproved)
}

func TestSubmitFaculty_Success(t *testing.T) {
	svc := newTestHierarchyService(approvedUniversityLookup(), &fakeFacultyStore{}, &fakeFieldStore{}, &fakeSubjectStore{})

	req := dto.CreateFacultyRequest{UniversityID: 1, Name: "  Wydział Fizyki  "}
	fac, err := svc.SubmitFaculty(context.Background(), req, 7)
	require.NoError(t, err)

	assert.Equal(t, int64(1), fac.ID)
	assert.Equal(t, "Wydział Fizyki", fac.Name)
	assert.False(t, fac.IsApproved)
	require.NotNil(t, fac.SubmittedByID)
	assert.Equal(t, int64(7), *fac.SubmittedByID)
}

func TestSubmitField_FillsUniversityFromFaculty(t *testing.T) {
	faculties := &fakeFacultyStore{faculties: map[int64]*models.Faculty{
		3: {ID: 3, UniversityID: 1, IsApproved: true},
	}}
	fields := &fakeFieldStore{}
	svc := newTestHierarchyService(approvedUniversityLookup(), faculties, fields, &fakeSubjectStore{})

	req := dto.CreateFieldOfStudyRequest{FacultyID: 3, Name: "Informatyka"}
	field, err := svc.SubmitField(context.Background(), req, 7)
	require.NoError(t, err)

	require.NotNil(t, field.UniversityID)
	assert.Equal(t, int64(1), *field.UniversityID)
	assert.False(t, field.IsApproved)
}

func TestSubmitField_UnapprovedFaculty(t *testing.T) {
	faculties := &fakeFacultyStore{faculties: map[int64]*models.Faculty{
		3: {ID: 3, UniversityID: 1, IsApproved: false},
	}}
	svc := newTestHierarchyService(approvedUniversityLookup(), faculties, &fakeFieldStore{}, &fakeSubjectStore{})

	req := dto.CreateFieldOfStudyRequest{FacultyID: 3, Name: "Informatyka"}
	_, err := svc.SubmitField(context.Background(), req, 7)
	assert.ErrorIs(t, err, apperrors.ErrParentNotApproved)
}

func TestSubmitSubject_UnapprovedField(t *testing.T) {
	fields := &fakeFieldStore{fields: map[int64]*models.FieldOfStudy{
		5: {ID: 5, FacultyID: 3, IsApproved: false},
	}}
	svc := newTestHierarchyService(approvedUniversityLookup(), &fakeFacultyStore{}, fields, &fakeSubjectStore{})

	req := dto.CreateSubjectRequest{FieldOfStudyID: 5, Name: "Analiza matematyczna"}
	_, err := svc.SubmitSubject(context.Background(), req, 7)
	assert.ErrorIs(t, err, apperrors.ErrParentNotApproved)
}

func TestSubmitSubject_Success(t *testing.T) {
	fields := &fakeFieldStore{fields: map[int64]*models.FieldOfStudy{
		5: {ID: 5, FacultyID: 3, IsApproved: true},
	}}
	subjects := &fakeSubjectStore{}
	svc := newTestHierarchyService(approvedUniversityLookup(), &fakeFacultyStore{}, fields, subjects)

	semester := 2
	req := dto.CreateSubjectRequest{FieldOfStudyID: 5, Name: "Analiza matematyczna", Semester: &semester}
	subject, err := svc.SubmitSubject(context.Background(), req, 7)
	require.NoError(t, err)

	assert.False(t, subject.IsApproved)
	require.NotNil(t, subject.Semester)
	assert.Equal(t, 2, *subject.Semester)
}
