package dto

import (
	"time"

	"github.com/colloq/colloq/internal/app/models"
)

// FacultyResponse represents a faculty in API responses
type FacultyResponse struct {
	ID           int64     `json:"id" example:"2"`
	Name         string    `json:"name" example:"Wydział Matematyki, Informatyki i Mechaniki"`
	Description  *string   `json:"description,omitempty"`
	ImageURL     *string   `json:"imageUrl,omitempty"`
	UniversityID int64     `json:"universityId" example:"1"`
	IsApproved   bool      `json:"isApproved" example:"true"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewFacultyResponse maps a faculty model to its response representation
func NewFacultyResponse(f *models.Faculty) FacultyResponse {
	return FacultyResponse{
		ID:           f.ID,
		Name:         f.Name,
		Description:  f.Description,
		ImageURL:     f.ImageURL,
		UniversityID: f.UniversityID,
		IsApproved:   f.IsApproved,
		CreatedAt:    f.CreatedAt,
	}
}

// NewFacultyResponses maps a slice of faculty models
func NewFacultyResponses(faculties []*models.Faculty) []FacultyResponse {
	out := make([]FacultyResponse, 0, len(faculties))
	for _, f := range faculties {
		out = append(out, NewFacultyResponse(f))
	}
	return out
}

// CreateFacultyRequest represents a community-submitted faculty proposal
type CreateFacultyRequest struct {
	UniversityID int64   `json:"universityId" binding:"required,min=1"`
	Name         string  `json:"name" binding:"required,min=2,max=200"`
	Description  *string `json:"description" binding:"omitempty,max=2000"`
}

// FieldOfStudyResponse represents a field of study in API responses
type FieldOfStudyResponse struct {
	ID           int64     `json:"id" example:"4"`
	Name         string    `json:"name" example:"Informatyka"`
	DegreeLevel  *string   `json:"degreeLevel,omitempty" example:"bachelor"`
	FacultyID    int64     `json:"facultyId" example:"2"`
	UniversityID *int64    `json:"universityId,omitempty" example:"1"`
	IsApproved   bool      `json:"isApproved" example:"true"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewFieldOfStudyResponse maps a field model to its response representation
func NewFieldOfStudyResponse(f *models.FieldOfStudy) FieldOfStudyResponse {
	return FieldOfStudyResponse{
		ID:           f.ID,
		Name:         f.Name,
		DegreeLevel:  f.DegreeLevel,
		FacultyID:    f.FacultyID,
		UniversityID: f.UniversityID,
		IsApproved:   f.IsApproved,
		CreatedAt:    f.CreatedAt,
	}
}

// NewFieldOfStudyResponses maps a slice of field models
func NewFieldOfStudyResponses(fields []*models.FieldOfStudy) []FieldOfStudyResponse {
	out := make([]FieldOfStudyResponse, 0, len(fields))
	for _, f := range fields {
		out = append(out, NewFieldOfStudyResponse(f))
	}
	return out
}

// CreateFieldOfStudyRequest represents a community-submitted field proposal
type CreateFieldOfStudyRequest struct {
	FacultyID   int64   `json:"facultyId" binding:"required,min=1"`
	Name        string  `json:"name" binding:"required,min=2,max=200"`
	DegreeLevel *string `json:"degreeLevel" binding:"omitempty,oneof=bachelor master uniform_master doctoral"`
}

// SubjectResponse represents a subject in API responses
type SubjectResponse struct {
	ID             int64     `json:"id" example:"9"`
	Name           string    `json:"name" example:"Analiza matematyczna I"`
	Semester       *int      `json:"semester,omitempty" example:"1"`
	FieldOfStudyID int64     `json:"fieldOfStudyId" example:"4"`
	IsApproved     bool      `json:"isApproved" example:"true"`
	CreatedAt      time.Time `json:"createdAt"`
}

// NewSubjectResponse maps a subject model to its response representation
func NewSubjectResponse(s *models.Subject) SubjectResponse {
	return SubjectResponse{
		ID:             s.ID,
		Name:           s.Name,
		Semester:       s.Semester,
		FieldOfStudyID: s.FieldOfStudyID,
		IsApproved:     s.IsApproved,
		CreatedAt:      s.CreatedAt,
	}
}

// NewSubjectResponses maps a slice of subject models
func NewSubjectResponses(subjects []*models.Subject) []SubjectResponse {
	out := make([]SubjectResponse, 0, len(subjects))
	for _, s := range subjects {
		out = append(out, NewSubjectResponse(s))
	}
	return out
}

// CreateSubjectRequest represents a community-submitted subject proposal
type CreateSubjectRequest struct {
	FieldOfStudyID int64  `json:"fieldOfStudyId" binding:"required,min=1"`
	Name           string `json:"name" binding:"required,min=2,max=200"`
	Semester       *int   `json:"semester" binding:"omitempty,min=1,max=14"`
}
