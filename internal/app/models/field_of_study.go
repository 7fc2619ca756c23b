package models

import "time"

// FieldOfStudy belongs to exactly one Faculty. UniversityID is a legacy
// denormalized shortcut kept for older clients that filter fields by
// university directly; it is filled from the owning faculty at creation.
type FieldOfStudy struct {
	ID            int64     `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	DegreeLevel   *string   `json:"degreeLevel,omitempty" db:"degree_level"`
	FacultyID     int64     `json:"facultyId" db:"faculty_id"`
	UniversityID  *int64    `json:"universityId,omitempty" db:"university_id"`
	IsApproved    bool      `json:"isApproved" db:"is_approved"`
	SubmittedByID *int64    `json:"submittedById,omitempty" db:"submitted_by_id"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}
