package models

import "time"

// Subject belongs to exactly one FieldOfStudy and carries a semester number.
type Subject struct {
	ID             int64     `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Semester       *int      `json:"semester,omitempty" db:"semester"`
	FieldOfStudyID int64     `json:"fieldOfStudyId" db:"field_of_study_id"`
	IsApproved     bool      `json:"isApproved" db:"is_approved"`
	SubmittedByID  *int64    `json:"submittedById,omitempty" db:"submitted_by_id"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
}
