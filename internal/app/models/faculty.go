package models

import "time"

// Faculty belongs to exactly one University and shares its approval lifecycle.
type Faculty struct {
	ID            int64     `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Description   *string   `json:"description,omitempty" db:"description"`
	ImageURL      *string   `json:"imageUrl,omitempty" db:"image_url"`
	UniversityID  int64     `json:"universityId" db:"university_id"`
	IsApproved    bool      `json:"isApproved" db:"is_approved"`
	SubmittedByID *int64    `json:"submittedById,omitempty" db:"submitted_by_id"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}
