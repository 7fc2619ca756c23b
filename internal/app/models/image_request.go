package models

import "time"

// ImageRequestStatus is the lifecycle state of a UniversityImageRequest.
type ImageRequestStatus string

const (
	ImageRequestPending  ImageRequestStatus = "PENDING"
	ImageRequestApproved ImageRequestStatus = "APPROVED"
	ImageRequestRejected ImageRequestStatus = "REJECTED"
)

// UniversityImageRequest is a proposal to replace a university's image. Its
// lifecycle is decoupled from the university's own approval flag: approving
// the request copies the proposed image onto the university, rejecting it
// leaves the university untouched.
type UniversityImageRequest struct {
	ID            int64              `json:"id" db:"id"`
	UniversityID  int64              `json:"universityId" db:"university_id"`
	ImageURL      string             `json:"imageUrl" db:"image_url"`
	Status        ImageRequestStatus `json:"status" db:"status"`
	SubmittedByID *int64             `json:"submittedById,omitempty" db:"submitted_by_id"`
	CreatedAt     time.Time          `json:"createdAt" db:"created_at"`
}
