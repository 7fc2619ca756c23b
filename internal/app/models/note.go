package models

import "time"

// Note is a study material submitted by a student. Title and content may both
// be blank when an image is attached; content or an image is the only hard
// requirement. Score is maintained incrementally by the vote toggle and
// always equals the number of active votes.
type Note struct {
	ID           int64     `json:"id" db:"id"`
	Title        *string   `json:"title,omitempty" db:"title"`
	Content      *string   `json:"content,omitempty" db:"content"`
	ImageURL     *string   `json:"imageUrl,omitempty" db:"image_url"`
	VideoURL     *string   `json:"videoUrl,omitempty" db:"video_url"`
	LinkURL      *string   `json:"linkUrl,omitempty" db:"link_url"`
	Score        int       `json:"score" db:"score"`
	IsApproved   bool      `json:"isApproved" db:"is_approved"`
	AuthorID     int64     `json:"authorId" db:"author_id"`
	UniversityID int64     `json:"universityId" db:"university_id"`
	SubjectID    *int64    `json:"subjectId,omitempty" db:"subject_id"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
