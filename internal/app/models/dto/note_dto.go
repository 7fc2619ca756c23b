package dto

import (
	"time"

	"github.com/colloq/colloq/internal/app/models"
)

// NoteResponse represents a note in API responses
type NoteResponse struct {
	ID             int64     `json:"id" example:"11"`
	Title          *string   `json:"title,omitempty"`
	Content        *string   `json:"content,omitempty"`
	ImageURL       *string   `json:"imageUrl,omitempty"`
	VideoURL       *string   `json:"videoUrl,omitempty"`
	LinkURL        *string   `json:"linkUrl,omitempty"`
	Score          int       `json:"score" example:"3"`
	IsApproved     bool      `json:"isApproved" example:"true"`
	AuthorID       int64     `json:"authorId" example:"7"`
	AuthorNickname string    `json:"authorNickname,omitempty"`
	UniversityID   int64     `json:"universityId" example:"1"`
	SubjectID      *int64    `json:"subjectId,omitempty" example:"9"`
	CreatedAt      time.Time `json:"createdAt"`
}

// NewNoteResponse maps a note model to its response representation
func NewNoteResponse(n *models.Note, authorNickname string) NoteResponse {
	return NoteResponse{
		ID:             n.ID,
		Title:          n.Title,
		Content:        n.Content,
		ImageURL:       n.ImageURL,
		VideoURL:       n.VideoURL,
		LinkURL:        n.LinkURL,
		Score:          n.Score,
		IsApproved:     n.IsApproved,
		AuthorID:       n.AuthorID,
		AuthorNickname: authorNickname,
		UniversityID:   n.UniversityID,
		SubjectID:      n.SubjectID,
		CreatedAt:      n.CreatedAt,
	}
}

// CreateNoteRequest represents a note submission. Submitted as multipart form
// data so an image file can travel with it; content or an image is required.
type CreateNoteRequest struct {
	Title        *string `form:"title" binding:"omitempty,max=200"`
	Content      *string `form:"content" binding:"omitempty,max=20000"`
	UniversityID int64   `form:"universityId" binding:"required,min=1"`
	SubjectID    *int64  `form:"subjectId" binding:"omitempty,min=1"`
	VideoURL     *string `form:"videoUrl" binding:"omitempty,url"`
	LinkURL      *string `form:"linkUrl" binding:"omitempty,url"`
}

// ToggleResponse reports the state after a vote or favorite toggle
type ToggleResponse struct {
	Active bool `json:"active" example:"true"`
	Score  int  `json:"score" example:"4"`
}

// CommentResponse represents a comment with author info attached
type CommentResponse struct {
	ID             int64     `json:"id" example:"21"`
	NoteID         int64     `json:"noteId" example:"11"`
	AuthorID       int64     `json:"authorId" example:"7"`
	AuthorNickname string    `json:"authorNickname" example:"anka"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"createdAt"`
}

// NewCommentResponse maps a comment model to its response representation
func NewCommentResponse(c *models.Comment) CommentResponse {
	return CommentResponse{
		ID:             c.ID,
		NoteID:         c.NoteID,
		AuthorID:       c.UserID,
		AuthorNickname: c.AuthorNickname,
		Content:        c.Content,
		CreatedAt:      c.CreatedAt,
	}
}

// CreateCommentRequest represents a new comment on a note
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required,min=1,max=2000"`
}
