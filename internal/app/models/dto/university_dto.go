package dto

import (
	"time"

	"github.com/colloq/colloq/internal/app/models"
)

// UniversityResponse represents a university in API responses
type UniversityResponse struct {
	ID          int64     `json:"id" example:"1"`
	Name        string    `json:"name" example:"Uniwersytet Warszawski"`
	NamePL      *string   `json:"namePl,omitempty"`
	NameEN      *string   `json:"nameEn,omitempty"`
	City        *string   `json:"city,omitempty" example:"Warszawa"`
	Region      *string   `json:"region,omitempty" example:"mazowieckie"`
	Type        *string   `json:"type,omitempty" example:"public"`
	Description *string   `json:"description,omitempty"`
	ImageURL    *string   `json:"imageUrl,omitempty"`
	BannerURL   *string   `json:"bannerUrl,omitempty"`
	IsApproved  bool      `json:"isApproved" example:"true"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewUniversityResponse maps a university model to its response representation
func NewUniversityResponse(u *models.University) UniversityResponse {
	return UniversityResponse{
		ID:          u.ID,
		Name:        u.Name,
		NamePL:      u.NamePL,
		NameEN:      u.NameEN,
		City:        u.City,
		Region:      u.Region,
		Type:        u.Type,
		Description: u.Description,
		ImageURL:    u.ImageURL,
		BannerURL:   u.BannerURL,
		IsApproved:  u.IsApproved,
		CreatedAt:   u.CreatedAt,
	}
}

// NewUniversityResponses maps a slice of university models
func NewUniversityResponses(universities []*models.University) []UniversityResponse {
	out := make([]UniversityResponse, 0, len(universities))
	for _, u := range universities {
		out = append(out, NewUniversityResponse(u))
	}
	return out
}

// CreateUniversityRequest represents a community-submitted university proposal
type CreateUniversityRequest struct {
	Name        string  `json:"name" binding:"required,min=2,max=200"`
	NamePL      *string `json:"namePl" binding:"omitempty,max=200"`
	NameEN      *string `json:"nameEn" binding:"omitempty,max=200"`
	City        *string `json:"city" binding:"omitempty,max=100"`
	Region      *string `json:"region" binding:"omitempty,max=100"`
	Type        *string `json:"type" binding:"omitempty,max=50"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	ImageURL    *string `json:"imageUrl" binding:"omitempty,url"`
}

// ReviewResponse represents a university review with author info attached
type ReviewResponse struct {
	ID             int64     `json:"id" example:"3"`
	UniversityID   int64     `json:"universityId" example:"1"`
	Content        string    `json:"content"`
	Rating         int       `json:"rating" example:"4"`
	AuthorID       int64     `json:"authorId" example:"7"`
	AuthorNickname string    `json:"authorNickname" example:"anka"`
	CreatedAt      time.Time `json:"createdAt"`
}

// NewReviewResponse maps a review model to its response representation
func NewReviewResponse(r *models.Review) ReviewResponse {
	return ReviewResponse{
		ID:             r.ID,
		UniversityID:   r.UniversityID,
		Content:        r.Content,
		Rating:         r.Rating,
		AuthorID:       r.UserID,
		AuthorNickname: r.AuthorNickname,
		CreatedAt:      r.CreatedAt,
	}
}

// CreateReviewRequest represents a new university review
type CreateReviewRequest struct {
	Content string `json:"content" binding:"required,min=3,max=2000"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
}

// CreateImageRequestRequest proposes a replacement image for a university
type CreateImageRequestRequest struct {
	ImageURL string `json:"imageUrl" binding:"required,url"`
}

// ImageRequestResponse represents an image-replacement request
type ImageRequestResponse struct {
	ID           int64     `json:"id" example:"5"`
	UniversityID int64     `json:"universityId" example:"1"`
	ImageURL     string    `json:"imageUrl"`
	Status       string    `json:"status" example:"PENDING" enums:"PENDING,APPROVED,REJECTED"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewImageRequestResponse maps an image request model to its response representation
func NewImageRequestResponse(r *models.UniversityImageRequest) ImageRequestResponse {
	return ImageRequestResponse{
		ID:           r.ID,
		UniversityID: r.UniversityID,
		ImageURL:     r.ImageURL,
		Status:       string(r.Status),
		CreatedAt:    r.CreatedAt,
	}
}
