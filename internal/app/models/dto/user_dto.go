package dto

import (
	"time"

	"github.com/colloq/colloq/internal/app/models"
)

// UserResponse represents basic user information
type UserResponse struct {
	ID           int64     `json:"id" example:"1"`
	Email        string    `json:"email" example:"anna.kowalska@example.pl"`
	Nickname     string    `json:"nickname" example:"anka"`
	Bio          *string   `json:"bio,omitempty"`
	AvatarURL    *string   `json:"avatarUrl,omitempty"`
	IsAdmin      bool      `json:"isAdmin" example:"false"`
	IsVerified   bool      `json:"isVerified" example:"true"`
	UniversityID *int64    `json:"universityId,omitempty" example:"1"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewUserResponse maps a user model to its response representation
func NewUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:           user.ID,
		Email:        user.Email,
		Nickname:     user.Nickname,
		Bio:          user.Bio,
		AvatarURL:    user.AvatarURL,
		IsAdmin:      user.IsAdmin,
		IsVerified:   user.IsVerified,
		UniversityID: user.UniversityID,
		CreatedAt:    user.CreatedAt,
	}
}

// UpdateProfileRequest represents profile update data
type UpdateProfileRequest struct {
	Nickname     *string `json:"nickname" binding:"omitempty,min=3,max=40"`
	Bio          *string `json:"bio" binding:"omitempty,max=500"`
	AvatarURL    *string `json:"avatarUrl" binding:"omitempty,url"`
	UniversityID *int64  `json:"universityId" binding:"omitempty,min=1"`
}

// LeaderboardEntry represents one row of the top-contributors ranking
type LeaderboardEntry struct {
	UserID    int64  `json:"userId" example:"7"`
	Nickname  string `json:"nickname" example:"anka"`
	NoteCount int64  `json:"noteCount" example:"12"`
}
