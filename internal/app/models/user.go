package models

import "time"

// User defines a user account based on the 'users' table. A user is either a
// regular student or an administrator with moderation privileges.
type User struct {
	ID           int64     `json:"id" db:"id" example:"1"`
	Email        string    `json:"email" db:"email" example:"student@colloq.pl"`
	Password     string    `json:"-" db:"password"` // bcrypt hash, excluded from JSON
	Nickname     string    `json:"nickname" db:"nickname" example:"student42"`
	Bio          *string   `json:"bio,omitempty" db:"bio"`
	AvatarURL    *string   `json:"avatarUrl,omitempty" db:"avatar_url"`
	IsAdmin      bool      `json:"isAdmin" db:"is_admin"`
	IsVerified   bool      `json:"isVerified" db:"is_verified"`
	IsActive     bool      `json:"isActive" db:"is_active"`
	UniversityID *int64    `json:"universityId,omitempty" db:"university_id"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// LeaderboardRow is one row of the approved-notes-per-user aggregate.
type LeaderboardRow struct {
	UserID    int64  `json:"userId" db:"user_id"`
	Nickname  string `json:"nickname" db:"nickname"`
	NoteCount int64  `json:"noteCount" db:"note_count"`
}
