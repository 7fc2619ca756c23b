package models

import "time"

// Vote records a +1 engagement on a note. A (user, note) pair appears at most
// once; the unique constraint on the table is the source of truth.
type Vote struct {
	ID        int64     `json:"id" db:"id"`
	NoteID    int64     `json:"noteId" db:"note_id"`
	UserID    int64     `json:"userId" db:"user_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Favorite marks a note as saved by a user. Same uniqueness rule as Vote,
// but toggling it never touches the note's score.
type Favorite struct {
	ID        int64     `json:"id" db:"id"`
	NoteID    int64     `json:"noteId" db:"note_id"`
	UserID    int64     `json:"userId" db:"user_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Comment is a free-text engagement record attached to a note.
type Comment struct {
	ID        int64     `json:"id" db:"id"`
	NoteID    int64     `json:"noteId" db:"note_id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	AuthorNickname string `json:"authorNickname,omitempty" db:"author_nickname"`
}

// Review is a free-text engagement record attached to a university.
type Review struct {
	ID           int64     `json:"id" db:"id"`
	UniversityID int64     `json:"universityId" db:"university_id"`
	UserID       int64     `json:"userId" db:"user_id"`
	Rating       int       `json:"rating" db:"rating"`
	Content      string    `json:"content" db:"content"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`

	AuthorNickname string `json:"authorNickname,omitempty" db:"author_nickname"`
}
