package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository         *UserRepository
	UniversityRepository   *UniversityRepository
	FacultyRepository      *FacultyRepository
	FieldRepository        *FieldRepository
	SubjectRepository      *SubjectRepository
	NoteRepository         *NoteRepository
	ReviewRepository       *ReviewRepository
	ImageRequestRepository *ImageRequestRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(db),
		UniversityRepository:   NewUniversityRepository(db),
		FacultyRepository:      NewFacultyRepository(db),
		FieldRepository:        NewFieldRepository(db),
		SubjectRepository:      NewSubjectRepository(db),
		NoteRepository:         NewNoteRepository(db),
		ReviewRepository:       NewReviewRepository(db),
		ImageRequestRepository: NewImageRequestRepository(db),
	}
}
