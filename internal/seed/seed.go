package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/colloq/colloq/internal/app/models"
	"github.com/colloq/colloq/internal/app/repositories"
	"github.com/colloq/colloq/internal/config"
	"github.com/colloq/colloq/internal/pkg/apperrors"
	"github.com/colloq/colloq/internal/pkg/auth"
)

type seedUniversity struct {
	name   string
	nameEN string
	city   string
	region string
	uniTyp string
}

// Seed universities cover every voivodeship so the directory is never empty
// on a fresh install. Community submissions extend this set.
var defaultUniversities = []seedUniversity{
	{"Uniwersytet Warszawski", "University of Warsaw", "Warszawa", "mazowieckie", "public"},
	{"Uniwersytet Jagielloński", "Jagiellonian University", "Kraków", "małopolskie", "public"},
	{"Uniwersytet im. Adama Mickiewicza w Poznaniu", "Adam Mickiewicz University", "Poznań", "wielkopolskie", "public"},
	{"Uniwersytet Wrocławski", "University of Wrocław", "Wrocław", "dolnośląskie", "public"},
	{"Uniwersytet Gdański", "University of Gdańsk", "Gdańsk", "pomorskie", "public"},
	{"Uniwersytet Łódzki", "University of Łódź", "Łódź", "łódzkie", "public"},
	{"Uniwersytet Mikołaja Kopernika w Toruniu", "Nicolaus Copernicus University", "Toruń", "kujawsko-pomorskie", "public"},
	{"Uniwersytet Śląski w Katowicach", "University of Silesia", "Katowice", "śląskie", "public"},
	{"Uniwersytet Marii Curie-Skłodowskiej", "Maria Curie-Skłodowska University", "Lublin", "lubelskie", "public"},
	{"Uniwersytet w Białymstoku", "University of Białystok", "Białystok", "podlaskie", "public"},
	{"Uniwersytet Szczeciński", "University of Szczecin", "Szczecin", "zachodniopomorskie", "public"},
	{"Uniwersytet Rzeszowski", "University of Rzeszów", "Rzeszów", "podkarpackie", "public"},
	{"Uniwersytet Warmińsko-Mazurski w Olsztynie", "University of Warmia and Mazury", "Olsztyn", "warmińsko-mazurskie", "public"},
	{"Uniwersytet Opolski", "University of Opole", "Opole", "opolskie", "public"},
	{"Uniwersytet Zielonogórski", "University of Zielona Góra", "Zielona Góra", "lubuskie", "public"},
	{"Uniwersytet Jana Kochanowskiego w Kielcach", "Jan Kochanowski University", "Kielce", "świętokrzyskie", "public"},
}

// CreateDefaultData seeds the university directory, a sample hierarchy under
// each university and the admin account on a fresh database. Reruns are
// no-ops: existing rows are left untouched.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	universityRepo := repositories.NewUniversityRepository(dbPool)
	facultyRepo := repositories.NewFacultyRepository(dbPool)
	fieldRepo := repositories.NewFieldRepository(dbPool)
	subjectRepo := repositories.NewSubjectRepository(dbPool)
	userRepo := repositories.NewUserRepository(dbPool)

	var finalErr error

	lgr.Info().Msg("Checking/Creating seed universities...")
	for _, entry := range defaultUniversities {
		namePL := entry.name
		nameEN := entry.nameEN
		city := entry.city
		region := entry.region
		uniType := entry.uniTyp

		u := &models.University{
			Name:       entry.name,
			NamePL:     &namePL,
			NameEN:     &nameEN,
			City:       &city,
			Region:     &region,
			Type:       &uniType,
			IsApproved: true,
		}
		universityID, err := universityRepo.CreateUniversity(ctx, u)
		if err != nil {
			if errors.Is(err, apperrors.ErrConflict) {
				continue
			}
			lgr.Error().Err(err).Str("university", entry.name).Msg("Error seeding university")
			finalErr = errors.Join(finalErr, err)
			continue
		}

		if err := seedSampleHierarchy(ctx, facultyRepo, fieldRepo, subjectRepo, universityID); err != nil {
			lgr.Error().Err(err).Str("university", entry.name).Msg("Error seeding sample hierarchy")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if err := ensureAdminAccount(ctx, userRepo, cfg, lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	return finalErr
}

// seedSampleHierarchy gives a freshly seeded university one approved faculty,
// field and subject so browsing works before any community submissions.
func seedSampleHierarchy(
	ctx context.Context,
	facultyRepo *repositories.FacultyRepository,
	fieldRepo *repositories.FieldRepository,
	subjectRepo *repositories.SubjectRepository,
	universityID int64,
) error {
	facultyID, err := facultyRepo.CreateFaculty(ctx, &models.Faculty{
		Name:         "Wydział Informatyki",
		UniversityID: universityID,
		IsApproved:   true,
	})
	if err != nil {
		return err
	}

	degreeLevel := "Inżynierskie"
	fieldID, err := fieldRepo.CreateField(ctx, &models.FieldOfStudy{
		Name:         "Informatyka",
		DegreeLevel:  &degreeLevel,
		FacultyID:    facultyID,
		UniversityID: &universityID,
		IsApproved:   true,
	})
	if err != nil {
		return err
	}

	semester := 1
	_, err = subjectRepo.CreateSubject(ctx, &models.Subject{
		Name:           "Podstawy Programowania",
		Semester:       &semester,
		FieldOfStudyID: fieldID,
		IsApproved:     true,
	})
	return err
}

func ensureAdminAccount(ctx context.Context, userRepo *repositories.UserRepository, cfg *config.Config, lgr zerolog.Logger) error {
	_, err := userRepo.GetUserByEmail(ctx, cfg.Admin.Email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		lgr.Error().Err(err).Msg("Error checking admin account")
		return err
	}

	hashed, err := auth.HashPassword(cfg.Admin.Password)
	if err != nil {
		return err
	}

	admin := &models.User{
		Email:      cfg.Admin.Email,
		Password:   hashed,
		Nickname:   "admin",
		IsAdmin:    true,
		IsVerified: true,
		IsActive:   true,
	}
	if _, err := userRepo.CreateUser(ctx, admin); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil
		}
		lgr.Error().Err(err).Msg("Error creating admin account")
		return err
	}

	lgr.Info().Str("email", cfg.Admin.Email).Msg("Admin account created")
	return nil
}
