package services

import (
	"github.com/rs/zerolog"

	"github.com/colloq/colloq/internal/app/repositories"
	"github.com/colloq/colloq/internal/pkg/aichat"
	"github.com/colloq/colloq/internal/pkg/auth"
	"github.com/colloq/colloq/internal/pkg/captcha"
	"github.com/colloq/colloq/internal/pkg/filestorage"
)

// Services holds all the service instances
type Services struct {
	AuthService       AuthService
	UserService       UserService
	UniversityService UniversityService
	HierarchyService  HierarchyService
	NoteService       NoteService
	ModerationService ModerationService
	MetaService       MetaService
	ChatService       ChatService
}

// NewServices wires every service to its repositories and external collaborators
func NewServices(
	repos *repositories.Repositories,
	jwtService *auth.JWTService,
	captchaVerifier captcha.Verifier,
	completer aichat.Completer,
	storage filestorage.Storage,
	logger zerolog.Logger,
) *Services {
	return &Services{
		AuthService: NewAuthService(
			repos.UserRepository,
			repos.UniversityRepository,
			jwtService,
			captchaVerifier,
			logger.With().Str("service", "auth").Logger(),
		),
		UserService: NewUserService(
			repos.UserRepository,
			repos.UniversityRepository,
			repos.NoteRepository,
			logger.With().Str("service", "user").Logger(),
		),
		UniversityService: NewUniversityService(
			repos.UniversityRepository,
			repos.ReviewRepository,
			repos.ImageRequestRepository,
			logger.With().Str("service", "university").Logger(),
		),
		HierarchyService: NewHierarchyService(
			repos.UniversityRepository,
			repos.FacultyRepository,
			repos.FieldRepository,
			repos.SubjectRepository,
			logger.With().Str("service", "hierarchy").Logger(),
		),
		NoteService: NewNoteService(
			repos.NoteRepository,
			repos.UniversityRepository,
			repos.SubjectRepository,
			repos.UserRepository,
			storage,
			logger.With().Str("service", "note").Logger(),
		),
		ModerationService: NewModerationService(
			repos,
			logger.With().Str("service", "moderation").Logger(),
		),
		MetaService: NewMetaService(
			repos.UserRepository,
			repos.UniversityRepository,
			repos.NoteRepository,
			logger.With().Str("service", "meta").Logger(),
		),
		ChatService: NewChatService(
			completer,
			repos.NoteRepository,
			logger.With().Str("service", "chat").Logger(),
		),
	}
}
