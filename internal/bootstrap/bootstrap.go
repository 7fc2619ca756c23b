package bootstrap

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/colloq/colloq/internal/app/controllers"
	"github.com/colloq/colloq/internal/app/migrations"
	"github.com/colloq/colloq/internal/app/repositories"
	"github.com/colloq/colloq/internal/app/routes"
	"github.com/colloq/colloq/internal/app/services"
	"github.com/colloq/colloq/internal/config"
	"github.com/colloq/colloq/internal/db"
	"github.com/colloq/colloq/internal/middleware"
	"github.com/colloq/colloq/internal/pkg/aichat"
	"github.com/colloq/colloq/internal/pkg/auth"
	"github.com/colloq/colloq/internal/pkg/captcha"
	"github.com/colloq/colloq/internal/pkg/filestorage"
	"github.com/colloq/colloq/internal/pkg/helpers"
	"github.com/colloq/colloq/internal/pkg/logger"
	"github.com/colloq/colloq/internal/seed"
)

// Dependencies holds everything the HTTP layer needs, wired once at startup.
type Dependencies struct {
	Repos          *repositories.Repositories
	Services       *services.Services
	JWTService     *auth.JWTService
	Storage        filestorage.Storage
	AuthMiddleware *middleware.AuthMiddleware

	AuthController       *controllers.AuthController
	UserController       *controllers.UserController
	UniversityController *controllers.UniversityController
	HierarchyController  *controllers.HierarchyController
	NoteController       *controllers.NoteController
	AdminController      *controllers.AdminController
	MetaController       *controllers.MetaController
	ChatController       *controllers.ChatController
}

// LoadConfigAndSetupLogger reads the configuration file, configures the
// process-wide logger from it and returns both.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, zerolog.Logger{}, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(strings.ToLower(cfg.Logging.Level)),
		Pretty: cfg.Logging.Format != "json",
	})

	return cfg, log.Logger, nil
}

// SetupDatabase connects to PostgreSQL, applies pending migrations from the
// migrations directory and seeds default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	migrator := migrations.NewMigrator(database.Pool)
	if err := migrator.MigrateFromDirectory("migrations"); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := seed.CreateDefaultData(ctx, database.Pool, cfg, lgr); err != nil {
		lgr.Warn().Err(err).Msg("Seeding default data reported errors")
	}

	return database, nil
}

// BuildDependencies constructs the repository, service, middleware and
// controller graph on top of the database pool.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	repos := repositories.NewRepositories(database.Pool)

	storage, err := filestorage.NewLocalStorage(cfg.Server.StoragePath, cfg.Server.PublicURL+"/uploads")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 24*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	captchaVerifier := captcha.NewTurnstileVerifier(cfg.Captcha.TurnstileSecret)
	completer := aichat.NewGeminiClient(cfg.AI.GeminiAPIKey)

	svcs := services.NewServices(repos, jwtService, captchaVerifier, completer, storage, lgr)

	deps := &Dependencies{
		Repos:          repos,
		Services:       svcs,
		JWTService:     jwtService,
		Storage:        storage,
		AuthMiddleware: middleware.NewAuthMiddleware(jwtService),

		AuthController:       controllers.NewAuthController(svcs.AuthService),
		UserController:       controllers.NewUserController(svcs.UserService),
		UniversityController: controllers.NewUniversityController(svcs.UniversityService),
		HierarchyController:  controllers.NewHierarchyController(svcs.HierarchyService),
		NoteController:       controllers.NewNoteController(svcs.NoteService, svcs.UserService),
		AdminController:      controllers.NewAdminController(svcs.ModerationService),
		MetaController:       controllers.NewMetaController(svcs.MetaService),
		ChatController:       controllers.NewChatController(svcs.ChatService),
	}

	return deps, nil
}

// SetupRouter creates the Gin engine with all application routes registered.
func SetupRouter(cfg *config.Config, deps *Dependencies) *gin.Engine {
	if cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	routes.SetupRouter(
		router,
		deps.AuthController,
		deps.UserController,
		deps.UniversityController,
		deps.HierarchyController,
		deps.NoteController,
		deps.AdminController,
		deps.MetaController,
		deps.ChatController,
		deps.AuthMiddleware,
	)
	routes.SetupSwagger(router)

	return router
}
