package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/colloq/colloq/internal/bootstrap"
	"github.com/colloq/colloq/internal/config"
	"github.com/colloq/colloq/internal/db"
)

// Server bundles the HTTP engine with the resources it owns.
type Server struct {
	cfg      *config.Config
	router   *gin.Engine
	database *db.PostgresDB
	lgr      zerolog.Logger
}

// NewServer loads configuration, connects to the database and wires the full
// dependency graph.
func NewServer(configPath string) (*Server, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
	if err != nil {
		return nil, err
	}

	database, err := bootstrap.SetupDatabase(cfg, lgr)
	if err != nil {
		return nil, err
	}

	deps, err := bootstrap.BuildDependencies(cfg, database, lgr)
	if err != nil {
		database.Close()
		return nil, err
	}

	router := bootstrap.SetupRouter(cfg, deps)
	setupStaticFileServing(router, cfg)

	return &Server{
		cfg:      cfg,
		router:   router,
		database: database,
		lgr:      lgr,
	}, nil
}

// setupStaticFileServing exposes uploaded note images under /uploads.
func setupStaticFileServing(router *gin.Engine, cfg *config.Config) {
	router.Static("/uploads", cfg.Server.StoragePath)
}

// Run starts the HTTP server and blocks until it fails or the process
// receives an interrupt, then shuts down gracefully.
func (s *Server) Run() error {
	httpServer := &http.Server{
		Addr:         ":" + s.cfg.Server.Port,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.lgr.Info().Str("port", s.cfg.Server.Port).Msg("Starting HTTP server")
		serverErrors <- httpServer.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		s.lgr.Info().Str("signal", sig.String()).Msg("Shutdown signal received")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(ctx); err != nil {
			httpServer.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	s.database.Close()
	s.lgr.Info().Msg("Server stopped")
	return nil
}
