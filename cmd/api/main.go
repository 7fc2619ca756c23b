package main

import (
	"os"

	"github.com/colloq/colloq/internal/pkg/logger"
	"github.com/colloq/colloq/internal/server"
)

// @title           Colloq API
// @version         1.0
// @description     Student notes and university directory for Polish universities.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.

func main() {
	srv, err := server.NewServer("configs/config.yaml")
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize server")
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server terminated with error")
		os.Exit(1)
	}
}
