package main

import (
	"os"
	"path/filepath"

	"github.com/communitree/backend/internal/pkg/logger"
	"github.com/communitree/backend/internal/server"
)

// @title Communitree Community API
// @version 1.0
// @description Community lifecycle, membership and hierarchy service

// @host localhost:5002
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	srv, err := server.NewCommunityServer(filepath.Join("configs", "config.yaml"))
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize community server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
