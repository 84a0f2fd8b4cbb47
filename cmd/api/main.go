package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/ybamri/recycleapp/internal/pkg/logger"
	"github.com/ybamri/recycleapp/internal/server"
)

// @title Recycle App API
// @version 1.0
// @description Backend API for the Recycle App second-hand marketplace

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	// Load .env if present; real env vars take precedence
	if err := godotenv.Load(); err == nil {
		logger.Debug().Msg("Loaded environment from .env file")
	}

	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
