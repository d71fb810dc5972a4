package main

import (
	"context"
	"flag"
	"os"

	"github.com/sembesalum/tu-chat-api/internal/bootstrap"
	"github.com/sembesalum/tu-chat-api/internal/pkg/logger"
	"github.com/sembesalum/tu-chat-api/internal/server"
)

// @title TU Chat API
// @version 1.0
// @description Campus community backend: directory, accounts, study materials, events, blogs, groups, messaging and a marketplace.

// @host localhost:8000
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token returned by /login/ or /register/

func main() {
	configPath := flag.String("config", bootstrap.DefaultConfigPath, "path to the YAML configuration file")
	flag.Parse()

	ctx := context.Background()
	srv, err := server.NewServer(ctx, *configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("Server stopped with errors")
		os.Exit(1)
	}
}
