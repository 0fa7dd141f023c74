package main

import (
	"log/slog"
	"os"

	"github.com/nfrund/authforms/internal/config"
	"github.com/nfrund/authforms/internal/logging"
	"github.com/nfrund/authforms/internal/server"
)

func main() {
	logging.New()
	cfg := config.New()

	s, err := server.New(cfg)
	if err != nil {
		slog.Error("Failed to initialize server", "error", err)
		os.Exit(1)
	}

	s.RegisterRoutes()
	s.Start()
}
