package main

import (
	"log/slog"
	"os"

	"github.com/pressroom-io/pressroom/internal/ai"
	"github.com/pressroom-io/pressroom/internal/images"
	"github.com/pressroom-io/pressroom/internal/store"
	"github.com/pressroom-io/pressroom/internal/store/es"
	"github.com/pressroom-io/pressroom/pkg/config/env"
)

type AppConfig struct {
	ENV string
}

func NewAppConfig() *AppConfig {
	return &AppConfig{
		ENV: os.Getenv("ENV"),
	}
}

type PressroomConfig struct {
	SiteBaseURL string
	Store       *store.Config
	Completion  *ai.Config
	Images      *images.Config
	Search      *es.ClientConfig
}

func (ac *AppConfig) Load() (*PressroomConfig, error) {
	err := env.LoadDotEnv(ac.ENV, "cmd/pressroom/.env")
	if err != nil {
		slog.Info("Skipping .env, continuing with existing environment variables", "error", err)
	}

	completionCfg, err := ai.LoadConfigFromEnv()
	if err != nil {
		slog.Error("Failed to load completion configuration from environment", "error", err)
		return nil, err
	}

	return &PressroomConfig{
		SiteBaseURL: env.Get("SITE_BASE_URL", "https://pressroom.io"),
		Store:       store.LoadConfigFromEnv(),
		Completion:  completionCfg,
		Images:      images.LoadConfigFromEnv(),
		Search:      es.LoadConfigFromEnv(),
	}, nil
}
