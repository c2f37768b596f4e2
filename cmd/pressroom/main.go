// Package main Pressroom API
// @title Pressroom API
// @version 1.0
// @description Asynchronous bilingual article publishing pipeline
// @BasePath /
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"

	"github.com/pressroom-io/pressroom/internal/ai"
	"github.com/pressroom-io/pressroom/internal/images"
	"github.com/pressroom-io/pressroom/internal/pipeline"
	"github.com/pressroom-io/pressroom/internal/prefs"
	"github.com/pressroom-io/pressroom/internal/processor"
	"github.com/pressroom-io/pressroom/internal/publish"
	"github.com/pressroom-io/pressroom/internal/queue"
	"github.com/pressroom-io/pressroom/internal/router"
	"github.com/pressroom-io/pressroom/internal/server"
	"github.com/pressroom-io/pressroom/internal/store"
	"github.com/pressroom-io/pressroom/internal/store/es"
	"github.com/pressroom-io/pressroom/internal/translate"
	pkgserver "github.com/pressroom-io/pressroom/pkg/server"
)

func main() {
	appSettings := NewAppConfig()
	cfg, err := appSettings.Load()
	if err != nil {
		slog.Error("Failed to load app configuration", "error", err)
		os.Exit(1)
	}

	sCfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("Failed to load server config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dataStore, storeType, err := store.New(ctx, cfg.Store)
	if err != nil {
		slog.Error("Failed to create store", "error", err)
		os.Exit(1)
	}
	defer dataStore.Close()
	slog.Info("store initialized", "type", storeType)

	completer, err := ai.NewClientFromConfig(cfg.Completion)
	if err != nil {
		slog.Error("Failed to create completion client", "error", err)
		os.Exit(1)
	}

	engine, err := images.NewEngineFromConfig(cfg.Images)
	if err != nil {
		slog.Error("Failed to create image engine", "error", err)
		os.Exit(1)
	}

	var publishOpts []publish.Option
	if cfg.Search != nil {
		indexer, err := es.NewIndexer(ctx, *cfg.Search)
		if err != nil {
			slog.Warn("Search indexing disabled", "error", err)
		} else {
			publishOpts = append(publishOpts, publish.WithIndexer(indexer))
		}
	}

	resolver := prefs.NewResolver(dataStore)
	proc := processor.New(completer, processor.DefaultRules())
	translator := translate.NewTranslator(completer)
	orchestrator := publish.NewOrchestrator(translator, engine, dataStore, cfg.SiteBaseURL, publishOpts...)
	runner := pipeline.NewRunner(proc, resolver, orchestrator)

	jobQueue := queue.NewQueue(dataStore, runner)
	jobQueue.Start(ctx)

	maintenance := queue.NewMaintenance(jobQueue)
	if err := maintenance.Start(ctx); err != nil {
		slog.Error("Failed to start queue maintenance", "error", err)
		os.Exit(1)
	}

	healthChecker := pkgserver.NewPingHealthChecker(dataStore.Ping)
	s := server.NewServer(echo.New(), sCfg, healthChecker)

	s.Echo.GET("/", func(c echo.Context) error {
		return c.String(200, "Pressroom API is running")
	})

	router.NewJobsRouter(s.Echo, jobQueue).Bind()
	router.NewPreferencesRouter(s.Echo, resolver).Bind()

	err = s.Start(func(shutdownCtx context.Context) {
		slog.Info("Shutdown started, cleaning up resources...")
		maintenance.Stop()
		cancel()
		select {
		case <-jobQueue.Done():
		case <-shutdownCtx.Done():
			slog.Warn("worker did not stop before shutdown deadline")
		}
	})
	if err != nil {
		s.Echo.Logger.Error("Failed to start server: ", err)
		os.Exit(1)
	}
}
