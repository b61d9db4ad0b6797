package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nvarma/resumind/internal/aiextract"
	"github.com/nvarma/resumind/internal/api"
	"github.com/nvarma/resumind/internal/catalogue"
	"github.com/nvarma/resumind/internal/config"
	"github.com/nvarma/resumind/internal/engine"
	"github.com/nvarma/resumind/internal/labelstudio"
	"github.com/nvarma/resumind/internal/pipeline"
	"github.com/nvarma/resumind/internal/store"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load the section catalogue.
	cat := catalogue.Default()
	if cfg.CatalogueFile != "" {
		loaded, err := catalogue.Load(cfg.CatalogueFile)
		if err != nil {
			log.Error("failed to load catalogue", "file", cfg.CatalogueFile, "error", err)
			os.Exit(1)
		}
		cat = loaded
		log.Info("loaded catalogue", "file", cfg.CatalogueFile, "sections", len(cat.Sections))
	}

	eng := engine.New(cat)
	eng.Stats = engine.NewStats(time.Hour)

	// Initialize clients.
	ls := labelstudio.NewClient(cfg.LabelStudioURL, cfg.LabelStudioAPIKey)
	gemini := aiextract.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel)

	st, err := store.New(cfg.DownloadsDir)
	if err != nil {
		log.Error("failed to create downloads dir", "dir", cfg.DownloadsDir, "error", err)
		os.Exit(1)
	}

	// Initialize pipeline.
	orch := pipeline.NewOrchestrator(cfg, eng, ls, gemini, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(orch, st, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		orch.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		gemini.Close()
		ls.Close()
	}()

	log.Info("starting resumind", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
