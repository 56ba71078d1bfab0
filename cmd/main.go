package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"forgescope/internal/catalog"
	"forgescope/internal/configuration"
	"forgescope/internal/filter"
	"forgescope/internal/history"
	"forgescope/internal/i18n"
	"forgescope/internal/scoring/preset"
	"forgescope/internal/server"
	"forgescope/internal/session"
)

// prepareLogger configures the global slog logger. Accepts a string log
// level ("debug", "info", "warn", "error") and installs a JSON handler
// writing to os.Stdout. Unrecognized levels fall back to Info.
func prepareLogger(level string) {
	var logLevel slog.Level

	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn", "warning":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	logger := slog.New(handler)
	slog.SetDefault(logger)
}

// On configuration, dataset or component initialization errors the
// application exits with code 1.
func main() {
	configPath := flag.String("config", "/etc/forgescope/config.yaml", "configuration file")
	flag.Parse()
	config, err := configuration.LoadConfig(*configPath)
	if err != nil {
		slog.Error("Unable to load configuration", "error", err)
		os.Exit(1)
	}
	prepareLogger(config.Logger.Level)

	appCtx, appCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer appCancel()

	loader, err := catalog.NewLoader(config.Catalog.Schema)
	if err != nil {
		slog.Error("Unable to initialize metadata loader", "error", err)
		os.Exit(1)
	}
	content, err := os.ReadFile(config.Catalog.Metadata)
	if err != nil {
		slog.Error("Unable to read building metadata", "error", err)
		os.Exit(1)
	}
	buildings, skipped, err := loader.Load(content)
	if err != nil {
		slog.Error("Unable to load building metadata", "error", err)
		os.Exit(1)
	}
	slog.Info("Building metadata loaded", "buildings", len(buildings), "skipped", skipped)

	var presets []preset.Preset
	if config.Scoring.Presets != "" {
		presets, err = preset.LoadFromFile(config.Scoring.Presets)
		if err != nil {
			slog.Error("Unable to load weight presets", "error", err)
			os.Exit(1)
		}
	}

	filterEnv, err := filter.NewBuildingEnv()
	if err != nil {
		slog.Error("Unable to initialize filter environment", "error", err)
		os.Exit(1)
	}

	sessionsRepo := session.NewRepository(config.Session.HistoryLength, config.Session.Ttl)
	go sessionsRepo.Serve()

	var historyRepo history.Repository = history.NopRepository{}
	if config.History.File != "" {
		historyRepo = history.NewJsonHistoryRepository(config.History.File, config.History.Size, config.History.Amount)
	}

	translator := i18n.NewTranslator(config.Catalog.Translations)

	router := server.NewApiV1Router(
		buildings,
		filterEnv,
		presets,
		sessionsRepo,
		historyRepo,
		translator,
		config.Server.Static,
		config.Export.Sqlite,
	)
	srv := server.NewServer(config.Server.Address, router)
	go srv.ListenAndServe()
	slog.Info("Server listening " + config.Server.Address)
	<-appCtx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Second*10)
	defer shutdownCancel()

	err = srv.Shutdown(shutdownCtx)
	if err != nil {
		slog.Error("Server shutdown", "error", err)
	}
	slog.Info("Server stopped")

	sessionsRepo.Stop()
	historyRepo.Close()
}
