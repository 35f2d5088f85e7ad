// Package app wires configuration, storage, the event bus and the services
// into one runnable core shared by the CLI commands.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rferreira/patrimo/internal/clients/gemini"
	"github.com/rferreira/patrimo/internal/common"
	"github.com/rferreira/patrimo/internal/events"
	"github.com/rferreira/patrimo/internal/interfaces"
	"github.com/rferreira/patrimo/internal/services/holdings"
	"github.com/rferreira/patrimo/internal/services/ledger"
	"github.com/rferreira/patrimo/internal/services/report"
	"github.com/rferreira/patrimo/internal/storage"
)

// App holds all initialized services and clients.
type App struct {
	Config          *common.Config
	Logger          *common.Logger
	Storage         interfaces.StorageManager
	Bus             *events.Bus
	HoldingsService interfaces.HoldingsService
	LedgerService   interfaces.LedgerService
	ReportService   interfaces.ReportService
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes config, storage and all services. configPath may be
// empty, in which case PATRIMO_CONFIG and the binary directory are tried.
func NewApp(configPath string) (*App, error) {
	binDir := getBinaryDir()

	if configPath == "" {
		configPath = os.Getenv("PATRIMO_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "patrimo.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/patrimo.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Resolve relative storage and chart paths against the binary directory.
	if config.Storage.Path != "" && !filepath.IsAbs(config.Storage.Path) {
		config.Storage.Path = filepath.Join(binDir, config.Storage.Path)
	}
	if config.Charts.OutputDir != "" && !filepath.IsAbs(config.Charts.OutputDir) {
		config.Charts.OutputDir = filepath.Join(binDir, config.Charts.OutputDir)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	storageManager, err := storage.NewManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	bus := events.NewBus(logger)
	holdingsService := holdings.NewService(storageManager, bus, logger)
	ledgerService := ledger.NewService(storageManager, bus, logger)

	// The advice client is optional: without a key the report service still
	// renders charts, only Advise is unavailable.
	var adviceClient interfaces.AdviceClient
	if config.Gemini.APIKey != "" {
		client, err := gemini.NewClient(context.Background(), config.Gemini.APIKey,
			gemini.WithModel(config.Gemini.Model),
			gemini.WithRateLimit(config.Gemini.RateLimit),
			gemini.WithLogger(logger),
		)
		if err != nil {
			logger.Warn().Err(err).Msg("Gemini client unavailable, continuing without AI summaries")
		} else {
			adviceClient = client
		}
	}

	reportService := report.NewService(storageManager, holdingsService, ledgerService, adviceClient, config.Charts.OutputDir, logger)

	logger.Info().
		Str("environment", config.Environment).
		Str("storage", config.Storage.Path).
		Msg("Application initialized")

	return &App{
		Config:          config,
		Logger:          logger,
		Storage:         storageManager,
		Bus:             bus,
		HoldingsService: holdingsService,
		LedgerService:   ledgerService,
		ReportService:   reportService,
	}, nil
}

// Close releases the embedded store.
func (a *App) Close() error {
	if a.Storage != nil {
		return a.Storage.Close()
	}
	return nil
}
