// Package app wires configuration, storage, clients, and services into a
// single application core shared by the server binary and tests.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/naganikhilbijjala/finpilot/internal/clients/yahoo"
	"github.com/naganikhilbijjala/finpilot/internal/common"
	"github.com/naganikhilbijjala/finpilot/internal/interfaces"
	"github.com/naganikhilbijjala/finpilot/internal/services/portfolio"
	"github.com/naganikhilbijjala/finpilot/internal/storage"
)

// App holds all initialized services, clients, and storage.
type App struct {
	Config           *common.Config
	Logger           *common.Logger
	Storage          interfaces.StorageManager
	QuoteClient      interfaces.QuoteClient
	PortfolioService interfaces.PortfolioService
	StartupTime      time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes configuration, storage, clients, and services.
// configPath may be empty, in which case the default resolution logic is used.
func NewApp(configPath string) (*App, error) {
	binDir := getBinaryDir()

	// Check provided path, FINPILOT_CONFIG, then binary dir, then fallback
	if configPath == "" {
		configPath = os.Getenv("FINPILOT_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "finpilot.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/finpilot.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Resolve relative storage paths to binary directory
	if config.Storage.Internal.Path != "" && !filepath.IsAbs(config.Storage.Internal.Path) {
		config.Storage.Internal.Path = filepath.Join(binDir, config.Storage.Internal.Path)
	}
	if config.Storage.User.Path != "" && !filepath.IsAbs(config.Storage.User.Path) {
		config.Storage.User.Path = filepath.Join(binDir, config.Storage.User.Path)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	storageManager, err := storage.NewStorageManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	quoteOpts := []yahoo.ClientOption{
		yahoo.WithLogger(logger),
		yahoo.WithRateLimit(config.Clients.Yahoo.RateLimit),
		yahoo.WithTimeout(config.Clients.Yahoo.GetTimeout()),
	}
	if config.Clients.Yahoo.BaseURL != "" {
		quoteOpts = append(quoteOpts, yahoo.WithBaseURL(config.Clients.Yahoo.BaseURL))
	}
	quoteClient := yahoo.NewClient(quoteOpts...)

	portfolioService := portfolio.NewService(storageManager, quoteClient, logger)

	logger.Info().
		Str("environment", config.Environment).
		Str("version", common.GetVersion()).
		Msg("Application initialized")

	return &App{
		Config:           config,
		Logger:           logger,
		Storage:          storageManager,
		QuoteClient:      quoteClient,
		PortfolioService: portfolioService,
		StartupTime:      time.Now(),
	}, nil
}

// Close releases all resources held by the app.
func (a *App) Close() {
	if a.Storage != nil {
		if err := a.Storage.Close(); err != nil {
			a.Logger.Error().Err(err).Msg("Failed to close storage")
		}
	}
}
