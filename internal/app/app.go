// Package app wires configuration, storage, and services into one unit.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ErikGranda885/restocaja/internal/common"
	"github.com/ErikGranda885/restocaja/internal/interfaces"
	"github.com/ErikGranda885/restocaja/internal/services/closure"
	"github.com/ErikGranda885/restocaja/internal/services/ledger"
	"github.com/ErikGranda885/restocaja/internal/storage"
)

// App holds all initialized services and storage. It is the shared core
// used by cmd/restocaja-server and by handler tests.
type App struct {
	Config      *common.Config
	Logger      *common.Logger
	Storage     interfaces.StorageManager
	Ledger      *ledger.Service
	Closures    interfaces.ClosureService
	StartupTime time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes configuration, storage, and services.
// configPath may be empty, in which case the default resolution logic is used.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	binDir := getBinaryDir()

	// Config path resolution: explicit arg, RESTOCAJA_CONFIG, binary dir,
	// then the development fallback.
	if configPath == "" {
		configPath = os.Getenv("RESTOCAJA_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "restocaja.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/restocaja.toml"
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Resolve relative storage path to binary directory
	if config.Storage.Path != "" && !filepath.IsAbs(config.Storage.Path) {
		config.Storage.Path = filepath.Join(binDir, config.Storage.Path)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	storageManager, err := storage.NewStorageManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	ledgerService := ledger.NewService(storageManager, logger)
	closureService := closure.NewService(storageManager, ledgerService, nil, logger)

	a := &App{
		Config:      config,
		Logger:      logger,
		Storage:     storageManager,
		Ledger:      ledgerService,
		Closures:    closureService,
		StartupTime: startupStart,
	}

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")

	return a, nil
}

// Close releases all resources held by the App.
func (a *App) Close() {
	if a.Storage != nil {
		a.Storage.Close()
		a.Storage = nil
	}
}
