package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/commanderxa/alphalabs/internal/compose"
	"github.com/commanderxa/alphalabs/internal/config"
	"github.com/commanderxa/alphalabs/internal/content"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `alphalabs init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// setupLogger installs the configured logger as the slog default.
func setupLogger(cfg *config.Config) *slog.Logger {
	logger := cfg.NewLogger(os.Stderr, verbose)
	slog.SetDefault(logger)
	return logger
}

// loadStore reads the catalogue from content_dir, or the built-in catalogue
// when none is configured.
func loadStore(cfg *config.Config) (*content.Store, error) {
	assets := os.DirFS(cfg.AssetDir)
	if cfg.ContentDir == "" {
		store, err := content.Default(assets)
		if err != nil {
			return nil, fmt.Errorf("loading built-in catalogue: %w", err)
		}
		return store, nil
	}
	store, err := content.Load(os.DirFS(cfg.ContentDir), assets)
	if err != nil {
		return nil, fmt.Errorf("loading catalogue from %s: %w", cfg.ContentDir, err)
	}
	return store, nil
}

func siteBase(cfg *config.Config) compose.Base {
	return compose.Base{Root: cfg.BasePath}
}

