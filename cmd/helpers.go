package cmd

import (
	"fmt"

	"github.com/pydata-academy/academy/internal/catalog"
	"github.com/pydata-academy/academy/internal/config"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `academy init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// loadCatalog loads the compiled-in course catalog.
func loadCatalog() (*catalog.Catalog, error) {
	c, err := catalog.Default()
	if err != nil {
		return nil, fmt.Errorf("loading course catalog: %w", err)
	}
	return c, nil
}
