package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/tastetrail/progression/pkg/domain"
)

// Loader loads and validates the mission/badge catalog from a JSON file.
// It performs file reading, JSON parsing, and comprehensive validation.
type Loader struct {
	catalogPath string
	validator   *Validator
	logger      *slog.Logger
}

// NewLoader creates a new catalog Loader.
func NewLoader(catalogPath string, logger *slog.Logger) *Loader {
	return &Loader{
		catalogPath: catalogPath,
		validator:   NewValidator(),
		logger:      logger,
	}
}

// Load reads the catalog file and returns a validated Catalog.
// This is a fail-fast operation: an invalid catalog prevents startup.
func (l *Loader) Load() (*Catalog, error) {
	data, err := os.ReadFile(l.catalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var catalog Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse catalog JSON: %w", err)
	}

	// Backward compatibility: missions without an explicit periodicity are
	// treated as narrative (always current, never reset).
	for _, mission := range catalog.Missions {
		if mission.Periodicity == "" {
			mission.Periodicity = domain.PeriodicityNarrative
		}
	}

	if err := l.validator.Validate(&catalog); err != nil {
		return nil, fmt.Errorf("catalog validation failed: %w", err)
	}

	l.logger.Info("Catalog loaded successfully",
		"missions", len(catalog.Missions),
		"badges", len(catalog.Badges),
		"catalog_path", l.catalogPath,
	)

	return &catalog, nil
}
