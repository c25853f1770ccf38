// Package config resolves where the inventory lives and how the CLI is configured.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	DefaultInventoryFile = "items.csv"
	IndexDir             = ".shelf"
	IndexFile            = "index.db"
	DefaultLogLevel      = "warn"

	// EnvInventoryFile overrides the global config inventory_file.
	EnvInventoryFile = "SHELF_FILE"
	// EnvLogLevel overrides the global config log_level.
	EnvLogLevel = "SHELF_LOG_LEVEL"
)

// ValidLogLevels lists the supported log_level values.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// ErrInvalidLogLevel is returned for log levels outside ValidLogLevels.
var ErrInvalidLogLevel = errors.New("invalid log level")

// Paths holds the resolved file locations for one invocation.
type Paths struct {
	InventoryFile string `json:"inventory_file"`
	IndexPath     string `json:"index_path"`
}

// IndexPathFor returns the default index location for an inventory file:
// a .shelf directory next to it.
func IndexPathFor(inventoryFile string) string {
	return filepath.Join(filepath.Dir(inventoryFile), IndexDir, IndexFile)
}

// Resolve determines file locations.
// Precedence for the inventory file: flagPath > $SHELF_FILE > global config > items.csv.
func Resolve(flagPath string) (Paths, error) {
	cfg, err := LoadGlobalConfig()
	if err != nil {
		return Paths{}, err
	}

	inventory := firstNonEmpty(
		flagPath,
		os.Getenv(EnvInventoryFile),
		cfg.InventoryFile,
		DefaultInventoryFile,
	)
	inventory = ExpandTilde(inventory)

	abs, err := filepath.Abs(inventory)
	if err != nil {
		return Paths{}, fmt.Errorf("resolving path: %w", err)
	}

	index := cfg.IndexPath
	if index == "" {
		index = IndexPathFor(abs)
	}

	return Paths{InventoryFile: abs, IndexPath: index}, nil
}

// ResolveLogLevel picks the log level: verbose > $SHELF_LOG_LEVEL > global config > warn.
func ResolveLogLevel(verbose bool) (string, error) {
	if verbose {
		return "debug", nil
	}

	cfg, err := LoadGlobalConfig()
	if err != nil {
		return "", err
	}

	level := strings.ToLower(firstNonEmpty(os.Getenv(EnvLogLevel), cfg.LogLevel, DefaultLogLevel))
	if err := ValidateLogLevel(level); err != nil {
		return "", err
	}
	return level, nil
}

// ValidateLogLevel checks that level is one of ValidLogLevels.
func ValidateLogLevel(level string) error {
	for _, valid := range ValidLogLevels {
		if level == valid {
			return nil
		}
	}
	return fmt.Errorf("%w: %s (valid: %v)", ErrInvalidLogLevel, level, ValidLogLevels)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
