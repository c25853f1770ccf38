package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matsen/shelf/internal/config"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set global configuration values",
	Long: `Get or set values in the global config file (~/.config/shelf/config.yml).

Usage:
  shelf config                                  # Show all config
  shelf config inventory-file                   # Get specific value
  shelf config inventory-file ~/store/items.csv # Set value
  shelf config log-level info

Keys:
  inventory-file  Default inventory CSV (overridden by $SHELF_FILE and --file)
  index-path      Query index location (default: .shelf/index.db next to the CSV)
  log-level       Diagnostic log level (debug, info, warn, error)`,
	Args:              cobra.MaximumNArgs(2),
	// Skip root setup so a broken log_level can still be fixed here
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE:              runConfig,
}

// ConfigResponse is the response for config get commands.
type ConfigResponse struct {
	InventoryFile string `json:"inventory_file"`
	IndexPath     string `json:"index_path"`
	LogLevel      string `json:"log_level"`
	ConfigPath    string `json:"config_path"`
}

// UpdateResponse is the response for config set commands.
type UpdateResponse struct {
	Status string `json:"status"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadGlobalConfig()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	// No args: show all config
	if len(args) == 0 {
		if humanOutput {
			fmt.Printf("inventory-file: %s\n", cfg.InventoryFile)
			fmt.Printf("index-path:     %s\n", cfg.IndexPath)
			fmt.Printf("log-level:      %s\n", cfg.LogLevel)
		} else {
			outputJSON(ConfigResponse{
				InventoryFile: cfg.InventoryFile,
				IndexPath:     cfg.IndexPath,
				LogLevel:      cfg.LogLevel,
				ConfigPath:    config.GlobalConfigPath(),
			})
		}
		return nil
	}

	key := normalizeKey(args[0])

	// One arg: get specific value
	if len(args) == 1 {
		var value string
		switch key {
		case "inventory-file":
			value = cfg.InventoryFile
		case "index-path":
			value = cfg.IndexPath
		case "log-level":
			value = cfg.LogLevel
		default:
			exitWithError(ExitError, "unknown configuration key: %s", args[0])
		}
		if humanOutput {
			fmt.Println(value)
		} else {
			outputJSON(map[string]string{strings.ReplaceAll(key, "-", "_"): value})
		}
		return nil
	}

	// Two args: set value
	value := args[1]

	switch key {
	case "inventory-file":
		cfg.InventoryFile = config.ExpandTilde(value)
	case "index-path":
		cfg.IndexPath = config.ExpandTilde(value)
	case "log-level":
		value = strings.ToLower(value)
		if err := config.ValidateLogLevel(value); err != nil {
			exitWithError(ExitError, "%v", err)
		}
		cfg.LogLevel = value
	default:
		exitWithError(ExitError, "unknown configuration key: %s", args[0])
	}

	if err := cfg.Save(); err != nil {
		exitWithError(ExitError, "saving config: %v", err)
	}

	if humanOutput {
		fmt.Printf("Updated %s to %s\n", key, value)
	} else {
		outputJSON(UpdateResponse{
			Status: "updated",
			Key:    key,
			Value:  value,
		})
	}

	return nil
}

// normalizeKey converts key formats (inventory_file, Inventory-File) to inventory-file
func normalizeKey(key string) string {
	key = strings.ToLower(key)
	key = strings.ReplaceAll(key, "_", "-")
	return key
}
