// Package main provides the shelf CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/matsen/shelf/internal/catalog"
	"github.com/matsen/shelf/internal/config"
	"github.com/matsen/shelf/internal/logging"
	"github.com/matsen/shelf/internal/menu"
	"github.com/matsen/shelf/internal/storage"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	// humanOutput controls whether to use human-readable output
	humanOutput bool
	// inventoryFlag is the --file value; empty means resolve from env/config
	inventoryFlag string
	verbose       bool

	// Resolved in PersistentPreRunE
	paths  config.Paths
	logger = zerolog.Nop()
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// SilenceErrors is set, so print here
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "shelf",
	Short: "Inventory manager for a small book and magazine catalog",
	Long: `shelf manages the inventory of a small store selling books and magazines.

Run without a subcommand to start the interactive menu.

Data is stored in a CSV file (Title,Author,Price,Stock,Type) that is rewritten
on every change. Reports use an ephemeral SQLite index rebuilt from the CSV.
Subcommands output JSON by default; use --human for readable output.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runMenu,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().StringVarP(&inventoryFlag, "file", "f", "", "Inventory CSV file (default $SHELF_FILE, config inventory_file, or items.csv)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug diagnostics to stderr")
	rootCmd.Version = Version
}

// setup loads .env, resolves file locations, and builds the logger.
func setup(cmd *cobra.Command, args []string) error {
	// .env is optional
	_ = godotenv.Load()

	level, err := config.ResolveLogLevel(verbose)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	logger, err = logging.New(os.Stderr, level)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	paths, err = config.Resolve(inventoryFlag)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	logger.Debug().Str("inventory", paths.InventoryFile).Str("index", paths.IndexPath).Msg("resolved paths")
	return nil
}

func runMenu(cmd *cobra.Command, args []string) error {
	store := mustOpenStore()
	if err := menu.New(store, cmd.InOrStdin(), cmd.OutOrStdout()).Run(); err != nil {
		exitWithError(ExitError, "%v", err)
	}
	return nil
}

// mustOpenStore loads the catalog. Any load failure is a data error.
func mustOpenStore() *catalog.Store {
	store, err := catalog.Open(paths.InventoryFile, catalog.WithLogger(logger))
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}
	return store
}

// mustOpenIndex opens the query index and rebuilds it if the backing file changed.
// The caller is responsible for calling Close() on the returned DB.
func mustOpenIndex() *storage.DB {
	db, err := storage.OpenDB(paths.IndexPath)
	if err != nil {
		exitWithError(ExitError, "opening index: %v", err)
	}

	stale, err := db.IsStale(paths.InventoryFile)
	if err != nil {
		db.Close()
		exitWithError(ExitError, "checking index: %v", err)
	}
	if stale {
		count, err := db.RebuildFromCSV(paths.InventoryFile)
		if err != nil {
			db.Close()
			exitWithError(exitCodeFor(err), "rebuilding index: %v", err)
		}
		logger.Info().Int("items", count).Str("index", paths.IndexPath).Msg("rebuilt stale index")
	}
	return db
}
