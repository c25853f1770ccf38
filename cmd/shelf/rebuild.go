package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/shelf/internal/storage"
)

func init() {
	rootCmd.AddCommand(rebuildCmd)
}

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the query index from the inventory file",
	Long: `Rebuild the SQLite query index from the CSV inventory file.

The index is only used for reports. Use this if the index becomes corrupted;
'shelf list' also rebuilds automatically when the inventory file changes.`,
	Args: cobra.NoArgs,
	RunE: runRebuild,
}

// RebuildResult is the response for the rebuild command.
type RebuildResult struct {
	Status string `json:"status"`
	Items  int    `json:"items"`
	Index  string `json:"index"`
}

func runRebuild(cmd *cobra.Command, args []string) error {
	db, err := storage.OpenDB(paths.IndexPath)
	if err != nil {
		exitWithError(ExitError, "opening index: %v", err)
	}
	defer db.Close()

	count, err := db.RebuildFromCSV(paths.InventoryFile)
	if err != nil {
		exitWithError(ExitDataError, "rebuilding index: %v", err)
	}
	logger.Info().Int("items", count).Str("index", paths.IndexPath).Msg("rebuilt index")

	if humanOutput {
		fmt.Printf("Rebuilt query index with %s items\n", formatCount(count))
	} else {
		outputJSON(RebuildResult{Status: "rebuilt", Items: count, Index: paths.IndexPath})
	}
	return nil
}
