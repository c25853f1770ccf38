package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/shelf/internal/item"
	"github.com/matsen/shelf/internal/storage"
)

var importDryRun bool

func init() {
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Show what would be imported without writing")
	rootCmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Append all items from another inventory CSV",
	Long: `Append every row of another inventory CSV (same Title,Author,Price,Stock,Type
format) to the end of the inventory file.

Rows are appended as-is; titles already present are not merged.

Examples:
  shelf import delivery.csv
  shelf import delivery.csv --dry-run --human`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

// ImportResult is the response for the import command.
type ImportResult struct {
	Status   string      `json:"status"` // imported, dry-run
	Imported int         `json:"imported"`
	Items    []item.Item `json:"items"`
}

func runImport(cmd *cobra.Command, args []string) error {
	// Validate the target before touching it
	mustOpenStore()

	incoming, err := importItems(paths.InventoryFile, args[0], importDryRun)
	if err != nil {
		exitWithError(exitCodeFor(err), "%v", err)
	}
	if !importDryRun {
		logger.Debug().Int("items", len(incoming)).Str("from", args[0]).Msg("imported items")
	}

	status := "imported"
	if importDryRun {
		status = "dry-run"
	}

	if humanOutput {
		verb := "Imported"
		if importDryRun {
			verb = "Would import"
		}
		fmt.Printf("%s %s items\n", verb, formatCount(len(incoming)))
		for _, it := range incoming {
			fmt.Printf("  %s\n", it)
		}
	} else {
		outputJSON(ImportResult{Status: status, Imported: len(incoming), Items: incoming})
	}
	return nil
}

// importItems appends every row of source to target and returns the rows.
// With dryRun set, target is left untouched.
func importItems(target, source string, dryRun bool) ([]item.Item, error) {
	incoming, err := storage.ReadAll(source)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", source, err)
	}
	if incoming == nil {
		incoming = []item.Item{}
	}
	if dryRun {
		return incoming, nil
	}

	for _, it := range incoming {
		if err := storage.Append(target, it); err != nil {
			return nil, fmt.Errorf("appending %q: %w", it.Title, err)
		}
	}
	return incoming, nil
}
