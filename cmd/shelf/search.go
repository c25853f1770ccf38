package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/shelf/internal/catalog"
)

func init() {
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <title>",
	Short: "Look up an item by exact title",
	Long: `Look up the first item whose title matches exactly.

Reads the inventory file directly. Use 'shelf list' for filtered reports.

Examples:
  shelf search Dune
  shelf search "The New Yorker" --human`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	store := mustOpenStore()

	it, err := store.Search(args[0])
	if errors.Is(err, catalog.ErrNotAvailable) {
		exitWithError(exitCodeFor(err), "Item not available.")
	}
	if err != nil {
		exitWithError(exitCodeFor(err), "%v", err)
	}

	if humanOutput {
		fmt.Println(it)
	} else {
		outputJSON(it)
	}
	return nil
}
