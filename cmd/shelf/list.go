package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matsen/shelf/internal/item"
	"github.com/matsen/shelf/internal/storage"
)

var (
	listKind     string
	listAuthor   string
	listLowStock int
)

func init() {
	listCmd.Flags().StringVarP(&listKind, "kind", "k", "", "Only items of this type (Book or Magazine)")
	listCmd.Flags().StringVarP(&listAuthor, "author", "a", "", "Only items whose author/publisher contains this text (case-insensitive)")
	listCmd.Flags().IntVar(&listLowStock, "low-stock", 0, "Only items with at most this many units in stock")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List inventory items with optional filters",
	Long: `List inventory items in file order using the query index.

The index is rebuilt automatically when the inventory file has changed.

Examples:
  shelf list --human
  shelf list --kind Magazine
  shelf list --author herbert --low-stock 2`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	filter := storage.ListFilter{Author: listAuthor}
	if cmd.Flags().Changed("low-stock") {
		if listLowStock < 0 {
			exitWithError(ExitError, "--low-stock must not be negative")
		}
		filter.LowStock = &listLowStock
	}
	if listKind != "" {
		kind, err := item.ValidateKind(listKind)
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		filter.Kind = kind
	}
	db := mustOpenIndex()
	defer db.Close()

	items, err := db.List(filter)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	// Empty result is not an error
	if items == nil {
		items = []item.Item{}
	}

	if humanOutput {
		if len(items) == 0 {
			fmt.Println("No items found")
			return nil
		}
		if err := writeItemsTable(os.Stdout, items); err != nil {
			exitWithError(ExitError, "%v", err)
		}
	} else {
		outputJSON(items)
	}
	return nil
}
