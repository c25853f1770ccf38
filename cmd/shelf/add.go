package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/shelf/internal/item"
)

var (
	addTitle  string
	addAuthor string
	addPrice  int
	addStock  int
	addKind   string
)

func init() {
	addCmd.Flags().StringVarP(&addTitle, "title", "t", "", "Item title (required)")
	addCmd.Flags().StringVarP(&addAuthor, "author", "a", "", "Author or publisher name")
	addCmd.Flags().IntVar(&addPrice, "price", 0, "Price in whole dollars")
	addCmd.Flags().IntVar(&addStock, "stock", 1, "Units in stock")
	addCmd.Flags().StringVarP(&addKind, "kind", "k", string(item.KindBook), "Item type: Book or Magazine")
	_ = addCmd.MarkFlagRequired("title")
	rootCmd.AddCommand(addCmd)
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new item to the inventory",
	Long: `Add a new item to the end of the inventory file.

Titles are not required to be unique; sell and search always act on the
first item with a matching title.

Examples:
  shelf add --title Dune --author Herbert --price 20 --stock 3
  shelf add -t Wired -a "Conde Nast" --price 8 --stock 12 --kind Magazine`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	kind, err := item.ValidateKind(addKind)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	store := mustOpenStore()
	it := item.Item{Title: addTitle, Author: addAuthor, Price: addPrice, Stock: addStock, Kind: kind}
	if err := store.Add(it); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if humanOutput {
		fmt.Printf("%s added successfully.\n", it.Kind)
	} else {
		outputJSON(ItemResponse{Status: "added", Item: it})
	}
	return nil
}
