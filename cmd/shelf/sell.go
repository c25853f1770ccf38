package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matsen/shelf/internal/catalog"
	"github.com/matsen/shelf/internal/item"
)

var sellYes bool

func init() {
	sellCmd.Flags().BoolVarP(&sellYes, "yes", "y", false, "Sell without asking for confirmation")
	rootCmd.AddCommand(sellCmd)
}

var sellCmd = &cobra.Command{
	Use:   "sell <title>",
	Short: "Sell one unit of an item",
	Long: `Sell one unit of the first item whose title matches exactly.

Asks for confirmation on stdin unless --yes is given. When the last unit is
sold the item is removed from the inventory.

Examples:
  shelf sell Dune
  shelf sell "War and Peace" --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runSell,
}

// SellResponse is the response for the sell command.
type SellResponse struct {
	Status  string    `json:"status"` // sold, cancelled
	Item    item.Item `json:"item"`
	Removed bool      `json:"removed,omitempty"`
}

func runSell(cmd *cobra.Command, args []string) error {
	store := mustOpenStore()

	var confirm catalog.Confirmer = catalog.Always
	if !sellYes {
		confirm = stdinConfirmer(cmd.InOrStdin(), os.Stderr)
	}

	res, err := store.Sell(args[0], confirm)
	switch {
	case errors.Is(err, catalog.ErrNotAvailable):
		exitWithError(exitCodeFor(err), "Item not available.")
	case errors.Is(err, catalog.ErrOutOfStock):
		exitWithError(exitCodeFor(err), "Item out of stock: %s", res.Item)
	case err != nil:
		exitWithError(exitCodeFor(err), "%v", err)
	}

	status := "sold"
	if res.Cancelled {
		status = "cancelled"
	}

	if humanOutput {
		if res.Cancelled {
			fmt.Println("Sale cancelled.")
		} else {
			fmt.Printf("%s sold successfully.\n", res.Item.Kind)
			if res.Removed {
				fmt.Println("Last unit sold; item removed from inventory.")
			}
		}
	} else {
		outputJSON(SellResponse{Status: status, Item: res.Item, Removed: res.Removed})
	}
	return nil
}

// stdinConfirmer asks on prompt until the answer read from in is y or n.
// Prompts go to stderr so JSON on stdout stays clean.
func stdinConfirmer(in io.Reader, prompt io.Writer) catalog.Confirmer {
	reader := bufio.NewReader(in)
	return func(it item.Item) (bool, error) {
		fmt.Fprintln(prompt, it)
		for {
			fmt.Fprint(prompt, "Do you want to sale this item? (y/n) ")
			input, err := reader.ReadString('\n')
			if err != nil && input == "" {
				return false, err
			}
			switch strings.ToLower(strings.TrimSpace(input)) {
			case "y":
				return true, nil
			case "n":
				return false, nil
			}
			if err != nil {
				return false, err
			}
			fmt.Fprintln(prompt, "Please enter 'y' or 'n'.")
		}
	}
}
