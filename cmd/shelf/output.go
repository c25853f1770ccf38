package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/matsen/shelf/internal/item"
)

// Title truncation length in table output
const ListTitleMaxLen = 40

// printer formats numbers with thousands separators for human output.
var printer = message.NewPrinter(language.English)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError writes an error message to stderr and returns the exit code.
func outputError(code int, format string, args ...interface{}) int {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	return code
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		outputError(code, "%s", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ItemResponse wraps a single item with a status.
type ItemResponse struct {
	Status string    `json:"status"`
	Item   item.Item `json:"item"`
}

// formatPrice formats a whole-dollar price, e.g. 1200 -> "$1,200".
func formatPrice(price int) string {
	return printer.Sprintf("$%d", price)
}

// formatCount formats an integer with thousands separators.
func formatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// truncateString truncates a string to maxLen runes, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}

// writeItemsTable renders items as an aligned table.
func writeItemsTable(w io.Writer, items []item.Item) error {
	table := tablewriter.NewWriter(w)
	table.Header("Title", "Author", "Price", "Stock", "Type")
	for _, it := range items {
		row := []string{
			truncateString(it.Title, ListTitleMaxLen),
			it.Author,
			formatPrice(it.Price),
			strconv.Itoa(it.Stock),
			string(it.Kind),
		}
		if err := table.Append(row); err != nil {
			return fmt.Errorf("rendering row: %w", err)
		}
	}
	return table.Render()
}
