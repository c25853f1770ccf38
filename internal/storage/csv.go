// Package storage handles persistence of catalog entries in CSV and SQLite formats.
package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/matsen/shelf/internal/item"
)

// Header is the first row of every backing file.
var Header = []string{"Title", "Author", "Price", "Stock", "Type"}

// columnCount is the number of fields in every data row.
const columnCount = 5

// ErrMalformed is wrapped by every row-level parse failure.
var ErrMalformed = errors.New("malformed inventory row")

// ReadAll reads all items from a CSV backing file, skipping the header row.
// A missing file is not an error and returns an empty slice.
func ReadAll(path string) ([]item.Item, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening inventory file: %w", err)
	}
	defer f.Close()

	return readItems(f)
}

// readItems parses CSV rows from r. Line numbers in errors are 1-based and count the header.
func readItems(r io.Reader) ([]item.Item, error) {
	reader := csv.NewReader(r)
	// Column count is checked per row so the error can name the line
	reader.FieldsPerRecord = -1
	// Hand-edited titles like 5" Ruler keep their quote as text
	reader.LazyQuotes = true

	var items []item.Item
	lineNum := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		lineNum++
		if err != nil {
			return nil, fmt.Errorf("reading line %d: %w: %w", lineNum, ErrMalformed, err)
		}
		if lineNum == 1 {
			continue // header
		}

		it, err := parseRecord(record)
		if err != nil {
			return nil, fmt.Errorf("parsing line %d: %w: %w", lineNum, ErrMalformed, err)
		}
		items = append(items, it)
	}

	return items, nil
}

// parseRecord converts one CSV row into an item.
func parseRecord(record []string) (item.Item, error) {
	if len(record) != columnCount {
		return item.Item{}, fmt.Errorf("expected %d columns, got %d", columnCount, len(record))
	}

	// Surrounding spaces around numbers are tolerated, e.g. "Dune,Herbert, 20, 3,Book"
	price, err := strconv.Atoi(strings.TrimSpace(record[2]))
	if err != nil {
		return item.Item{}, fmt.Errorf("invalid price %q: %w", record[2], err)
	}
	stock, err := strconv.Atoi(strings.TrimSpace(record[3]))
	if err != nil {
		return item.Item{}, fmt.Errorf("invalid stock %q: %w", record[3], err)
	}

	return item.Item{
		Title:  record[0],
		Author: record[1],
		Price:  price,
		Stock:  stock,
		Kind:   item.ParseKind(record[4]),
	}, nil
}

// formatRecord converts an item into a CSV row.
func formatRecord(it item.Item) []string {
	return []string{
		it.Title,
		it.Author,
		strconv.Itoa(it.Price),
		strconv.Itoa(it.Stock),
		string(it.Kind),
	}
}

// WriteAll rewrites the backing file with the header and all items.
// The content goes to a temp file in the same directory which then replaces the target.
func WriteAll(path string, items []item.Item) error {
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()

	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		f.Close()
		return fmt.Errorf("writing header: %w", err)
	}
	for i, it := range items {
		if err := w.Write(formatRecord(it)); err != nil {
			f.Close()
			return fmt.Errorf("writing item %d: %w", i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flushing inventory file: %w", err)
	}

	if err := f.Chmod(0644); err != nil {
		f.Close()
		return fmt.Errorf("setting file mode: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing inventory file: %w", err)
	}
	return nil
}

// Append adds an item to the end of a backing file, writing the header first if the file is new or empty.
func Append(path string, it item.Item) error {
	needHeader := false
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		needHeader = true
	case err != nil:
		return fmt.Errorf("checking inventory file: %w", err)
	case info.Size() == 0:
		needHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening inventory file for append: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if needHeader {
		if err := w.Write(Header); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	if err := w.Write(formatRecord(it)); err != nil {
		return fmt.Errorf("writing item: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing inventory file: %w", err)
	}

	return nil
}

// FindByTitle returns the index of the first item with an exactly matching title.
func FindByTitle(items []item.Item, title string) (int, bool) {
	for i, it := range items {
		if it.Title == title {
			return i, true
		}
	}
	return -1, false
}
