// Package catalog owns the in-memory inventory and keeps it synchronized with the backing file.
package catalog

import (
	"errors"
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	"github.com/matsen/shelf/internal/item"
	"github.com/matsen/shelf/internal/storage"
)

var (
	// ErrNotAvailable is returned when no entry has the requested title.
	ErrNotAvailable = errors.New("item not available")
	// ErrOutOfStock is returned when selling an entry whose stock is already zero or negative.
	ErrOutOfStock = errors.New("item out of stock")
)

// Confirmer decides whether a sale of the given entry should proceed.
type Confirmer func(it item.Item) (bool, error)

// Always is a Confirmer that accepts every sale.
func Always(item.Item) (bool, error) { return true, nil }

// SellResult describes the outcome of a Sell call that found its entry.
type SellResult struct {
	Item      item.Item `json:"item"`      // Entry after the sale (or unchanged if cancelled)
	Cancelled bool      `json:"cancelled"` // Confirmer declined
	Removed   bool      `json:"removed"`   // Stock reached zero and the entry was dropped
}

// Store holds the ordered list of entries backed by a CSV file.
// Every mutation rewrites the whole file.
type Store struct {
	path  string
	items []item.Item
	log   zerolog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for load/save diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// New creates an empty Store for the backing file at path. Call Load to populate it.
func New(path string, opts ...Option) *Store {
	s := &Store{path: path, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open creates a Store and loads it from the backing file.
func Open(path string, opts ...Option) (*Store, error) {
	s := New(path, opts...)
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load replaces the in-memory list with the contents of the backing file.
// A missing file yields an empty catalog.
func (s *Store) Load() error {
	items, err := storage.ReadAll(s.path)
	if err != nil {
		return fmt.Errorf("loading %s: %w", s.path, err)
	}
	s.items = items
	s.log.Debug().Str("path", s.path).Int("items", len(items)).Msg("loaded inventory")
	return nil
}

// Save rewrites the backing file from the in-memory list.
func (s *Store) Save() error {
	if err := storage.WriteAll(s.path, s.items); err != nil {
		return fmt.Errorf("saving %s: %w", s.path, err)
	}
	s.log.Debug().Str("path", s.path).Int("items", len(s.items)).Msg("saved inventory")
	return nil
}

// Add appends an entry and persists the catalog.
// Duplicate titles are allowed; lookups always act on the first match.
func (s *Store) Add(it item.Item) error {
	prev := s.items
	s.items = append(slices.Clip(s.items), it)
	if err := s.Save(); err != nil {
		s.items = prev
		return err
	}
	return nil
}

// Sell sells one unit of the first entry titled title.
// confirm is consulted once the entry is found; a nil confirm accepts the sale.
func (s *Store) Sell(title string, confirm Confirmer) (SellResult, error) {
	idx, ok := storage.FindByTitle(s.items, title)
	if !ok {
		return SellResult{}, ErrNotAvailable
	}

	current := s.items[idx]
	if !current.InStock() {
		return SellResult{Item: current}, ErrOutOfStock
	}

	if confirm == nil {
		confirm = Always
	}
	accepted, err := confirm(current)
	if err != nil {
		return SellResult{Item: current}, fmt.Errorf("confirming sale: %w", err)
	}
	if !accepted {
		return SellResult{Item: current, Cancelled: true}, nil
	}

	prev := slices.Clone(s.items)
	sold := current
	sold.Stock--
	result := SellResult{Item: sold}
	if sold.Stock == 0 {
		s.items = slices.Delete(s.items, idx, idx+1)
		result.Removed = true
	} else {
		s.items[idx] = sold
	}

	if err := s.Save(); err != nil {
		s.items = prev
		return SellResult{Item: current}, err
	}

	s.log.Debug().Str("title", title).Int("stock", sold.Stock).Bool("removed", result.Removed).Msg("sold item")
	return result, nil
}

// Search returns the first entry titled title.
func (s *Store) Search(title string) (item.Item, error) {
	idx, ok := storage.FindByTitle(s.items, title)
	if !ok {
		return item.Item{}, ErrNotAvailable
	}
	return s.items[idx], nil
}

// Items returns a copy of the entries in catalog order.
func (s *Store) Items() []item.Item {
	return slices.Clone(s.items)
}

// Len returns the number of entries.
func (s *Store) Len() int {
	return len(s.items)
}
