// Package item defines the core domain types for catalog entries.
package item

import (
	"errors"
	"fmt"
)

// Kind distinguishes books from magazines. It has no behavioral effect beyond display.
type Kind string

const (
	KindBook     Kind = "Book"
	KindMagazine Kind = "Magazine"
)

// ValidKinds lists the accepted kind values in display order.
var ValidKinds = []Kind{KindBook, KindMagazine}

// ErrInvalidKind is returned when strict kind validation fails.
var ErrInvalidKind = errors.New("invalid item type")

// Item represents a single inventory record.
type Item struct {
	Title  string `json:"title"`  // Lookup key (uniqueness not enforced)
	Author string `json:"author"` // Author or publisher
	Price  int    `json:"price"`
	Stock  int    `json:"stock"`
	Kind   Kind   `json:"kind"`
}

// ParseKind coerces backing-file text to a Kind.
// Only the exact text "Book" yields KindBook; anything else is a magazine.
func ParseKind(s string) Kind {
	if s == string(KindBook) {
		return KindBook
	}
	return KindMagazine
}

// ValidateKind accepts only the exact values "Book" or "Magazine".
func ValidateKind(s string) (Kind, error) {
	for _, k := range ValidKinds {
		if s == string(k) {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q (valid: %v)", ErrInvalidKind, s, ValidKinds)
}

// String formats the item the way the menu prints it.
func (it Item) String() string {
	return fmt.Sprintf("%s by %s: $%d (%d in stock)", it.Title, it.Author, it.Price, it.Stock)
}

// InStock reports whether at least one unit can be sold.
func (it Item) InStock() bool {
	return it.Stock > 0
}
