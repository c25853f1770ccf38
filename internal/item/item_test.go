package item

import (
	"errors"
	"testing"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"Book", KindBook},
		{"Magazine", KindMagazine},
		{"book", KindMagazine}, // case-sensitive
		{"Comic", KindMagazine},
		{"", KindMagazine},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseKind(tt.in); got != tt.want {
				t.Errorf("ParseKind(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidateKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"Book", KindBook, false},
		{"Magazine", KindMagazine, false},
		{"book", "", true},
		{"Comic", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ValidateKind(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateKind(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidKind) {
				t.Errorf("ValidateKind(%q) error = %v, want ErrInvalidKind", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ValidateKind(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestItemString(t *testing.T) {
	it := Item{Title: "Dune", Author: "Herbert", Price: 20, Stock: 3, Kind: KindBook}
	want := "Dune by Herbert: $20 (3 in stock)"
	if got := it.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestInStock(t *testing.T) {
	if !(Item{Stock: 1}).InStock() {
		t.Error("InStock() = false for stock 1")
	}
	if (Item{Stock: 0}).InStock() {
		t.Error("InStock() = true for stock 0")
	}
	if (Item{Stock: -2}).InStock() {
		t.Error("InStock() = true for negative stock")
	}
}
