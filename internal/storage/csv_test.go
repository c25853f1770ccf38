package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matsen/shelf/internal/item"
)

func TestReadAll_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "items.csv")

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	f.Close()

	items, err := ReadAll(path)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(items) != 0 {
		t.Errorf("ReadAll() returned %d items, want 0", len(items))
	}
}

func TestReadAll_NonExistentFile(t *testing.T) {
	items, err := ReadAll("/nonexistent/path/items.csv")
	if err != nil {
		t.Fatalf("ReadAll() error = %v (should return nil for nonexistent file)", err)
	}
	if len(items) != 0 {
		t.Errorf("ReadAll() returned %v, want nil or empty slice", items)
	}
}

func TestReadAll_HeaderOnly(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "items.csv")

	if err := os.WriteFile(path, []byte("Title,Author,Price,Stock,Type\n"), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	items, err := ReadAll(path)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(items) != 0 {
		t.Errorf("ReadAll() returned %d items, want 0", len(items))
	}
}

func TestReadAll_MultipleItems(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "items.csv")

	content := strings.Join([]string{
		"Title,Author,Price,Stock,Type",
		"Dune,Herbert,20,3,Book",
		"Wired,Conde Nast,8,12,Magazine",
		"Emma,Austen,12,1,Book",
	}, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	items, err := ReadAll(path)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("ReadAll() returned %d items, want 3", len(items))
	}

	// Check order is preserved
	if items[0].Title != "Dune" || items[1].Title != "Wired" || items[2].Title != "Emma" {
		t.Errorf("ReadAll() returned items in wrong order: %v, %v, %v", items[0].Title, items[1].Title, items[2].Title)
	}

	want := item.Item{Title: "Wired", Author: "Conde Nast", Price: 8, Stock: 12, Kind: item.KindMagazine}
	if items[1] != want {
		t.Errorf("items[1] = %+v, want %+v", items[1], want)
	}
}

func TestReadAll_UnknownKindIsMagazine(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "items.csv")

	content := "Title,Author,Price,Stock,Type\nManga,Oda,5,2,Comic\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	items, err := ReadAll(path)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("ReadAll() returned %d items, want 1", len(items))
	}
	if items[0].Kind != item.KindMagazine {
		t.Errorf("Kind = %q, want Magazine", items[0].Kind)
	}
}

func TestReadAll_MalformedRows(t *testing.T) {
	tests := []struct {
		name     string
		row      string
		wantLine string // empty means the row loads
		want     item.Item
	}{
		{"too few columns", "Dune,Herbert,20,3", "line 2", item.Item{}},
		{"too many columns", "Dune,Herbert,20,3,Book,extra", "line 2", item.Item{}},
		{"non-integer price", "Dune,Herbert,twenty,3,Book", "line 2", item.Item{}},
		{"non-integer stock", "Dune,Herbert,20,3.5,Book", "line 2", item.Item{}},
		{"bare quote in title", `5" Ruler Guide,Acme,3,2,Book`, "",
			item.Item{Title: `5" Ruler Guide`, Author: "Acme", Price: 3, Stock: 2, Kind: item.KindBook}},
		{"spaces around numbers", "Dune,Herbert, 20, 3,Book", "",
			item.Item{Title: "Dune", Author: "Herbert", Price: 20, Stock: 3, Kind: item.KindBook}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "items.csv")
			content := "Title,Author,Price,Stock,Type\n" + tt.row + "\n"
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				t.Fatalf("Failed to write test file: %v", err)
			}

			items, err := ReadAll(path)
			if tt.wantLine == "" {
				if err != nil {
					t.Fatalf("ReadAll() error = %v", err)
				}
				if len(items) != 1 || items[0] != tt.want {
					t.Errorf("ReadAll() = %+v, want [%+v]", items, tt.want)
				}
				return
			}

			if err == nil {
				t.Fatal("ReadAll() expected error for malformed row")
			}
			if !errors.Is(err, ErrMalformed) {
				t.Errorf("ReadAll() error = %v, want ErrMalformed", err)
			}
			if !strings.Contains(err.Error(), tt.wantLine) {
				t.Errorf("ReadAll() error = %q, want it to mention %q", err, tt.wantLine)
			}
		})
	}
}

func TestWriteAll(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "items.csv")

	items := []item.Item{
		{Title: "Dune", Author: "Herbert", Price: 20, Stock: 3, Kind: item.KindBook},
		{Title: "Wired", Author: "Conde Nast", Price: 8, Stock: 12, Kind: item.KindMagazine},
	}

	if err := WriteAll(path, items); err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading written file: %v", err)
	}
	want := "Title,Author,Price,Stock,Type\nDune,Herbert,20,3,Book\nWired,Conde Nast,8,12,Magazine\n"
	if string(data) != want {
		t.Errorf("WriteAll() content = %q, want %q", string(data), want)
	}
}

func TestWriteAll_Overwrites(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "items.csv")

	initial := []item.Item{
		{Title: "Old1", Author: "O", Price: 1, Stock: 1, Kind: item.KindBook},
		{Title: "Old2", Author: "O", Price: 1, Stock: 1, Kind: item.KindBook},
	}
	if err := WriteAll(path, initial); err != nil {
		t.Fatalf("Initial WriteAll() error = %v", err)
	}

	updated := []item.Item{
		{Title: "New1", Author: "N", Price: 2, Stock: 2, Kind: item.KindMagazine},
	}
	if err := WriteAll(path, updated); err != nil {
		t.Fatalf("Second WriteAll() error = %v", err)
	}

	read, err := ReadAll(path)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(read) != 1 {
		t.Fatalf("After overwrite, got %d items, want 1", len(read))
	}
	if read[0].Title != "New1" {
		t.Errorf("After overwrite, Title = %q, want New1", read[0].Title)
	}
}

func TestWriteAll_LeavesNoTempFiles(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "items.csv")

	if err := WriteAll(path, []item.Item{{Title: "A", Author: "B", Price: 1, Stock: 1, Kind: item.KindBook}}); err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "items.csv" {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("directory contains %v, want only items.csv", names)
	}
}

func TestAppend(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "items.csv")

	first := item.Item{Title: "Dune", Author: "Herbert", Price: 20, Stock: 3, Kind: item.KindBook}
	second := item.Item{Title: "Wired", Author: "Conde Nast", Price: 8, Stock: 12, Kind: item.KindMagazine}

	// Append to new file writes the header
	if err := Append(path, first); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := Append(path, second); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	read, err := ReadAll(path)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(read) != 2 {
		t.Fatalf("After 2 Appends, got %d items, want 2", len(read))
	}
	if read[0] != first || read[1] != second {
		t.Errorf("After Append(), got %+v, want [%+v %+v]", read, first, second)
	}
}

func TestFindByTitle(t *testing.T) {
	items := []item.Item{
		{Title: "Dune", Stock: 3},
		{Title: "Emma", Stock: 1},
		{Title: "Dune", Stock: 9}, // duplicate title
	}

	tests := []struct {
		title   string
		wantIdx int
		wantOK  bool
	}{
		{"Dune", 0, true}, // first match wins
		{"Emma", 1, true},
		{"dune", -1, false}, // exact match only
		{"Missing", -1, false},
		{"", -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			idx, ok := FindByTitle(items, tt.title)
			if idx != tt.wantIdx || ok != tt.wantOK {
				t.Errorf("FindByTitle(%q) = (%d, %v), want (%d, %v)", tt.title, idx, ok, tt.wantIdx, tt.wantOK)
			}
		})
	}
}

func TestRoundTrip_PreservesEverything(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "items.csv")

	original := []item.Item{
		{Title: "Dune", Author: "Herbert", Price: 20, Stock: 3, Kind: item.KindBook},
		{Title: "War, and Peace", Author: "Tolstoy, Leo", Price: 35, Stock: 1, Kind: item.KindBook},
		{Title: `The "Economist"`, Author: "Economist Group", Price: 9, Stock: 40, Kind: item.KindMagazine},
		{Title: "Café ñ", Author: "α β γ", Price: 0, Stock: 2, Kind: item.KindMagazine},
	}

	if err := WriteAll(path, original); err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}

	read, err := ReadAll(path)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(read) != len(original) {
		t.Fatalf("ReadAll() returned %d items, want %d", len(read), len(original))
	}
	for i := range original {
		if read[i] != original[i] {
			t.Errorf("item %d = %+v, want %+v", i, read[i], original[i])
		}
	}
}

func TestFingerprint(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "items.csv")

	fp, err := Fingerprint(path)
	if err != nil {
		t.Fatalf("Fingerprint() error = %v", err)
	}
	if fp != "" {
		t.Errorf("Fingerprint() of missing file = %q, want empty", fp)
	}

	if err := WriteAll(path, []item.Item{{Title: "A", Author: "B", Price: 1, Stock: 1, Kind: item.KindBook}}); err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}
	fp1, err := Fingerprint(path)
	if err != nil {
		t.Fatalf("Fingerprint() error = %v", err)
	}
	if len(fp1) != 64 {
		t.Errorf("Fingerprint() length = %d, want 64 hex chars", len(fp1))
	}

	fp2, _ := Fingerprint(path)
	if fp1 != fp2 {
		t.Error("Fingerprint() is not stable for unchanged file")
	}

	if err := Append(path, item.Item{Title: "C", Author: "D", Price: 2, Stock: 2, Kind: item.KindMagazine}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	fp3, _ := Fingerprint(path)
	if fp3 == fp1 {
		t.Error("Fingerprint() did not change after file modification")
	}
}
