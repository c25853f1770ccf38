package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/matsen/shelf/internal/item"
	_ "modernc.org/sqlite"
)

// metaFingerprintKey is the index_meta key holding the backing file digest at last rebuild.
const metaFingerprintKey = "csv_fingerprint"

// DB wraps the SQLite query index. The CSV backing file is the source of truth;
// the index can be dropped and rebuilt at any time.
type DB struct {
	db *sql.DB
}

// selectItemFields contains the standard field list for SELECT queries.
const selectItemFields = `title, author, price, stock, kind`

// OpenDB opens or creates a SQLite database at the given path.
func OpenDB(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// createSchema creates the database schema if it doesn't exist.
func createSchema(db *sql.DB) error {
	schema := `
		-- One row per catalog entry; position preserves file order
		CREATE TABLE IF NOT EXISTS items (
			position INTEGER PRIMARY KEY,
			title TEXT NOT NULL,
			author TEXT NOT NULL,
			price INTEGER NOT NULL,
			stock INTEGER NOT NULL,
			kind TEXT NOT NULL CHECK (kind IN ('Book', 'Magazine'))
		);

		CREATE INDEX IF NOT EXISTS idx_items_title ON items(title);
		CREATE INDEX IF NOT EXISTS idx_items_kind ON items(kind);

		CREATE TABLE IF NOT EXISTS index_meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`

	_, err := db.Exec(schema)
	return err
}

// RebuildFromCSV clears the index and rebuilds it from a CSV backing file.
func (d *DB) RebuildFromCSV(csvPath string) (int, error) {
	items, err := ReadAll(csvPath)
	if err != nil {
		return 0, fmt.Errorf("reading CSV: %w", err)
	}
	fingerprint, err := Fingerprint(csvPath)
	if err != nil {
		return 0, err
	}

	tx, err := d.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning rebuild: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM items"); err != nil {
		return 0, fmt.Errorf("clearing items table: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO items (position, title, author, price, stock, kind)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing items insert: %w", err)
	}
	defer stmt.Close()

	for i, it := range items {
		if _, err := stmt.Exec(i, it.Title, it.Author, it.Price, it.Stock, string(it.Kind)); err != nil {
			return 0, fmt.Errorf("inserting item %q: %w", it.Title, err)
		}
	}

	if _, err := tx.Exec(`
		INSERT INTO index_meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, metaFingerprintKey, fingerprint); err != nil {
		return 0, fmt.Errorf("recording fingerprint: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing rebuild: %w", err)
	}

	return len(items), nil
}

// StoredFingerprint returns the backing file digest recorded at the last rebuild.
// ok is false if the index has never been built.
func (d *DB) StoredFingerprint() (value string, ok bool, err error) {
	err = d.db.QueryRow(`SELECT value FROM index_meta WHERE key = ?`, metaFingerprintKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading fingerprint: %w", err)
	}
	return value, true, nil
}

// IsStale reports whether the backing file changed since the last rebuild.
// An index that was never built is always stale.
func (d *DB) IsStale(csvPath string) (bool, error) {
	stored, ok, err := d.StoredFingerprint()
	if err != nil {
		return false, err
	}
	if !ok {
		return true, nil
	}

	current, err := Fingerprint(csvPath)
	if err != nil {
		return false, err
	}
	return stored != current, nil
}

// ListFilter contains optional filters for List. Zero values mean no filter.
type ListFilter struct {
	Kind     item.Kind // Exact kind
	Author   string    // Case-insensitive literal substring
	LowStock *int      // Only entries with stock <= *LowStock
}

// List returns entries matching the filter in backing file order.
func (d *DB) List(filter ListFilter) ([]item.Item, error) {
	var conditions []string
	var args []interface{}

	if filter.Kind != "" {
		conditions = append(conditions, "kind = ?")
		args = append(args, string(filter.Kind))
	}
	if filter.Author != "" {
		// instr, not LIKE, so % and _ match themselves
		conditions = append(conditions, "instr(LOWER(author), ?) > 0")
		args = append(args, strings.ToLower(filter.Author))
	}
	if filter.LowStock != nil {
		conditions = append(conditions, "stock <= ?")
		args = append(args, *filter.LowStock)
	}

	query := `SELECT ` + selectItemFields + ` FROM items`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY position"

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// Count returns the number of indexed entries.
func (d *DB) Count() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM items").Scan(&count)
	return count, err
}

// Stats summarizes the indexed inventory.
type Stats struct {
	Entries   int `json:"entries"`
	Books     int `json:"books"`
	Magazines int `json:"magazines"`
	Units     int `json:"units"` // Sum of stock
	Value     int `json:"value"` // Sum of price * stock
}

// Stats computes inventory totals.
func (d *DB) Stats() (Stats, error) {
	var s Stats
	err := d.db.QueryRow(`
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN kind = 'Book' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN kind = 'Magazine' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(stock), 0),
			COALESCE(SUM(price * stock), 0)
		FROM items
	`).Scan(&s.Entries, &s.Books, &s.Magazines, &s.Units, &s.Value)
	if err != nil {
		return Stats{}, fmt.Errorf("computing stats: %w", err)
	}
	return s, nil
}

// scanItems reads all rows into items.
func scanItems(rows *sql.Rows) ([]item.Item, error) {
	var items []item.Item
	for rows.Next() {
		var it item.Item
		var kind string
		if err := rows.Scan(&it.Title, &it.Author, &it.Price, &it.Stock, &kind); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		it.Kind = item.Kind(kind)
		items = append(items, it)
	}
	return items, rows.Err()
}
