// Package sqlite loads the product catalog from a SQLite database file.
//
// The catalog is read once at startup into memory; the database is never
// touched again while the server runs. WAL mode is enabled on Open so an
// operator editing products with the sqlite3 CLI does not block the load.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/SKTA1805/Smart-trolley/internal/catalog"

	// Register the pure-Go SQLite driver. modernc.org/sqlite avoids CGO,
	// which keeps the image build trivial on Alpine.
	_ "modernc.org/sqlite"
)

// schema is the DDL executed once on startup. Idempotent.
const schema = `
CREATE TABLE IF NOT EXISTS products (
    -- RFID tag read off the physical label. One row per product.
    tag    TEXT    PRIMARY KEY,

    -- Display name shown on the cart screen and the bill.
    name   TEXT    NOT NULL,

    -- Unit price in rupees. CHECK keeps bad imports out of the catalog.
    price  REAL    NOT NULL CHECK (price >= 0)
);
`

// defaultProducts seeds an empty catalog so a fresh checkout lane works
// out of the box. Tags match the labels shipped with the demo scanner.
var defaultProducts = map[string]catalog.Product{
	"4D00A7B52F70": {Name: "Dark Fantasy", Price: 50.0},
	"4D00A6F2554C": {Name: "Bread Board", Price: 50.0},
	"4D00A6F2253C": {Name: "Product3", Price: 20.0},
	"4D00A7B594CB": {Name: "Product4", Price: 30.0},
}

// Store owns the catalog database handle.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database at the given path, applies
// the schema, and seeds the default products when the table is empty.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)

	// "sqlite", not "sqlite3", for the modernc driver.
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("catalog sqlite: open %q: %w", path, err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("catalog sqlite: apply schema: %w", err)
	}

	s := &Store{db: db}
	if err := s.seedIfEmpty(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the database connection. Call it with defer in main().
func (s *Store) Close() error {
	return s.db.Close()
}

// Load reads every product row and returns the immutable in-memory
// catalog the rest of the process resolves tags against.
func (s *Store) Load(ctx context.Context) (*catalog.Catalog, error) {
	const q = `SELECT tag, name, price FROM products`

	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("catalog sqlite: load products: %w", err)
	}
	defer rows.Close()

	products := make(map[string]catalog.Product)
	for rows.Next() {
		var tag string
		var p catalog.Product
		if err := rows.Scan(&tag, &p.Name, &p.Price); err != nil {
			return nil, fmt.Errorf("catalog sqlite: scan product: %w", err)
		}
		products[tag] = p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catalog sqlite: iterate products: %w", err)
	}

	return catalog.New(products), nil
}

// seedIfEmpty inserts the default products when the table holds no rows.
func (s *Store) seedIfEmpty(ctx context.Context) error {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return fmt.Errorf("catalog sqlite: count products: %w", err)
	}
	if n > 0 {
		return nil
	}

	const q = `INSERT INTO products (tag, name, price) VALUES (?, ?, ?)`
	for tag, p := range defaultProducts {
		if _, err := s.db.ExecContext(ctx, q, tag, p.Name, p.Price); err != nil {
			return fmt.Errorf("catalog sqlite: seed %q: %w", tag, err)
		}
	}
	return nil
}
