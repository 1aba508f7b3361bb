// Package migrations applies the embedded Postgres schema.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"QKart/internal/catalog"
)

//go:embed *.sql
var files embed.FS

// Apply runs every embedded migration in name order. The statements are
// idempotent, so Apply is safe on every start.
func Apply(ctx context.Context, db *sql.DB) error {
	names, err := fs.Glob(files, "*.sql")
	if err != nil {
		return err
	}
	sort.Strings(names)

	for _, name := range names {
		raw, err := files.ReadFile(name)
		if err != nil {
			return err
		}
		if _, err := db.ExecContext(ctx, string(raw)); err != nil {
			return fmt.Errorf("migration %s: %w", name, err)
		}
	}
	return nil
}

// SeedProducts inserts the demo catalog when the products table is empty.
func SeedProducts(ctx context.Context, db *sql.DB, products []catalog.Product) error {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT count(*) FROM products`).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for i, p := range products {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO products (id, position, name, category, cost, rating, image)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (id) DO NOTHING
		`, p.ID, i, p.Name, p.Category, p.Cost, p.Rating, p.Image); err != nil {
			return err
		}
	}
	return tx.Commit()
}
