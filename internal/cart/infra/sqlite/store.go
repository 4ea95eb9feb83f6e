package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/neeste/storefront/internal/cart/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS cart_items (
	position    INTEGER PRIMARY KEY AUTOINCREMENT,
	product_id  TEXT NOT NULL UNIQUE,
	name        TEXT NOT NULL,
	currency    TEXT NOT NULL,
	unit_amount INTEGER NOT NULL,
	quantity    INTEGER NOT NULL,
	kind        TEXT NOT NULL,
	image_url   TEXT NOT NULL DEFAULT ''
);`

// Store persists the cart in a local SQLite file so it survives process
// restarts. Save replaces the whole cart in one transaction.
type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open cart db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate cart db: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Load(ctx context.Context) ([]domain.Item, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT product_id, name, currency, unit_amount, quantity, kind, image_url
		FROM cart_items ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		var it domain.Item
		var kind string
		if err := rows.Scan(&it.ProductID, &it.Name, &it.UnitPrice.Currency,
			&it.UnitPrice.Amount, &it.Quantity, &kind, &it.ImageURL); err != nil {
			return nil, err
		}
		it.Kind = domain.Kind(kind)
		items = append(items, it)
	}
	return items, rows.Err()
}

func (s *Store) Save(ctx context.Context, items []domain.Item) error {
	return s.execTX(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items`); err != nil {
			return err
		}
		for _, it := range items {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO cart_items (product_id, name, currency, unit_amount, quantity, kind, image_url)
				VALUES (?, ?, ?, ?, ?, ?, ?)`,
				it.ProductID, it.Name, it.UnitPrice.Currency, it.UnitPrice.Amount,
				it.Quantity, string(it.Kind), it.ImageURL)
			if err != nil {
				return fmt.Errorf("save cart line %s: %w", it.ProductID, err)
			}
		}
		return nil
	})
}

func (s *Store) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM cart_items`)
	return err
}

func (s *Store) execTX(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("tx err: %w; rollback err: %v", err, rbErr)
		}
		return err
	}

	return tx.Commit()
}
