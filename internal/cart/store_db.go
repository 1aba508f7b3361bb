package cart

import (
	"context"
	"database/sql"
	"time"
)

const (
	pingTimeout  = 1 * time.Second
	queryTimeout = 3 * time.Second
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return s.db.PingContext(ctx)
}

func (s *PostgresStore) Get(ctx context.Context, userID string) ([]Record, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	return listRecords(ctx, s.db, userID)
}

func (s *PostgresStore) Set(ctx context.Context, userID, productID string, qty int) ([]Record, error) {
	if qty < 0 {
		return nil, ErrBadQty
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	if qty == 0 {
		_, err = tx.ExecContext(ctx, `
			DELETE FROM cart_items
			WHERE user_id = $1 AND product_id = $2
		`, userID, productID)
	} else {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO cart_items (user_id, product_id, qty, added_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (user_id, product_id) DO UPDATE SET qty = EXCLUDED.qty
		`, userID, productID, qty, time.Now().UTC())
	}
	if err != nil {
		return nil, err
	}

	recs, err := listRecords(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	return recs, tx.Commit()
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func listRecords(ctx context.Context, q queryer, userID string) ([]Record, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT product_id, qty
		FROM cart_items
		WHERE user_id = $1
		ORDER BY added_at ASC, product_id ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Record, 0, 8)
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ProductID, &r.Qty); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
