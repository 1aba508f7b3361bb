package cart

import (
	"context"
	"errors"
)

var ErrBadQty = errors.New("quantity must not be negative")

// Record is the server's authoritative cart entry for one product.
type Record struct {
	ProductID string `json:"productId"`
	Qty       int    `json:"qty"`
}

// Store keeps one cart per user. Records come back in the order products
// were first added.
type Store interface {
	Ping(ctx context.Context) error
	Get(ctx context.Context, userID string) ([]Record, error)
	// Set replaces the quantity of productID; qty 0 removes it.
	Set(ctx context.Context, userID, productID string, qty int) ([]Record, error)
}

func NewStore() Store {
	return NewMemStore()
}
