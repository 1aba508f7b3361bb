package storefront

import (
	"github.com/shopspring/decimal"

	"QKart/internal/cart"
	"QKart/internal/catalog"
)

// LineItem is a cart record joined with its catalog product. It is rebuilt
// on every reconciliation and never edited in place.
type LineItem struct {
	catalog.Product
	Qty int `json:"qty"`
}

// Reconcile joins records against the full catalog. Output order follows
// records; records for unknown products or with qty < 1 are dropped.
func Reconcile(records []cart.Record, products []catalog.Product) []LineItem {
	byID := make(map[string]catalog.Product, len(products))
	for _, p := range products {
		if _, dup := byID[p.ID]; !dup {
			byID[p.ID] = p
		}
	}

	items := make([]LineItem, 0, len(records))
	for _, r := range records {
		if r.Qty < 1 {
			continue
		}
		p, ok := byID[r.ProductID]
		if !ok {
			continue
		}
		items = append(items, LineItem{Product: p, Qty: r.Qty})
	}
	return items
}

func ContainsProduct(items []LineItem, productID string) bool {
	for _, it := range items {
		if it.ID == productID && it.Qty > 0 {
			return true
		}
	}
	return false
}

// Total is the cart value, sum of cost * qty.
func Total(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(decimal.NewFromFloat(it.Cost).Mul(decimal.NewFromInt(int64(it.Qty))))
	}
	return total
}

func ItemCount(items []LineItem) int {
	n := 0
	for _, it := range items {
		n += it.Qty
	}
	return n
}
