package storefront

import (
	"context"

	"QKart/internal/catalog"
)

// CatalogStore holds the full catalog and the subset currently displayed.
// Searches only ever replace the displayed subset; cart reconciliation
// always reads the full catalog. It is not safe for concurrent use on its
// own; Storefront guards it.
type CatalogStore struct {
	full     []catalog.Product
	filtered []catalog.Product
}

type ProductSource interface {
	Products(ctx context.Context) ([]catalog.Product, error)
}

// Load fetches the catalog once. On failure the store is left empty and
// the error is ErrCatalogUnavailable.
func (c *CatalogStore) Load(ctx context.Context, src ProductSource) ([]catalog.Product, error) {
	products, err := src.Products(ctx)
	if err != nil {
		c.Reset(nil)
		return nil, newError(ErrCatalogUnavailable, msgProductsFetch, err)
	}
	c.Reset(products)
	return c.Full(), nil
}

// Reset replaces the full catalog and shows all of it.
func (c *CatalogStore) Reset(products []catalog.Product) {
	c.full = cloneProducts(products)
	c.filtered = cloneProducts(products)
}

func (c *CatalogStore) ApplyFilter(results []catalog.Product) {
	c.filtered = cloneProducts(results)
}

func (c *CatalogStore) Full() []catalog.Product { return cloneProducts(c.full) }

func (c *CatalogStore) Filtered() []catalog.Product { return cloneProducts(c.filtered) }

func (c *CatalogStore) Lookup(id string) (catalog.Product, bool) {
	for _, p := range c.full {
		if p.ID == id {
			return p, true
		}
	}
	return catalog.Product{}, false
}

func cloneProducts(in []catalog.Product) []catalog.Product {
	out := make([]catalog.Product, len(in))
	copy(out, in)
	return out
}
