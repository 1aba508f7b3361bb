package storefront

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"QKart/internal/cart"
	"QKart/internal/catalog"
	"QKart/internal/client"
	"QKart/pkg/kit"
)

type CartWriter interface {
	SetCartItem(ctx context.Context, token, productID string, qty int) ([]cart.Record, error)
}

type Options struct {
	// PreventDuplicate rejects the call when the product is already in the
	// cart. "Add to cart" sets it; the quantity stepper does not.
	PreventDuplicate bool
}

// Mutator sends cart changes to the server and reconciles the reply. It
// keeps no cart state: callers pass the current items and catalog.
type Mutator struct {
	Cart    CartWriter
	Log     *zap.Logger
	Metrics *Metrics
}

// AddOrUpdate sets productID's quantity in the server cart. Guests get
// ErrAuthRequired and duplicate adds get ErrDuplicateItem, both without a
// network call. qty 0 removes the product. On failure current is still the
// valid view.
func (m *Mutator) AddOrUpdate(
	ctx context.Context,
	session Session,
	current []LineItem,
	products []catalog.Product,
	productID string,
	qty int,
	opts Options,
) ([]LineItem, error) {
	if !session.Authenticated() {
		m.Metrics.mutation(outcomeAuthRequired)
		return nil, newError(ErrAuthRequired, msgAuthRequired, nil)
	}

	if opts.PreventDuplicate && ContainsProduct(current, productID) {
		m.Metrics.mutation(outcomeDuplicateItem)
		return nil, newError(ErrDuplicateItem, msgDuplicateItem, nil)
	}

	records, err := m.Cart.SetCartItem(ctx, session.Token, productID, qty)
	if err != nil {
		m.Metrics.mutation(outcomeError)
		kit.OrNop(m.Log).Warn("cart update failed",
			zap.String("product_id", productID),
			zap.Int("qty", qty),
			zap.Error(err),
		)
		return nil, newError(ErrCart, serverMessage(err, msgCartFetch), err)
	}

	m.Metrics.mutation(outcomeOK)
	return Reconcile(records, products), nil
}

// serverMessage prefers the backend's own message over the fallback.
func serverMessage(err error, fallback string) string {
	var se *client.StatusError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	return fallback
}
