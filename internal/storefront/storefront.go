// Package storefront keeps the catalog, the shopper's cart and the live
// search results consistent. The server cart is the only source of truth:
// every quantity change is sent to the server and the reply is reconciled
// against the full catalog.
package storefront

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"QKart/internal/cart"
	"QKart/internal/catalog"
	"QKart/internal/client"
	"QKart/internal/search"
	"QKart/pkg/kit"
)

// Backend is the part of the REST API the storefront consumes.
// *client.Client implements it.
type Backend interface {
	ProductSource
	CartWriter
	Search(ctx context.Context, text string) ([]catalog.Product, error)
	Cart(ctx context.Context, token string) ([]cart.Record, error)
}

type Config struct {
	SearchDelay time.Duration
	Log         *zap.Logger
	Metrics     *Metrics

	// OnSearch runs after every throttled search has been applied, with the
	// new filtered products or the failure.
	OnSearch func(products []catalog.Product, err error)
}

type Storefront struct {
	backend  Backend
	session  Session
	log      *zap.Logger
	metrics  *Metrics
	onSearch func([]catalog.Product, error)

	mutator   *Mutator
	throttler *search.Throttler

	mu      sync.RWMutex
	catalog CatalogStore
	items   []LineItem
}

func New(backend Backend, session Session, cfg Config) *Storefront {
	log := kit.OrNop(cfg.Log)

	s := &Storefront{
		backend:  backend,
		session:  session,
		log:      log,
		metrics:  cfg.Metrics,
		onSearch: cfg.OnSearch,
		mutator:  &Mutator{Cart: backend, Log: log, Metrics: cfg.Metrics},
		items:    []LineItem{},
	}
	s.throttler = search.NewThrottler(cfg.SearchDelay, s.runThrottledSearch)
	return s
}

func (s *Storefront) Session() Session { return s.session }

// Load fetches the catalog and, for a signed-in shopper, the cart
// concurrently. Line items are rebuilt only when both fetches succeed; any
// failure leaves the previous items in place. The returned error joins the
// failures of both fetches.
func (s *Storefront) Load(ctx context.Context) error {
	var (
		fresh    CatalogStore
		products []catalog.Product
		records  []cart.Record
		catErr   error
		cartErr  error
		g        errgroup.Group
	)

	g.Go(func() error {
		products, catErr = fresh.Load(ctx, s.backend)
		return catErr
	})
	if s.session.Authenticated() {
		g.Go(func() error {
			records, cartErr = s.backend.Cart(ctx, s.session.Token)
			return cartErr
		})
	}
	_ = g.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.catalog = fresh

	var errs []error
	if catErr != nil {
		s.log.Warn("catalog fetch failed", zap.Error(catErr))
		errs = append(errs, catErr)
	}
	if cartErr != nil {
		s.log.Warn("cart fetch failed", zap.Error(cartErr))
		errs = append(errs, newError(ErrFetch, serverMessage(cartErr, msgCartFetch), cartErr))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	if s.session.Authenticated() {
		s.items = Reconcile(records, products)
	}
	return nil
}

// Items is the reconciled cart. Guests always get an empty list.
func (s *Storefront) Items() []LineItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneItems(s.items)
}

func (s *Storefront) Products() []catalog.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog.Full()
}

// Product looks id up in the full catalog.
func (s *Storefront) Product(id string) (catalog.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog.Lookup(id)
}

func (s *Storefront) Filtered() []catalog.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog.Filtered()
}

// OnSearchInput feeds one edit of the search box to the throttler.
func (s *Storefront) OnSearchInput(text string) {
	s.throttler.OnQueryChange(text)
}

// FlushSearch runs a search still waiting on the throttle delay right away.
func (s *Storefront) FlushSearch() {
	s.throttler.Flush()
}

// Search runs one search now and applies its result to the filtered
// products. No matches, including a 404, empties the filtered products.
// On failure the filtered products are left as they were.
func (s *Storefront) Search(ctx context.Context, text string) ([]catalog.Product, error) {
	results, err := s.backend.Search(ctx, text)
	switch {
	case errors.Is(err, client.ErrNotFound):
		results = nil
	case err != nil:
		s.metrics.search(outcomeError)
		s.log.Warn("search failed", zap.String("text", text), zap.Error(err))
		return nil, newError(ErrSearchFailed, serverMessage(err, msgProductsFetch), err)
	}

	if len(results) == 0 {
		s.metrics.search(outcomeEmpty)
	} else {
		s.metrics.search(outcomeOK)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog.ApplyFilter(results)
	return s.catalog.Filtered(), nil
}

func (s *Storefront) runThrottledSearch(text string) {
	s.log.Debug("search dispatched", zap.String("text", text))

	products, err := s.Search(context.Background(), text)
	if s.onSearch != nil {
		s.onSearch(products, err)
	}
}

// AddOrUpdate applies one cart change through the Mutator using the current
// items and full catalog, and adopts the reconciled reply as the new cart.
func (s *Storefront) AddOrUpdate(ctx context.Context, productID string, qty int, opts Options) ([]LineItem, error) {
	s.mu.RLock()
	current := cloneItems(s.items)
	products := s.catalog.Full()
	s.mu.RUnlock()

	next, err := s.mutator.AddOrUpdate(ctx, s.session, current, products, productID, qty, opts)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.items = next
	s.mu.Unlock()

	return cloneItems(next), nil
}

// Close stops the search throttler and waits for a running search.
func (s *Storefront) Close() {
	s.throttler.Close()
}

func cloneItems(in []LineItem) []LineItem {
	out := make([]LineItem, len(in))
	copy(out, in)
	return out
}
