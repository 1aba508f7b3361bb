package catalog

import (
	"context"
	"sync"
)

// MemStore keeps products in seed order, which is the order /products
// returns them in.
type MemStore struct {
	mu    sync.RWMutex
	order []string
	m     map[string]Product
}

func NewMemStore(seed []Product) *MemStore {
	s := &MemStore{m: make(map[string]Product, len(seed))}
	for _, p := range seed {
		if _, dup := s.m[p.ID]; !dup {
			s.order = append(s.order, p.ID)
		}
		s.m[p.ID] = p
	}
	return s
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) List(ctx context.Context) ([]Product, error) {
	return s.Search(ctx, "")
}

func (s *MemStore) Search(ctx context.Context, value string) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Product, 0, len(s.order))
	for _, id := range s.order {
		if p := s.m[id]; matches(p, value) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *MemStore) Get(ctx context.Context, id string) (Product, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.m[id]
	return p, ok, nil
}
