package cart

import (
	"context"
	"slices"
	"sync"
)

type MemStore struct {
	mu sync.RWMutex
	m  map[string][]Record
}

func NewMemStore() *MemStore {
	return &MemStore{m: map[string][]Record{}}
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) Get(ctx context.Context, userID string) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneRecords(s.m[userID]), nil
}

func (s *MemStore) Set(ctx context.Context, userID, productID string, qty int) ([]Record, error) {
	if qty < 0 {
		return nil, ErrBadQty
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	recs := s.m[userID]
	i := slices.IndexFunc(recs, func(r Record) bool { return r.ProductID == productID })

	switch {
	case i >= 0 && qty == 0:
		recs = slices.Delete(recs, i, i+1)
	case i >= 0:
		recs[i].Qty = qty
	case qty > 0:
		recs = append(recs, Record{ProductID: productID, Qty: qty})
	}

	if len(recs) == 0 {
		delete(s.m, userID)
	} else {
		s.m[userID] = recs
	}
	return cloneRecords(recs), nil
}

func cloneRecords(in []Record) []Record {
	out := make([]Record, len(in))
	copy(out, in)
	return out
}
