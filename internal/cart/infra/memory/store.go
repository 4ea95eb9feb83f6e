package memory

import (
	"context"
	"sync"

	"github.com/neeste/storefront/internal/cart/domain"
)

// Store keeps the cart lines in memory. Used by tests and by runs that
// do not want an on-disk cart.
type Store struct {
	mu    sync.Mutex
	items []domain.Item
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Load(ctx context.Context) ([]domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Item, len(s.items))
	copy(out, s.items)
	return out, nil
}

func (s *Store) Save(ctx context.Context, items []domain.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make([]domain.Item, len(items))
	copy(s.items, items)
	return nil
}

func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	return nil
}
