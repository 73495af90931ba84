package wishlist

import (
	"sync"

	"github.com/shopblue/storefront/internal/catalog"
	"github.com/shopblue/storefront/internal/domain"
)

// Service is a set of wishlisted product ids. Insertion order is kept for
// display. IDs whose product has since left the catalog stay in the set and
// are filtered out at read time.
type Service struct {
	mu      sync.RWMutex
	ids     []string
	catalog *catalog.Store
}

func NewService(cat *catalog.Store) *Service {
	return &Service{catalog: cat}
}

// Toggle adds the id if absent and removes it if present, returning whether
// the id is wishlisted afterwards.
func (s *Service) Toggle(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, id := range s.ids {
		if id == productID {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			return false
		}
	}
	s.ids = append(s.ids, productID)
	return true
}

// Contains reports whether the id is currently wishlisted.
func (s *Service) Contains(productID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.ids {
		if id == productID {
			return true
		}
	}
	return false
}

// Products resolves the wishlist against the catalog, skipping dangling ids.
func (s *Service) Products() []domain.Product {
	s.mu.RLock()
	ids := make([]string, len(s.ids))
	copy(ids, s.ids)
	s.mu.RUnlock()

	out := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := s.catalog.Get(id); ok {
			out = append(out, p)
		}
	}
	return out
}
