package catalog

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/shopblue/storefront/internal/domain"
	"github.com/shopblue/storefront/internal/persistence"
)

const persistTimeout = time.Second

// Store owns the mutable product catalog. Every mutation mirrors the full
// catalog to the snapshot store; reads hand out copies.
type Store struct {
	mu       sync.RWMutex
	products []domain.Product

	snapshots persistence.SnapshotStore
	logger    *zap.Logger
}

// NewStore rehydrates the catalog from its snapshot, falling back to the
// built-in seed when the snapshot is absent or unreadable.
func NewStore(ctx context.Context, snapshots persistence.SnapshotStore, logger *zap.Logger) *Store {
	s := &Store{
		snapshots: snapshots,
		logger:    logger,
	}

	var saved []domain.Product
	err := snapshots.Load(ctx, persistence.KeyCatalog, &saved)
	switch {
	case err == nil:
		s.products = saved
	case errors.Is(err, persistence.ErrNotFound):
		s.products = SeedProducts()
	default:
		logger.Warn("catalog rehydration failed, using seed", zap.Error(err))
		s.products = SeedProducts()
	}

	return s
}

// List returns the catalog in display order, newest additions first.
func (s *Store) List() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out
}

func (s *Store) Get(id string) (domain.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

// Add prepends a product. Both admin adds and sourcing promotions land here.
func (s *Store) Add(p domain.Product) {
	s.mu.Lock()
	s.products = append([]domain.Product{p}, s.products...)
	s.mu.Unlock()

	s.persist()
}

// Remove deletes the product with the given id; missing ids are a no-op.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	for i, p := range s.products {
		if p.ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	s.persist()
}

func (s *Store) persist() {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if err := s.snapshots.Save(ctx, persistence.KeyCatalog, s.List()); err != nil {
		s.logger.Warn("catalog snapshot save failed", zap.Error(err))
	}
}
