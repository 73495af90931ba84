package cart

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

// Service is the cart aggregate: at most one line per product id, every
// line quantity >= 1. Lines snapshot the product at add time, so later
// catalog edits do not change what is already in the cart.
type Service struct {
	mu    sync.RWMutex
	lines []domain.CartLine

	snapshots persistence.SnapshotStore
	logger    *zap.Logger
}

// NewService rehydrates the cart from its snapshot; the default is empty.
func NewService(ctx context.Context, snapshots persistence.SnapshotStore, logger *zap.Logger) *Service {
	s := &Service{
		snapshots: snapshots,
		logger:    logger,
	}

	var saved []domain.CartLine
	err := snapshots.Load(ctx, persistence.KeyCart, &saved)
	if err == nil {
		s.lines = saved
	} else if !errors.Is(err, persistence.ErrNotFound) {
		logger.Warn("cart rehydration failed, starting empty", zap.Error(err))
	}

	return s
}

// AddItem increments the existing line for p, or inserts a fresh line with
// quantity 1. Repeat calls with the same product id never produce a second
// line.
func (s *Service) AddItem(p domain.Product) {
	s.mu.Lock()
	found := false
	for i := range s.lines {
		if s.lines[i].ProductID == p.ID {
			s.lines[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		s.lines = append(s.lines, domain.NewCartLine(p))
	}
	s.mu.Unlock()

	s.persist()
}

// RemoveItem deletes the line for productID; absent ids are a no-op.
func (s *Service) RemoveItem(productID string) {
	s.mu.Lock()
	for i, l := range s.lines {
		if l.ProductID == productID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	s.persist()
}

// UpdateQuantity applies delta to the line's quantity, clamped at 1. A line
// leaves the cart only through RemoveItem. Absent ids are a no-op.
func (s *Service) UpdateQuantity(productID string, delta int) {
	s.mu.Lock()
	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			q := s.lines[i].Quantity + delta
			if q < 1 {
				q = 1
			}
			s.lines[i].Quantity = q
			break
		}
	}
	s.mu.Unlock()

	s.persist()
}

// Clear empties the cart. Called after a successful checkout.
func (s *Service) Clear() {
	s.mu.Lock()
	s.lines = nil
	s.mu.Unlock()

	s.persist()
}

// Lines returns a copy of the current cart lines.
func (s *Service) Lines() []domain.CartLine {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// Subtotal is recomputed from the lines on every call, never cached.
func (s *Service) Subtotal() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total float64
	for _, l := range s.lines {
		total += l.Subtotal()
	}
	return total
}

// IsEmpty reports whether the cart has no lines.
func (s *Service) IsEmpty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.lines) == 0
}

func (s *Service) persist() {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if err := s.snapshots.Save(ctx, persistence.KeyCart, s.Lines()); err != nil {
		s.logger.Warn("cart snapshot save failed", zap.Error(err))
	}
}
