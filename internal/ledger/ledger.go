package ledger

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopblue/storefront/internal/domain"
	"github.com/shopblue/storefront/internal/persistence"
)

const persistTimeout = time.Second

// Ledger is the append-and-update order collection. Orders are deep-copied
// in and out; once placed, only their status moves, and only forward.
type Ledger struct {
	mu     sync.RWMutex
	orders []domain.Order

	snapshots persistence.SnapshotStore
	logger    *zap.Logger
	now       func() time.Time
}

// NewLedger rehydrates the ledger from its snapshot; the default is empty.
func NewLedger(ctx context.Context, snapshots persistence.SnapshotStore, logger *zap.Logger) *Ledger {
	l := &Ledger{
		snapshots: snapshots,
		logger:    logger,
		now:       time.Now,
	}

	var saved []domain.Order
	err := snapshots.Load(ctx, persistence.KeyOrders, &saved)
	if err == nil {
		l.orders = saved
	} else if !errors.Is(err, persistence.ErrNotFound) {
		logger.Warn("order ledger rehydration failed, starting empty", zap.Error(err))
	}

	return l
}

// PlaceOrder creates one Order from a cart snapshot: fresh id, deep-copied
// lines, total computed from the lines at this moment, status Processing.
// The order is prepended so reads come back most-recent-first.
func (l *Ledger) PlaceOrder(lines []domain.CartLine, customer domain.Customer) domain.Order {
	items := make([]domain.CartLine, len(lines))
	copy(items, lines)

	var total float64
	for _, it := range items {
		total += it.Subtotal()
	}

	order := domain.Order{
		ID:       uuid.New().String(),
		Items:    items,
		Total:    total,
		Status:   domain.OrderStatusProcessing,
		Customer: customer,
		Date:     domain.FormatOrderDate(l.now()),
	}

	l.mu.Lock()
	l.orders = append([]domain.Order{order}, l.orders...)
	l.mu.Unlock()

	l.persist()
	return copyOrder(order)
}

// UpdateStatus advances the matching order's status. Unknown ids and
// illegal transitions (backward, skipping, or out of Delivered) are silent
// no-ops; the admin surface only ever submits ids it just read from here.
func (l *Ledger) UpdateStatus(orderID string, status domain.OrderStatus) {
	changed := false

	l.mu.Lock()
	for i := range l.orders {
		if l.orders[i].ID == orderID {
			if domain.CanTransition(l.orders[i].Status, status) {
				l.orders[i].Status = status
				changed = true
			}
			break
		}
	}
	l.mu.Unlock()

	if changed {
		l.persist()
	}
}

// Orders returns copies of all orders, most recent first.
func (l *Ledger) Orders() []domain.Order {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]domain.Order, len(l.orders))
	for i, o := range l.orders {
		out[i] = copyOrder(o)
	}
	return out
}

// Get returns a copy of the order with the given id.
func (l *Ledger) Get(orderID string) (domain.Order, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, o := range l.orders {
		if o.ID == orderID {
			return copyOrder(o), true
		}
	}
	return domain.Order{}, false
}

func copyOrder(o domain.Order) domain.Order {
	items := make([]domain.CartLine, len(o.Items))
	copy(items, o.Items)
	o.Items = items
	return o
}

func (l *Ledger) persist() {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if err := l.snapshots.Save(ctx, persistence.KeyOrders, l.Orders()); err != nil {
		l.logger.Warn("order ledger snapshot save failed", zap.Error(err))
	}
}
