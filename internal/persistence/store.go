package persistence

import (
	"context"
	"errors"
)

// Snapshot keys, one per aggregate. Each key always holds the aggregate's
// entire current value; writes replace, never merge.
const (
	KeyCatalog = "shopblue:products"
	KeyCart    = "shopblue:cart"
	KeyOrders  = "shopblue:orders"
)

var ErrNotFound = errors.New("snapshot not found")

// SnapshotStore mirrors whole aggregates to a durable key-value store.
// Load treats a corrupt value the same as an absent one, so a crash
// mid-write costs at most the last snapshot.
type SnapshotStore interface {
	Save(ctx context.Context, key string, value any) error
	Load(ctx context.Context, key string, dest any) error
	Delete(ctx context.Context, key string) error
}
