package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shopblue/storefront/internal/domain"
	"github.com/shopblue/storefront/internal/persistence"
)

func TestNewStore_SeedsWhenNoSnapshot(t *testing.T) {
	store := NewStore(context.Background(), persistence.NewMemoryStore(), zap.NewNop())

	products := store.List()
	require.Len(t, products, 4)
	assert.Equal(t, "Pro Audio Wireless", products[0].Name)
	assert.Equal(t, domain.SourceLocal, products[0].Source)
}

func TestAdd_PrependsAndPersists(t *testing.T) {
	snapshots := persistence.NewMemoryStore()
	store := NewStore(context.Background(), snapshots, zap.NewNop())

	store.Add(domain.Product{ID: "new", Name: "Desk Lamp", Price: 35.00})

	products := store.List()
	require.Len(t, products, 5)
	assert.Equal(t, "new", products[0].ID)

	// A fresh store over the same snapshots sees the addition, not the seed.
	revived := NewStore(context.Background(), snapshots, zap.NewNop())
	assert.Len(t, revived.List(), 5)
	_, ok := revived.Get("new")
	assert.True(t, ok)
}

func TestRemove(t *testing.T) {
	snapshots := persistence.NewMemoryStore()
	store := NewStore(context.Background(), snapshots, zap.NewNop())

	store.Remove("1")
	assert.Len(t, store.List(), 3)
	_, ok := store.Get("1")
	assert.False(t, ok)

	// Unknown ids are a no-op, and the no-op still snapshots consistently.
	store.Remove("missing")
	assert.Len(t, store.List(), 3)

	revived := NewStore(context.Background(), snapshots, zap.NewNop())
	assert.Len(t, revived.List(), 3)
}

func TestGet(t *testing.T) {
	store := NewStore(context.Background(), persistence.NewMemoryStore(), zap.NewNop())

	p, ok := store.Get("2")
	require.True(t, ok)
	assert.Equal(t, "Analog Classic Watch", p.Name)
	assert.Equal(t, 129.00, p.Price)
}

func TestList_ReturnsCopy(t *testing.T) {
	store := NewStore(context.Background(), persistence.NewMemoryStore(), zap.NewNop())

	products := store.List()
	products[0].Name = "tampered"

	again := store.List()
	assert.Equal(t, "Pro Audio Wireless", again[0].Name)
}
