package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shopblue/storefront/internal/domain"
	"github.com/shopblue/storefront/internal/persistence"
)

func newTestService(t *testing.T) (*Service, persistence.SnapshotStore) {
	t.Helper()
	store := persistence.NewMemoryStore()
	return NewService(context.Background(), store, zap.NewNop()), store
}

func product(id string, price float64) domain.Product {
	return domain.Product{
		ID:    id,
		Name:  "Product " + id,
		Price: price,
		Image: "https://example.com/" + id + ".jpg",
	}
}

func TestAddItem_SameProductIncrementsQuantity(t *testing.T) {
	svc, _ := newTestService(t)

	svc.AddItem(product("1", 199.00))
	svc.AddItem(product("1", 199.00))

	lines := svc.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, 398.00, svc.Subtotal())
}

func TestAddItem_SnapshotsPriceAtAddTime(t *testing.T) {
	svc, _ := newTestService(t)

	p := product("1", 100.00)
	svc.AddItem(p)

	// A later catalog price change must not reach the existing line.
	p.Price = 500.00
	lines := svc.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 100.00, lines[0].Price)
}

func TestUpdateQuantity_ClampsAtOne(t *testing.T) {
	svc, _ := newTestService(t)
	svc.AddItem(product("1", 10.00))
	svc.AddItem(product("1", 10.00))

	tests := []struct {
		name  string
		delta int
		want  int
	}{
		{"increment", 3, 5},
		{"decrement within floor", -2, 3},
		{"decrement past floor clamps", -50, 1},
		{"decrement at floor stays", -1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc.UpdateQuantity("1", tt.delta)
			lines := svc.Lines()
			require.Len(t, lines, 1)
			assert.Equal(t, tt.want, lines[0].Quantity)
			assert.GreaterOrEqual(t, lines[0].Quantity, 1)
		})
	}
}

func TestUpdateQuantity_UnknownIDIsNoOp(t *testing.T) {
	svc, _ := newTestService(t)
	svc.AddItem(product("1", 10.00))

	svc.UpdateQuantity("missing", 5)

	lines := svc.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)
}

func TestRemoveItem(t *testing.T) {
	svc, _ := newTestService(t)
	svc.AddItem(product("1", 10.00))
	svc.AddItem(product("2", 20.00))

	svc.RemoveItem("1")
	assert.Len(t, svc.Lines(), 1)

	// Removing an absent id is not an error.
	svc.RemoveItem("1")
	assert.Len(t, svc.Lines(), 1)
}

func TestSubtotal_RecomputedAfterEveryMutation(t *testing.T) {
	svc, _ := newTestService(t)
	assert.Equal(t, 0.0, svc.Subtotal())

	svc.AddItem(product("1", 199.00))
	assert.Equal(t, 199.00, svc.Subtotal())

	svc.AddItem(product("2", 0.50))
	svc.AddItem(product("2", 0.50))
	assert.Equal(t, 200.00, svc.Subtotal())

	svc.RemoveItem("2")
	assert.Equal(t, 199.00, svc.Subtotal())

	svc.Clear()
	assert.Equal(t, 0.0, svc.Subtotal())
	assert.True(t, svc.IsEmpty())
}

func TestRehydration_RestoresLinesFromSnapshot(t *testing.T) {
	svc, store := newTestService(t)
	svc.AddItem(product("1", 199.00))
	svc.AddItem(product("2", 89.00))
	svc.AddItem(product("2", 89.00))
	svc.AddItem(product("3", 12.50))

	// A new service over the same snapshot store sees the same cart.
	revived := NewService(context.Background(), store, zap.NewNop())
	lines := revived.Lines()
	require.Len(t, lines, 3)
	assert.Equal(t, svc.Subtotal(), revived.Subtotal())

	byID := map[string]domain.CartLine{}
	for _, l := range lines {
		byID[l.ProductID] = l
	}
	assert.Equal(t, 1, byID["1"].Quantity)
	assert.Equal(t, 2, byID["2"].Quantity)
	assert.Equal(t, 1, byID["3"].Quantity)
	assert.Equal(t, 89.00, byID["2"].Price)
}

func TestRehydration_DefaultsToEmpty(t *testing.T) {
	svc := NewService(context.Background(), persistence.NewMemoryStore(), zap.NewNop())
	assert.True(t, svc.IsEmpty())
}
