package persistence

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shopblue/storefront/internal/domain"
)

func setupTestRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisStore(client, zap.NewNop()), mr
}

func TestRedisStore_RoundTrip(t *testing.T) {
	store, _ := setupTestRedis(t)
	ctx := context.Background()

	lines := []domain.CartLine{
		{ProductID: "1", Name: "Headphones", Price: 199.00, Quantity: 2},
		{ProductID: "2", Name: "Watch", Price: 129.00, Quantity: 1},
		{ProductID: "3", Name: "Sneakers", Price: 89.00, Quantity: 4},
	}
	require.NoError(t, store.Save(ctx, KeyCart, lines))

	var loaded []domain.CartLine
	require.NoError(t, store.Load(ctx, KeyCart, &loaded))
	assert.Equal(t, lines, loaded)
}

func TestRedisStore_SaveReplacesWholeValue(t *testing.T) {
	store, _ := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, KeyCart, []domain.CartLine{
		{ProductID: "1", Quantity: 1},
		{ProductID: "2", Quantity: 1},
	}))
	require.NoError(t, store.Save(ctx, KeyCart, []domain.CartLine{
		{ProductID: "3", Quantity: 5},
	}))

	var loaded []domain.CartLine
	require.NoError(t, store.Load(ctx, KeyCart, &loaded))
	require.Len(t, loaded, 1)
	assert.Equal(t, "3", loaded[0].ProductID)
}

func TestRedisStore_MissingKey(t *testing.T) {
	store, _ := setupTestRedis(t)

	var dest []domain.CartLine
	err := store.Load(context.Background(), "shopblue:nope", &dest)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_CorruptValueFailsOpen(t *testing.T) {
	store, mr := setupTestRedis(t)

	mr.Set(KeyOrders, "{not json")

	var dest []domain.Order
	err := store.Load(context.Background(), KeyOrders, &dest)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_Delete(t *testing.T) {
	store, _ := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, KeyCatalog, []domain.Product{{ID: "1"}}))
	require.NoError(t, store.Delete(ctx, KeyCatalog))

	var dest []domain.Product
	assert.ErrorIs(t, store.Load(ctx, KeyCatalog, &dest), ErrNotFound)

	// Deleting again is fine.
	assert.NoError(t, store.Delete(ctx, KeyCatalog))
}
