package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bazaar/internal/domain"
)

func seedUser(t *testing.T, m *MemoryStore, username string) *domain.User {
	t.Helper()
	u := &domain.User{Username: username}
	require.NoError(t, m.CreateUser(context.Background(), u))
	return u
}

func TestMemory_UserUniqueness(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	seedUser(t, m, "alice")

	err := m.CreateUser(ctx, &domain.User{Username: "alice"})
	assert.ErrorIs(t, err, ErrConflict)

	u, err := m.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)

	_, err = m.GetUserByUsername(ctx, "bob")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_OneStorePerSeller(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	u := seedUser(t, m, "alice")

	require.NoError(t, m.CreateStore(ctx, &domain.Store{SellerID: u.ID, Name: "first"}))
	err := m.CreateStore(ctx, &domain.Store{SellerID: u.ID, Name: "second"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestMemory_OrderProductUniquePairs(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	u := seedUser(t, m, "alice")

	o := &domain.Order{UserID: u.ID}
	require.NoError(t, m.CreateOrder(ctx, o))

	require.NoError(t, m.AddOrderProduct(ctx, o.ID, 7))
	require.NoError(t, m.AddOrderProduct(ctx, o.ID, 7))

	ids, err := m.OrderProductIDs(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{7}, ids)

	require.NoError(t, m.RemoveOrderProduct(ctx, o.ID, 7))
	err = m.RemoveOrderProduct(ctx, o.ID, 7)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_OpenOrderLookup(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	u := seedUser(t, m, "alice")

	_, err := m.GetOpenOrder(ctx, u.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	o := &domain.Order{UserID: u.ID}
	require.NoError(t, m.CreateOrder(ctx, o))

	got, err := m.GetOpenOrder(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, o.ID, got.ID)

	now := time.Now().UTC()
	got.CompletedOn = &now
	require.NoError(t, m.UpdateOrder(ctx, got))

	_, err = m.GetOpenOrder(ctx, u.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_CountCompletedOrders(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	u := seedUser(t, m, "alice")

	open := &domain.Order{UserID: u.ID}
	require.NoError(t, m.CreateOrder(ctx, open))
	require.NoError(t, m.AddOrderProduct(ctx, open.ID, 1))

	n, err := m.CountCompletedOrders(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, n, "open orders must not count")

	now := time.Now().UTC()
	open.CompletedOn = &now
	require.NoError(t, m.UpdateOrder(ctx, open))

	n, err = m.CountCompletedOrders(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestMemory_ListProductsSorting(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	for _, p := range []domain.Product{
		{Name: "banana", Price: 3},
		{Name: "apple", Price: 2},
		{Name: "cherry", Price: 1},
	} {
		cp := p
		require.NoError(t, m.CreateProduct(ctx, &cp))
	}

	byName, err := m.ListProducts(ctx, ProductFilter{OrderBy: OrderByName})
	require.NoError(t, err)
	assert.Equal(t, "apple", byName[0].Name)
	assert.Equal(t, "cherry", byName[2].Name)

	byPriceDesc, err := m.ListProducts(ctx, ProductFilter{OrderBy: OrderByPrice, Descending: true})
	require.NoError(t, err)
	assert.Equal(t, float64(3), byPriceDesc[0].Price)
	assert.Equal(t, float64(1), byPriceDesc[2].Price)

	// direction without order_by keeps the default order
	plain, err := m.ListProducts(ctx, ProductFilter{Descending: true})
	require.NoError(t, err)
	assert.Equal(t, "banana", plain[0].Name)
}

func TestMemory_DeleteProductDropsAssociations(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	u := seedUser(t, m, "alice")

	p := &domain.Product{Name: "widget", Price: 1}
	require.NoError(t, m.CreateProduct(ctx, p))
	o := &domain.Order{UserID: u.ID}
	require.NoError(t, m.CreateOrder(ctx, o))
	require.NoError(t, m.AddOrderProduct(ctx, o.ID, p.ID))

	require.NoError(t, m.DeleteProduct(ctx, p.ID))

	ids, err := m.OrderProductIDs(ctx, o.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestMemory_Recommendations(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	// duplicates are allowed; delete removes one at a time
	require.NoError(t, m.CreateRecommendation(ctx, &domain.Recommendation{RecommenderID: 1, CustomerID: 2, ProductID: 3}))
	require.NoError(t, m.CreateRecommendation(ctx, &domain.Recommendation{RecommenderID: 1, CustomerID: 2, ProductID: 3}))

	require.NoError(t, m.DeleteRecommendation(ctx, 1, 2, 3))
	require.NoError(t, m.DeleteRecommendation(ctx, 1, 2, 3))
	assert.ErrorIs(t, m.DeleteRecommendation(ctx, 1, 2, 3), ErrNotFound)
}

func TestMemory_TransactionLocking(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	tx := NewMemoryTx(m)

	err := tx.WithTransaction(ctx, func(ctx context.Context) error {
		p := &domain.Product{Name: "widget", Price: 1}
		if err := m.CreateProduct(ctx, p); err != nil {
			return err
		}
		_, err := m.GetProduct(ctx, p.ID)
		return err
	})
	require.NoError(t, err)
}
