package service

import (
	"context"
	"testing"

	"bazaar/internal/domain"
	"bazaar/internal/repository"
)

type fixture struct {
	store    *repository.MemoryStore
	users    *UserService
	catalog  *CatalogService
	orders   *OrderService
	ledger   *LedgerService
	seller   *domain.User
	buyer    *domain.User
	category *domain.Category
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := repository.NewMemoryStore()
	tx := repository.NewMemoryTx(store)
	f := &fixture{
		store:   store,
		users:   NewUserService(store),
		catalog: NewCatalogService(store),
		orders:  NewOrderService(store, tx),
		ledger:  NewLedgerService(store, tx),
	}

	var err error
	f.seller, err = f.users.CreateUser(ctx, "seller", "Sam", "Seller")
	if err != nil {
		t.Fatalf("create seller: %v", err)
	}
	f.buyer, err = f.users.CreateUser(ctx, "buyer", "Bob", "Buyer")
	if err != nil {
		t.Fatalf("create buyer: %v", err)
	}
	if _, err := f.catalog.CreateStore(ctx, f.seller.ID, "Sam's Shop", "everything"); err != nil {
		t.Fatalf("create store: %v", err)
	}
	f.category, err = f.catalog.CreateCategory(ctx, "Electronics")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	return f
}

func (f *fixture) product(t *testing.T, name string, price float64) *domain.ProductDetail {
	t.Helper()
	p, err := f.catalog.CreateProduct(context.Background(), f.seller.ID, ProductInput{
		CategoryID:  f.category.ID,
		Name:        name,
		Price:       price,
		Description: "test product",
		Quantity:    5,
		Location:    "Tennessee",
	})
	if err != nil {
		t.Fatalf("create product %q: %v", name, err)
	}
	return p
}

func (f *fixture) paymentType(t *testing.T, userID int64) *domain.PaymentType {
	t.Helper()
	pt, err := f.orders.CreatePaymentType(context.Background(), userID, "Visa", "4111111111111111")
	if err != nil {
		t.Fatalf("create payment type: %v", err)
	}
	return pt
}
