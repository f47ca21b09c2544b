package service

import (
	"context"
	"errors"
	"testing"

	"bazaar/internal/repository"
)

func TestAddProduct_CreatesCartLazily(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.product(t, "Headphones", 79.99)

	// no open order until the first add
	if _, err := f.orders.CurrentOrder(ctx, f.buyer.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected no open order, got %v", err)
	}

	if err := f.orders.AddProduct(ctx, f.buyer.ID, p.ID); err != nil {
		t.Fatalf("add product: %v", err)
	}

	o, err := f.orders.CurrentOrder(ctx, f.buyer.ID)
	if err != nil {
		t.Fatalf("current order: %v", err)
	}
	if len(o.Products) != 1 || o.Products[0].ID != p.ID {
		t.Fatalf("cart contents wrong: %+v", o.Products)
	}
	if o.Completed() {
		t.Fatalf("new cart must be open")
	}
}

func TestAddProduct_Idempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.product(t, "Headphones", 79.99)

	if err := f.orders.AddProduct(ctx, f.buyer.ID, p.ID); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := f.orders.AddProduct(ctx, f.buyer.ID, p.ID); err != nil {
		t.Fatalf("second add: %v", err)
	}

	o, err := f.orders.CurrentOrder(ctx, f.buyer.ID)
	if err != nil {
		t.Fatalf("current order: %v", err)
	}
	if len(o.Products) != 1 {
		t.Fatalf("expected exactly one association, got %d", len(o.Products))
	}
}

func TestAddProduct_UnknownProduct(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	if err := f.orders.AddProduct(ctx, f.buyer.ID, 999); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	// a failed add must not create a cart
	if _, err := f.orders.CurrentOrder(ctx, f.buyer.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("cart should not exist, got %v", err)
	}
}

func TestRemoveProduct(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p1 := f.product(t, "Headphones", 79.99)
	p2 := f.product(t, "Keyboard", 49.50)

	if err := f.orders.AddProduct(ctx, f.buyer.ID, p1.ID); err != nil {
		t.Fatalf("add p1: %v", err)
	}
	if err := f.orders.AddProduct(ctx, f.buyer.ID, p2.ID); err != nil {
		t.Fatalf("add p2: %v", err)
	}

	if err := f.orders.RemoveProduct(ctx, f.buyer.ID, p1.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}

	o, err := f.orders.CurrentOrder(ctx, f.buyer.ID)
	if err != nil {
		t.Fatalf("current order: %v", err)
	}
	if len(o.Products) != 1 || o.Products[0].ID != p2.ID {
		t.Fatalf("removal not persisted: %+v", o.Products)
	}

	// removing again is not found
	if err := f.orders.RemoveProduct(ctx, f.buyer.ID, p1.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRemoveProduct_NoOpenOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.product(t, "Headphones", 79.99)
	if err := f.orders.RemoveProduct(ctx, f.buyer.ID, p.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCompleteOrder_Persists(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.product(t, "Headphones", 79.99)
	pt := f.paymentType(t, f.buyer.ID)

	if err := f.orders.AddProduct(ctx, f.buyer.ID, p.ID); err != nil {
		t.Fatalf("add: %v", err)
	}
	o, err := f.orders.CurrentOrder(ctx, f.buyer.ID)
	if err != nil {
		t.Fatalf("current: %v", err)
	}

	if err := f.orders.CompleteOrder(ctx, f.buyer.ID, o.ID, pt.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}

	// persisted: the cart is gone, the order is completed
	if _, err := f.orders.CurrentOrder(ctx, f.buyer.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("cart should be closed, got %v", err)
	}
	list, err := f.orders.ListOrders(ctx, f.buyer.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected one order, got %d", len(list))
	}
	got := list[0]
	if !got.Completed() || got.PaymentTypeID == nil || *got.PaymentTypeID != pt.ID {
		t.Fatalf("completion not persisted: %+v", got.Order)
	}
}

func TestCompleteOrder_ForeignPaymentType(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.product(t, "Headphones", 79.99)
	foreign := f.paymentType(t, f.seller.ID)

	if err := f.orders.AddProduct(ctx, f.buyer.ID, p.ID); err != nil {
		t.Fatalf("add: %v", err)
	}
	o, _ := f.orders.CurrentOrder(ctx, f.buyer.ID)

	if err := f.orders.CompleteOrder(ctx, f.buyer.ID, o.ID, foreign.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	// order left unmodified
	after, err := f.orders.CurrentOrder(ctx, f.buyer.ID)
	if err != nil {
		t.Fatalf("order should still be open: %v", err)
	}
	if after.Completed() || after.PaymentTypeID != nil {
		t.Fatalf("order was modified: %+v", after.Order)
	}
}

func TestCompleteOrder_NotOwned(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.product(t, "Headphones", 79.99)
	pt := f.paymentType(t, f.seller.ID)

	if err := f.orders.AddProduct(ctx, f.buyer.ID, p.ID); err != nil {
		t.Fatalf("add: %v", err)
	}
	o, _ := f.orders.CurrentOrder(ctx, f.buyer.ID)

	if err := f.orders.CompleteOrder(ctx, f.seller.ID, o.ID, pt.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected not found for foreign order, got %v", err)
	}
}

func TestCompleteOrder_AlreadyCompleted(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.product(t, "Headphones", 79.99)
	pt := f.paymentType(t, f.buyer.ID)

	if err := f.orders.AddProduct(ctx, f.buyer.ID, p.ID); err != nil {
		t.Fatalf("add: %v", err)
	}
	o, _ := f.orders.CurrentOrder(ctx, f.buyer.ID)
	if err := f.orders.CompleteOrder(ctx, f.buyer.ID, o.ID, pt.ID); err != nil {
		t.Fatalf("first complete: %v", err)
	}
	if err := f.orders.CompleteOrder(ctx, f.buyer.ID, o.ID, pt.ID); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected invalid state, got %v", err)
	}
}

func TestOrderTotal_RecomputedFromCurrentPrices(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.product(t, "Headphones", 100)
	pt := f.paymentType(t, f.buyer.ID)

	if err := f.orders.AddProduct(ctx, f.buyer.ID, p.ID); err != nil {
		t.Fatalf("add: %v", err)
	}
	o, _ := f.orders.CurrentOrder(ctx, f.buyer.ID)
	if o.Total != 100 {
		t.Fatalf("total expected 100, got %v", o.Total)
	}
	if err := f.orders.CompleteOrder(ctx, f.buyer.ID, o.ID, pt.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}

	// price change leaks into the historical total: totals are not snapshotted
	if _, err := f.catalog.UpdateProduct(ctx, f.seller.ID, p.ID, ProductInput{
		CategoryID: f.category.ID, Name: "Headphones", Price: 150,
		Description: "test product", Quantity: 5, Location: "Tennessee",
	}); err != nil {
		t.Fatalf("update price: %v", err)
	}
	list, _ := f.orders.ListOrders(ctx, f.buyer.ID)
	if len(list) != 1 || list[0].Total != 150 {
		t.Fatalf("expected recomputed total 150, got %+v", list)
	}
}

func TestDeleteOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.product(t, "Headphones", 79.99)

	if err := f.orders.AddProduct(ctx, f.buyer.ID, p.ID); err != nil {
		t.Fatalf("add: %v", err)
	}
	o, _ := f.orders.CurrentOrder(ctx, f.buyer.ID)

	// not the owner
	if err := f.orders.DeleteOrder(ctx, f.seller.ID, o.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := f.orders.DeleteOrder(ctx, f.buyer.ID, o.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	list, _ := f.orders.ListOrders(ctx, f.buyer.ID)
	if len(list) != 0 {
		t.Fatalf("order not deleted: %+v", list)
	}
}

func TestPaymentTypes(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	pt, err := f.orders.CreatePaymentType(ctx, f.buyer.ID, "Visa", "4111111111111111")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if pt.ID == 0 || pt.MerchantName != "Visa" || pt.AcctNumber != "4111111111111111" {
		t.Fatalf("unexpected payment type: %+v", pt)
	}
	if pt.ObscuredNum() != "************1111" {
		t.Fatalf("obscured form wrong: %q", pt.ObscuredNum())
	}

	// validation
	if _, err := f.orders.CreatePaymentType(ctx, f.buyer.ID, "", "4111111111111111"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := f.orders.CreatePaymentType(ctx, f.buyer.ID, "Visa", "41x1"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	// list is scoped to the caller
	other := f.paymentType(t, f.seller.ID)
	list, err := f.orders.ListPaymentTypes(ctx, f.buyer.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].ID != pt.ID {
		t.Fatalf("list leaked foreign payment types: %+v", list)
	}

	// delete is owner-only
	if err := f.orders.DeletePaymentType(ctx, f.buyer.ID, other.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := f.orders.DeletePaymentType(ctx, f.buyer.ID, pt.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
}
