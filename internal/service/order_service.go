package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bazaar/internal/domain"
	"bazaar/internal/repository"
)

// OrderService реализует жизненный цикл корзины и заказов
type OrderService struct {
	store repository.Store
	tx    repository.TxManager
}

func NewOrderService(store repository.Store, tx repository.TxManager) *OrderService {
	return &OrderService{store: store, tx: tx}
}

// EnsureOpenOrder возвращает открытый заказ пользователя, создавая его при
// отсутствии. Единственное место, где заказ появляется неявно.
func (s *OrderService) EnsureOpenOrder(ctx context.Context, userID int64) (*domain.Order, error) {
	var out *domain.Order
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		o, err := s.ensureOpenOrder(ctx, userID)
		if err != nil {
			return err
		}
		out = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// caller runs inside a transaction
func (s *OrderService) ensureOpenOrder(ctx context.Context, userID int64) (*domain.Order, error) {
	o, err := s.store.GetOpenOrder(ctx, userID)
	if err == nil {
		return o, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	o = &domain.Order{UserID: userID}
	if err := s.store.CreateOrder(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// AddProduct кладёт товар в открытый заказ; повторное добавление — no-op
func (s *OrderService) AddProduct(ctx context.Context, userID, productID int64) error {
	if _, err := s.store.GetProduct(ctx, productID); err != nil {
		return err
	}
	return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		o, err := s.ensureOpenOrder(ctx, userID)
		if err != nil {
			return err
		}
		return s.store.AddOrderProduct(ctx, o.ID, productID)
	})
}

// RemoveProduct убирает товар из открытого заказа
func (s *OrderService) RemoveProduct(ctx context.Context, userID, productID int64) error {
	return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.store.GetProduct(ctx, productID); err != nil {
			return err
		}
		o, err := s.store.GetOpenOrder(ctx, userID)
		if err != nil {
			return err
		}
		return s.store.RemoveOrderProduct(ctx, o.ID, productID)
	})
}

// CurrentOrder возвращает открытый заказ; никогда не создаёт его
func (s *OrderService) CurrentOrder(ctx context.Context, userID int64) (*domain.OrderDetail, error) {
	o, err := s.store.GetOpenOrder(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, *o)
}

// ListOrders возвращает все заказы пользователя, открытые и завершённые
func (s *OrderService) ListOrders(ctx context.Context, userID int64) ([]domain.OrderDetail, error) {
	orders, err := s.store.ListOrders(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.OrderDetail, 0, len(orders))
	for _, o := range orders {
		d, err := s.detail(ctx, o)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, nil
}

// CompleteOrder завершает заказ: привязывает способ оплаты и ставит дату.
// Заказ и способ оплаты должны принадлежать пользователю.
func (s *OrderService) CompleteOrder(ctx context.Context, userID, orderID, paymentTypeID int64) error {
	return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		o, err := s.store.GetOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if o.UserID != userID {
			return repository.ErrNotFound
		}
		if o.Completed() {
			return ErrInvalidState
		}
		pt, err := s.store.GetPaymentType(ctx, paymentTypeID)
		if err != nil {
			return err
		}
		if pt.CustomerID != userID {
			return repository.ErrNotFound
		}
		now := time.Now().UTC()
		o.PaymentTypeID = &pt.ID
		o.CompletedOn = &now
		return s.store.UpdateOrder(ctx, o)
	})
}

// DeleteOrder удаляет заказ пользователя. Завершённые заказы тоже удаляются —
// ограничения на историю нет.
func (s *OrderService) DeleteOrder(ctx context.Context, userID, orderID int64) error {
	o, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if o.UserID != userID {
		return repository.ErrNotFound
	}
	return s.store.DeleteOrder(ctx, orderID)
}

// detail собирает заказ с товарами; сумма считается по текущим ценам
func (s *OrderService) detail(ctx context.Context, o domain.Order) (*domain.OrderDetail, error) {
	ids, err := s.store.OrderProductIDs(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	products := make([]domain.Product, 0, len(ids))
	var total float64
	for _, id := range ids {
		p, err := s.store.GetProduct(ctx, id)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
		total += p.Price
	}
	return &domain.OrderDetail{Order: o, Products: products, Total: total}, nil
}

// CreatePaymentType добавляет способ оплаты текущему пользователю
func (s *OrderService) CreatePaymentType(ctx context.Context, userID int64, merchant, acctNumber string) (*domain.PaymentType, error) {
	if merchant == "" {
		return nil, fmt.Errorf("%w: merchant is required", ErrValidation)
	}
	if len(acctNumber) < 4 || len(acctNumber) > 16 {
		return nil, fmt.Errorf("%w: account number must be 4 to 16 digits", ErrValidation)
	}
	for _, c := range acctNumber {
		if c < '0' || c > '9' {
			return nil, fmt.Errorf("%w: account number must contain only digits", ErrValidation)
		}
	}
	pt := domain.PaymentType{CustomerID: userID, MerchantName: merchant, AcctNumber: acctNumber}
	if err := s.store.CreatePaymentType(ctx, &pt); err != nil {
		return nil, err
	}
	return &pt, nil
}

// ListPaymentTypes возвращает способы оплаты текущего пользователя
func (s *OrderService) ListPaymentTypes(ctx context.Context, userID int64) ([]domain.PaymentTypeDetail, error) {
	list, err := s.store.ListPaymentTypes(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.PaymentTypeDetail, 0, len(list))
	for _, pt := range list {
		out = append(out, domain.PaymentTypeDetail{PaymentType: pt, ObscuredNum: pt.ObscuredNum()})
	}
	return out, nil
}

// DeletePaymentType удаляет способ оплаты пользователя
func (s *OrderService) DeletePaymentType(ctx context.Context, userID, id int64) error {
	pt, err := s.store.GetPaymentType(ctx, id)
	if err != nil {
		return err
	}
	if pt.CustomerID != userID {
		return repository.ErrNotFound
	}
	return s.store.DeletePaymentType(ctx, id)
}
