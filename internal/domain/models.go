package domain

import (
	"strings"
	"time"
)

// User учётная запись пользователя; создаётся внешним identity-сервисом
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Store магазин продавца, по одному на пользователя
type Store struct {
	ID          int64  `json:"id"`
	SellerID    int64  `json:"seller_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    bool   `json:"is_active"`
}

// Category категория товара
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Product товар, принадлежит ровно одному магазину
type Product struct {
	ID          int64   `json:"id"`
	StoreID     int64   `json:"store_id"`
	CategoryID  int64   `json:"category_id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Quantity    int64   `json:"quantity"`
	Location    string  `json:"location"`
	ImagePath   string  `json:"image_path,omitempty"`
}

// Order заказ; открытый заказ (без completed_on) служит корзиной
type Order struct {
	ID            int64      `json:"id"`
	UserID        int64      `json:"user_id"`
	PaymentTypeID *int64     `json:"payment_type_id,omitempty"`
	CreatedOn     time.Time  `json:"created_on"`
	CompletedOn   *time.Time `json:"completed_on,omitempty"`
}

// Completed заказ завершён, когда установлена дата завершения
func (o *Order) Completed() bool { return o.CompletedOn != nil }

// PaymentType способ оплаты пользователя
type PaymentType struct {
	ID           int64  `json:"id"`
	CustomerID   int64  `json:"customer_id"`
	MerchantName string `json:"merchant_name"`
	AcctNumber   string `json:"-"`
}

// ObscuredNum номер счёта в отображаемом виде: видны только последние 4 цифры
func (p *PaymentType) ObscuredNum() string {
	if len(p.AcctNumber) <= 4 {
		return p.AcctNumber
	}
	return strings.Repeat("*", len(p.AcctNumber)-4) + p.AcctNumber[len(p.AcctNumber)-4:]
}

// Rating оценка товара покупателем, не больше одной на пару (customer, product)
type Rating struct {
	ID         int64  `json:"id"`
	CustomerID int64  `json:"customer_id"`
	ProductID  int64  `json:"product_id"`
	Score      int    `json:"score"`
	Review     string `json:"review,omitempty"`
}

// Recommendation рекомендация товара одним пользователем другому
type Recommendation struct {
	ID            int64 `json:"id"`
	RecommenderID int64 `json:"recommender_id"`
	CustomerID    int64 `json:"customer_id"`
	ProductID     int64 `json:"product_id"`
}

// Favorite отметка магазина как избранного
type Favorite struct {
	CustomerID int64 `json:"customer_id"`
	StoreID    int64 `json:"store_id"`
}
