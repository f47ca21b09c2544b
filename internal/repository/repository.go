package repository

import (
	"context"
	"errors"
	"strings"

	"bazaar/internal/domain"
)

// ErrNotFound возвращается, когда сущность не найдена
var ErrNotFound = errors.New("not found")

// ErrConflict возвращается при нарушении уникальности (второй магазин пользователя)
var ErrConflict = errors.New("already exists")

// Поля сортировки списка товаров
const (
	OrderByName  = "name"
	OrderByPrice = "price"
)

// ProductFilter параметры фильтрации списка товаров; условия складываются по AND
type ProductFilter struct {
	CategoryID    *int64
	NameSubstring string
	Location      string
	MinPrice      *float64
	// NumberSoldLT оставляет товары, попавшие менее чем в N завершённых заказов
	NumberSoldLT *int64
	OrderBy      string
	Descending   bool
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	CreateUser(ctx context.Context, u *domain.User) error
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdateUser(ctx context.Context, u *domain.User) error
}

// StoreRepository интерфейс репозитория магазинов и избранного
type StoreRepository interface {
	CreateStore(ctx context.Context, s *domain.Store) error
	GetStore(ctx context.Context, id int64) (*domain.Store, error)
	GetStoreBySeller(ctx context.Context, sellerID int64) (*domain.Store, error)
	UpdateStore(ctx context.Context, s *domain.Store) error
	ListStores(ctx context.Context) ([]domain.Store, error)
	AddFavorite(ctx context.Context, customerID, storeID int64) error
	RemoveFavorite(ctx context.Context, customerID, storeID int64) error
}

// CategoryRepository интерфейс репозитория категорий
type CategoryRepository interface {
	CreateCategory(ctx context.Context, c *domain.Category) error
	GetCategory(ctx context.Context, id int64) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

// ProductRepository интерфейс репозитория товаров
type ProductRepository interface {
	CreateProduct(ctx context.Context, p *domain.Product) error
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	UpdateProduct(ctx context.Context, p *domain.Product) error
	DeleteProduct(ctx context.Context, id int64) error
	ListProducts(ctx context.Context, f ProductFilter) ([]domain.Product, error)
}

// OrderRepository интерфейс репозитория заказов и связей заказ-товар
type OrderRepository interface {
	CreateOrder(ctx context.Context, o *domain.Order) error
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
	// GetOpenOrder возвращает незавершённый заказ пользователя, ErrNotFound если его нет
	GetOpenOrder(ctx context.Context, userID int64) (*domain.Order, error)
	ListOrders(ctx context.Context, userID int64) ([]domain.Order, error)
	UpdateOrder(ctx context.Context, o *domain.Order) error
	DeleteOrder(ctx context.Context, id int64) error
	// AddOrderProduct идемпотентна: повторное добавление той же пары — no-op
	AddOrderProduct(ctx context.Context, orderID, productID int64) error
	RemoveOrderProduct(ctx context.Context, orderID, productID int64) error
	OrderProductIDs(ctx context.Context, orderID int64) ([]int64, error)
	// CountCompletedOrders число завершённых заказов, содержащих товар
	CountCompletedOrders(ctx context.Context, productID int64) (int64, error)
}

// PaymentTypeRepository интерфейс репозитория способов оплаты
type PaymentTypeRepository interface {
	CreatePaymentType(ctx context.Context, p *domain.PaymentType) error
	GetPaymentType(ctx context.Context, id int64) (*domain.PaymentType, error)
	ListPaymentTypes(ctx context.Context, customerID int64) ([]domain.PaymentType, error)
	DeletePaymentType(ctx context.Context, id int64) error
}

// RatingRepository интерфейс репозитория оценок
type RatingRepository interface {
	CreateRating(ctx context.Context, r *domain.Rating) error
	GetRating(ctx context.Context, customerID, productID int64) (*domain.Rating, error)
	UpdateRating(ctx context.Context, r *domain.Rating) error
	ListRatings(ctx context.Context, productID int64) ([]domain.Rating, error)
}

// RecommendationRepository интерфейс репозитория рекомендаций
type RecommendationRepository interface {
	CreateRecommendation(ctx context.Context, r *domain.Recommendation) error
	DeleteRecommendation(ctx context.Context, recommenderID, customerID, productID int64) error
}

// Store объединяет все репозитории; реализуется памятью и Postgres
type Store interface {
	UserRepository
	StoreRepository
	CategoryRepository
	ProductRepository
	OrderRepository
	PaymentTypeRepository
	RatingRepository
	RecommendationRepository
}

// TxManager абстракция транзакции. Для in-memory — глобальная блокировка записи,
// для Postgres — BEGIN/COMMIT.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// helper: case-insensitive contains
func containsIgnoreCase(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
