package service

import (
	"context"
	"fmt"
	"math"

	"bazaar/internal/domain"
	"bazaar/internal/repository"
)

// CatalogService инкапсулирует логику каталога: товары, категории, магазины
type CatalogService struct {
	store repository.Store
}

func NewCatalogService(store repository.Store) *CatalogService {
	return &CatalogService{store: store}
}

// ProductInput данные товара от клиента
type ProductInput struct {
	CategoryID  int64
	Name        string
	Price       float64
	Description string
	Quantity    int64
	Location    string
	ImagePath   string
}

const maxPrice = 10000

func validateProduct(in ProductInput) error {
	if in.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if in.Price < 0 || in.Price > maxPrice {
		return fmt.Errorf("%w: price must be between 0 and %d", ErrValidation, maxPrice)
	}
	// не больше двух знаков после запятой
	if math.Abs(in.Price*100-math.Round(in.Price*100)) > 1e-9 {
		return fmt.Errorf("%w: price must have at most two decimal places", ErrValidation)
	}
	if in.Quantity < 0 {
		return fmt.Errorf("%w: quantity must not be negative", ErrValidation)
	}
	if !domain.KnownLocation(in.Location) {
		return fmt.Errorf("%w: unknown location %q", ErrValidation, in.Location)
	}
	return nil
}

// CreateProduct создаёт товар в магазине текущего продавца
func (s *CatalogService) CreateProduct(ctx context.Context, sellerID int64, in ProductInput) (*domain.ProductDetail, error) {
	if err := validateProduct(in); err != nil {
		return nil, err
	}
	st, err := s.store.GetStoreBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.GetCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}
	p := domain.Product{
		StoreID:     st.ID,
		CategoryID:  in.CategoryID,
		Name:        in.Name,
		Price:       in.Price,
		Description: in.Description,
		Quantity:    in.Quantity,
		Location:    in.Location,
		ImagePath:   in.ImagePath,
	}
	if err := s.store.CreateProduct(ctx, &p); err != nil {
		return nil, err
	}
	return s.detail(ctx, p)
}

// UpdateProduct обновляет товар; товар должен принадлежать магазину продавца
func (s *CatalogService) UpdateProduct(ctx context.Context, sellerID, productID int64, in ProductInput) (*domain.ProductDetail, error) {
	if err := validateProduct(in); err != nil {
		return nil, err
	}
	p, err := s.ownedProduct(ctx, sellerID, productID)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.GetCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}
	p.CategoryID = in.CategoryID
	p.Name = in.Name
	p.Price = in.Price
	p.Description = in.Description
	p.Quantity = in.Quantity
	p.Location = in.Location
	if in.ImagePath != "" {
		p.ImagePath = in.ImagePath
	}
	if err := s.store.UpdateProduct(ctx, p); err != nil {
		return nil, err
	}
	return s.detail(ctx, *p)
}

// DeleteProduct удаляет товар продавца
func (s *CatalogService) DeleteProduct(ctx context.Context, sellerID, productID int64) error {
	if _, err := s.ownedProduct(ctx, sellerID, productID); err != nil {
		return err
	}
	return s.store.DeleteProduct(ctx, productID)
}

// ownedProduct возвращает товар, если он принадлежит магазину продавца
func (s *CatalogService) ownedProduct(ctx context.Context, sellerID, productID int64) (*domain.Product, error) {
	p, err := s.store.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	st, err := s.store.GetStoreBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	if p.StoreID != st.ID {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

// GetProduct возвращает товар в клиентском представлении
func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*domain.ProductDetail, error) {
	p, err := s.store.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, *p)
}

// ListProducts возвращает товары по фильтру; условия фильтра складываются по AND
func (s *CatalogService) ListProducts(ctx context.Context, f repository.ProductFilter) ([]domain.ProductDetail, error) {
	products, err := s.store.ListProducts(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]domain.ProductDetail, 0, len(products))
	for _, p := range products {
		d, err := s.detail(ctx, p)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, nil
}

func (s *CatalogService) detail(ctx context.Context, p domain.Product) (*domain.ProductDetail, error) {
	cat, err := s.store.GetCategory(ctx, p.CategoryID)
	if err != nil {
		return nil, err
	}
	st, err := s.store.GetStore(ctx, p.StoreID)
	if err != nil {
		return nil, err
	}
	ratings, err := s.store.ListRatings(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	purchased, err := s.store.CountCompletedOrders(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return &domain.ProductDetail{
		Product:         p,
		Category:        *cat,
		Store:           *st,
		AverageRating:   averageScore(ratings),
		NumberPurchased: purchased,
		Ratings:         ratings,
	}, nil
}

// averageScore среднее по оценкам; nil, когда оценок нет
func averageScore(ratings []domain.Rating) *float64 {
	if len(ratings) == 0 {
		return nil
	}
	var total int
	for _, r := range ratings {
		total += r.Score
	}
	avg := float64(total) / float64(len(ratings))
	return &avg
}

// ListCategories возвращает все категории
func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.store.ListCategories(ctx)
}

// CreateCategory добавляет категорию
func (s *CatalogService) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	c := domain.Category{Name: name}
	if err := s.store.CreateCategory(ctx, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateStore создаёт магазин; у пользователя может быть только один
func (s *CatalogService) CreateStore(ctx context.Context, sellerID int64, name, description string) (*domain.StoreDetail, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	st := domain.Store{SellerID: sellerID, Name: name, Description: description, IsActive: true}
	if err := s.store.CreateStore(ctx, &st); err != nil {
		return nil, err
	}
	return s.storeDetail(ctx, st)
}

// GetStore возвращает магазин с продавцом и товарами
func (s *CatalogService) GetStore(ctx context.Context, id int64) (*domain.StoreDetail, error) {
	st, err := s.store.GetStore(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.storeDetail(ctx, *st)
}

// ListStores возвращает все магазины
func (s *CatalogService) ListStores(ctx context.Context) ([]domain.StoreDetail, error) {
	stores, err := s.store.ListStores(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.StoreDetail, 0, len(stores))
	for _, st := range stores {
		d, err := s.storeDetail(ctx, st)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, nil
}

// UpdateStore обновляет магазин; разрешено только владельцу
func (s *CatalogService) UpdateStore(ctx context.Context, sellerID, storeID int64, name, description string) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	st, err := s.store.GetStore(ctx, storeID)
	if err != nil {
		return err
	}
	if st.SellerID != sellerID {
		return repository.ErrNotFound
	}
	st.Name = name
	st.Description = description
	return s.store.UpdateStore(ctx, st)
}

func (s *CatalogService) storeDetail(ctx context.Context, st domain.Store) (*domain.StoreDetail, error) {
	seller, err := s.store.GetUser(ctx, st.SellerID)
	if err != nil {
		return nil, err
	}
	storeID := st.ID
	products, err := s.store.ListProducts(ctx, repository.ProductFilter{})
	if err != nil {
		return nil, err
	}
	owned := make([]domain.Product, 0)
	for _, p := range products {
		if p.StoreID == storeID {
			owned = append(owned, p)
		}
	}
	return &domain.StoreDetail{Store: st, Seller: *seller, Products: owned}, nil
}

// FavoriteStore добавляет магазин в избранное покупателя
func (s *CatalogService) FavoriteStore(ctx context.Context, customerID, storeID int64) error {
	return s.store.AddFavorite(ctx, customerID, storeID)
}

// UnfavoriteStore убирает магазин из избранного; NotFound, если отметки не было
func (s *CatalogService) UnfavoriteStore(ctx context.Context, customerID, storeID int64) error {
	return s.store.RemoveFavorite(ctx, customerID, storeID)
}
