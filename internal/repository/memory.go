package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"bazaar/internal/domain"
)

// MemoryStore объединённое in-memory хранилище и простой генератор ID
type MemoryStore struct {
	mu sync.RWMutex

	nextUserID    int64
	nextStoreID   int64
	nextCatID     int64
	nextProdID    int64
	nextOrderID   int64
	nextPayID     int64
	nextRatingID  int64
	nextRecommend int64

	usersByID       map[int64]domain.User
	storesByID      map[int64]domain.Store
	categoriesByID  map[int64]domain.Category
	productsByID    map[int64]domain.Product
	ordersByID      map[int64]domain.Order
	paymentsByID    map[int64]domain.PaymentType
	ratingsByID     map[int64]domain.Rating
	recommendations map[int64]domain.Recommendation

	// явная join-таблица заказ-товар с уникальностью пары
	orderProducts map[int64]map[int64]struct{}
	// избранные магазины: customerID -> set of storeID
	favorites map[int64]map[int64]struct{}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextUserID:      1,
		nextStoreID:     1,
		nextCatID:       1,
		nextProdID:      1,
		nextOrderID:     1,
		nextPayID:       1,
		nextRatingID:    1,
		nextRecommend:   1,
		usersByID:       make(map[int64]domain.User),
		storesByID:      make(map[int64]domain.Store),
		categoriesByID:  make(map[int64]domain.Category),
		productsByID:    make(map[int64]domain.Product),
		ordersByID:      make(map[int64]domain.Order),
		paymentsByID:    make(map[int64]domain.PaymentType),
		ratingsByID:     make(map[int64]domain.Rating),
		recommendations: make(map[int64]domain.Recommendation),
		orderProducts:   make(map[int64]map[int64]struct{}),
		favorites:       make(map[int64]map[int64]struct{}),
	}
}

// transaction-aware locking helpers
type txKey struct{}

func isTx(ctx context.Context) bool {
	v := ctx.Value(txKey{})
	if v == nil {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

func (m *MemoryStore) rlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.RLock()
	}
}
func (m *MemoryStore) runlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.RUnlock()
	}
}
func (m *MemoryStore) wlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.Lock()
	}
}
func (m *MemoryStore) wunlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.Unlock()
	}
}

// Ensure interfaces
var _ Store = (*MemoryStore)(nil)

// UserRepository implementation
func (m *MemoryStore) CreateUser(ctx context.Context, u *domain.User) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	for _, existing := range m.usersByID {
		if existing.Username == u.Username {
			return ErrConflict
		}
	}
	u.ID = m.nextUserID
	m.nextUserID++
	m.usersByID[u.ID] = *u
	return nil
}

func (m *MemoryStore) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	u, ok := m.usersByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := u
	return &cp, nil
}

func (m *MemoryStore) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	for _, u := range m.usersByID {
		if u.Username == username {
			cp := u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) UpdateUser(ctx context.Context, u *domain.User) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	if _, ok := m.usersByID[u.ID]; !ok {
		return ErrNotFound
	}
	m.usersByID[u.ID] = *u
	return nil
}

// StoreRepository implementation
func (m *MemoryStore) CreateStore(ctx context.Context, s *domain.Store) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	for _, existing := range m.storesByID {
		if existing.SellerID == s.SellerID {
			return ErrConflict
		}
	}
	s.ID = m.nextStoreID
	m.nextStoreID++
	m.storesByID[s.ID] = *s
	return nil
}

func (m *MemoryStore) GetStore(ctx context.Context, id int64) (*domain.Store, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	s, ok := m.storesByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := s
	return &cp, nil
}

func (m *MemoryStore) GetStoreBySeller(ctx context.Context, sellerID int64) (*domain.Store, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	for _, s := range m.storesByID {
		if s.SellerID == sellerID {
			cp := s
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) UpdateStore(ctx context.Context, s *domain.Store) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	if _, ok := m.storesByID[s.ID]; !ok {
		return ErrNotFound
	}
	m.storesByID[s.ID] = *s
	return nil
}

func (m *MemoryStore) ListStores(ctx context.Context) ([]domain.Store, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	out := make([]domain.Store, 0, len(m.storesByID))
	for _, s := range m.storesByID {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) AddFavorite(ctx context.Context, customerID, storeID int64) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	if _, ok := m.storesByID[storeID]; !ok {
		return ErrNotFound
	}
	set, ok := m.favorites[customerID]
	if !ok {
		set = make(map[int64]struct{})
		m.favorites[customerID] = set
	}
	set[storeID] = struct{}{}
	return nil
}

func (m *MemoryStore) RemoveFavorite(ctx context.Context, customerID, storeID int64) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	set, ok := m.favorites[customerID]
	if !ok {
		return ErrNotFound
	}
	if _, ok := set[storeID]; !ok {
		return ErrNotFound
	}
	delete(set, storeID)
	return nil
}

// CategoryRepository implementation
func (m *MemoryStore) CreateCategory(ctx context.Context, c *domain.Category) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	c.ID = m.nextCatID
	m.nextCatID++
	m.categoriesByID[c.ID] = *c
	return nil
}

func (m *MemoryStore) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	c, ok := m.categoriesByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := c
	return &cp, nil
}

func (m *MemoryStore) ListCategories(ctx context.Context) ([]domain.Category, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	out := make([]domain.Category, 0, len(m.categoriesByID))
	for _, c := range m.categoriesByID {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ProductRepository implementation
func (m *MemoryStore) CreateProduct(ctx context.Context, p *domain.Product) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	p.ID = m.nextProdID
	m.nextProdID++
	m.productsByID[p.ID] = *p
	return nil
}

func (m *MemoryStore) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	p, ok := m.productsByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := p
	return &cp, nil
}

func (m *MemoryStore) UpdateProduct(ctx context.Context, p *domain.Product) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	if _, ok := m.productsByID[p.ID]; !ok {
		return ErrNotFound
	}
	m.productsByID[p.ID] = *p
	return nil
}

func (m *MemoryStore) DeleteProduct(ctx context.Context, id int64) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	if _, ok := m.productsByID[id]; !ok {
		return ErrNotFound
	}
	delete(m.productsByID, id)
	for _, set := range m.orderProducts {
		delete(set, id)
	}
	return nil
}

func (m *MemoryStore) ListProducts(ctx context.Context, f ProductFilter) ([]domain.Product, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	out := make([]domain.Product, 0)
	for _, p := range m.productsByID {
		if !containsIgnoreCase(p.Name, f.NameSubstring) {
			continue
		}
		if f.CategoryID != nil && p.CategoryID != *f.CategoryID {
			continue
		}
		if f.Location != "" && !containsIgnoreCase(p.Location, f.Location) {
			continue
		}
		if f.MinPrice != nil && p.Price < *f.MinPrice {
			continue
		}
		if f.NumberSoldLT != nil && m.completedOrderCount(p.ID) >= *f.NumberSoldLT {
			continue
		}
		out = append(out, p)
	}
	sortProducts(out, f)
	return out, nil
}

// caller holds the lock
func (m *MemoryStore) completedOrderCount(productID int64) int64 {
	var n int64
	for orderID, set := range m.orderProducts {
		if _, ok := set[productID]; !ok {
			continue
		}
		if o, exists := m.ordersByID[orderID]; exists && o.Completed() {
			n++
		}
	}
	return n
}

func sortProducts(products []domain.Product, f ProductFilter) {
	less := func(i, j int) bool { return products[i].ID < products[j].ID }
	switch f.OrderBy {
	case OrderByName:
		less = func(i, j int) bool { return products[i].Name < products[j].Name }
	case OrderByPrice:
		less = func(i, j int) bool { return products[i].Price < products[j].Price }
	}
	if f.Descending && f.OrderBy != "" {
		inner := less
		less = func(i, j int) bool { return inner(j, i) }
	}
	sort.SliceStable(products, less)
}

// OrderRepository implementation
func (m *MemoryStore) CreateOrder(ctx context.Context, o *domain.Order) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	o.ID = m.nextOrderID
	m.nextOrderID++
	o.CreatedOn = time.Now().UTC()
	m.ordersByID[o.ID] = *o
	m.orderProducts[o.ID] = make(map[int64]struct{})
	return nil
}

func (m *MemoryStore) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	o, ok := m.ordersByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := o
	return &cp, nil
}

func (m *MemoryStore) GetOpenOrder(ctx context.Context, userID int64) (*domain.Order, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	for _, o := range m.ordersByID {
		if o.UserID == userID && !o.Completed() {
			cp := o
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) ListOrders(ctx context.Context, userID int64) ([]domain.Order, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	out := make([]domain.Order, 0)
	for _, o := range m.ordersByID {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) UpdateOrder(ctx context.Context, o *domain.Order) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	if _, ok := m.ordersByID[o.ID]; !ok {
		return ErrNotFound
	}
	m.ordersByID[o.ID] = *o
	return nil
}

func (m *MemoryStore) DeleteOrder(ctx context.Context, id int64) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	if _, ok := m.ordersByID[id]; !ok {
		return ErrNotFound
	}
	delete(m.ordersByID, id)
	delete(m.orderProducts, id)
	return nil
}

func (m *MemoryStore) AddOrderProduct(ctx context.Context, orderID, productID int64) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	set, ok := m.orderProducts[orderID]
	if !ok {
		return ErrNotFound
	}
	set[productID] = struct{}{}
	return nil
}

func (m *MemoryStore) RemoveOrderProduct(ctx context.Context, orderID, productID int64) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	set, ok := m.orderProducts[orderID]
	if !ok {
		return ErrNotFound
	}
	if _, ok := set[productID]; !ok {
		return ErrNotFound
	}
	delete(set, productID)
	return nil
}

func (m *MemoryStore) OrderProductIDs(ctx context.Context, orderID int64) ([]int64, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	set, ok := m.orderProducts[orderID]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]int64, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func (m *MemoryStore) CountCompletedOrders(ctx context.Context, productID int64) (int64, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	return m.completedOrderCount(productID), nil
}

// PaymentTypeRepository implementation
func (m *MemoryStore) CreatePaymentType(ctx context.Context, p *domain.PaymentType) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	p.ID = m.nextPayID
	m.nextPayID++
	m.paymentsByID[p.ID] = *p
	return nil
}

func (m *MemoryStore) GetPaymentType(ctx context.Context, id int64) (*domain.PaymentType, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	p, ok := m.paymentsByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := p
	return &cp, nil
}

func (m *MemoryStore) ListPaymentTypes(ctx context.Context, customerID int64) ([]domain.PaymentType, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	out := make([]domain.PaymentType, 0)
	for _, p := range m.paymentsByID {
		if p.CustomerID == customerID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) DeletePaymentType(ctx context.Context, id int64) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	if _, ok := m.paymentsByID[id]; !ok {
		return ErrNotFound
	}
	delete(m.paymentsByID, id)
	return nil
}

// RatingRepository implementation
func (m *MemoryStore) CreateRating(ctx context.Context, r *domain.Rating) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	r.ID = m.nextRatingID
	m.nextRatingID++
	m.ratingsByID[r.ID] = *r
	return nil
}

func (m *MemoryStore) GetRating(ctx context.Context, customerID, productID int64) (*domain.Rating, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	for _, r := range m.ratingsByID {
		if r.CustomerID == customerID && r.ProductID == productID {
			cp := r
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) UpdateRating(ctx context.Context, r *domain.Rating) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	if _, ok := m.ratingsByID[r.ID]; !ok {
		return ErrNotFound
	}
	m.ratingsByID[r.ID] = *r
	return nil
}

func (m *MemoryStore) ListRatings(ctx context.Context, productID int64) ([]domain.Rating, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	out := make([]domain.Rating, 0)
	for _, r := range m.ratingsByID {
		if r.ProductID == productID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// RecommendationRepository implementation
func (m *MemoryStore) CreateRecommendation(ctx context.Context, r *domain.Recommendation) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	r.ID = m.nextRecommend
	m.nextRecommend++
	m.recommendations[r.ID] = *r
	return nil
}

func (m *MemoryStore) DeleteRecommendation(ctx context.Context, recommenderID, customerID, productID int64) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	for id, r := range m.recommendations {
		if r.RecommenderID == recommenderID && r.CustomerID == customerID && r.ProductID == productID {
			delete(m.recommendations, id)
			return nil
		}
	}
	return ErrNotFound
}

// Tx manager using write lock to emulate transaction boundary
type MemoryTx struct{ store *MemoryStore }

func NewMemoryTx(store *MemoryStore) *MemoryTx { return &MemoryTx{store: store} }

func (tx *MemoryTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	// Для in-memory используем блокировку записи и помечаем контекст, чтобы репозитории пропускали внутренние локи
	tx.store.mu.Lock()
	defer tx.store.mu.Unlock()
	ctx = context.WithValue(ctx, txKey{}, true)
	return fn(ctx)
}
