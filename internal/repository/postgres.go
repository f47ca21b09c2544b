package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"bazaar/internal/domain"
)

// PostgresStore хранилище на Postgres через database/sql и драйвер pgx
type PostgresStore struct {
	db *sql.DB
}

// querier общий срез *sql.DB и *sql.Tx
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func OpenPostgres(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(30)
	db.SetMaxIdleConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	s := &PostgresStore{db: db}
	if err := s.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) Close() error { return s.db.Close() }

func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			first_name TEXT NOT NULL DEFAULT '',
			last_name TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS stores (
			id BIGSERIAL PRIMARY KEY,
			seller_id BIGINT NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			is_active BOOLEAN NOT NULL DEFAULT TRUE
		)`,
		`CREATE TABLE IF NOT EXISTS categories (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id BIGSERIAL PRIMARY KEY,
			store_id BIGINT NOT NULL REFERENCES stores(id) ON DELETE CASCADE,
			category_id BIGINT NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			price DOUBLE PRECISION NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			quantity BIGINT NOT NULL DEFAULT 0,
			location TEXT NOT NULL DEFAULT '',
			image_path TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS payment_types (
			id BIGSERIAL PRIMARY KEY,
			customer_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			merchant_name TEXT NOT NULL,
			acct_number TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			payment_type_id BIGINT REFERENCES payment_types(id),
			created_on TIMESTAMPTZ NOT NULL DEFAULT now(),
			completed_on TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS order_products (
			order_id BIGINT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			product_id BIGINT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
			PRIMARY KEY (order_id, product_id)
		)`,
		`CREATE TABLE IF NOT EXISTS ratings (
			id BIGSERIAL PRIMARY KEY,
			customer_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			product_id BIGINT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
			score INT NOT NULL,
			review TEXT NOT NULL DEFAULT '',
			UNIQUE (customer_id, product_id)
		)`,
		`CREATE TABLE IF NOT EXISTS recommendations (
			id BIGSERIAL PRIMARY KEY,
			recommender_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			customer_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			product_id BIGINT NOT NULL REFERENCES products(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS favorites (
			customer_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			store_id BIGINT NOT NULL REFERENCES stores(id) ON DELETE CASCADE,
			PRIMARY KEY (customer_id, store_id)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// transaction carried through the context
type pgTxKey struct{}

func (s *PostgresStore) q(ctx context.Context) querier {
	if tx, ok := ctx.Value(pgTxKey{}).(*sql.Tx); ok {
		return tx
	}
	return s.db
}

// PostgresTx реализует TxManager поверх BEGIN/COMMIT
type PostgresTx struct{ store *PostgresStore }

func NewPostgresTx(store *PostgresStore) *PostgresTx { return &PostgresTx{store: store} }

func (t *PostgresTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := t.store.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(context.WithValue(ctx, pgTxKey{}, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Ensure interfaces
var _ Store = (*PostgresStore)(nil)

func notFoundIfNoRows(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// UserRepository implementation
func (s *PostgresStore) CreateUser(ctx context.Context, u *domain.User) error {
	err := s.q(ctx).QueryRowContext(ctx,
		`INSERT INTO users (username, first_name, last_name) VALUES ($1, $2, $3) RETURNING id`,
		u.Username, u.FirstName, u.LastName).Scan(&u.ID)
	if err != nil && strings.Contains(err.Error(), "unique") {
		return ErrConflict
	}
	return err
}

func (s *PostgresStore) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	err := s.q(ctx).QueryRowContext(ctx,
		`SELECT id, username, first_name, last_name FROM users WHERE id = $1`, id).
		Scan(&u.ID, &u.Username, &u.FirstName, &u.LastName)
	if err != nil {
		return nil, notFoundIfNoRows(err)
	}
	return &u, nil
}

func (s *PostgresStore) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	err := s.q(ctx).QueryRowContext(ctx,
		`SELECT id, username, first_name, last_name FROM users WHERE username = $1`, username).
		Scan(&u.ID, &u.Username, &u.FirstName, &u.LastName)
	if err != nil {
		return nil, notFoundIfNoRows(err)
	}
	return &u, nil
}

func (s *PostgresStore) UpdateUser(ctx context.Context, u *domain.User) error {
	res, err := s.q(ctx).ExecContext(ctx,
		`UPDATE users SET username = $2, first_name = $3, last_name = $4 WHERE id = $1`,
		u.ID, u.Username, u.FirstName, u.LastName)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

func affectedOrNotFound(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// StoreRepository implementation
func (s *PostgresStore) CreateStore(ctx context.Context, st *domain.Store) error {
	err := s.q(ctx).QueryRowContext(ctx,
		`INSERT INTO stores (seller_id, name, description, is_active) VALUES ($1, $2, $3, $4) RETURNING id`,
		st.SellerID, st.Name, st.Description, st.IsActive).Scan(&st.ID)
	if err != nil && strings.Contains(err.Error(), "unique") {
		return ErrConflict
	}
	return err
}

func (s *PostgresStore) GetStore(ctx context.Context, id int64) (*domain.Store, error) {
	var st domain.Store
	err := s.q(ctx).QueryRowContext(ctx,
		`SELECT id, seller_id, name, description, is_active FROM stores WHERE id = $1`, id).
		Scan(&st.ID, &st.SellerID, &st.Name, &st.Description, &st.IsActive)
	if err != nil {
		return nil, notFoundIfNoRows(err)
	}
	return &st, nil
}

func (s *PostgresStore) GetStoreBySeller(ctx context.Context, sellerID int64) (*domain.Store, error) {
	var st domain.Store
	err := s.q(ctx).QueryRowContext(ctx,
		`SELECT id, seller_id, name, description, is_active FROM stores WHERE seller_id = $1`, sellerID).
		Scan(&st.ID, &st.SellerID, &st.Name, &st.Description, &st.IsActive)
	if err != nil {
		return nil, notFoundIfNoRows(err)
	}
	return &st, nil
}

func (s *PostgresStore) UpdateStore(ctx context.Context, st *domain.Store) error {
	res, err := s.q(ctx).ExecContext(ctx,
		`UPDATE stores SET name = $2, description = $3, is_active = $4 WHERE id = $1`,
		st.ID, st.Name, st.Description, st.IsActive)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

func (s *PostgresStore) ListStores(ctx context.Context) ([]domain.Store, error) {
	rows, err := s.q(ctx).QueryContext(ctx,
		`SELECT id, seller_id, name, description, is_active FROM stores ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]domain.Store, 0)
	for rows.Next() {
		var st domain.Store
		if err := rows.Scan(&st.ID, &st.SellerID, &st.Name, &st.Description, &st.IsActive); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func (s *PostgresStore) AddFavorite(ctx context.Context, customerID, storeID int64) error {
	if _, err := s.GetStore(ctx, storeID); err != nil {
		return err
	}
	_, err := s.q(ctx).ExecContext(ctx,
		`INSERT INTO favorites (customer_id, store_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		customerID, storeID)
	return err
}

func (s *PostgresStore) RemoveFavorite(ctx context.Context, customerID, storeID int64) error {
	res, err := s.q(ctx).ExecContext(ctx,
		`DELETE FROM favorites WHERE customer_id = $1 AND store_id = $2`, customerID, storeID)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

// CategoryRepository implementation
func (s *PostgresStore) CreateCategory(ctx context.Context, c *domain.Category) error {
	return s.q(ctx).QueryRowContext(ctx,
		`INSERT INTO categories (name) VALUES ($1) RETURNING id`, c.Name).Scan(&c.ID)
}

func (s *PostgresStore) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	var c domain.Category
	err := s.q(ctx).QueryRowContext(ctx,
		`SELECT id, name FROM categories WHERE id = $1`, id).Scan(&c.ID, &c.Name)
	if err != nil {
		return nil, notFoundIfNoRows(err)
	}
	return &c, nil
}

func (s *PostgresStore) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := s.q(ctx).QueryContext(ctx, `SELECT id, name FROM categories ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]domain.Category, 0)
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ProductRepository implementation
func (s *PostgresStore) CreateProduct(ctx context.Context, p *domain.Product) error {
	return s.q(ctx).QueryRowContext(ctx,
		`INSERT INTO products (store_id, category_id, name, price, description, quantity, location, image_path)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		p.StoreID, p.CategoryID, p.Name, p.Price, p.Description, p.Quantity, p.Location, p.ImagePath).
		Scan(&p.ID)
}

func (s *PostgresStore) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	var p domain.Product
	err := s.q(ctx).QueryRowContext(ctx,
		`SELECT id, store_id, category_id, name, price, description, quantity, location, image_path
		 FROM products WHERE id = $1`, id).
		Scan(&p.ID, &p.StoreID, &p.CategoryID, &p.Name, &p.Price, &p.Description, &p.Quantity, &p.Location, &p.ImagePath)
	if err != nil {
		return nil, notFoundIfNoRows(err)
	}
	return &p, nil
}

func (s *PostgresStore) UpdateProduct(ctx context.Context, p *domain.Product) error {
	res, err := s.q(ctx).ExecContext(ctx,
		`UPDATE products SET category_id = $2, name = $3, price = $4, description = $5,
		 quantity = $6, location = $7, image_path = $8 WHERE id = $1`,
		p.ID, p.CategoryID, p.Name, p.Price, p.Description, p.Quantity, p.Location, p.ImagePath)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

func (s *PostgresStore) DeleteProduct(ctx context.Context, id int64) error {
	res, err := s.q(ctx).ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

func (s *PostgresStore) ListProducts(ctx context.Context, f ProductFilter) ([]domain.Product, error) {
	q := `SELECT id, store_id, category_id, name, price, description, quantity, location, image_path FROM products`
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if f.CategoryID != nil {
		where = append(where, "category_id = "+arg(*f.CategoryID))
	}
	if f.NameSubstring != "" {
		where = append(where, "name ILIKE "+arg("%"+f.NameSubstring+"%"))
	}
	if f.Location != "" {
		where = append(where, "location ILIKE "+arg("%"+f.Location+"%"))
	}
	if f.MinPrice != nil {
		where = append(where, "price >= "+arg(*f.MinPrice))
	}
	if f.NumberSoldLT != nil {
		where = append(where,
			`(SELECT count(*) FROM order_products op
			  JOIN orders o ON o.id = op.order_id
			  WHERE op.product_id = products.id AND o.completed_on IS NOT NULL) < `+arg(*f.NumberSoldLT))
	}
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	switch f.OrderBy {
	case OrderByName:
		q += " ORDER BY name"
	case OrderByPrice:
		q += " ORDER BY price"
	default:
		q += " ORDER BY id"
	}
	if f.Descending && f.OrderBy != "" {
		q += " DESC"
	}

	rows, err := s.q(ctx).QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]domain.Product, 0)
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.StoreID, &p.CategoryID, &p.Name, &p.Price, &p.Description, &p.Quantity, &p.Location, &p.ImagePath); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// OrderRepository implementation
func (s *PostgresStore) CreateOrder(ctx context.Context, o *domain.Order) error {
	o.CreatedOn = time.Now().UTC()
	return s.q(ctx).QueryRowContext(ctx,
		`INSERT INTO orders (user_id, payment_type_id, created_on, completed_on)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		o.UserID, o.PaymentTypeID, o.CreatedOn, o.CompletedOn).Scan(&o.ID)
}

func (s *PostgresStore) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	var o domain.Order
	err := s.q(ctx).QueryRowContext(ctx,
		`SELECT id, user_id, payment_type_id, created_on, completed_on FROM orders WHERE id = $1`, id).
		Scan(&o.ID, &o.UserID, &o.PaymentTypeID, &o.CreatedOn, &o.CompletedOn)
	if err != nil {
		return nil, notFoundIfNoRows(err)
	}
	return &o, nil
}

func (s *PostgresStore) GetOpenOrder(ctx context.Context, userID int64) (*domain.Order, error) {
	var o domain.Order
	err := s.q(ctx).QueryRowContext(ctx,
		`SELECT id, user_id, payment_type_id, created_on, completed_on FROM orders
		 WHERE user_id = $1 AND completed_on IS NULL`, userID).
		Scan(&o.ID, &o.UserID, &o.PaymentTypeID, &o.CreatedOn, &o.CompletedOn)
	if err != nil {
		return nil, notFoundIfNoRows(err)
	}
	return &o, nil
}

func (s *PostgresStore) ListOrders(ctx context.Context, userID int64) ([]domain.Order, error) {
	rows, err := s.q(ctx).QueryContext(ctx,
		`SELECT id, user_id, payment_type_id, created_on, completed_on FROM orders
		 WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]domain.Order, 0)
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.PaymentTypeID, &o.CreatedOn, &o.CompletedOn); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (s *PostgresStore) UpdateOrder(ctx context.Context, o *domain.Order) error {
	res, err := s.q(ctx).ExecContext(ctx,
		`UPDATE orders SET payment_type_id = $2, completed_on = $3 WHERE id = $1`,
		o.ID, o.PaymentTypeID, o.CompletedOn)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

func (s *PostgresStore) DeleteOrder(ctx context.Context, id int64) error {
	res, err := s.q(ctx).ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

func (s *PostgresStore) AddOrderProduct(ctx context.Context, orderID, productID int64) error {
	if _, err := s.GetOrder(ctx, orderID); err != nil {
		return err
	}
	_, err := s.q(ctx).ExecContext(ctx,
		`INSERT INTO order_products (order_id, product_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		orderID, productID)
	return err
}

func (s *PostgresStore) RemoveOrderProduct(ctx context.Context, orderID, productID int64) error {
	res, err := s.q(ctx).ExecContext(ctx,
		`DELETE FROM order_products WHERE order_id = $1 AND product_id = $2`, orderID, productID)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

func (s *PostgresStore) OrderProductIDs(ctx context.Context, orderID int64) ([]int64, error) {
	rows, err := s.q(ctx).QueryContext(ctx,
		`SELECT product_id FROM order_products WHERE order_id = $1 ORDER BY product_id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (s *PostgresStore) CountCompletedOrders(ctx context.Context, productID int64) (int64, error) {
	var n int64
	err := s.q(ctx).QueryRowContext(ctx,
		`SELECT count(*) FROM order_products op
		 JOIN orders o ON o.id = op.order_id
		 WHERE op.product_id = $1 AND o.completed_on IS NOT NULL`, productID).Scan(&n)
	return n, err
}

// PaymentTypeRepository implementation
func (s *PostgresStore) CreatePaymentType(ctx context.Context, p *domain.PaymentType) error {
	return s.q(ctx).QueryRowContext(ctx,
		`INSERT INTO payment_types (customer_id, merchant_name, acct_number)
		 VALUES ($1, $2, $3) RETURNING id`,
		p.CustomerID, p.MerchantName, p.AcctNumber).Scan(&p.ID)
}

func (s *PostgresStore) GetPaymentType(ctx context.Context, id int64) (*domain.PaymentType, error) {
	var p domain.PaymentType
	err := s.q(ctx).QueryRowContext(ctx,
		`SELECT id, customer_id, merchant_name, acct_number FROM payment_types WHERE id = $1`, id).
		Scan(&p.ID, &p.CustomerID, &p.MerchantName, &p.AcctNumber)
	if err != nil {
		return nil, notFoundIfNoRows(err)
	}
	return &p, nil
}

func (s *PostgresStore) ListPaymentTypes(ctx context.Context, customerID int64) ([]domain.PaymentType, error) {
	rows, err := s.q(ctx).QueryContext(ctx,
		`SELECT id, customer_id, merchant_name, acct_number FROM payment_types
		 WHERE customer_id = $1 ORDER BY id`, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]domain.PaymentType, 0)
	for rows.Next() {
		var p domain.PaymentType
		if err := rows.Scan(&p.ID, &p.CustomerID, &p.MerchantName, &p.AcctNumber); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *PostgresStore) DeletePaymentType(ctx context.Context, id int64) error {
	res, err := s.q(ctx).ExecContext(ctx, `DELETE FROM payment_types WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

// RatingRepository implementation
func (s *PostgresStore) CreateRating(ctx context.Context, r *domain.Rating) error {
	return s.q(ctx).QueryRowContext(ctx,
		`INSERT INTO ratings (customer_id, product_id, score, review)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		r.CustomerID, r.ProductID, r.Score, r.Review).Scan(&r.ID)
}

func (s *PostgresStore) GetRating(ctx context.Context, customerID, productID int64) (*domain.Rating, error) {
	var r domain.Rating
	err := s.q(ctx).QueryRowContext(ctx,
		`SELECT id, customer_id, product_id, score, review FROM ratings
		 WHERE customer_id = $1 AND product_id = $2`, customerID, productID).
		Scan(&r.ID, &r.CustomerID, &r.ProductID, &r.Score, &r.Review)
	if err != nil {
		return nil, notFoundIfNoRows(err)
	}
	return &r, nil
}

func (s *PostgresStore) UpdateRating(ctx context.Context, r *domain.Rating) error {
	res, err := s.q(ctx).ExecContext(ctx,
		`UPDATE ratings SET score = $2, review = $3 WHERE id = $1`, r.ID, r.Score, r.Review)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

func (s *PostgresStore) ListRatings(ctx context.Context, productID int64) ([]domain.Rating, error) {
	rows, err := s.q(ctx).QueryContext(ctx,
		`SELECT id, customer_id, product_id, score, review FROM ratings
		 WHERE product_id = $1 ORDER BY id`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]domain.Rating, 0)
	for rows.Next() {
		var r domain.Rating
		if err := rows.Scan(&r.ID, &r.CustomerID, &r.ProductID, &r.Score, &r.Review); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// RecommendationRepository implementation
func (s *PostgresStore) CreateRecommendation(ctx context.Context, r *domain.Recommendation) error {
	return s.q(ctx).QueryRowContext(ctx,
		`INSERT INTO recommendations (recommender_id, customer_id, product_id)
		 VALUES ($1, $2, $3) RETURNING id`,
		r.RecommenderID, r.CustomerID, r.ProductID).Scan(&r.ID)
}

func (s *PostgresStore) DeleteRecommendation(ctx context.Context, recommenderID, customerID, productID int64) error {
	res, err := s.q(ctx).ExecContext(ctx,
		`DELETE FROM recommendations
		 WHERE id IN (
			SELECT id FROM recommendations
			WHERE recommender_id = $1 AND customer_id = $2 AND product_id = $3
			LIMIT 1
		 )`, recommenderID, customerID, productID)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}
