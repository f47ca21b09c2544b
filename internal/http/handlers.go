package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"bazaar/internal/repository"
	"bazaar/internal/service"
	"bazaar/pkg/cache"
)

type Server struct {
	engine  *gin.Engine
	users   *service.UserService
	catalog *service.CatalogService
	orders  *service.OrderService
	ledger  *service.LedgerService
	lists   *cache.ProductCache
}

func NewServer(users *service.UserService, catalog *service.CatalogService, orders *service.OrderService, ledger *service.LedgerService, lists *cache.ProductCache, log zerolog.Logger) *Server {
	r := gin.New()
	r.Use(requestLogger(log), gin.Recovery())
	s := &Server{engine: r, users: users, catalog: catalog, orders: orders, ledger: ledger, lists: lists}
	s.registerRoutes()
	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) registerRoutes() {
	// Swagger UI
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := s.engine.Group("/api/v1")

	// provisioning endpoint for the identity collaborator, no identity required
	v1.POST("/users", s.createUser)

	authed := v1.Group("", identity(s.users))
	{
		profile := authed.Group("/profile")
		profile.GET("/my-profile", s.myProfile)
		profile.PUT("/edit", s.editProfile)

		authed.GET("/categories", s.listCategories)

		stores := authed.Group("/stores")
		stores.POST("", s.createStore)
		stores.GET("", s.listStores)
		stores.GET(":id", s.getStore)
		stores.PUT(":id", s.updateStore)
		stores.POST(":id/favorite", s.favoriteStore)
		stores.DELETE(":id/favorite", s.unfavoriteStore)

		products := authed.Group("/products")
		products.POST("", s.createProduct)
		products.GET("", s.listProducts)
		products.GET(":id", s.getProduct)
		products.PUT(":id", s.updateProduct)
		products.DELETE(":id", s.deleteProduct)
		products.POST(":id/add-to-order", s.addToOrder)
		products.DELETE(":id/remove-from-order", s.removeFromOrder)
		products.POST(":id/recommend", s.recommend)
		products.DELETE(":id/recommend", s.unrecommend)
		products.POST(":id/rate-product", s.rateProduct)

		orders := authed.Group("/orders")
		orders.GET("", s.listOrders)
		orders.GET("/current", s.currentOrder)
		orders.DELETE(":id", s.deleteOrder)
		orders.PUT(":id/complete", s.completeOrder)

		payments := authed.Group("/payment-types")
		payments.GET("", s.listPaymentTypes)
		payments.POST("", s.createPaymentType)
		payments.DELETE(":id", s.deletePaymentType)
	}
}

// User handlers
type createUserReq struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// @Summary Provision a user record
// @Tags users
// @Accept json
// @Produce json
// @Param input body createUserReq true "User"
// @Success 201 {object} domain.User
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /users [post]
func (s *Server) createUser(c *gin.Context) {
	var req createUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid json"})
		return
	}
	u, err := s.users.CreateUser(c, req.Username, req.FirstName, req.LastName)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, u)
}

// @Summary Current user's profile
// @Tags profile
// @Produce json
// @Success 200 {object} domain.User
// @Router /profile/my-profile [get]
func (s *Server) myProfile(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c))
}

// @Summary Edit current user's profile
// @Tags profile
// @Accept json
// @Param input body createUserReq true "Profile"
// @Success 204
// @Failure 400 {object} map[string]string
// @Router /profile/edit [put]
func (s *Server) editProfile(c *gin.Context) {
	var req createUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid json"})
		return
	}
	if err := s.users.UpdateProfile(c, currentUser(c).ID, req.Username, req.FirstName, req.LastName); err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"message": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {array} domain.Category
// @Router /categories [get]
func (s *Server) listCategories(c *gin.Context) {
	list, err := s.catalog.ListCategories(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

// Store handlers
type storeReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// @Summary Create a store for the current user
// @Tags stores
// @Accept json
// @Produce json
// @Param input body storeReq true "Store"
// @Success 201 {object} domain.StoreDetail
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /stores [post]
func (s *Server) createStore(c *gin.Context) {
	var req storeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid json"})
		return
	}
	st, err := s.catalog.CreateStore(c, currentUser(c).ID, req.Name, req.Description)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, st)
}

// @Summary List stores
// @Tags stores
// @Produce json
// @Success 200 {array} domain.StoreDetail
// @Router /stores [get]
func (s *Server) listStores(c *gin.Context) {
	list, err := s.catalog.ListStores(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Get store by id
// @Tags stores
// @Produce json
// @Param id path int true "Store ID"
// @Success 200 {object} domain.StoreDetail
// @Failure 404 {object} map[string]string
// @Router /stores/{id} [get]
func (s *Server) getStore(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return
	}
	st, err := s.catalog.GetStore(c, id)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary Update own store
// @Tags stores
// @Accept json
// @Param id path int true "Store ID"
// @Param input body storeReq true "Store"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /stores/{id} [put]
func (s *Server) updateStore(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return
	}
	var req storeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid json"})
		return
	}
	if err := s.catalog.UpdateStore(c, currentUser(c).ID, id, req.Name, req.Description); err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"message": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Favorite a store
// @Tags stores
// @Param id path int true "Store ID"
// @Success 201
// @Failure 404 {object} map[string]string
// @Router /stores/{id}/favorite [post]
func (s *Server) favoriteStore(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return
	}
	if err := s.catalog.FavoriteStore(c, currentUser(c).ID, id); err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"message": err.Error()})
		return
	}
	c.Status(http.StatusCreated)
}

// @Summary Unfavorite a store
// @Tags stores
// @Param id path int true "Store ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /stores/{id}/favorite [delete]
func (s *Server) unfavoriteStore(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return
	}
	if err := s.catalog.UnfavoriteStore(c, currentUser(c).ID, id); err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"message": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// Product handlers
type productReq struct {
	CategoryID  int64   `json:"category_id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Quantity    int64   `json:"quantity"`
	Location    string  `json:"location"`
	ImagePath   string  `json:"image_path"`
}

func (r productReq) input() service.ProductInput {
	return service.ProductInput{
		CategoryID:  r.CategoryID,
		Name:        r.Name,
		Price:       r.Price,
		Description: r.Description,
		Quantity:    r.Quantity,
		Location:    r.Location,
		ImagePath:   r.ImagePath,
	}
}

// @Summary Create product in own store
// @Tags products
// @Accept json
// @Produce json
// @Param input body productReq true "Product"
// @Success 201 {object} domain.ProductDetail
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /products [post]
func (s *Server) createProduct(c *gin.Context) {
	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid json"})
		return
	}
	p, err := s.catalog.CreateProduct(c, currentUser(c).ID, req.input())
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"message": err.Error()})
		return
	}
	s.lists.Invalidate(c)
	c.JSON(http.StatusCreated, p)
}

// @Summary Get product by id
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} domain.ProductDetail
// @Failure 404 {object} map[string]string
// @Router /products/{id} [get]
func (s *Server) getProduct(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return
	}
	p, err := s.catalog.GetProduct(c, id)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary Update own product
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param input body productReq true "Product"
// @Success 200 {object} domain.ProductDetail
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /products/{id} [put]
func (s *Server) updateProduct(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return
	}
	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid json"})
		return
	}
	p, err := s.catalog.UpdateProduct(c, currentUser(c).ID, id, req.input())
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"message": err.Error()})
		return
	}
	s.lists.Invalidate(c)
	c.JSON(http.StatusOK, p)
}

// @Summary Delete own product
// @Tags products
// @Param id path int true "Product ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /products/{id} [delete]
func (s *Server) deleteProduct(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return
	}
	if err := s.catalog.DeleteProduct(c, currentUser(c).ID, id); err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"message": err.Error()})
		return
	}
	s.lists.Invalidate(c)
	c.Status(http.StatusNoContent)
}

// @Summary List products
// @Tags products
// @Produce json
// @Param category query int false "Category id"
// @Param number_sold query int false "Products sold fewer than this many times"
// @Param name query string false "Name contains"
// @Param location query string false "Location contains"
// @Param min_price query number false "Minimum price"
// @Param order_by query string false "name or price"
// @Param direction query string false "asc or desc"
// @Success 200 {array} domain.ProductDetail
// @Router /products [get]
func (s *Server) listProducts(c *gin.Context) {
	if body, ok := s.lists.Get(c, c.Request.URL.RawQuery); ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", body)
		return
	}
	f, err := parseProductFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	list, err := s.catalog.ListProducts(c, f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	body, err := json.Marshal(list)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	s.lists.Set(c, c.Request.URL.RawQuery, body)
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

func parseProductFilter(c *gin.Context) (repository.ProductFilter, error) {
	var f repository.ProductFilter
	if v := c.Query("category"); v != "" {
		id, err := parseID(v)
		if err != nil {
			return f, errors.New("invalid category")
		}
		f.CategoryID = &id
	}
	if v := c.Query("number_sold"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return f, errors.New("invalid number_sold")
		}
		f.NumberSoldLT = &n
	}
	if v := c.Query("min_price"); v != "" {
		x, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return f, errors.New("invalid min_price")
		}
		f.MinPrice = &x
	}
	f.NameSubstring = c.Query("name")
	f.Location = c.Query("location")
	switch v := c.Query("order_by"); v {
	case "", repository.OrderByName, repository.OrderByPrice:
		f.OrderBy = v
	default:
		return f, errors.New("invalid order_by")
	}
	// direction игнорируется без order_by
	f.Descending = f.OrderBy != "" && c.Query("direction") == "desc"
	return f, nil
}

// @Summary Add product to the current user's open order
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 201 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /products/{id}/add-to-order [post]
func (s *Server) addToOrder(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return
	}
	if err := s.orders.AddProduct(c, currentUser(c).ID, id); err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "product added"})
}

// @Summary Remove product from the current user's open order
// @Tags products
// @Param id path int true "Product ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /products/{id}/remove-from-order [delete]
func (s *Server) removeFromOrder(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return
	}
	if err := s.orders.RemoveProduct(c, currentUser(c).ID, id); err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"message": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

type recommendReq struct {
	Username string `json:"username"`
}

// @Summary Recommend a product to another user
// @Tags products
// @Accept json
// @Param id path int true "Product ID"
// @Param input body recommendReq true "Target user"
// @Success 201
// @Failure 404 {object} map[string]string
// @Router /products/{id}/recommend [post]
func (s *Server) recommend(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return
	}
	var req recommendReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid json"})
		return
	}
	if err := s.ledger.Recommend(c, currentUser(c).ID, id, req.Username); err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"message": err.Error()})
		return
	}
	c.Status(http.StatusCreated)
}

// @Summary Withdraw a recommendation
// @Tags products
// @Accept json
// @Param id path int true "Product ID"
// @Param input body recommendReq true "Target user"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /products/{id}/recommend [delete]
func (s *Server) unrecommend(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return
	}
	var req recommendReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid json"})
		return
	}
	if err := s.ledger.Unrecommend(c, currentUser(c).ID, id, req.Username); err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"message": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

type rateProductReq struct {
	Score  int    `json:"score"`
	Review string `json:"review"`
}

// @Summary Rate a product
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param input body rateProductReq true "Rating"
// @Success 201 {object} domain.Rating
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /products/{id}/rate-product [post]
func (s *Server) rateProduct(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return
	}
	var req rateProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid json"})
		return
	}
	r, err := s.ledger.RateProduct(c, currentUser(c).ID, id, req.Score, req.Review)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"message": err.Error()})
		return
	}
	s.lists.Invalidate(c)
	c.JSON(http.StatusCreated, r)
}

// Order handlers

// @Summary List the current user's orders
// @Tags orders
// @Produce json
// @Success 200 {array} domain.OrderDetail
// @Router /orders [get]
func (s *Server) listOrders(c *gin.Context) {
	list, err := s.orders.ListOrders(c, currentUser(c).ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Current open order
// @Tags orders
// @Produce json
// @Success 200 {object} domain.OrderDetail
// @Failure 404 {object} map[string]string
// @Router /orders/current [get]
func (s *Server) currentOrder(c *gin.Context) {
	o, err := s.orders.CurrentOrder(c, currentUser(c).ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "You do not have an open order. Add a product to the cart to get started"})
			return
		}
		c.JSON(mapErrorToStatus(err), gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, o)
}

// @Summary Delete own order
// @Tags orders
// @Param id path int true "Order ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /orders/{id} [delete]
func (s *Server) deleteOrder(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return
	}
	if err := s.orders.DeleteOrder(c, currentUser(c).ID, id); err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"message": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

type completeOrderReq struct {
	PaymentTypeID int64 `json:"paymentTypeId"`
}

// @Summary Complete an order with a payment type
// @Tags orders
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param input body completeOrderReq true "Payment type"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /orders/{id}/complete [put]
func (s *Server) completeOrder(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return
	}
	var req completeOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid json"})
		return
	}
	if err := s.orders.CompleteOrder(c, currentUser(c).ID, id, req.PaymentTypeID); err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"message": err.Error()})
		return
	}
	s.lists.Invalidate(c)
	c.JSON(http.StatusOK, gin.H{"message": "Order Completed"})
}

// PaymentType handlers
type createPaymentTypeReq struct {
	Merchant   string `json:"merchant"`
	AcctNumber string `json:"acctNumber"`
}

type paymentTypeResp struct {
	ID           int64  `json:"id"`
	CustomerID   int64  `json:"customer_id"`
	MerchantName string `json:"merchant_name"`
	AcctNumber   string `json:"acct_number"`
	ObscuredNum  string `json:"obscured_num"`
}

// @Summary List the current user's payment types
// @Tags payment-types
// @Produce json
// @Success 200 {array} domain.PaymentTypeDetail
// @Router /payment-types [get]
func (s *Server) listPaymentTypes(c *gin.Context) {
	list, err := s.orders.ListPaymentTypes(c, currentUser(c).ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Add a payment type
// @Tags payment-types
// @Accept json
// @Produce json
// @Param input body createPaymentTypeReq true "Payment type"
// @Success 201 {object} paymentTypeResp
// @Failure 400 {object} map[string]string
// @Router /payment-types [post]
func (s *Server) createPaymentType(c *gin.Context) {
	var req createPaymentTypeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid json"})
		return
	}
	pt, err := s.orders.CreatePaymentType(c, currentUser(c).ID, req.Merchant, req.AcctNumber)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"message": err.Error()})
		return
	}
	// полный номер возвращается только в ответе на создание
	c.JSON(http.StatusCreated, paymentTypeResp{
		ID:           pt.ID,
		CustomerID:   pt.CustomerID,
		MerchantName: pt.MerchantName,
		AcctNumber:   pt.AcctNumber,
		ObscuredNum:  pt.ObscuredNum(),
	})
}

// @Summary Delete own payment type
// @Tags payment-types
// @Param id path int true "PaymentType ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /payment-types/{id} [delete]
func (s *Server) deletePaymentType(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return
	}
	if err := s.orders.DeletePaymentType(c, currentUser(c).ID, id); err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"message": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func parseID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidState):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
