package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dwincahya/hausjogja-backend/internal/models"
)

// CreateOrder is the handler for POST /api/orders
// Direct checkout: the client sends {productId, quantity} pairs and a
// delivery address. Prices always come from the catalog, never from
// the client, and the order is all-or-nothing: if any requested
// product is missing or unavailable nothing is written.
func (h *Handlers) CreateOrder(c *gin.Context) {
	userID := c.GetUint("userID")

	var input models.CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "Please provide items and address")
		return
	}
	if strings.TrimSpace(input.Address) == "" {
		respondError(c, http.StatusBadRequest, "Please provide items and address")
		return
	}

	// Validate quantities before touching the database.
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			respondError(c, http.StatusBadRequest, "Quantity must be greater than 0")
			return
		}
	}

	// Distinct requested ids: the same product may appear on several
	// lines, it only has to exist once.
	seen := map[uint]bool{}
	productIDs := []uint{}
	for _, item := range input.Items {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			productIDs = append(productIDs, item.ProductID)
		}
	}

	products := []models.Product{}
	err := h.DB.Where("id IN ? AND is_available = ?", productIDs, true).Find(&products).Error
	if err != nil {
		serverError(c, err)
		return
	}

	// Every requested product must exist and be available, or the
	// whole order is rejected. No partial orders.
	if len(products) != len(productIDs) {
		respondError(c, http.StatusBadRequest, "One or more products are unavailable or do not exist")
		return
	}

	productMap := make(map[uint]models.Product, len(products))
	for _, p := range products {
		productMap[p.ID] = p
	}

	// Line totals from catalog prices; snapshot the price per item.
	var total float64
	orderItems := make([]models.OrderItem, 0, len(input.Items))
	for _, item := range input.Items {
		product := productMap[item.ProductID]
		total += product.Price * float64(item.Quantity)
		orderItems = append(orderItems, models.OrderItem{
			ProductID: product.ID,
			Quantity:  item.Quantity,
			Price:     product.Price,
		})
	}

	order := models.Order{
		UserID:     userID,
		Status:     models.OrderStatusPending,
		Total:      total,
		Address:    input.Address,
		OrderItems: orderItems,
	}

	// The order row and all its items commit together or not at all.
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&order).Error
	})
	if err != nil {
		serverError(c, err)
		return
	}

	if err := h.DB.Preload("OrderItems.Product").First(&order, order.ID).Error; err != nil {
		serverError(c, err)
		return
	}

	respondData(c, http.StatusCreated, order)
}

// GetOrders is the handler for GET /api/orders (admin only)
// Paginated, newest first, optionally filtered by ?status=.
func (h *Handlers) GetOrders(c *gin.Context) {
	page, limit, offset := pageParams(c)

	q := h.DB.Model(&models.Order{})
	if status := c.Query("status"); status != "" {
		if !models.ValidOrderStatus(status) {
			respondError(c, http.StatusBadRequest, "Invalid status")
			return
		}
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		serverError(c, err)
		return
	}

	orders := []models.Order{}
	err := q.Preload("User").
		Preload("OrderItems").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&orders).Error
	if err != nil {
		serverError(c, err)
		return
	}

	respondList(c, orders, newPagination(page, limit, total))
}

// GetMyOrders is the handler for GET /api/orders/myorders
func (h *Handlers) GetMyOrders(c *gin.Context) {
	userID := c.GetUint("userID")
	page, limit, offset := pageParams(c)

	var total int64
	if err := h.DB.Model(&models.Order{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		serverError(c, err)
		return
	}

	orders := []models.Order{}
	err := h.DB.Where("user_id = ?", userID).
		Preload("OrderItems.Product").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&orders).Error
	if err != nil {
		serverError(c, err)
		return
	}

	respondList(c, orders, newPagination(page, limit, total))
}

// GetOrderByID is the handler for GET /api/orders/:id
// Visible to the owner and to admins only.
func (h *Handlers) GetOrderByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid order id")
		return
	}

	userID := c.GetUint("userID")
	role := c.GetString("userRole")

	var order models.Order
	err = h.DB.Preload("User", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "name", "email")
	}).
		Preload("OrderItems.Product").
		First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Order not found")
			return
		}
		serverError(c, err)
		return
	}

	if order.UserID != userID && role != models.RoleAdmin {
		respondError(c, http.StatusForbidden, "Not authorized to access this order")
		return
	}

	respondData(c, http.StatusOK, order)
}

// UpdateOrderStatus is the handler for PUT /api/orders/:id/status (admin only)
// Only membership in the fixed status set is checked; there is no
// transition graph, an admin may move an order between any two states.
func (h *Handlers) UpdateOrderStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid order id")
		return
	}

	var input models.UpdateOrderStatusInput
	if err := c.ShouldBindJSON(&input); err != nil || !models.ValidOrderStatus(input.Status) {
		respondError(c, http.StatusBadRequest, "Invalid status")
		return
	}

	var order models.Order
	if err := h.DB.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Order not found")
			return
		}
		serverError(c, err)
		return
	}

	if err := h.DB.Model(&order).Update("status", input.Status).Error; err != nil {
		serverError(c, err)
		return
	}

	if err := h.DB.Preload("OrderItems.Product").First(&order, id).Error; err != nil {
		serverError(c, err)
		return
	}

	respondData(c, http.StatusOK, order)
}
