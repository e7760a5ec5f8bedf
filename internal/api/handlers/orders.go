package handlers

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/smartshop/qaforge/pkg/httputil"
)

// OrderHandler serves the mock order endpoints. Both endpoints demand
// a bearer token, which is how the API suites exercise auth-required
// flows; the token itself is never validated beyond its shape.
type OrderHandler struct {
	store  *Store
	logger *zap.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(store *Store, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{store: store, logger: logger}
}

func bearerPresent(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ")
}

// CreateOrderRequest is the order payload
type CreateOrderRequest struct {
	Products []OrderLine `json:"products"`
}

// Create handles POST /orders
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !bearerPresent(r) {
		httputil.Error(w, http.StatusUnauthorized, "Authorization required")
		return
	}

	var req CreateOrderRequest
	if err := httputil.DecodeJSON(r, &req); err != nil || req.Products == nil {
		httputil.Error(w, http.StatusBadRequest, "Products required")
		return
	}

	order := h.store.AddOrder(1, req.Products)
	h.logger.Info("mock order created", zap.Int("id", order.ID), zap.Float64("total", order.Total))
	httputil.JSON(w, http.StatusCreated, order)
}

// List handles GET /orders
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	if !bearerPresent(r) {
		httputil.Error(w, http.StatusUnauthorized, "Authorization required")
		return
	}

	orders := h.store.Orders()
	httputil.JSON(w, http.StatusOK, map[string]any{
		"orders": orders,
		"total":  len(orders),
	})
}
