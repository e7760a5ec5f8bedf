package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/smartshop/qaforge/pkg/httputil"
)

// ProductHandler serves the mock catalog endpoints
type ProductHandler struct {
	store  *Store
	logger *zap.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(store *Store, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{store: store, logger: logger}
}

// List handles GET /products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products := h.store.Products()
	httputil.JSON(w, http.StatusOK, map[string]any{
		"products": products,
		"total":    len(products),
	})
}

// Get handles GET /products/{id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	product, ok := h.store.Product(id)
	if !ok {
		httputil.Error(w, http.StatusNotFound, "Product not found")
		return
	}

	httputil.JSON(w, http.StatusOK, product)
}

// Search handles GET /products/search?q=...&limit=...
func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	limit := httputil.QueryInt(r, "limit", 10)

	matches := h.store.Search(query, limit)
	httputil.JSON(w, http.StatusOK, map[string]any{
		"products": matches,
		"total":    len(matches),
		"query":    query,
	})
}
