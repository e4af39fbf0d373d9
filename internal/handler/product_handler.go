package handler

import (
	"net/http"

	"storefront-api/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// ProductHandler handles product-related HTTP requests.
type ProductHandler struct {
	service service.ProductService
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// GetAll handles GET /api/products requests with take/skip pagination.
func (h *ProductHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	take, skip, err := pagination(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	page, err := h.service.GetAll(r.Context(), take, skip)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, "Products found.", page)
}

// GetByCategory handles GET /api/products/find-by-category/{categoryId} with
// take/skip pagination.
func (h *ProductHandler) GetByCategory(w http.ResponseWriter, r *http.Request) {
	take, skip, err := pagination(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	page, err := h.service.GetByCategory(r.Context(), chi.URLParam(r, "categoryId"), take, skip)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, "Products found.", page)
}

// GetByID handles GET /api/products/{id} requests.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, "Product found.", map[string]any{"product": product})
}
