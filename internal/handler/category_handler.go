package handler

import (
	"net/http"

	"storefront-api/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// CategoryHandler handles category read requests.
type CategoryHandler struct {
	service service.CategoryService
	logger  zerolog.Logger
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(service service.CategoryService, logger zerolog.Logger) *CategoryHandler {
	return &CategoryHandler{
		service: service,
		logger:  logger.With().Str("handler", "category").Logger(),
	}
}

// FindAll handles GET /api/categories/find-all-categories.
func (h *CategoryHandler) FindAll(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.FindAll(r.Context())
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, "Categories were found.", map[string]any{"categories": categories})
}

// FindOne handles GET /api/categories/find-category/{id}.
func (h *CategoryHandler) FindOne(w http.ResponseWriter, r *http.Request) {
	category, err := h.service.FindOne(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, "Category was found.", map[string]any{"category": category})
}
