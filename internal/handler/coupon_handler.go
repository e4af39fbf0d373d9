package handler

import (
	"net/http"

	"storefront-api/internal/model"
	"storefront-api/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// CouponHandler handles coupon administration requests.
type CouponHandler struct {
	service service.CouponService
	logger  zerolog.Logger
}

// NewCouponHandler creates a new coupon handler.
func NewCouponHandler(service service.CouponService, logger zerolog.Logger) *CouponHandler {
	return &CouponHandler{
		service: service,
		logger:  logger.With().Str("handler", "coupon").Logger(),
	}
}

// FindAll handles GET /api/coupons/find-all-coupons. Any isActive value other
// than "true" or "false" means no filter.
func (h *CouponHandler) FindAll(w http.ResponseWriter, r *http.Request) {
	var active *bool
	switch r.URL.Query().Get("isActive") {
	case "true":
		v := true
		active = &v
	case "false":
		v := false
		active = &v
	}

	coupons, err := h.service.FindAll(r.Context(), active)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, "Coupons found.", map[string]any{"coupons": coupons})
}

// FindOne handles GET /api/coupons/find-coupon/{id}.
func (h *CouponHandler) FindOne(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.FindOne(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, "Coupon was found.", map[string]any{"coupon": c})
}

// CouponsByUser handles GET /api/coupons/coupons-by-user.
func (h *CouponHandler) CouponsByUser(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	coupons, err := h.service.CouponsByUser(r.Context(), p)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, "Coupons found.", map[string]any{"coupons": coupons})
}

// Create handles POST /api/coupons/create-coupon.
func (h *CouponHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateCouponRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	if err := h.service.Create(r.Context(), &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusCreated, "Coupon created successfully.", nil)
}

// Update handles PATCH /api/coupons/update-coupon/{id}.
func (h *CouponHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateCouponRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	if err := h.service.Update(r.Context(), chi.URLParam(r, "id"), &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, "Coupon updated successfully.", nil)
}

// Remove handles DELETE /api/coupons/delete-coupon/{id}.
func (h *CouponHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, "Coupon deleted successfully.", nil)
}
