package handler

import (
	"errors"
	"net/http"

	"storefront-api/internal/model"
	"storefront-api/internal/service"
	"storefront-api/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const maxUploadBytes = 5 << 20

// activationVerifier resolves an activation token to a user id.
type activationVerifier interface {
	Verify(raw string) (string, error)
}

// UserHandler handles account requests.
type UserHandler struct {
	service  service.UserService
	verifier activationVerifier
	logger   zerolog.Logger
}

// NewUserHandler creates a new user handler.
func NewUserHandler(service service.UserService, verifier activationVerifier, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		service:  service,
		verifier: verifier,
		logger:   logger.With().Str("handler", "user").Logger(),
	}
}

// FindAll handles GET /api/users/find-all-users.
func (h *UserHandler) FindAll(w http.ResponseWriter, r *http.Request) {
	take, skip, err := pagination(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	page, err := h.service.FindAll(r.Context(), take, skip)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, "Users found.", page)
}

// FindOne handles GET /api/users/find-user/{id}.
func (h *UserHandler) FindOne(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.FindOne(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, "User found.", map[string]any{"user": user})
}

// Update handles PATCH /api/users/update-user/{id}.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	var req model.UpdateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	if err := h.service.Update(r.Context(), p, chi.URLParam(r, "id"), &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, "User was updated successfully.", nil)
}

// UpdateImage handles PATCH /api/users/update-image-user with a multipart
// "file" field.
func (h *UserHandler) UpdateImage(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, model.NewDomainError(model.KindBadRequest, "file is too large"), h.logger)
			return
		}
		writeError(w, model.NewDomainError(model.KindBadRequest, "file is required"), h.logger)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, model.NewDomainError(model.KindBadRequest, "file is required"), h.logger)
		return
	}
	defer file.Close()

	img, err := h.service.UpdateImage(r.Context(), p, storage.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, "User image was updated successfully.", map[string]any{"userImage": img})
}

// Disable handles PATCH /api/users/disable-account/{id}.
func (h *UserHandler) Disable(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	if err := h.service.Disable(r.Context(), p, chi.URLParam(r, "id")); err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, "User was disabled successfully.", nil)
}

// Enable handles PATCH /api/users/enable-account/{token}. The token must carry
// a valid signature.
func (h *UserHandler) Enable(w http.ResponseWriter, r *http.Request) {
	id, err := h.verifier.Verify(chi.URLParam(r, "token"))
	if err != nil {
		h.logger.Debug().Err(err).Msg("activation token rejected")
		writeError(w, model.NewDomainError(model.KindBadRequest, "token is not valid"), h.logger)
		return
	}

	if err := h.service.Enable(r.Context(), id); err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, "User was enabled successfully.", nil)
}

// Remove handles DELETE /api/users/remove-user/{id}.
func (h *UserHandler) Remove(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	if err := h.service.Delete(r.Context(), p, chi.URLParam(r, "id")); err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, "User deleted successfully.", nil)
}
