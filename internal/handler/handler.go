package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"storefront-api/internal/auth"
	"storefront-api/internal/model"

	"github.com/rs/zerolog"
)

const maxBodyBytes = 1 << 20

// statusByKind maps every error kind to exactly one HTTP status.
var statusByKind = map[model.ErrorKind]int{
	model.KindBadRequest:             http.StatusBadRequest,
	model.KindInvalidDate:            http.StatusBadRequest,
	model.KindInvalidWindow:          http.StatusBadRequest,
	model.KindNotFound:               http.StatusNotFound,
	model.KindUnauthorized:           http.StatusUnauthorized,
	model.KindForbidden:              http.StatusForbidden,
	model.KindConflict:               http.StatusConflict,
	model.KindRelationTargetNotFound: http.StatusUnprocessableEntity,
	model.KindInternal:               http.StatusInternalServerError,
}

// StatusFor returns the HTTP status for an error kind.
func StatusFor(kind model.ErrorKind) int {
	if status, ok := statusByKind[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// The status is already sent; nothing useful left to tell the client.
		return
	}
}

// writeSuccess wraps data in the success envelope.
func writeSuccess(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, model.Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// writeError maps err to its status and writes the failure envelope. Internal
// errors never leak their cause.
func writeError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	kind := model.KindOf(err)
	status := StatusFor(kind)

	message := "an unexpected error occurred"
	var de *model.DomainError
	if errors.As(err, &de) && kind != model.KindInternal {
		message = de.Message
	}

	event := logger.Debug()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Err(err).Str("error_code", string(kind)).Int("status", status).Msg("handler error")

	writeJSON(w, status, model.Envelope{
		Success:   false,
		Message:   message,
		ErrorCode: kind,
	})
}

// decodeJSON reads a JSON body into dst.
func decodeJSON(r *http.Request, dst any) error {
	body := io.LimitReader(r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return model.NewDomainError(model.KindBadRequest, "request body is required")
		}
		return model.NewDomainError(model.KindBadRequest, "invalid request body")
	}
	return nil
}

// pagination parses the take and skip query parameters. Missing values are
// left at zero for the service to default.
func pagination(r *http.Request) (take, skip int, err error) {
	q := r.URL.Query()
	if v := q.Get("take"); v != "" {
		if take, err = strconv.Atoi(v); err != nil {
			return 0, 0, model.NewDomainError(model.KindBadRequest, "invalid take parameter")
		}
	}
	if v := q.Get("skip"); v != "" {
		if skip, err = strconv.Atoi(v); err != nil {
			return 0, 0, model.NewDomainError(model.KindBadRequest, "invalid skip parameter")
		}
	}
	return take, skip, nil
}

// principal returns the authenticated caller.
func principal(r *http.Request) (model.Principal, error) {
	p, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		return model.Principal{}, model.NewDomainError(model.KindUnauthorized, "authentication required")
	}
	return p, nil
}
