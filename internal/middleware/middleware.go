package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"storefront-api/internal/auth"
	"storefront-api/internal/model"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Authenticator turns a bearer token into a principal.
type Authenticator interface {
	Authenticate(ctx context.Context, raw string) (model.Principal, error)
}

// Authenticate requires a valid bearer token and stores the principal in the
// request context.
func Authenticate(a Authenticator, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, err := a.Authenticate(r.Context(), bearerToken(r))
			if err != nil {
				kind := model.KindOf(err)
				if kind == model.KindInternal {
					logger.Error().Err(err).Str("path", r.URL.Path).Msg("failed to authenticate request")
					writeEnvelope(w, http.StatusInternalServerError, kind, "an unexpected error occurred")
					return
				}
				logger.Warn().
					Str("path", r.URL.Path).
					Str("reason", err.Error()).
					Msg("unauthorised request")
				writeEnvelope(w, http.StatusUnauthorized, model.KindUnauthorized, "unauthorised: "+err.Error())
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), p)))
		})
	}
}

// RequireRole rejects principals that do not hold role. It must run after
// Authenticate.
func RequireRole(role model.Role, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := auth.PrincipalFrom(r.Context())
			if !ok {
				writeEnvelope(w, http.StatusUnauthorized, model.KindUnauthorized, "authentication required")
				return
			}
			if p.Role != role {
				logger.Warn().
					Str("path", r.URL.Path).
					Str("principal_id", p.ID).
					Str("role", string(p.Role)).
					Msg("forbidden role")
				writeEnvelope(w, http.StatusForbidden, model.KindForbidden, "user needs a valid role: "+string(role))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Logging logs HTTP requests with timing information.
func Logging(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(rw, r)

			event := logger.Info()
			if rw.statusCode >= http.StatusInternalServerError {
				event = logger.Error()
			}
			event.
				Str("request_id", chimiddleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", rw.statusCode).
				Dur("duration", time.Since(start)).
				Str("remote_addr", r.RemoteAddr).
				Msg("http request")
		})
	}
}

// Recovery recovers from panics and returns a 500 error.
func Recovery(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}
					logger.Error().
						Interface("panic", err).
						Str("request_id", chimiddleware.GetReqID(r.Context())).
						Str("method", r.Method).
						Str("path", r.URL.Path).
						Msg("panic recovered")

					writeEnvelope(w, http.StatusInternalServerError, model.KindInternal, "internal server error")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func writeEnvelope(w http.ResponseWriter, status int, kind model.ErrorKind, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.Envelope{
		Success:   false,
		Message:   message,
		ErrorCode: kind,
	})
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

// WriteHeader captures the status code.
func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
