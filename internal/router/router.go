package router

import (
	"net/http"

	"storefront-api/internal/handler"
	"storefront-api/internal/middleware"
	"storefront-api/internal/model"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Dependencies are the collaborators the router wires together.
type Dependencies struct {
	Coupons        *handler.CouponHandler
	Users          *handler.UserHandler
	Products       *handler.ProductHandler
	Categories     *handler.CategoryHandler
	Authenticator  middleware.Authenticator
	HTTPMetrics    *middleware.HTTPMetrics
	Gatherer       prometheus.Gatherer
	AllowedOrigins []string
}

// New creates a new HTTP router with all routes and middleware configured.
func New(deps Dependencies, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	if deps.HTTPMetrics != nil {
		r.Use(deps.HTTPMetrics.Handler)
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: deps.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	if deps.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	authenticated := middleware.Authenticate(deps.Authenticator, logger)
	adminOnly := middleware.RequireRole(model.RoleAdmin, logger)

	r.Route("/api", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", deps.Products.GetAll)
			r.Get("/find-by-category/{categoryId}", deps.Products.GetByCategory)
			r.Get("/{id}", deps.Products.GetByID)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/find-all-categories", deps.Categories.FindAll)
			r.Get("/find-category/{id}", deps.Categories.FindOne)
		})

		r.Route("/coupons", func(r chi.Router) {
			r.Use(authenticated)

			r.Get("/coupons-by-user", deps.Coupons.CouponsByUser)

			r.Group(func(r chi.Router) {
				r.Use(adminOnly)

				r.Get("/find-all-coupons", deps.Coupons.FindAll)
				r.Get("/find-coupon/{id}", deps.Coupons.FindOne)
				r.Post("/create-coupon", deps.Coupons.Create)
				r.Patch("/update-coupon/{id}", deps.Coupons.Update)
				r.Delete("/delete-coupon/{id}", deps.Coupons.Remove)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/find-all-users", deps.Users.FindAll)
			r.Get("/find-user/{id}", deps.Users.FindOne)
			r.Patch("/enable-account/{token}", deps.Users.Enable)

			r.Group(func(r chi.Router) {
				r.Use(authenticated)

				r.Patch("/update-user/{id}", deps.Users.Update)
				r.Patch("/update-image-user", deps.Users.UpdateImage)
				r.Patch("/update-image-user/{id}", deps.Users.UpdateImage)
				r.Patch("/disable-account/{id}", deps.Users.Disable)
				r.Delete("/remove-user/{id}", deps.Users.Remove)
			})
		})
	})

	return r
}
