package service

import (
	"context"
	"errors"
	"time"

	"storefront-api/internal/model"
	"storefront-api/internal/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CouponService defines the coupon lifecycle operations.
type CouponService interface {
	// Create validates and stores a new coupon with its initial relations.
	Create(ctx context.Context, req *model.CreateCouponRequest) error

	// FindAll lists coupons with every relation, optionally filtered by the active flag.
	FindAll(ctx context.Context, active *bool) ([]model.CouponDetail, error)

	// FindOne retrieves a coupon with every relation.
	FindOne(ctx context.Context, id string) (*model.CouponDetail, error)

	// CouponsByUser returns the principal's assigned coupons and usage history.
	CouponsByUser(ctx context.Context, p model.Principal) (*model.UserCoupons, error)

	// Update applies a partial update, replacing any relation list that is present.
	Update(ctx context.Context, id string, req *model.UpdateCouponRequest) error

	// Remove deletes a coupon. Usage history is kept.
	Remove(ctx context.Context, id string) error
}

// UserService defines account operations.
type UserService interface {
	// FindAll retrieves a page of users.
	FindAll(ctx context.Context, take, skip int) (*model.UserPage, error)

	// FindOne retrieves a user by ID.
	FindOne(ctx context.Context, id string) (*model.User, error)

	// Update changes names and email of an account the principal may act on.
	Update(ctx context.Context, p model.Principal, id string, req *model.UpdateUserRequest) error

	// Disable deactivates an account the principal may act on.
	Disable(ctx context.Context, p model.Principal, id string) error

	// Enable reactivates an account. The caller has already verified the activation token.
	Enable(ctx context.Context, id string) error

	// Delete removes an active account the principal may act on.
	Delete(ctx context.Context, p model.Principal, id string) error

	// UpdateImage replaces the principal's profile image.
	UpdateImage(ctx context.Context, p model.Principal, upload storage.Upload) (*model.UserImage, error)
}

// ProductService defines catalogue read operations.
type ProductService interface {
	// GetAll retrieves a page of products.
	GetAll(ctx context.Context, take, skip int) (*model.ProductPage, error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// GetByCategory retrieves a page of the products in one category.
	GetByCategory(ctx context.Context, categoryID string, take, skip int) (*model.ProductPage, error)
}

// CategoryService defines category read operations.
type CategoryService interface {
	FindAll(ctx context.Context) ([]model.Category, error)
	FindOne(ctx context.Context, id string) (*model.Category, error)
}

// Option configures a service.
type Option func(*options)

type options struct {
	now     func() time.Time
	newID   func() string
	metrics *Metrics
}

func defaultOptions() options {
	return options{
		now:   func() time.Time { return time.Now().UTC() },
		newID: func() string { return uuid.New().String() },
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithClock sets the time source used for window checks and timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithIDGenerator sets the generator for new entity IDs.
func WithIDGenerator(newID func() string) Option {
	return func(o *options) { o.newID = newID }
}

// WithMetrics records operation outcomes on m.
func WithMetrics(m *Metrics) Option {
	return func(o *options) { o.metrics = m }
}

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// normalizePage clamps take and skip the same way for every paginated read.
func normalizePage(take, skip int) (int, int) {
	if take <= 0 {
		take = defaultPageSize
	}
	if take > maxPageSize {
		take = maxPageSize
	}
	if skip < 0 {
		skip = 0
	}
	return take, skip
}

// internalError passes domain errors through. Anything else is logged in full
// and replaced by a generic internal error.
func internalError(logger zerolog.Logger, err error, msg string) error {
	var de *model.DomainError
	if errors.As(err, &de) {
		return de
	}
	logger.Error().Err(err).Msg(msg)
	return model.NewDomainError(model.KindInternal, "an unexpected error occurred")
}
