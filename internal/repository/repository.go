package repository

import (
	"context"

	"storefront-api/internal/coupon"
	"storefront-api/internal/model"
)

// CouponRepository defines the interface for coupon data access operations.
// Absent rows are reported as (nil, nil).
type CouponRepository interface {
	// Create inserts the coupon and applies the relation operations in one transaction.
	Create(ctx context.Context, c *model.Coupon, ops []coupon.RelationOp) error

	// Update writes every scalar field of c and applies the relation operations
	// in one transaction.
	Update(ctx context.Context, c *model.Coupon, ops []coupon.RelationOp) error

	// GetByID retrieves a coupon without its relations.
	GetByID(ctx context.Context, id string) (*model.Coupon, error)

	// GetDetail retrieves a coupon with products, categories, users and usages.
	GetDetail(ctx context.Context, id string) (*model.CouponDetail, error)

	// List retrieves coupons with relations, optionally filtered by the active flag.
	List(ctx context.Context, active *bool) ([]model.CouponDetail, error)

	// ListAssigned retrieves the coupons assigned to a user.
	ListAssigned(ctx context.Context, userID string) ([]model.Coupon, error)

	// ListUsagesByUser retrieves a user's redemption history.
	ListUsagesByUser(ctx context.Context, userID string) ([]model.CouponUsage, error)

	// Delete removes a coupon and its relation links. Usages are kept.
	Delete(ctx context.Context, id string) (bool, error)
}

// UserRepository defines the interface for account data access operations.
type UserRepository interface {
	// GetByID retrieves a user with their image.
	GetByID(ctx context.Context, id string) (*model.User, error)

	// List retrieves users with pagination support.
	List(ctx context.Context, limit, offset int) ([]model.User, error)

	// Count returns the total number of users.
	Count(ctx context.Context) (int, error)

	// Update writes names, email and the active flag.
	Update(ctx context.Context, u *model.User) error

	// Delete removes a user.
	Delete(ctx context.Context, id string) (bool, error)

	// UpsertImage attaches img to the user, replacing any previous image row.
	UpsertImage(ctx context.Context, userID string, img *model.UserImage) error
}

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// GetAll retrieves products with pagination support.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// Count returns the total number of products.
	Count(ctx context.Context) (int, error)

	// GetByID retrieves a single product by its ID.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// GetByCategory retrieves the products of one category with pagination support.
	GetByCategory(ctx context.Context, categoryID string, limit, offset int) ([]model.Product, error)

	// CountByCategory returns the number of products in a category.
	CountByCategory(ctx context.Context, categoryID string) (int, error)
}

// CategoryRepository defines read access to product categories.
type CategoryRepository interface {
	List(ctx context.Context) ([]model.Category, error)
	GetByID(ctx context.Context, id string) (*model.Category, error)
}
