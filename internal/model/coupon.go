package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiscountType is the discount strategy of a coupon.
type DiscountType string

const (
	DiscountPercentage  DiscountType = "percentage"
	DiscountFixedAmount DiscountType = "fixed_amount"
)

// Valid reports whether t is a known discount type.
func (t DiscountType) Valid() bool {
	return t == DiscountPercentage || t == DiscountFixedAmount
}

// CouponStatus is the lifecycle state derived from the active flag and window.
type CouponStatus string

const (
	CouponInactive  CouponStatus = "inactive"
	CouponScheduled CouponStatus = "scheduled"
	CouponActive    CouponStatus = "active"
	CouponExpired   CouponStatus = "expired"
)

// Coupon represents a discount campaign.
type Coupon struct {
	ID               string           `json:"id" db:"id"`
	Code             string           `json:"code" db:"code"`
	Description      *string          `json:"description,omitempty" db:"description"`
	DiscountType     DiscountType     `json:"discountType" db:"discount_type"`
	DiscountValue    decimal.Decimal  `json:"discountValue" db:"discount_value"`
	MaxDiscount      *decimal.Decimal `json:"maxDiscount,omitempty" db:"max_discount"`
	MinimumPurchase  *decimal.Decimal `json:"minimumPurchase,omitempty" db:"minimum_purchase"`
	UsageLimit       *int             `json:"usageLimit,omitempty" db:"usage_limit"`
	PerCustomerLimit *int             `json:"perCustomerLimit,omitempty" db:"per_customer_limit"`
	IsActive         bool             `json:"isActive" db:"is_active"`
	StartDate        time.Time        `json:"startDate" db:"start_date"`
	EndDate          time.Time        `json:"endDate" db:"end_date"`
	CreatedAt        time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time        `json:"updatedAt" db:"updated_at"`

	// Status is computed on read, never stored.
	Status CouponStatus `json:"status,omitempty" db:"-"`
}

// CouponUsage is a redemption record. Append-only; CouponID is nil once the
// coupon has been deleted.
type CouponUsage struct {
	ID       string    `json:"id"`
	CouponID *string   `json:"couponId"`
	UserID   string    `json:"userId"`
	OrderRef *string   `json:"orderRef,omitempty"`
	UsedAt   time.Time `json:"usedAt"`
}

// CouponCounts mirrors the relation cardinalities of a coupon.
type CouponCounts struct {
	CouponUsages         int `json:"couponUsages"`
	ApplicableProducts   int `json:"applicableProducts"`
	ApplicableCategories int `json:"applicableCategories"`
	AssignedUsers        int `json:"assignedUsers"`
}

// CouponDetail is a coupon with every relation included.
type CouponDetail struct {
	Coupon
	ApplicableProducts   []ProductSummary `json:"applicableProducts"`
	ApplicableCategories []Category       `json:"applicableCategories"`
	AssignedUsers        []UserSummary    `json:"assignedUsers"`
	CouponUsages         []CouponUsage    `json:"couponUsages"`
	Count                CouponCounts     `json:"_count"`
}

// CreateCouponRequest is the payload for creating a coupon.
type CreateCouponRequest struct {
	Code             string           `json:"code"`
	Description      *string          `json:"description,omitempty"`
	DiscountType     DiscountType     `json:"discountType"`
	DiscountValue    *decimal.Decimal `json:"discountValue"`
	MaxDiscount      *decimal.Decimal `json:"maxDiscount,omitempty"`
	MinimumPurchase  *decimal.Decimal `json:"minimumPurchase,omitempty"`
	UsageLimit       *int             `json:"usageLimit,omitempty"`
	PerCustomerLimit *int             `json:"perCustomerLimit,omitempty"`
	IsActive         *bool            `json:"isActive,omitempty"`
	StartDate        *string          `json:"startDate"`
	EndDate          *string          `json:"endDate"`

	ProductIDs  []string `json:"productIds,omitempty"`
	CategoryIDs []string `json:"categoryIds,omitempty"`
	UserIDs     []string `json:"userIds,omitempty"`
}

// UpdateCouponRequest is a partial update. Nil fields are left unchanged; a
// non-nil relation list replaces the whole relation, including with an empty list.
type UpdateCouponRequest struct {
	Code             *string          `json:"code,omitempty"`
	Description      *string          `json:"description,omitempty"`
	DiscountType     *DiscountType    `json:"discountType,omitempty"`
	DiscountValue    *decimal.Decimal `json:"discountValue,omitempty"`
	MaxDiscount      *decimal.Decimal `json:"maxDiscount,omitempty"`
	MinimumPurchase  *decimal.Decimal `json:"minimumPurchase,omitempty"`
	UsageLimit       *int             `json:"usageLimit,omitempty"`
	PerCustomerLimit *int             `json:"perCustomerLimit,omitempty"`
	IsActive         *bool            `json:"isActive,omitempty"`
	StartDate        *string          `json:"startDate,omitempty"`
	EndDate          *string          `json:"endDate,omitempty"`

	ProductIDs  *[]string `json:"productIds,omitempty"`
	CategoryIDs *[]string `json:"categoryIds,omitempty"`
	UserIDs     *[]string `json:"userIds,omitempty"`
}

// UserCoupons is a user's own coupon profile.
type UserCoupons struct {
	UserSummary
	Image           *UserImage    `json:"userImage"`
	AssignedCoupons []Coupon      `json:"assignedCoupons"`
	CouponUsages    []CouponUsage `json:"couponUsages"`
}
