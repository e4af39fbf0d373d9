package coupon

import (
	"time"

	"storefront-api/internal/model"
)

// StatusAt derives the lifecycle state of a coupon at now. An inactive coupon
// is inactive regardless of its window.
func StatusAt(c *model.Coupon, now time.Time) model.CouponStatus {
	switch {
	case !c.IsActive:
		return model.CouponInactive
	case now.Before(c.StartDate):
		return model.CouponScheduled
	case now.Before(c.EndDate):
		return model.CouponActive
	default:
		return model.CouponExpired
	}
}

// Eligible reports whether the coupon can be redeemed at now.
func Eligible(c *model.Coupon, now time.Time) bool {
	return StatusAt(c, now) == model.CouponActive
}
