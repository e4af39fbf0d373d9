package coupon

import (
	"strings"
	"time"
	"unicode/utf8"

	"storefront-api/internal/model"

	"github.com/shopspring/decimal"
)

const (
	minCodeLength        = 3
	maxCodeLength        = 20
	maxDescriptionLength = 150
)

// NormalizeCode trims and upper-cases a coupon code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidateCreate checks the scalar fields of a create request. The code must
// already be normalised.
func ValidateCreate(req *model.CreateCouponRequest) error {
	if req == nil {
		return model.NewDomainError(model.KindBadRequest, "coupon request is nil")
	}
	if err := validateCode(req.Code); err != nil {
		return err
	}
	if err := validateDescription(req.Description); err != nil {
		return err
	}
	if !req.DiscountType.Valid() {
		return model.Errorf(model.KindBadRequest, "discountType must be one of %s, %s", model.DiscountPercentage, model.DiscountFixedAmount)
	}
	if req.DiscountValue == nil {
		return model.NewDomainError(model.KindBadRequest, "discountValue is required")
	}
	if err := validateAmount("discountValue", req.DiscountValue); err != nil {
		return err
	}
	if err := validateAmount("maxDiscount", req.MaxDiscount); err != nil {
		return err
	}
	if err := validateAmount("minimumPurchase", req.MinimumPurchase); err != nil {
		return err
	}
	if err := validateLimit("usageLimit", req.UsageLimit); err != nil {
		return err
	}
	return validateLimit("perCustomerLimit", req.PerCustomerLimit)
}

// NewCoupon builds the coupon row for a validated create request.
func NewCoupon(id string, req *model.CreateCouponRequest, w Window, now time.Time) *model.Coupon {
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	return &model.Coupon{
		ID:               id,
		Code:             req.Code,
		Description:      req.Description,
		DiscountType:     req.DiscountType,
		DiscountValue:    *req.DiscountValue,
		MaxDiscount:      req.MaxDiscount,
		MinimumPurchase:  req.MinimumPurchase,
		UsageLimit:       req.UsageLimit,
		PerCustomerLimit: req.PerCustomerLimit,
		IsActive:         active,
		StartDate:        w.Start,
		EndDate:          w.End,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// ApplyUpdate validates the scalar fields present in req and copies them onto
// c. Omitted fields are left as they are and c is untouched on error. The
// window is resolved separately.
func ApplyUpdate(c *model.Coupon, req *model.UpdateCouponRequest) error {
	if req == nil {
		return model.NewDomainError(model.KindBadRequest, "coupon request is nil")
	}

	next := *c
	if req.Code != nil {
		code := NormalizeCode(*req.Code)
		if err := validateCode(code); err != nil {
			return err
		}
		next.Code = code
	}
	if req.Description != nil {
		if err := validateDescription(req.Description); err != nil {
			return err
		}
		next.Description = req.Description
	}
	if req.DiscountType != nil {
		if !req.DiscountType.Valid() {
			return model.Errorf(model.KindBadRequest, "discountType must be one of %s, %s", model.DiscountPercentage, model.DiscountFixedAmount)
		}
		next.DiscountType = *req.DiscountType
	}
	if req.DiscountValue != nil {
		if err := validateAmount("discountValue", req.DiscountValue); err != nil {
			return err
		}
		next.DiscountValue = *req.DiscountValue
	}
	if req.MaxDiscount != nil {
		if err := validateAmount("maxDiscount", req.MaxDiscount); err != nil {
			return err
		}
		next.MaxDiscount = req.MaxDiscount
	}
	if req.MinimumPurchase != nil {
		if err := validateAmount("minimumPurchase", req.MinimumPurchase); err != nil {
			return err
		}
		next.MinimumPurchase = req.MinimumPurchase
	}
	if req.UsageLimit != nil {
		if err := validateLimit("usageLimit", req.UsageLimit); err != nil {
			return err
		}
		next.UsageLimit = req.UsageLimit
	}
	if req.PerCustomerLimit != nil {
		if err := validateLimit("perCustomerLimit", req.PerCustomerLimit); err != nil {
			return err
		}
		next.PerCustomerLimit = req.PerCustomerLimit
	}
	if req.IsActive != nil {
		next.IsActive = *req.IsActive
	}

	*c = next
	return nil
}

func validateCode(code string) error {
	n := utf8.RuneCountInString(code)
	if n < minCodeLength || n > maxCodeLength {
		return model.Errorf(model.KindBadRequest, "code must be between %d and %d characters", minCodeLength, maxCodeLength)
	}
	return nil
}

func validateDescription(description *string) error {
	if description != nil && utf8.RuneCountInString(*description) > maxDescriptionLength {
		return model.Errorf(model.KindBadRequest, "description must be at most %d characters", maxDescriptionLength)
	}
	return nil
}

func validateAmount(field string, v *decimal.Decimal) error {
	if v != nil && v.IsNegative() {
		return model.Errorf(model.KindBadRequest, "%s must not be negative", field)
	}
	return nil
}

func validateLimit(field string, v *int) error {
	if v != nil && *v < 0 {
		return model.Errorf(model.KindBadRequest, "%s must not be negative", field)
	}
	return nil
}
