package coupon

import (
	"testing"
	"time"

	"storefront-api/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestStatusAt(t *testing.T) {
	start := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2030, 2, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		active   bool
		now      time.Time
		expected model.CouponStatus
	}{
		{"Before start", true, start.Add(-time.Second), model.CouponScheduled},
		{"At start", true, start, model.CouponActive},
		{"Inside window", true, start.Add(24 * time.Hour), model.CouponActive},
		{"At end", true, end, model.CouponExpired},
		{"After end", true, end.Add(time.Hour), model.CouponExpired},
		{"Inactive inside window", false, start.Add(time.Hour), model.CouponInactive},
		{"Inactive before start", false, start.Add(-time.Hour), model.CouponInactive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &model.Coupon{IsActive: tt.active, StartDate: start, EndDate: end}

			assert.Equal(t, tt.expected, StatusAt(c, tt.now))
			assert.Equal(t, tt.expected == model.CouponActive, Eligible(c, tt.now))
		})
	}
}
