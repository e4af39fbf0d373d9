package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront-api/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		kind     model.ErrorKind
		expected int
	}{
		{model.KindBadRequest, http.StatusBadRequest},
		{model.KindInvalidDate, http.StatusBadRequest},
		{model.KindInvalidWindow, http.StatusBadRequest},
		{model.KindNotFound, http.StatusNotFound},
		{model.KindUnauthorized, http.StatusUnauthorized},
		{model.KindForbidden, http.StatusForbidden},
		{model.KindConflict, http.StatusConflict},
		{model.KindRelationTargetNotFound, http.StatusUnprocessableEntity},
		{model.KindInternal, http.StatusInternalServerError},
		{model.ErrorKind("UNKNOWN"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.expected, StatusFor(tt.kind))
		})
	}
}

func TestWriteError_HidesInternalCause(t *testing.T) {
	w := httptest.NewRecorder()

	writeError(w, errors.New("pq: password authentication failed"), zerolog.Nop())

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	env := decodeEnvelope(t, w)
	assert.False(t, env.Success)
	assert.Equal(t, model.KindInternal, env.ErrorCode)
	assert.Equal(t, "an unexpected error occurred", env.Message)
}

func TestCouponHandler_Create(t *testing.T) {
	logger := zerolog.Nop()

	validBody := `{
		"code": "save10",
		"discountType": "percentage",
		"discountValue": 10,
		"startDate": "2030-01-01T00:00:00Z",
		"endDate": "2030-02-01T00:00:00Z",
		"productIds": ["P1"]
	}`

	tests := []struct {
		name           string
		body           string
		serviceErr     error
		expectService  bool
		expectedStatus int
		expectedCode   model.ErrorKind
	}{
		{
			name:           "Created",
			body:           validBody,
			expectService:  true,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Malformed JSON",
			body:           `{"code":`,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.KindBadRequest,
		},
		{
			name:           "Empty body",
			body:           ``,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.KindBadRequest,
		},
		{
			name:           "Invalid window",
			body:           validBody,
			serviceErr:     model.NewDomainError(model.KindInvalidWindow, "startDate must be earlier than endDate"),
			expectService:  true,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.KindInvalidWindow,
		},
		{
			name:           "Invalid date",
			body:           validBody,
			serviceErr:     model.NewDomainError(model.KindInvalidDate, "invalid date format"),
			expectService:  true,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.KindInvalidDate,
		},
		{
			name:           "Duplicate code",
			body:           validBody,
			serviceErr:     model.NewDomainError(model.KindConflict, "coupon code already exists"),
			expectService:  true,
			expectedStatus: http.StatusConflict,
			expectedCode:   model.KindConflict,
		},
		{
			name:           "Dangling relation target",
			body:           validBody,
			serviceErr:     model.NewDomainError(model.KindRelationTargetNotFound, "one or more products do not exist"),
			expectService:  true,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   model.KindRelationTargetNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockCouponService)
			handler := NewCouponHandler(mockService, logger)

			if tt.expectService {
				mockService.On("Create", mock.Anything, mock.MatchedBy(func(req *model.CreateCouponRequest) bool {
					return req.Code == "save10" &&
						req.DiscountValue != nil && req.DiscountValue.Equal(decimal.NewFromInt(10)) &&
						len(req.ProductIDs) == 1
				})).Return(tt.serviceErr)
			}

			w := serve(http.MethodPost, "/api/coupons/create-coupon", handler.Create,
				"/api/coupons/create-coupon", strings.NewReader(tt.body), nil)

			assert.Equal(t, tt.expectedStatus, w.Code)
			env := decodeEnvelope(t, w)
			assert.Equal(t, tt.expectedCode, env.ErrorCode)
			if tt.expectedStatus == http.StatusCreated {
				assert.True(t, env.Success)
				assert.Equal(t, "Coupon created successfully.", env.Message)
			}
			mockService.AssertExpectations(t)
		})
	}
}

func TestCouponHandler_FindAll(t *testing.T) {
	logger := zerolog.Nop()
	yes, no := true, false

	tests := []struct {
		name     string
		query    string
		expected *bool
	}{
		{"No filter", "", nil},
		{"Active", "?isActive=true", &yes},
		{"Inactive", "?isActive=false", &no},
		{"Unrecognised value", "?isActive=maybe", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockCouponService)
			handler := NewCouponHandler(mockService, logger)

			mockService.On("FindAll", mock.Anything, tt.expected).
				Return([]model.CouponDetail{{Coupon: model.Coupon{ID: "K1", Code: "SAVE10"}}}, nil)

			w := serve(http.MethodGet, "/api/coupons/find-all-coupons", handler.FindAll,
				"/api/coupons/find-all-coupons"+tt.query, nil, nil)

			require.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, string(decodeEnvelope(t, w).Data), `"coupons":[{"id":"K1"`)
			mockService.AssertExpectations(t)
		})
	}

	t.Run("No coupons", func(t *testing.T) {
		mockService := new(MockCouponService)
		handler := NewCouponHandler(mockService, logger)
		mockService.On("FindAll", mock.Anything, (*bool)(nil)).
			Return(nil, model.NewDomainError(model.KindNotFound, "no coupons found"))

		w := serve(http.MethodGet, "/api/coupons/find-all-coupons", handler.FindAll,
			"/api/coupons/find-all-coupons", nil, nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCouponHandler_FindOne(t *testing.T) {
	mockService := new(MockCouponService)
	handler := NewCouponHandler(mockService, zerolog.Nop())
	mockService.On("FindOne", mock.Anything, "K1").
		Return(&model.CouponDetail{Coupon: model.Coupon{ID: "K1", Code: "SAVE10"}}, nil)

	w := serve(http.MethodGet, "/api/coupons/find-coupon/{id}", handler.FindOne,
		"/api/coupons/find-coupon/K1", nil, nil)

	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, "Coupon was found.", env.Message)
	assert.Contains(t, string(env.Data), `"coupon":{"id":"K1"`)
}

func TestCouponHandler_CouponsByUser(t *testing.T) {
	logger := zerolog.Nop()
	p := model.Principal{ID: "u1", Role: model.RoleUser, IsActive: true}

	t.Run("Uses the authenticated principal", func(t *testing.T) {
		mockService := new(MockCouponService)
		handler := NewCouponHandler(mockService, logger)
		mockService.On("CouponsByUser", mock.Anything, p).
			Return(&model.UserCoupons{UserSummary: model.UserSummary{ID: "u1"}}, nil)

		w := serve(http.MethodGet, "/api/coupons/coupons-by-user", handler.CouponsByUser,
			"/api/coupons/coupons-by-user", nil, &p)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("No principal", func(t *testing.T) {
		mockService := new(MockCouponService)
		handler := NewCouponHandler(mockService, logger)

		w := serve(http.MethodGet, "/api/coupons/coupons-by-user", handler.CouponsByUser,
			"/api/coupons/coupons-by-user", nil, nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		mockService.AssertNotCalled(t, "CouponsByUser", mock.Anything, mock.Anything)
	})
}

func TestCouponHandler_Update(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("Empty list is kept distinct from omitted", func(t *testing.T) {
		mockService := new(MockCouponService)
		handler := NewCouponHandler(mockService, logger)
		mockService.On("Update", mock.Anything, "K1", mock.MatchedBy(func(req *model.UpdateCouponRequest) bool {
			return req.ProductIDs != nil && len(*req.ProductIDs) == 0 &&
				req.CategoryIDs == nil &&
				req.UserIDs != nil && len(*req.UserIDs) == 1
		})).Return(nil)

		w := serve(http.MethodPatch, "/api/coupons/update-coupon/{id}", handler.Update,
			"/api/coupons/update-coupon/K1", strings.NewReader(`{"productIds":[],"userIds":["U1"]}`), nil)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Start in the past", func(t *testing.T) {
		mockService := new(MockCouponService)
		handler := NewCouponHandler(mockService, logger)
		mockService.On("Update", mock.Anything, "K1", mock.Anything).
			Return(model.NewDomainError(model.KindInvalidWindow, "startDate must be in the future"))

		w := serve(http.MethodPatch, "/api/coupons/update-coupon/{id}", handler.Update,
			"/api/coupons/update-coupon/K1", strings.NewReader(`{"startDate":"2000-01-01"}`), nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, model.KindInvalidWindow, decodeEnvelope(t, w).ErrorCode)
	})
}

func TestCouponHandler_Remove(t *testing.T) {
	tests := []struct {
		name           string
		serviceErr     error
		expectedStatus int
	}{
		{"Deleted", nil, http.StatusOK},
		{"Missing", model.NewDomainError(model.KindNotFound, "coupon not found"), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockCouponService)
			handler := NewCouponHandler(mockService, zerolog.Nop())
			mockService.On("Remove", mock.Anything, "K1").Return(tt.serviceErr)

			w := serve(http.MethodDelete, "/api/coupons/delete-coupon/{id}", handler.Remove,
				"/api/coupons/delete-coupon/K1", nil, nil)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}
