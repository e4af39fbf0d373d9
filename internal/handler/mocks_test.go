package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront-api/internal/auth"
	"storefront-api/internal/model"
	"storefront-api/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductService is a mock implementation of ProductService.
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) GetAll(ctx context.Context, take, skip int) (*model.ProductPage, error) {
	args := m.Called(ctx, take, skip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProductPage), args.Error(1)
}

func (m *MockProductService) GetByID(ctx context.Context, id string) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) GetByCategory(ctx context.Context, categoryID string, take, skip int) (*model.ProductPage, error) {
	args := m.Called(ctx, categoryID, take, skip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProductPage), args.Error(1)
}

// MockCategoryService is a mock implementation of CategoryService.
type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) FindAll(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *MockCategoryService) FindOne(ctx context.Context, id string) (*model.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

// MockCouponService is a mock implementation of CouponService.
type MockCouponService struct {
	mock.Mock
}

func (m *MockCouponService) Create(ctx context.Context, req *model.CreateCouponRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *MockCouponService) FindAll(ctx context.Context, active *bool) ([]model.CouponDetail, error) {
	args := m.Called(ctx, active)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CouponDetail), args.Error(1)
}

func (m *MockCouponService) FindOne(ctx context.Context, id string) (*model.CouponDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CouponDetail), args.Error(1)
}

func (m *MockCouponService) CouponsByUser(ctx context.Context, p model.Principal) (*model.UserCoupons, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserCoupons), args.Error(1)
}

func (m *MockCouponService) Update(ctx context.Context, id string, req *model.UpdateCouponRequest) error {
	return m.Called(ctx, id, req).Error(0)
}

func (m *MockCouponService) Remove(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// MockUserService is a mock implementation of UserService.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) FindAll(ctx context.Context, take, skip int) (*model.UserPage, error) {
	args := m.Called(ctx, take, skip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserPage), args.Error(1)
}

func (m *MockUserService) FindOne(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) Update(ctx context.Context, p model.Principal, id string, req *model.UpdateUserRequest) error {
	return m.Called(ctx, p, id, req).Error(0)
}

func (m *MockUserService) Disable(ctx context.Context, p model.Principal, id string) error {
	return m.Called(ctx, p, id).Error(0)
}

func (m *MockUserService) Enable(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserService) Delete(ctx context.Context, p model.Principal, id string) error {
	return m.Called(ctx, p, id).Error(0)
}

func (m *MockUserService) UpdateImage(ctx context.Context, p model.Principal, upload storage.Upload) (*model.UserImage, error) {
	args := m.Called(ctx, p, upload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserImage), args.Error(1)
}

// MockVerifier is a mock implementation of activationVerifier.
type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) Verify(raw string) (string, error) {
	args := m.Called(raw)
	return args.String(0), args.Error(1)
}

// serve routes a single request through a chi router so URL parameters
// resolve. A non-nil principal is attached to the request context.
func serve(method, pattern string, h http.HandlerFunc, path string, body io.Reader, p *model.Principal) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.MethodFunc(method, pattern, h)

	req := httptest.NewRequest(method, path, body)
	if p != nil {
		req = req.WithContext(auth.WithPrincipal(req.Context(), *p))
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// envelope decodes the response body, keeping data as raw JSON.
type envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	ErrorCode model.ErrorKind `json:"errorCode"`
	Data      json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}
