package handler

import (
	"errors"
	"net/http"
	"testing"

	"storefront-api/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCategoryHandler_FindAll(t *testing.T) {
	tests := []struct {
		name           string
		categories     []model.Category
		serviceErr     error
		expectedStatus int
		expectedCode   model.ErrorKind
	}{
		{
			name:           "Categories found",
			categories:     []model.Category{{ID: "C1", Name: "Books"}},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "No categories",
			serviceErr:     model.NewDomainError(model.KindNotFound, "categories not found"),
			expectedStatus: http.StatusNotFound,
			expectedCode:   model.KindNotFound,
		},
		{
			name:           "Unexpected failure",
			serviceErr:     errors.New("pool exhausted"),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   model.KindInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockCategoryService)
			handler := NewCategoryHandler(mockService, zerolog.Nop())
			mockService.On("FindAll", mock.Anything).Return(tt.categories, tt.serviceErr)

			w := serve(http.MethodGet, "/api/categories/find-all-categories", handler.FindAll,
				"/api/categories/find-all-categories", nil, nil)

			assert.Equal(t, tt.expectedStatus, w.Code)
			env := decodeEnvelope(t, w)
			assert.Equal(t, tt.expectedCode, env.ErrorCode)
			if tt.expectedStatus == http.StatusOK {
				assert.JSONEq(t, `{"categories":[{"id":"C1","name":"Books"}]}`, string(env.Data))
			}
			assert.NotContains(t, env.Message, "pool exhausted")
			mockService.AssertExpectations(t)
		})
	}
}

func TestCategoryHandler_FindOne(t *testing.T) {
	mockService := new(MockCategoryService)
	handler := NewCategoryHandler(mockService, zerolog.Nop())
	mockService.On("FindOne", mock.Anything, "C1").Return(&model.Category{ID: "C1", Name: "Books"}, nil)
	mockService.On("FindOne", mock.Anything, "C9").Return(nil, model.NewDomainError(model.KindNotFound, "category with id C9 not found"))

	w := serve(http.MethodGet, "/api/categories/find-category/{id}", handler.FindOne, "/api/categories/find-category/C1", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"category":{"id":"C1","name":"Books"}}`, string(decodeEnvelope(t, w).Data))

	w = serve(http.MethodGet, "/api/categories/find-category/{id}", handler.FindOne, "/api/categories/find-category/C9", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, model.KindNotFound, decodeEnvelope(t, w).ErrorCode)

	mockService.AssertExpectations(t)
}
