package service

import (
	"context"

	"storefront-api/internal/model"
	"storefront-api/internal/repository"

	"github.com/rs/zerolog"
)

type categoryService struct {
	categoryRepo repository.CategoryRepository
	logger       zerolog.Logger
}

// NewCategoryService creates a new category service.
func NewCategoryService(categoryRepo repository.CategoryRepository, logger zerolog.Logger) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		logger:       logger.With().Str("service", "category").Logger(),
	}
}

// FindAll lists every category. No categories is reported as not found.
func (s *categoryService) FindAll(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, internalError(s.logger, err, "failed to list categories")
	}
	if len(categories) == 0 {
		return nil, model.NewDomainError(model.KindNotFound, "categories not found")
	}
	return categories, nil
}

// FindOne retrieves a category by ID.
func (s *categoryService) FindOne(ctx context.Context, id string) (*model.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, internalError(s.logger, err, "failed to get category")
	}
	if category == nil {
		return nil, model.Errorf(model.KindNotFound, "category with id %s not found", id)
	}
	return category, nil
}
