package service

import (
	"context"
	"strings"

	"storefront-api/internal/model"
	"storefront-api/internal/repository"

	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// GetAll retrieves a page of products. An empty page is reported as not found.
func (s *productService) GetAll(ctx context.Context, take, skip int) (*model.ProductPage, error) {
	take, skip = normalizePage(take, skip)

	total, err := s.productRepo.Count(ctx)
	if err != nil {
		return nil, internalError(s.logger, err, "failed to count products")
	}

	products, err := s.productRepo.GetAll(ctx, take, skip)
	if err != nil {
		return nil, internalError(s.logger, err, "failed to get products")
	}

	if len(products) == 0 {
		return nil, model.NewDomainError(model.KindNotFound, "products not found")
	}

	s.logger.Debug().
		Int("count", len(products)).
		Int("take", take).
		Int("skip", skip).
		Msg("retrieved products")

	return productPage(products, total, take, skip), nil
}

// GetByCategory retrieves a page of the products in one category. An empty
// page is reported as not found.
func (s *productService) GetByCategory(ctx context.Context, categoryID string, take, skip int) (*model.ProductPage, error) {
	if strings.TrimSpace(categoryID) == "" {
		return nil, model.NewDomainError(model.KindBadRequest, "category id is required")
	}
	take, skip = normalizePage(take, skip)

	total, err := s.productRepo.CountByCategory(ctx, categoryID)
	if err != nil {
		return nil, internalError(s.logger, err, "failed to count products by category")
	}

	products, err := s.productRepo.GetByCategory(ctx, categoryID, take, skip)
	if err != nil {
		return nil, internalError(s.logger, err, "failed to get products by category")
	}

	if len(products) == 0 {
		return nil, model.Errorf(model.KindNotFound, "no products found for category %s", categoryID)
	}

	s.logger.Debug().
		Str("category_id", categoryID).
		Int("count", len(products)).
		Msg("retrieved products by category")

	return productPage(products, total, take, skip), nil
}

func productPage(products []model.Product, total, take, skip int) *model.ProductPage {
	current, pages := model.PageCount(total, take, skip)
	return &model.ProductPage{
		Products:      products,
		TotalProducts: total,
		CurrentPage:   current,
		TotalPages:    pages,
	}
}

// GetByID retrieves a single product by ID.
func (s *productService) GetByID(ctx context.Context, id string) (*model.Product, error) {
	if id == "" {
		s.logger.Warn().Msg("product ID is empty")
		return nil, model.NewDomainError(model.KindNotFound, "product not found")
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, internalError(s.logger, err, "failed to get product")
	}

	if product == nil {
		s.logger.Debug().Str("product_id", id).Msg("product not found")
		return nil, model.NewDomainError(model.KindNotFound, "product not found")
	}

	return product, nil
}
