package repository

import (
	"context"
	"fmt"

	"storefront-api/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const productColumns = `
	p.id, p.name, p.description, p.sku, p.price, p.stock, p.created_at,
	cat.id, cat.name`

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

// GetAll retrieves products with pagination support.
func (r *productRepository) GetAll(ctx context.Context, limit, offset int) ([]model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p
		LEFT JOIN categories cat ON cat.id = p.category_id
		ORDER BY p.name, p.id
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	return r.collect(rows)
}

// GetByCategory retrieves the products of one category with pagination support.
func (r *productRepository) GetByCategory(ctx context.Context, categoryID string, limit, offset int) ([]model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p
		JOIN categories cat ON cat.id = p.category_id
		WHERE p.category_id = $1
		ORDER BY p.name, p.id
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, categoryID, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).
			Str("category_id", categoryID).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to query products by category")
		return nil, fmt.Errorf("failed to query products by category: %w", err)
	}
	return r.collect(rows)
}

func (r *productRepository) collect(rows pgx.Rows) ([]model.Product, error) {
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// Count returns the total number of products.
func (r *productRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		r.logger.Error().Err(err).Msg("failed to count products")
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return n, nil
}

// CountByCategory returns the number of products in a category.
func (r *productRepository) CountByCategory(ctx context.Context, categoryID string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE category_id = $1`, categoryID).Scan(&n)
	if err != nil {
		r.logger.Error().Err(err).Str("category_id", categoryID).Msg("failed to count products by category")
		return 0, fmt.Errorf("failed to count products by category: %w", err)
	}
	return n, nil
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p
		LEFT JOIN categories cat ON cat.id = p.category_id
		WHERE p.id = $1
	`

	p, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return p, nil
}

func scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	var categoryID, categoryName *string

	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.SKU, &p.Price, &p.Stock, &p.CreatedAt,
		&categoryID, &categoryName,
	)
	if err != nil {
		return nil, err
	}

	if categoryID != nil && categoryName != nil {
		p.Category = &model.Category{ID: *categoryID, Name: *categoryName}
	}
	return &p, nil
}
