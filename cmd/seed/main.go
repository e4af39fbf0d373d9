package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"storefront-api/internal/auth"
	"storefront-api/internal/config"
	"storefront-api/internal/database"
	"storefront-api/internal/model"
	"storefront-api/internal/repository"
	"storefront-api/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// seed loads a small demo catalogue, a few accounts and sample coupons, then
// prints bearer tokens for the seeded accounts. Re-running it is safe.
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type seedUser struct {
	id, first, last, email string
	role                   model.Role
}

var users = []seedUser{
	{"admin", "Store", "Admin", "admin@storefront.local", model.RoleAdmin},
	{"demo-user", "Demo", "Shopper", "shopper@storefront.local", model.RoleUser},
}

var categories = []model.Category{
	{ID: "books", Name: "Books"},
	{ID: "games", Name: "Games"},
}

var products = []struct {
	id, name, sku, price, category string
}{
	{"go-book", "The Go Programming Language", "BK-001", "39.99", "books"},
	{"sql-book", "SQL Performance Explained", "BK-002", "29.50", "books"},
	{"chess", "Wooden Chess Set", "GM-001", "54.00", "games"},
	{"puzzle", "1000 Piece Puzzle", "GM-002", "18.75", "games"},
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)
	ctx := context.Background()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	var dbName string
	if err := pool.QueryRow(ctx, "SELECT current_database()").Scan(&dbName); err != nil {
		return fmt.Errorf("failed to query database name: %w", err)
	}
	logger.Info().Str("database", dbName).Msg("connected")

	if err := database.Migrate(ctx, pool, logger); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := seedCatalog(ctx, pool); err != nil {
		return err
	}

	couponService := service.NewCouponService(
		repository.NewCouponRepository(pool, logger),
		repository.NewUserRepository(pool, logger),
		logger,
	)
	if err := seedCoupons(ctx, couponService, logger); err != nil {
		return err
	}

	verifier := auth.NewTokenVerifier(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	fmt.Println("\nBearer tokens:")
	for _, u := range users {
		token, err := verifier.Issue(u.id)
		if err != nil {
			return fmt.Errorf("failed to issue token for %s: %w", u.id, err)
		}
		fmt.Printf("  %-10s %s\n", u.role, token)
	}

	return nil
}

func seedCatalog(ctx context.Context, pool *pgxpool.Pool) error {
	for _, u := range users {
		_, err := pool.Exec(ctx,
			`INSERT INTO users (id, first_name, last_name, email, role)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (id) DO NOTHING`,
			u.id, u.first, u.last, u.email, u.role,
		)
		if err != nil {
			return fmt.Errorf("failed to seed user %s: %w", u.id, err)
		}
	}

	for _, c := range categories {
		_, err := pool.Exec(ctx,
			`INSERT INTO categories (id, name) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`,
			c.ID, c.Name,
		)
		if err != nil {
			return fmt.Errorf("failed to seed category %s: %w", c.ID, err)
		}
	}

	for _, p := range products {
		_, err := pool.Exec(ctx,
			`INSERT INTO products (id, name, sku, price, stock, category_id)
			 VALUES ($1, $2, $3, $4, 25, $5)
			 ON CONFLICT (id) DO NOTHING`,
			p.id, p.name, p.sku, decimal.RequireFromString(p.price), p.category,
		)
		if err != nil {
			return fmt.Errorf("failed to seed product %s: %w", p.id, err)
		}
	}

	fmt.Printf("Seeded %d users, %d categories and %d products\n", len(users), len(categories), len(products))
	return nil
}

func seedCoupons(ctx context.Context, coupons service.CouponService, logger zerolog.Logger) error {
	now := time.Now().UTC()
	at := func(d time.Duration) *string {
		s := now.Add(d).Format(time.RFC3339)
		return &s
	}
	amount := func(s string) *decimal.Decimal {
		d := decimal.RequireFromString(s)
		return &d
	}

	requests := []*model.CreateCouponRequest{
		{
			Code:          "welcome10",
			DiscountType:  model.DiscountPercentage,
			DiscountValue: amount("10"),
			StartDate:     at(0),
			EndDate:       at(30 * 24 * time.Hour),
		},
		{
			Code:          "books5",
			DiscountType:  model.DiscountFixedAmount,
			DiscountValue: amount("5"),
			StartDate:     at(time.Hour),
			EndDate:       at(7 * 24 * time.Hour),
			CategoryIDs:   []string{"books"},
		},
		{
			Code:          "chessvip",
			DiscountType:  model.DiscountPercentage,
			DiscountValue: amount("20"),
			StartDate:     at(0),
			EndDate:       at(14 * 24 * time.Hour),
			ProductIDs:    []string{"chess"},
			UserIDs:       []string{"demo-user"},
		},
	}

	created := 0
	for _, req := range requests {
		err := coupons.Create(ctx, req)
		switch {
		case err == nil:
			created++
		case model.IsKind(err, model.KindConflict):
			logger.Info().Str("code", req.Code).Msg("coupon already seeded")
		default:
			return fmt.Errorf("failed to seed coupon %s: %w", req.Code, err)
		}
	}

	fmt.Printf("Created %d sample coupons\n", created)
	return nil
}
