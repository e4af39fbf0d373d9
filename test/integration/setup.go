package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"storefront-api/internal/config"
	"storefront-api/internal/database"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container, a connection pool and the
// application schema.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	dbConfig := config.DatabaseConfig{
		URL:             connStr,
		MaxConnections:  10,
		MinConnections:  2,
		MaxConnLifetime: 300,
	}

	logger := zerolog.Nop()
	pool, err := database.NewPool(ctx, dbConfig, logger)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := database.Migrate(ctx, pool, logger); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// Seeded identities.
const (
	AdminID    = "admin-1"
	UserID     = "u1"
	OtherID    = "u2"
	InactiveID = "u3"
)

// SeedUsers inserts an admin, two active users and an inactive one.
func SeedUsers(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	users := []struct {
		id, first, last, email, role string
		active                       bool
	}{
		{AdminID, "Grace", "Hopper", "grace@example.com", "admin", true},
		{UserID, "Ada", "Lovelace", "ada@example.com", "user", true},
		{OtherID, "Alan", "Turing", "alan@example.com", "user", true},
		{InactiveID, "Edsger", "Dijkstra", "edsger@example.com", "user", false},
	}

	for _, u := range users {
		_, err := pool.Exec(ctx,
			`INSERT INTO users (id, first_name, last_name, email, role, is_active)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			u.id, u.first, u.last, u.email, u.role, u.active,
		)
		if err != nil {
			t.Fatalf("failed to seed user %s: %v", u.id, err)
		}
	}
}

// SeedProducts inserts test categories and products into the database.
func SeedProducts(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	categories := []struct{ id, name string }{
		{"C1", "Category A"},
		{"C2", "Category B"},
	}
	for _, c := range categories {
		if _, err := pool.Exec(ctx, `INSERT INTO categories (id, name) VALUES ($1, $2)`, c.id, c.name); err != nil {
			t.Fatalf("failed to seed category %s: %v", c.id, err)
		}
	}

	products := []struct {
		id       string
		name     string
		price    string
		category *string
	}{
		{"P001", "Test Product 1", "10.00", ptr("C1")},
		{"P002", "Test Product 2", "20.00", ptr("C2")},
		{"P003", "Test Product 3", "30.00", ptr("C1")},
		{"P004", "Test Product 4", "40.00", nil},
		{"P005", "Test Product 5", "50.00", ptr("C2")},
	}

	for _, p := range products {
		_, err := pool.Exec(ctx,
			`INSERT INTO products (id, name, sku, price, stock, category_id)
			 VALUES ($1, $2, $3, $4::numeric, 10, $5)`,
			p.id, p.name, "SKU-"+p.id, p.price, p.category,
		)
		if err != nil {
			t.Fatalf("failed to seed product %s: %v", p.id, err)
		}
	}
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{
		"coupon_usages", "coupon_users", "coupon_categories", "coupon_products",
		"coupons", "products", "categories", "user_images", "users",
	}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}

func ptr(s string) *string { return &s }
