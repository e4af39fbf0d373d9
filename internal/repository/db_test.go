package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"storefront-api/internal/database"
	"storefront-api/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB creates a PostgreSQL testcontainer with the application schema
// and returns a connection pool.
func setupTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	require.NoError(t, database.Migrate(ctx, pool, zerolog.Nop()))

	cleanup := func() {
		pool.Close()
		_ = pgContainer.Terminate(ctx)
	}

	return pool, cleanup
}

func seedUser(t *testing.T, pool *pgxpool.Pool, u model.User) {
	t.Helper()
	if u.Role == "" {
		u.Role = model.RoleUser
	}

	_, err := pool.Exec(context.Background(), `
		INSERT INTO users (id, first_name, last_name, email, role, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, u.ID, u.FirstName, u.LastName, u.Email, u.Role, u.IsActive)
	require.NoError(t, err)
}

func seedCategory(t *testing.T, pool *pgxpool.Pool, c model.Category) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO categories (id, name) VALUES ($1, $2)`, c.ID, c.Name)
	require.NoError(t, err)
}

func seedProduct(t *testing.T, pool *pgxpool.Pool, p model.Product) {
	t.Helper()

	var categoryID *string
	if p.Category != nil {
		categoryID = &p.Category.ID
	}
	_, err := pool.Exec(context.Background(), `
		INSERT INTO products (id, name, description, sku, price, stock, category_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, p.ID, p.Name, p.Description, p.SKU, p.Price, p.Stock, categoryID)
	require.NoError(t, err)
}

func seedUsage(t *testing.T, pool *pgxpool.Pool, id, couponID, userID string) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO coupon_usages (id, coupon_id, user_id) VALUES ($1, $2, $3)`,
		id, couponID, userID)
	require.NoError(t, err)
}

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantKind model.ErrorKind
		wantMsg  string
	}{
		{
			name:     "Unique violation on coupon code",
			err:      fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "idx_coupons_code_upper"}),
			wantKind: model.KindConflict,
			wantMsg:  "coupon code already exists",
		},
		{
			name:     "Unique violation on email",
			err:      &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"},
			wantKind: model.KindConflict,
			wantMsg:  "email already in use",
		},
		{
			name:     "Foreign key violation on coupon products",
			err:      &pgconn.PgError{Code: "23503", TableName: "coupon_products"},
			wantKind: model.KindRelationTargetNotFound,
			wantMsg:  "one or more products do not exist",
		},
		{
			name:     "Foreign key violation on coupon users",
			err:      &pgconn.PgError{Code: "23503", TableName: "coupon_users"},
			wantKind: model.KindRelationTargetNotFound,
			wantMsg:  "one or more users do not exist",
		},
		{
			name:     "Check violation",
			err:      &pgconn.PgError{Code: "23514", ConstraintName: "coupons_window_check"},
			wantKind: model.KindBadRequest,
			wantMsg:  "value violates constraint coupons_window_check",
		},
		{
			name:     "Other postgres error passes through",
			err:      &pgconn.PgError{Code: "40001"},
			wantKind: model.KindInternal,
		},
		{
			name:     "Plain error passes through",
			err:      errors.New("connection reset"),
			wantKind: model.KindInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateError(tt.err)

			assert.Equal(t, tt.wantKind, model.KindOf(got))
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, got.Error())
			} else {
				assert.Equal(t, tt.err, got)
			}
		})
	}
}

func TestWithTx(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	t.Run("Commits when fn succeeds", func(t *testing.T) {
		err := withTx(ctx, pool, func(tx pgx.Tx) error {
			_, err := tx.Exec(ctx, `INSERT INTO categories (id, name) VALUES ('C-commit', 'Committed')`)
			return err
		})
		require.NoError(t, err)

		var n int
		require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM categories WHERE id = 'C-commit'`).Scan(&n))
		assert.Equal(t, 1, n)
	})

	t.Run("Rolls back when fn fails", func(t *testing.T) {
		boom := errors.New("boom")
		err := withTx(ctx, pool, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, `INSERT INTO categories (id, name) VALUES ('C-rollback', 'Rolled back')`); err != nil {
				return err
			}
			return boom
		})
		require.ErrorIs(t, err, boom)

		var n int
		require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM categories WHERE id = 'C-rollback'`).Scan(&n))
		assert.Equal(t, 0, n)
	})
}

func TestMigrate_Idempotent(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	// setupTestDB already applied the schema once
	require.NoError(t, database.Migrate(context.Background(), pool, zerolog.Nop()))
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
