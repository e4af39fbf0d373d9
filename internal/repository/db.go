package repository

import (
	"context"
	"errors"
	"fmt"

	"storefront-api/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SQLSTATE codes translated into domain errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// withTx runs fn inside a transaction and commits when it returns nil. The
// deferred rollback is a no-op after a successful commit.
func withTx(ctx context.Context, pool *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// translateError maps constraint violations to domain errors and returns any
// other error unchanged.
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		return model.NewDomainError(model.KindConflict, uniqueMessage(pgErr.ConstraintName))
	case pgForeignKeyViolation:
		return model.NewDomainError(model.KindRelationTargetNotFound, foreignKeyMessage(pgErr.TableName))
	case pgCheckViolation:
		return model.Errorf(model.KindBadRequest, "value violates constraint %s", pgErr.ConstraintName)
	}
	return err
}

func uniqueMessage(constraint string) string {
	switch constraint {
	case "idx_coupons_code_upper":
		return "coupon code already exists"
	case "users_email_key":
		return "email already in use"
	case "products_sku_key":
		return "sku already exists"
	}
	return "resource already exists"
}

func foreignKeyMessage(table string) string {
	switch table {
	case "coupon_products":
		return "one or more products do not exist"
	case "coupon_categories":
		return "one or more categories do not exist"
	case "coupon_users":
		return "one or more users do not exist"
	}
	return "referenced resource does not exist"
}
