package repository

import (
	"context"
	"fmt"

	"storefront-api/internal/coupon"
	"storefront-api/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const couponColumns = `
	c.id, c.code, c.description, c.discount_type, c.discount_value,
	c.max_discount, c.minimum_purchase, c.usage_limit, c.per_customer_limit,
	c.is_active, c.start_date, c.end_date, c.created_at, c.updated_at`

// relationTable names the join table and target column for a relation kind.
type relationTable struct {
	table  string
	column string
}

var relationTables = map[coupon.RelationKind]relationTable{
	coupon.RelationProducts:   {table: "coupon_products", column: "product_id"},
	coupon.RelationCategories: {table: "coupon_categories", column: "category_id"},
	coupon.RelationUsers:      {table: "coupon_users", column: "user_id"},
}

// couponRepository implements the CouponRepository interface using PostgreSQL.
type couponRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCouponRepository creates a new PostgreSQL-backed coupon repository.
func NewCouponRepository(pool *pgxpool.Pool, logger zerolog.Logger) CouponRepository {
	return &couponRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "coupon").Logger(),
	}
}

// Create inserts the coupon and applies the relation operations in one transaction.
func (r *couponRepository) Create(ctx context.Context, c *model.Coupon, ops []coupon.RelationOp) error {
	query := `
		INSERT INTO coupons (
			id, code, description, discount_type, discount_value, max_discount,
			minimum_purchase, usage_limit, per_customer_limit, is_active,
			start_date, end_date, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	err := withTx(ctx, r.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, query,
			c.ID, c.Code, c.Description, c.DiscountType, c.DiscountValue, c.MaxDiscount,
			c.MinimumPurchase, c.UsageLimit, c.PerCustomerLimit, c.IsActive,
			c.StartDate, c.EndDate, c.CreatedAt, c.UpdatedAt,
		)
		if err != nil {
			return translateError(fmt.Errorf("failed to insert coupon: %w", err))
		}
		return r.applyRelations(ctx, tx, c.ID, ops)
	})
	if err != nil {
		r.logger.Error().Err(err).Str("coupon_id", c.ID).Str("code", c.Code).Msg("failed to create coupon")
		return err
	}

	r.logger.Debug().Str("coupon_id", c.ID).Int("relation_ops", len(ops)).Msg("coupon created")
	return nil
}

// Update writes every scalar field of c and applies the relation operations
// in one transaction.
func (r *couponRepository) Update(ctx context.Context, c *model.Coupon, ops []coupon.RelationOp) error {
	query := `
		UPDATE coupons SET
			code = $2, description = $3, discount_type = $4, discount_value = $5,
			max_discount = $6, minimum_purchase = $7, usage_limit = $8,
			per_customer_limit = $9, is_active = $10, start_date = $11,
			end_date = $12, updated_at = $13
		WHERE id = $1
	`

	err := withTx(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, query,
			c.ID, c.Code, c.Description, c.DiscountType, c.DiscountValue,
			c.MaxDiscount, c.MinimumPurchase, c.UsageLimit,
			c.PerCustomerLimit, c.IsActive, c.StartDate,
			c.EndDate, c.UpdatedAt,
		)
		if err != nil {
			return translateError(fmt.Errorf("failed to update coupon: %w", err))
		}
		if tag.RowsAffected() == 0 {
			return model.NewDomainError(model.KindNotFound, "coupon not found")
		}
		return r.applyRelations(ctx, tx, c.ID, ops)
	})
	if err != nil {
		r.logger.Error().Err(err).Str("coupon_id", c.ID).Msg("failed to update coupon")
		return err
	}

	r.logger.Debug().Str("coupon_id", c.ID).Int("relation_ops", len(ops)).Msg("coupon updated")
	return nil
}

// applyRelations executes each relation operation inside tx.
func (r *couponRepository) applyRelations(ctx context.Context, tx pgx.Tx, couponID string, ops []coupon.RelationOp) error {
	for _, op := range ops {
		rt, ok := relationTables[op.Kind]
		if !ok {
			return fmt.Errorf("unknown relation kind %q", op.Kind)
		}

		switch op.Action {
		case coupon.NoOp:
			continue
		case coupon.ReplaceAll:
			deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE coupon_id = $1`, rt.table)
			if _, err := tx.Exec(ctx, deleteQuery, couponID); err != nil {
				return fmt.Errorf("failed to clear %s: %w", rt.table, err)
			}
		case coupon.ConnectInitial:
		default:
			return fmt.Errorf("unknown relation action %d", op.Action)
		}

		if len(op.IDs) == 0 {
			continue
		}

		insertQuery := fmt.Sprintf(`
			INSERT INTO %s (coupon_id, %s)
			SELECT $1, target_id FROM unnest($2::text[]) AS target_id
			ON CONFLICT DO NOTHING
		`, rt.table, rt.column)
		if _, err := tx.Exec(ctx, insertQuery, couponID, op.IDs); err != nil {
			return translateError(fmt.Errorf("failed to link %s: %w", op.Kind, err))
		}

		r.logger.Debug().
			Str("coupon_id", couponID).
			Str("relation", string(op.Kind)).
			Str("action", op.Action.String()).
			Int("count", len(op.IDs)).
			Msg("coupon relation written")
	}
	return nil
}

// GetByID retrieves a coupon without its relations.
func (r *couponRepository) GetByID(ctx context.Context, id string) (*model.Coupon, error) {
	query := `SELECT ` + couponColumns + ` FROM coupons c WHERE c.id = $1`

	c, err := scanCoupon(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("coupon_id", id).Msg("coupon not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("coupon_id", id).Msg("failed to query coupon")
		return nil, fmt.Errorf("failed to query coupon: %w", err)
	}

	return c, nil
}

// GetDetail retrieves a coupon with products, categories, users and usages.
func (r *couponRepository) GetDetail(ctx context.Context, id string) (*model.CouponDetail, error) {
	c, err := r.GetByID(ctx, id)
	if err != nil || c == nil {
		return nil, err
	}

	details := []model.CouponDetail{{Coupon: *c}}
	if err := r.loadRelations(ctx, details); err != nil {
		return nil, err
	}

	return &details[0], nil
}

// List retrieves coupons with relations, optionally filtered by the active flag.
func (r *couponRepository) List(ctx context.Context, active *bool) ([]model.CouponDetail, error) {
	query := `
		SELECT ` + couponColumns + `
		FROM coupons c
		WHERE ($1::boolean IS NULL OR c.is_active = $1)
		ORDER BY c.created_at DESC, c.id
	`

	rows, err := r.pool.Query(ctx, query, active)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query coupons")
		return nil, fmt.Errorf("failed to query coupons: %w", err)
	}
	defer rows.Close()

	details := []model.CouponDetail{}
	for rows.Next() {
		c, err := scanCoupon(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan coupon row")
			return nil, fmt.Errorf("failed to scan coupon: %w", err)
		}
		details = append(details, model.CouponDetail{Coupon: *c})
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating coupon rows")
		return nil, fmt.Errorf("error iterating coupons: %w", err)
	}

	if err := r.loadRelations(ctx, details); err != nil {
		return nil, err
	}

	return details, nil
}

// ListAssigned retrieves the coupons assigned to a user.
func (r *couponRepository) ListAssigned(ctx context.Context, userID string) ([]model.Coupon, error) {
	query := `
		SELECT ` + couponColumns + `
		FROM coupons c
		JOIN coupon_users cu ON cu.coupon_id = c.id
		WHERE cu.user_id = $1
		ORDER BY c.start_date, c.id
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to query assigned coupons")
		return nil, fmt.Errorf("failed to query assigned coupons: %w", err)
	}
	defer rows.Close()

	coupons := []model.Coupon{}
	for rows.Next() {
		c, err := scanCoupon(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan coupon row")
			return nil, fmt.Errorf("failed to scan coupon: %w", err)
		}
		coupons = append(coupons, *c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assigned coupons: %w", err)
	}

	return coupons, nil
}

// ListUsagesByUser retrieves a user's redemption history.
func (r *couponRepository) ListUsagesByUser(ctx context.Context, userID string) ([]model.CouponUsage, error) {
	query := `
		SELECT id, coupon_id, user_id, order_ref, used_at
		FROM coupon_usages
		WHERE user_id = $1
		ORDER BY used_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to query coupon usages")
		return nil, fmt.Errorf("failed to query coupon usages: %w", err)
	}
	defer rows.Close()

	usages := []model.CouponUsage{}
	for rows.Next() {
		var u model.CouponUsage
		if err := rows.Scan(&u.ID, &u.CouponID, &u.UserID, &u.OrderRef, &u.UsedAt); err != nil {
			return nil, fmt.Errorf("failed to scan coupon usage: %w", err)
		}
		usages = append(usages, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating coupon usages: %w", err)
	}

	return usages, nil
}

// Delete removes a coupon and its relation links. Usages are kept.
func (r *couponRepository) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM coupons WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("coupon_id", id).Msg("failed to delete coupon")
		return false, fmt.Errorf("failed to delete coupon: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// loadRelations fills the relation slices and counts of every detail in place.
func (r *couponRepository) loadRelations(ctx context.Context, details []model.CouponDetail) error {
	if len(details) == 0 {
		return nil
	}

	ids := make([]string, len(details))
	index := make(map[string]*model.CouponDetail, len(details))
	for i := range details {
		d := &details[i]
		d.ApplicableProducts = []model.ProductSummary{}
		d.ApplicableCategories = []model.Category{}
		d.AssignedUsers = []model.UserSummary{}
		d.CouponUsages = []model.CouponUsage{}
		ids[i] = d.ID
		index[d.ID] = d
	}

	if err := r.loadProducts(ctx, ids, index); err != nil {
		return err
	}
	if err := r.loadCategories(ctx, ids, index); err != nil {
		return err
	}
	if err := r.loadUsers(ctx, ids, index); err != nil {
		return err
	}
	if err := r.loadUsages(ctx, ids, index); err != nil {
		return err
	}

	for i := range details {
		d := &details[i]
		d.Count = model.CouponCounts{
			CouponUsages:         len(d.CouponUsages),
			ApplicableProducts:   len(d.ApplicableProducts),
			ApplicableCategories: len(d.ApplicableCategories),
			AssignedUsers:        len(d.AssignedUsers),
		}
	}
	return nil
}

func (r *couponRepository) loadProducts(ctx context.Context, ids []string, index map[string]*model.CouponDetail) error {
	query := `
		SELECT cp.coupon_id, p.id, p.name, p.sku, p.price
		FROM coupon_products cp
		JOIN products p ON p.id = cp.product_id
		WHERE cp.coupon_id = ANY($1)
		ORDER BY p.name
	`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to query coupon products: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var couponID string
		var p model.ProductSummary
		if err := rows.Scan(&couponID, &p.ID, &p.Name, &p.SKU, &p.Price); err != nil {
			return fmt.Errorf("failed to scan coupon product: %w", err)
		}
		if d, ok := index[couponID]; ok {
			d.ApplicableProducts = append(d.ApplicableProducts, p)
		}
	}
	return rows.Err()
}

func (r *couponRepository) loadCategories(ctx context.Context, ids []string, index map[string]*model.CouponDetail) error {
	query := `
		SELECT cc.coupon_id, cat.id, cat.name
		FROM coupon_categories cc
		JOIN categories cat ON cat.id = cc.category_id
		WHERE cc.coupon_id = ANY($1)
		ORDER BY cat.name
	`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to query coupon categories: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var couponID string
		var c model.Category
		if err := rows.Scan(&couponID, &c.ID, &c.Name); err != nil {
			return fmt.Errorf("failed to scan coupon category: %w", err)
		}
		if d, ok := index[couponID]; ok {
			d.ApplicableCategories = append(d.ApplicableCategories, c)
		}
	}
	return rows.Err()
}

func (r *couponRepository) loadUsers(ctx context.Context, ids []string, index map[string]*model.CouponDetail) error {
	query := `
		SELECT cu.coupon_id, u.id, u.first_name, u.last_name, u.email
		FROM coupon_users cu
		JOIN users u ON u.id = cu.user_id
		WHERE cu.coupon_id = ANY($1)
		ORDER BY u.last_name, u.first_name
	`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to query coupon users: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var couponID string
		var u model.UserSummary
		if err := rows.Scan(&couponID, &u.ID, &u.FirstName, &u.LastName, &u.Email); err != nil {
			return fmt.Errorf("failed to scan coupon user: %w", err)
		}
		if d, ok := index[couponID]; ok {
			d.AssignedUsers = append(d.AssignedUsers, u)
		}
	}
	return rows.Err()
}

func (r *couponRepository) loadUsages(ctx context.Context, ids []string, index map[string]*model.CouponDetail) error {
	query := `
		SELECT id, coupon_id, user_id, order_ref, used_at
		FROM coupon_usages
		WHERE coupon_id = ANY($1)
		ORDER BY used_at DESC
	`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to query coupon usages: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var u model.CouponUsage
		if err := rows.Scan(&u.ID, &u.CouponID, &u.UserID, &u.OrderRef, &u.UsedAt); err != nil {
			return fmt.Errorf("failed to scan coupon usage: %w", err)
		}
		if u.CouponID == nil {
			continue
		}
		if d, ok := index[*u.CouponID]; ok {
			d.CouponUsages = append(d.CouponUsages, u)
		}
	}
	return rows.Err()
}

// scanCoupon reads one row selected with couponColumns.
func scanCoupon(row pgx.Row) (*model.Coupon, error) {
	var c model.Coupon
	var maxDiscount, minimumPurchase decimal.NullDecimal

	err := row.Scan(
		&c.ID, &c.Code, &c.Description, &c.DiscountType, &c.DiscountValue,
		&maxDiscount, &minimumPurchase, &c.UsageLimit, &c.PerCustomerLimit,
		&c.IsActive, &c.StartDate, &c.EndDate, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if maxDiscount.Valid {
		c.MaxDiscount = &maxDiscount.Decimal
	}
	if minimumPurchase.Valid {
		c.MinimumPurchase = &minimumPurchase.Decimal
	}
	return &c, nil
}
