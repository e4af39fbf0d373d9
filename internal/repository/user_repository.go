package repository

import (
	"context"
	"fmt"

	"storefront-api/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const userColumns = `
	u.id, u.first_name, u.last_name, u.email, u.role, u.is_active,
	u.created_at, u.updated_at, ui.id, ui.image_url, ui.public_id`

// userRepository implements the UserRepository interface using PostgreSQL.
type userRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewUserRepository creates a new PostgreSQL-backed user repository.
func NewUserRepository(pool *pgxpool.Pool, logger zerolog.Logger) UserRepository {
	return &userRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "user").Logger(),
	}
}

// GetByID retrieves a user with their image.
func (r *userRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users u
		LEFT JOIN user_images ui ON ui.user_id = u.id
		WHERE u.id = $1
	`

	u, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("user_id", id).Msg("user not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("user_id", id).Msg("failed to query user")
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return u, nil
}

// List retrieves users with pagination support.
func (r *userRepository) List(ctx context.Context, limit, offset int) ([]model.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users u
		LEFT JOIN user_images ui ON ui.user_id = u.id
		ORDER BY u.created_at, u.id
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to query users")
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan user row")
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *u)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating user rows")
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}

// Count returns the total number of users.
func (r *userRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		r.logger.Error().Err(err).Msg("failed to count users")
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}

// Update writes names, email and the active flag.
func (r *userRepository) Update(ctx context.Context, u *model.User) error {
	query := `
		UPDATE users
		SET first_name = $2, last_name = $3, email = $4, is_active = $5, updated_at = $6
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, u.ID, u.FirstName, u.LastName, u.Email, u.IsActive, u.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", u.ID).Msg("failed to update user")
		return translateError(fmt.Errorf("failed to update user: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return model.NewDomainError(model.KindNotFound, "user not found")
	}

	return nil
}

// Delete removes a user.
func (r *userRepository) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", id).Msg("failed to delete user")
		return false, fmt.Errorf("failed to delete user: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// UpsertImage attaches img to the user, replacing any previous image row. The
// existing row id is kept and written back to img.ID.
func (r *userRepository) UpsertImage(ctx context.Context, userID string, img *model.UserImage) error {
	query := `
		INSERT INTO user_images (id, user_id, image_url, public_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE
		SET image_url = EXCLUDED.image_url, public_id = EXCLUDED.public_id
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query, img.ID, userID, img.ImageURL, img.PublicID).Scan(&img.ID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to upsert user image")
		return translateError(fmt.Errorf("failed to upsert user image: %w", err))
	}

	return nil
}

// scanUser reads one row selected with userColumns.
func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	var imageID, imageURL, publicID *string

	err := row.Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Role, &u.IsActive,
		&u.CreatedAt, &u.UpdatedAt, &imageID, &imageURL, &publicID,
	)
	if err != nil {
		return nil, err
	}

	if imageID != nil {
		u.Image = &model.UserImage{ID: *imageID}
		if imageURL != nil {
			u.Image.ImageURL = *imageURL
		}
		if publicID != nil {
			u.Image.PublicID = *publicID
		}
	}
	return &u, nil
}
