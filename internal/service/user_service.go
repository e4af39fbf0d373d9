package service

import (
	"context"
	"strings"
	"time"

	"storefront-api/internal/auth"
	"storefront-api/internal/model"
	"storefront-api/internal/repository"
	"storefront-api/internal/storage"

	"github.com/rs/zerolog"
)

const userImageFolder = "users"

var allowedImageTypes = map[string]bool{
	"image/jpg":  true,
	"image/jpeg": true,
	"image/png":  true,
}

// userService implements UserService.
type userService struct {
	userRepo repository.UserRepository
	images   storage.ImageStore
	now      func() time.Time
	newID    func() string
	metrics  *Metrics
	logger   zerolog.Logger
}

// NewUserService creates a new user service.
func NewUserService(
	userRepo repository.UserRepository,
	images storage.ImageStore,
	logger zerolog.Logger,
	opts ...Option,
) UserService {
	o := applyOptions(opts)
	return &userService{
		userRepo: userRepo,
		images:   images,
		now:      o.now,
		newID:    o.newID,
		metrics:  o.metrics,
		logger:   logger.With().Str("service", "user").Logger(),
	}
}

// FindAll retrieves a page of users.
func (s *userService) FindAll(ctx context.Context, take, skip int) (*model.UserPage, error) {
	take, skip = normalizePage(take, skip)

	total, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, internalError(s.logger, err, "failed to count users")
	}

	users, err := s.userRepo.List(ctx, take, skip)
	if err != nil {
		return nil, internalError(s.logger, err, "failed to list users")
	}

	if len(users) == 0 {
		return nil, model.NewDomainError(model.KindNotFound, "users not found")
	}

	current, pages := model.PageCount(total, take, skip)
	return &model.UserPage{
		Users:       users,
		TotalUsers:  total,
		CurrentPage: current,
		TotalPages:  pages,
	}, nil
}

// FindOne retrieves a user by ID.
func (s *userService) FindOne(ctx context.Context, id string) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, internalError(s.logger, err, "failed to get user")
	}
	if user == nil {
		return nil, model.NewDomainError(model.KindNotFound, "user not found")
	}
	return user, nil
}

// Update changes names and email of an account the principal may act on.
func (s *userService) Update(ctx context.Context, p model.Principal, id string, req *model.UpdateUserRequest) (err error) {
	defer func() { s.metrics.observe("user", "update", err) }()

	if req == nil {
		return model.NewDomainError(model.KindBadRequest, "request body is required")
	}
	if req.Password != nil {
		return model.NewDomainError(model.KindBadRequest, "password cannot be updated in this endpoint")
	}

	user, err := s.FindOne(ctx, id)
	if err != nil {
		return err
	}

	if err := auth.Authorize(p, user.ID); err != nil {
		s.logger.Warn().Str("principal_id", p.ID).Str("user_id", id).Msg("user update denied")
		return err
	}

	if req.FirstName != nil {
		user.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		user.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if !strings.Contains(email, "@") {
			return model.NewDomainError(model.KindBadRequest, "email is not valid")
		}
		user.Email = email
	}
	user.UpdatedAt = s.now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return internalError(s.logger, err, "failed to update user")
	}

	s.logger.Info().Str("user_id", id).Str("principal_id", p.ID).Msg("user updated")
	return nil
}

// Disable deactivates an account the principal may act on.
func (s *userService) Disable(ctx context.Context, p model.Principal, id string) (err error) {
	defer func() { s.metrics.observe("user", "disable", err) }()

	user, err := s.FindOne(ctx, id)
	if err != nil {
		return err
	}

	if err := auth.Authorize(p, user.ID); err != nil {
		s.logger.Warn().Str("principal_id", p.ID).Str("user_id", id).Msg("user disable denied")
		return err
	}

	user.IsActive = false
	user.UpdatedAt = s.now()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return internalError(s.logger, err, "failed to disable user")
	}

	s.logger.Info().Str("user_id", id).Str("principal_id", p.ID).Msg("user disabled")
	return nil
}

// Enable reactivates an account.
func (s *userService) Enable(ctx context.Context, id string) (err error) {
	defer func() { s.metrics.observe("user", "enable", err) }()

	user, err := s.FindOne(ctx, id)
	if err != nil {
		return err
	}

	if user.IsActive {
		return model.NewDomainError(model.KindBadRequest, "user is already activated")
	}

	user.IsActive = true
	user.UpdatedAt = s.now()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return internalError(s.logger, err, "failed to enable user")
	}

	s.logger.Info().Str("user_id", id).Msg("user enabled")
	return nil
}

// Delete removes an active account the principal may act on.
func (s *userService) Delete(ctx context.Context, p model.Principal, id string) (err error) {
	defer func() { s.metrics.observe("user", "delete", err) }()

	user, err := s.FindOne(ctx, id)
	if err != nil {
		return err
	}

	if !user.IsActive {
		return model.NewDomainError(model.KindNotFound, "user is not active")
	}

	if err := auth.Authorize(p, user.ID); err != nil {
		s.logger.Warn().Str("principal_id", p.ID).Str("user_id", id).Msg("user delete denied")
		return err
	}

	deleted, err := s.userRepo.Delete(ctx, id)
	if err != nil {
		return internalError(s.logger, err, "failed to delete user")
	}
	if !deleted {
		return model.NewDomainError(model.KindNotFound, "user not found")
	}

	s.logger.Info().Str("user_id", id).Str("principal_id", p.ID).Msg("user deleted")
	return nil
}

// UpdateImage replaces the principal's profile image. Removing the previous
// object is best effort.
func (s *userService) UpdateImage(ctx context.Context, p model.Principal, upload storage.Upload) (img *model.UserImage, err error) {
	defer func() { s.metrics.observe("user", "update_image", err) }()

	if upload.Body == nil {
		return nil, model.NewDomainError(model.KindBadRequest, "file is required")
	}
	if !allowedImageTypes[strings.ToLower(upload.ContentType)] {
		return nil, model.Errorf(model.KindBadRequest, "file type %q is not allowed, use jpg, jpeg or png", upload.ContentType)
	}

	user, err := s.FindOne(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	upload.Folder = userImageFolder
	stored, err := s.images.Upload(ctx, upload)
	if err != nil {
		return nil, internalError(s.logger, err, "failed to upload user image")
	}

	img = &model.UserImage{
		ID:       s.newID(),
		ImageURL: stored.URL,
		PublicID: stored.PublicID,
	}
	if err := s.userRepo.UpsertImage(ctx, user.ID, img); err != nil {
		// Drop the orphaned upload.
		if delErr := s.images.Delete(ctx, stored.PublicID); delErr != nil {
			s.logger.Warn().Err(delErr).Str("public_id", stored.PublicID).Msg("failed to remove orphaned image")
		}
		return nil, internalError(s.logger, err, "failed to save user image")
	}

	if user.Image != nil && user.Image.PublicID != "" && user.Image.PublicID != stored.PublicID {
		if err := s.images.Delete(ctx, user.Image.PublicID); err != nil {
			s.logger.Warn().Err(err).
				Str("user_id", user.ID).
				Str("public_id", user.Image.PublicID).
				Msg("failed to delete previous user image")
		}
	}

	s.logger.Info().Str("user_id", user.ID).Str("public_id", img.PublicID).Msg("user image updated")
	return img, nil
}
