package service

import (
	"context"
	"strings"
	"time"

	"storefront-api/internal/coupon"
	"storefront-api/internal/model"
	"storefront-api/internal/repository"

	"github.com/rs/zerolog"
)

// couponService implements CouponService.
type couponService struct {
	couponRepo repository.CouponRepository
	userRepo   repository.UserRepository
	now        func() time.Time
	newID      func() string
	metrics    *Metrics
	logger     zerolog.Logger
}

// NewCouponService creates a new coupon service.
func NewCouponService(
	couponRepo repository.CouponRepository,
	userRepo repository.UserRepository,
	logger zerolog.Logger,
	opts ...Option,
) CouponService {
	o := applyOptions(opts)
	return &couponService{
		couponRepo: couponRepo,
		userRepo:   userRepo,
		now:        o.now,
		newID:      o.newID,
		metrics:    o.metrics,
		logger:     logger.With().Str("service", "coupon").Logger(),
	}
}

// Create validates and stores a new coupon with its initial relations.
func (s *couponService) Create(ctx context.Context, req *model.CreateCouponRequest) (err error) {
	defer func() { s.metrics.observe("coupon", "create", err) }()

	if req == nil {
		return model.NewDomainError(model.KindBadRequest, "request body is required")
	}

	in := *req
	in.Code = coupon.NormalizeCode(in.Code)
	if err := coupon.ValidateCreate(&in); err != nil {
		s.logger.Debug().Err(err).Str("code", in.Code).Msg("coupon rejected")
		return err
	}

	now := s.now()
	window, err := coupon.ResolveWindow(nil, in.StartDate, in.EndDate, now)
	if err != nil {
		s.logger.Debug().Err(err).Str("code", in.Code).Msg("coupon window rejected")
		return err
	}

	ops := coupon.CreateOps(map[coupon.RelationKind][]string{
		coupon.RelationProducts:   in.ProductIDs,
		coupon.RelationCategories: in.CategoryIDs,
		coupon.RelationUsers:      in.UserIDs,
	})

	c := coupon.NewCoupon(s.newID(), &in, window, now)
	if err := s.couponRepo.Create(ctx, c, ops); err != nil {
		return internalError(s.logger, err, "failed to create coupon")
	}

	s.logger.Info().
		Str("coupon_id", c.ID).
		Str("code", c.Code).
		Time("start_date", c.StartDate).
		Time("end_date", c.EndDate).
		Msg("coupon created")

	return nil
}

// FindAll lists coupons with every relation, optionally filtered by the active flag.
func (s *couponService) FindAll(ctx context.Context, active *bool) ([]model.CouponDetail, error) {
	coupons, err := s.couponRepo.List(ctx, active)
	if err != nil {
		return nil, internalError(s.logger, err, "failed to list coupons")
	}

	if len(coupons) == 0 {
		return nil, model.NewDomainError(model.KindNotFound, "no coupons found")
	}

	now := s.now()
	for i := range coupons {
		coupons[i].Status = coupon.StatusAt(&coupons[i].Coupon, now)
	}

	s.logger.Debug().Int("count", len(coupons)).Msg("retrieved coupons")
	return coupons, nil
}

// FindOne retrieves a coupon with every relation.
func (s *couponService) FindOne(ctx context.Context, id string) (*model.CouponDetail, error) {
	detail, err := s.couponRepo.GetDetail(ctx, id)
	if err != nil {
		return nil, internalError(s.logger, err, "failed to get coupon")
	}

	if detail == nil {
		return nil, model.NewDomainError(model.KindNotFound, "coupon not found")
	}

	detail.Status = coupon.StatusAt(&detail.Coupon, s.now())
	return detail, nil
}

// CouponsByUser returns the principal's assigned coupons and usage history.
func (s *couponService) CouponsByUser(ctx context.Context, p model.Principal) (*model.UserCoupons, error) {
	user, err := s.userRepo.GetByID(ctx, p.ID)
	if err != nil {
		return nil, internalError(s.logger, err, "failed to get user")
	}
	if user == nil {
		return nil, model.NewDomainError(model.KindNotFound, "user not found")
	}

	assigned, err := s.couponRepo.ListAssigned(ctx, user.ID)
	if err != nil {
		return nil, internalError(s.logger, err, "failed to list assigned coupons")
	}

	usages, err := s.couponRepo.ListUsagesByUser(ctx, user.ID)
	if err != nil {
		return nil, internalError(s.logger, err, "failed to list coupon usages")
	}

	now := s.now()
	for i := range assigned {
		assigned[i].Status = coupon.StatusAt(&assigned[i], now)
	}

	return &model.UserCoupons{
		UserSummary: model.UserSummary{
			ID:        user.ID,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Email:     user.Email,
		},
		Image:           user.Image,
		AssignedCoupons: assigned,
		CouponUsages:    usages,
	}, nil
}

// Update applies a partial update, replacing any relation list that is present.
func (s *couponService) Update(ctx context.Context, id string, req *model.UpdateCouponRequest) (err error) {
	defer func() { s.metrics.observe("coupon", "update", err) }()

	if req == nil {
		return model.NewDomainError(model.KindBadRequest, "request body is required")
	}

	existing, err := s.couponRepo.GetByID(ctx, id)
	if err != nil {
		return internalError(s.logger, err, "failed to get coupon")
	}
	if existing == nil {
		return model.NewDomainError(model.KindNotFound, "coupon not found")
	}

	now := s.now()
	window, err := coupon.ResolveWindow(
		&coupon.Window{Start: existing.StartDate, End: existing.EndDate},
		req.StartDate, req.EndDate, now,
	)
	if err != nil {
		s.logger.Debug().Err(err).Str("coupon_id", id).Msg("coupon window rejected")
		return err
	}

	ops := coupon.UpdateOps(map[coupon.RelationKind]*[]string{
		coupon.RelationProducts:   req.ProductIDs,
		coupon.RelationCategories: req.CategoryIDs,
		coupon.RelationUsers:      req.UserIDs,
	})

	if err := coupon.ApplyUpdate(existing, req); err != nil {
		return err
	}
	existing.StartDate = window.Start
	existing.EndDate = window.End
	existing.UpdatedAt = now

	if err := s.couponRepo.Update(ctx, existing, ops); err != nil {
		return internalError(s.logger, err, "failed to update coupon")
	}

	s.logger.Info().
		Str("coupon_id", id).
		Int("relation_changes", len(ops)).
		Msg("coupon updated")

	return nil
}

// Remove deletes a coupon. Usage history is kept.
func (s *couponService) Remove(ctx context.Context, id string) (err error) {
	defer func() { s.metrics.observe("coupon", "remove", err) }()

	if strings.TrimSpace(id) == "" {
		return model.NewDomainError(model.KindBadRequest, "coupon id is required")
	}

	existing, err := s.couponRepo.GetByID(ctx, id)
	if err != nil {
		return internalError(s.logger, err, "failed to get coupon")
	}
	if existing == nil {
		return model.NewDomainError(model.KindNotFound, "coupon not found")
	}

	deleted, err := s.couponRepo.Delete(ctx, id)
	if err != nil {
		return internalError(s.logger, err, "failed to delete coupon")
	}
	if !deleted {
		return model.NewDomainError(model.KindNotFound, "coupon not found")
	}

	s.logger.Info().Str("coupon_id", id).Str("code", existing.Code).Msg("coupon deleted")
	return nil
}
