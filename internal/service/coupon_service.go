package service

import (
	"context"
	"strings"

	"github.com/skylinehq/building-api/internal/models"
	apierrors "github.com/skylinehq/building-api/internal/pkg/errors"
	"github.com/skylinehq/building-api/internal/repository"
)

// CreateCouponRequest carries the fields of a new coupon.
type CreateCouponRequest struct {
	Code        string
	Discount    int
	Description string
}

// CouponService handles coupon listing and creation.
type CouponService interface {
	List(ctx context.Context) ([]*models.Coupon, error)
	Create(ctx context.Context, req CreateCouponRequest) (*models.Coupon, error)
}

type couponService struct {
	coupons repository.CouponRepository
}

// NewCouponService creates a new coupon service.
func NewCouponService(coupons repository.CouponRepository) CouponService {
	return &couponService{coupons: coupons}
}

func (s *couponService) List(ctx context.Context) ([]*models.Coupon, error) {
	return s.coupons.List(ctx)
}

func (s *couponService) Create(ctx context.Context, req CreateCouponRequest) (*models.Coupon, error) {
	code := strings.TrimSpace(req.Code)
	if code == "" {
		return nil, apierrors.NewValidationError("code", "code is required")
	}
	if req.Discount < 0 || req.Discount > 100 {
		return nil, apierrors.NewValidationError("discount", "discount must be between 0 and 100")
	}

	c := &models.Coupon{
		Code:        code,
		Discount:    req.Discount,
		Description: req.Description,
	}
	if err := s.coupons.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Compile-time check to ensure couponService implements CouponService.
var _ CouponService = (*couponService)(nil)
