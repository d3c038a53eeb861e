package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/cuplet/cuplet-go/internal/model"
	"github.com/cuplet/cuplet-go/internal/repository"
)

var (
	ErrCategoryRequired  = errors.New("category is required")
	ErrStoreNameRequired = errors.New("store_name is required")
	ErrInvalidBalance    = errors.New("balance must be a non-negative number")
	ErrInvalidExpiration = errors.New("expiration_date must be a date (YYYY-MM-DD)")
	ErrInvalidStatus     = errors.New(`status must be "active" or "used"`)
	ErrCouponNotFound    = errors.New("coupon not found")
)

// IsValidationError reports whether err is caused by bad client input.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrCategoryRequired) ||
		errors.Is(err, ErrStoreNameRequired) ||
		errors.Is(err, ErrInvalidBalance) ||
		errors.Is(err, ErrInvalidExpiration) ||
		errors.Is(err, ErrInvalidStatus)
}

// CouponService handles coupon business logic. Every method is scoped to the
// owner it is given; callers pass the authenticated user's ID.
type CouponService struct {
	repo *repository.CouponRepository
}

// NewCouponService creates a new CouponService.
func NewCouponService(repo *repository.CouponRepository) *CouponService {
	return &CouponService{repo: repo}
}

// CreateCoupon validates the request and stores a new active coupon.
func (s *CouponService) CreateCoupon(ctx context.Context, ownerID string, req model.CreateCouponRequest) (model.Coupon, error) {
	category := strings.TrimSpace(req.Category)
	if category == "" {
		return model.Coupon{}, ErrCategoryRequired
	}
	storeName := strings.TrimSpace(req.StoreName)
	if storeName == "" {
		return model.Coupon{}, ErrStoreNameRequired
	}

	coupon := model.Coupon{
		OwnerID:   ownerID,
		Category:  category,
		StoreName: storeName,
	}

	if req.ExpirationDate != nil {
		date, err := parseExpiration(*req.ExpirationDate)
		if err != nil {
			return model.Coupon{}, err
		}
		coupon.ExpirationDate = &date
	}
	if req.Balance != nil {
		if err := validateBalance(*req.Balance); err != nil {
			return model.Coupon{}, err
		}
		balance := *req.Balance
		coupon.Balance = &balance
	}

	if err := s.repo.Create(ctx, &coupon); err != nil {
		return model.Coupon{}, err
	}

	return coupon, nil
}

// ListCoupons returns the owner's coupons, newest first.
func (s *CouponService) ListCoupons(ctx context.Context, ownerID string) ([]model.Coupon, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// UpdateCoupon applies a partial update to one of the owner's coupons.
func (s *CouponService) UpdateCoupon(ctx context.Context, ownerID, couponID string, patch model.CouponPatch) (model.Coupon, error) {
	patch, err := normalizePatch(patch)
	if err != nil {
		return model.Coupon{}, err
	}

	coupon, err := s.repo.Update(ctx, couponID, ownerID, patch)
	if err != nil {
		if errors.Is(err, repository.ErrCouponNotFound) {
			return model.Coupon{}, ErrCouponNotFound
		}
		return model.Coupon{}, err
	}

	return *coupon, nil
}

// DeleteCoupon permanently removes one of the owner's coupons.
func (s *CouponService) DeleteCoupon(ctx context.Context, ownerID, couponID string) error {
	err := s.repo.Delete(ctx, couponID, ownerID)
	if errors.Is(err, repository.ErrCouponNotFound) {
		return ErrCouponNotFound
	}
	return err
}

// normalizePatch validates every present field and returns the patch with
// trimmed names and canonical dates.
func normalizePatch(patch model.CouponPatch) (model.CouponPatch, error) {
	if patch.Category.Set {
		v := strings.TrimSpace(patch.Category.Value)
		if patch.Category.Null || v == "" {
			return patch, ErrCategoryRequired
		}
		patch.Category.Value = v
	}
	if patch.StoreName.Set {
		v := strings.TrimSpace(patch.StoreName.Value)
		if patch.StoreName.Null || v == "" {
			return patch, ErrStoreNameRequired
		}
		patch.StoreName.Value = v
	}
	if patch.ExpirationDate.Set && !patch.ExpirationDate.Null {
		date, err := parseExpiration(patch.ExpirationDate.Value)
		if err != nil {
			return patch, err
		}
		patch.ExpirationDate.Value = date
	}
	if patch.Balance.Set && !patch.Balance.Null {
		if err := validateBalance(patch.Balance.Value); err != nil {
			return patch, err
		}
	}
	if patch.Status.Set {
		if patch.Status.Null {
			return patch, ErrInvalidStatus
		}
		switch patch.Status.Value {
		case model.StatusActive, model.StatusUsed:
		default:
			return patch, ErrInvalidStatus
		}
	}
	return patch, nil
}

// parseExpiration accepts a calendar date with or without zero padding, or an
// RFC 3339 timestamp, and returns it as YYYY-MM-DD.
func parseExpiration(s string) (string, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-1-2", s); err == nil {
		return t.Format(model.ExpirationLayout), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Format(model.ExpirationLayout), nil
	}
	return "", ErrInvalidExpiration
}

func validateBalance(b float64) error {
	if b < 0 || math.IsNaN(b) || math.IsInf(b, 0) {
		return ErrInvalidBalance
	}
	return nil
}
