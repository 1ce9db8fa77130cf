package service

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/prajapatkavitha/restaurant-management-project/internal/apierror"
	"github.com/prajapatkavitha/restaurant-management-project/internal/dto"
	"github.com/prajapatkavitha/restaurant-management-project/internal/model"
	"github.com/prajapatkavitha/restaurant-management-project/internal/repository"
)

const (
	couponAlphabet    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	maxCouponAttempts = 20
)

type CouponService interface {
	Issue(ctx context.Context, req dto.IssueCouponRequest) (*dto.CouponResponse, error)
	Redeem(ctx context.Context, code string) (*dto.RedeemCouponResponse, error)
	List(ctx context.Context) ([]dto.CouponResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type couponService struct {
	repo       repository.CouponRepository
	codeLength int
	now        func() time.Time
}

func NewCouponService(repo repository.CouponRepository, codeLength int) CouponService {
	if codeLength <= 0 {
		codeLength = 10
	}
	return &couponService{repo: repo, codeLength: codeLength, now: time.Now}
}

// Issue creates a coupon with a freshly generated code. Uniqueness is enforced
// by the database, not by a pre-check: on a duplicate-key error a new code is
// generated and the insert retried, up to maxCouponAttempts.
func (s *couponService) Issue(ctx context.Context, req dto.IssueCouponRequest) (*dto.CouponResponse, error) {
	if req.DiscountPercent.LessThanOrEqual(decimal.Zero) || req.DiscountPercent.GreaterThan(decimal.NewFromInt(100)) {
		return nil, apierror.Validation("discount_percent must be in (0, 100]")
	}
	if req.ValidFrom != nil && req.ValidUntil != nil && req.ValidUntil.Before(*req.ValidFrom) {
		return nil, apierror.Validation("valid_until precedes valid_from")
	}

	for attempt := 1; attempt <= maxCouponAttempts; attempt++ {
		code, err := randomCode(s.codeLength)
		if err != nil {
			return nil, apierror.Internal(err)
		}
		coupon := model.Coupon{
			Code:            code,
			DiscountPercent: req.DiscountPercent,
			Active:          true,
			ValidFrom:       req.ValidFrom,
			ValidUntil:      req.ValidUntil,
		}
		err = s.repo.Create(ctx, &coupon)
		if err == nil {
			return couponToResponse(&coupon), nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.Internal(err)
		}
		log.Debug().Int("attempt", attempt).Msg("coupon code collision, retrying")
	}
	return nil, apierror.RetryExhausted("could not generate a unique coupon code")
}

func (s *couponService) Redeem(ctx context.Context, code string) (*dto.RedeemCouponResponse, error) {
	coupon, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, apierror.NotFound("coupon not found")
	}
	if !coupon.Redeemable(s.now()) {
		return nil, apierror.Validation("coupon is not redeemable")
	}
	return &dto.RedeemCouponResponse{
		Code:            coupon.Code,
		DiscountPercent: coupon.DiscountPercent,
	}, nil
}

func (s *couponService) List(ctx context.Context) ([]dto.CouponResponse, error) {
	coupons, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CouponResponse, 0, len(coupons))
	for i := range coupons {
		out = append(out, *couponToResponse(&coupons[i]))
	}
	return out, nil
}

func (s *couponService) Deactivate(ctx context.Context, id uuid.UUID) error {
	return s.repo.Deactivate(ctx, id)
}

// randomCode draws from crypto/rand so codes are not guessable.
func randomCode(length int) (string, error) {
	buf := make([]byte, length)
	max := big.NewInt(int64(len(couponAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = couponAlphabet[n.Int64()]
	}
	return string(buf), nil
}

func couponToResponse(c *model.Coupon) *dto.CouponResponse {
	return &dto.CouponResponse{
		ID:              c.ID.String(),
		Code:            c.Code,
		DiscountPercent: c.DiscountPercent,
		Active:          c.Active,
		ValidFrom:       c.ValidFrom,
		ValidUntil:      c.ValidUntil,
	}
}
