package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prajapatkavitha/restaurant-management-project/internal/model"
)

type CouponRepository interface {
	// Create relies on the unique index on code: a collision surfaces as
	// gorm.ErrDuplicatedKey for the service's generate-and-retry loop.
	Create(ctx context.Context, c *model.Coupon) error
	FindByCode(ctx context.Context, code string) (*model.Coupon, error)
	List(ctx context.Context) ([]model.Coupon, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type couponRepo struct{ db *gorm.DB }

func NewCouponRepository(db *gorm.DB) CouponRepository { return &couponRepo{db: db} }

func (r *couponRepo) Create(ctx context.Context, c *model.Coupon) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *couponRepo) FindByCode(ctx context.Context, code string) (*model.Coupon, error) {
	var c model.Coupon
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *couponRepo) List(ctx context.Context) ([]model.Coupon, error) {
	var list []model.Coupon
	err := r.db.WithContext(ctx).Order("created_at desc").Find(&list).Error
	return list, err
}

func (r *couponRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Coupon{}).Where("id = ?", id).Update("active", false).Error
}
