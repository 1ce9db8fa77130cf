package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prajapatkavitha/restaurant-management-project/internal/model"
)

type FeedbackRepository interface {
	// Create is backed by the unique index on order_id; a duplicate submission
	// surfaces as gorm.ErrDuplicatedKey.
	Create(ctx context.Context, f *model.Feedback) error
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*model.Feedback, error)
	List(ctx context.Context) ([]model.Feedback, error)
}

type feedbackRepo struct{ db *gorm.DB }

func NewFeedbackRepository(db *gorm.DB) FeedbackRepository { return &feedbackRepo{db: db} }

func (r *feedbackRepo) Create(ctx context.Context, f *model.Feedback) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *feedbackRepo) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*model.Feedback, error) {
	var f model.Feedback
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *feedbackRepo) List(ctx context.Context) ([]model.Feedback, error) {
	var list []model.Feedback
	err := r.db.WithContext(ctx).Order("created_at desc").Find(&list).Error
	return list, err
}
