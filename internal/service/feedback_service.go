package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prajapatkavitha/restaurant-management-project/internal/apierror"
	"github.com/prajapatkavitha/restaurant-management-project/internal/dto"
	"github.com/prajapatkavitha/restaurant-management-project/internal/model"
	"github.com/prajapatkavitha/restaurant-management-project/internal/repository"
	"github.com/prajapatkavitha/restaurant-management-project/internal/role"
)

type FeedbackService interface {
	Submit(ctx context.Context, actor Actor, orderID uuid.UUID, req dto.SubmitFeedbackRequest) (*dto.FeedbackResponse, error)
	GetForOrder(ctx context.Context, orderID uuid.UUID) (*dto.FeedbackResponse, error)
	List(ctx context.Context) ([]dto.FeedbackResponse, error)
}

type feedbackService struct {
	repo      repository.FeedbackRepository
	orderRepo repository.OrderRepository
}

func NewFeedbackService(repo repository.FeedbackRepository, orderRepo repository.OrderRepository) FeedbackService {
	return &feedbackService{repo: repo, orderRepo: orderRepo}
}

// Submit records one review per order. The order must be completed, and a
// customer may only review their own order. The one-per-order rule is enforced
// by the unique index, so a concurrent duplicate loses cleanly.
func (s *feedbackService) Submit(ctx context.Context, actor Actor, orderID uuid.UUID, req dto.SubmitFeedbackRequest) (*dto.FeedbackResponse, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, apierror.Validation("rating must be between 1 and 5")
	}
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, apierror.NotFound("order not found")
	}
	if order.Status != model.StatusCompleted {
		return nil, apierror.Validation("feedback is only accepted for completed orders")
	}
	if actor.Role == role.Customer {
		if order.CustomerID == nil || *order.CustomerID != actor.ID {
			return nil, apierror.Permission("not your order")
		}
	}

	fb := model.Feedback{
		OrderID: orderID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}
	if err := s.repo.Create(ctx, &fb); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.Conflict("feedback already submitted for this order")
		}
		return nil, apierror.Internal(err)
	}
	return feedbackToResponse(&fb), nil
}

func (s *feedbackService) GetForOrder(ctx context.Context, orderID uuid.UUID) (*dto.FeedbackResponse, error) {
	fb, err := s.repo.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, apierror.NotFound("no feedback for this order")
	}
	return feedbackToResponse(fb), nil
}

func (s *feedbackService) List(ctx context.Context) ([]dto.FeedbackResponse, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FeedbackResponse, 0, len(list))
	for i := range list {
		out = append(out, *feedbackToResponse(&list[i]))
	}
	return out, nil
}

func feedbackToResponse(f *model.Feedback) *dto.FeedbackResponse {
	return &dto.FeedbackResponse{
		ID:        f.ID.String(),
		OrderID:   f.OrderID.String(),
		Rating:    f.Rating,
		Comment:   f.Comment,
		CreatedAt: f.CreatedAt.Format(time.RFC3339),
	}
}
