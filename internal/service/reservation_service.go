package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/prajapatkavitha/restaurant-management-project/internal/apierror"
	"github.com/prajapatkavitha/restaurant-management-project/internal/dto"
	"github.com/prajapatkavitha/restaurant-management-project/internal/model"
	"github.com/prajapatkavitha/restaurant-management-project/internal/repository"
	"github.com/prajapatkavitha/restaurant-management-project/internal/role"
)

type ReservationService interface {
	Create(ctx context.Context, actor Actor, req dto.CreateReservationRequest) (*dto.ReservationResponse, error)
	List(ctx context.Context, actor Actor) ([]dto.ReservationResponse, error)
	Cancel(ctx context.Context, actor Actor, id uuid.UUID) error
}

type reservationService struct {
	repo repository.ReservationRepository
}

func NewReservationService(repo repository.ReservationRepository) ReservationService {
	return &reservationService{repo: repo}
}

// Create books a table. Overlaps with existing reservations are deliberately
// not rejected; the floor staff resolves conflicts by hand.
func (s *reservationService) Create(ctx context.Context, actor Actor, req dto.CreateReservationRequest) (*dto.ReservationResponse, error) {
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return nil, apierror.Validation("date must be YYYY-MM-DD")
	}
	if _, err := time.Parse("15:04", req.Time); err != nil {
		return nil, apierror.Validation("time must be HH:MM")
	}
	guests := req.GuestCount
	if guests == 0 {
		guests = 2
	}
	if guests < 0 {
		return nil, apierror.Validation("guest_count must be positive")
	}

	res := model.Reservation{
		CustomerID:  actor.ID,
		TableNumber: req.TableNumber,
		Date:        req.Date,
		Time:        req.Time,
		GuestCount:  guests,
	}
	if err := s.repo.Create(ctx, &res); err != nil {
		return nil, apierror.Internal(err)
	}
	return reservationToResponse(&res), nil
}

// List scopes by role: customers see their own bookings, staff with the
// reservation-list capability see all of them.
func (s *reservationService) List(ctx context.Context, actor Actor) ([]dto.ReservationResponse, error) {
	var customerID *uuid.UUID
	if !actor.Role.Can(role.CapReservationList) {
		id := actor.ID
		customerID = &id
	}
	list, err := s.repo.List(ctx, customerID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReservationResponse, 0, len(list))
	for i := range list {
		out = append(out, *reservationToResponse(&list[i]))
	}
	return out, nil
}

func (s *reservationService) Cancel(ctx context.Context, actor Actor, id uuid.UUID) error {
	res, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return apierror.NotFound("reservation not found")
	}
	if !actor.Role.Can(role.CapReservationList) && res.CustomerID != actor.ID {
		return apierror.Permission("not your reservation")
	}
	return s.repo.Delete(ctx, id)
}

func reservationToResponse(r *model.Reservation) *dto.ReservationResponse {
	return &dto.ReservationResponse{
		ID:          r.ID.String(),
		CustomerID:  r.CustomerID.String(),
		TableNumber: r.TableNumber,
		Date:        r.Date,
		Time:        r.Time,
		GuestCount:  r.GuestCount,
		CreatedAt:   r.CreatedAt.Format(time.RFC3339),
	}
}
