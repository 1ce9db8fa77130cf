package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prajapatkavitha/restaurant-management-project/internal/model"
)

type ReservationRepository interface {
	Create(ctx context.Context, res *model.Reservation) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Reservation, error)
	// List returns all reservations, or only one customer's when customerID
	// is non-nil, ordered by date then time.
	List(ctx context.Context, customerID *uuid.UUID) ([]model.Reservation, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type reservationRepo struct{ db *gorm.DB }

func NewReservationRepository(db *gorm.DB) ReservationRepository {
	return &reservationRepo{db: db}
}

func (r *reservationRepo) Create(ctx context.Context, res *model.Reservation) error {
	return r.db.WithContext(ctx).Create(res).Error
}

func (r *reservationRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Reservation, error) {
	var res model.Reservation
	err := r.db.WithContext(ctx).First(&res, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *reservationRepo) List(ctx context.Context, customerID *uuid.UUID) ([]model.Reservation, error) {
	var list []model.Reservation
	q := r.db.WithContext(ctx).Order("date asc, time asc")
	if customerID != nil {
		q = q.Where("customer_id = ?", *customerID)
	}
	err := q.Find(&list).Error
	return list, err
}

func (r *reservationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Reservation{}, "id = ?", id).Error
}
