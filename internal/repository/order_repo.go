package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prajapatkavitha/restaurant-management-project/internal/dto"
	"github.com/prajapatkavitha/restaurant-management-project/internal/model"
)

// OrderScope restricts listing to a single waiter or customer. Both nil means
// unrestricted (staff view).
type OrderScope struct {
	WaiterID   *uuid.UUID
	CustomerID *uuid.UUID
}

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, o *model.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	List(ctx context.Context, filter dto.OrderFilter, scope OrderScope) ([]model.Order, int64, error)
	DeleteItemsTx(tx *gorm.DB, orderID uuid.UUID) error
	CreateItemsTx(tx *gorm.DB, items []model.OrderItem) error
	TouchTx(tx *gorm.DB, orderID uuid.UUID) error
	// UpdateStatusCAS performs a compare-and-swap on the status column so
	// concurrent transitions on the same order serialize: only one of two
	// racing requests sees a row updated.
	UpdateStatusCAS(ctx context.Context, id uuid.UUID, from, to model.OrderStatus) (bool, error)
	// ListWithItems returns all non-cancelled orders with items and menu
	// references preloaded, for the reporting aggregator.
	ListWithItems(ctx context.Context) ([]model.Order, error)
	ListCreatedBetween(ctx context.Context, from, to time.Time) ([]model.Order, error)
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepository(db *gorm.DB) OrderRepository { return &orderRepo{db: db} }

func (r *orderRepo) DB() *gorm.DB { return r.db }

func (r *orderRepo) Create(ctx context.Context, tx *gorm.DB, o *model.Order) error {
	return tx.WithContext(ctx).Create(o).Error
}

func (r *orderRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Preload("Items.MenuItem").First(&o, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) List(ctx context.Context, filter dto.OrderFilter, scope OrderScope) ([]model.Order, int64, error) {
	var orders []model.Order
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Order{})

	if scope.WaiterID != nil {
		q = q.Where("waiter_id = ?", *scope.WaiterID)
	}
	if scope.CustomerID != nil {
		q = q.Where("customer_id = ?", *scope.CustomerID)
	}
	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Date != "" {
		q = q.Where("DATE(created_at) = ?", filter.Date)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Items.MenuItem").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&orders).Error

	return orders, total, err
}

func (r *orderRepo) DeleteItemsTx(tx *gorm.DB, orderID uuid.UUID) error {
	return tx.Where("order_id = ?", orderID).Delete(&model.OrderItem{}).Error
}

func (r *orderRepo) CreateItemsTx(tx *gorm.DB, items []model.OrderItem) error {
	return tx.Create(&items).Error
}

func (r *orderRepo) TouchTx(tx *gorm.DB, orderID uuid.UUID) error {
	return tx.Model(&model.Order{}).Where("id = ?", orderID).
		Update("updated_at", time.Now()).Error
}

func (r *orderRepo) UpdateStatusCAS(ctx context.Context, id uuid.UUID, from, to model.OrderStatus) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{"status": to, "updated_at": time.Now()})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *orderRepo) ListWithItems(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Where("status <> ?", model.StatusCancelled).
		Preload("Items.MenuItem").Preload("Customer").
		Order("created_at asc").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepo) ListCreatedBetween(ctx context.Context, from, to time.Time) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Where("created_at >= ? AND created_at < ? AND status <> ?", from, to, model.StatusCancelled).
		Preload("Items.MenuItem").
		Find(&orders).Error
	return orders, err
}
