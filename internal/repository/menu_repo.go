package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prajapatkavitha/restaurant-management-project/internal/model"
)

// MenuRepository defines CRUD operations for menu items.
type MenuRepository interface {
	Create(ctx context.Context, m *model.MenuItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.MenuItem, error)
	List(ctx context.Context, activeOnly bool) ([]model.MenuItem, error)
	Update(ctx context.Context, m *model.MenuItem) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type menuRepo struct{ db *gorm.DB }

func NewMenuRepository(db *gorm.DB) MenuRepository { return &menuRepo{db: db} }

func (r *menuRepo) Create(ctx context.Context, m *model.MenuItem) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *menuRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.MenuItem, error) {
	var m model.MenuItem
	err := r.db.WithContext(ctx).Preload("Category").First(&m, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *menuRepo) List(ctx context.Context, activeOnly bool) ([]model.MenuItem, error) {
	var list []model.MenuItem
	q := r.db.WithContext(ctx).Preload("Category").Order("name asc")
	if activeOnly {
		q = q.Where("active = true")
	}
	err := q.Find(&list).Error
	return list, err
}

func (r *menuRepo) Update(ctx context.Context, m *model.MenuItem) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *menuRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.MenuItem{}).Where("id = ?", id).Update("active", false).Error
}
