package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prajapatkavitha/restaurant-management-project/internal/apierror"
	"github.com/prajapatkavitha/restaurant-management-project/internal/dto"
	"github.com/prajapatkavitha/restaurant-management-project/internal/model"
	"github.com/prajapatkavitha/restaurant-management-project/internal/repository"
	"github.com/prajapatkavitha/restaurant-management-project/internal/service"
)

type stubCategoryRepo struct {
	byID map[uuid.UUID]*model.Category
}

func newStubCategoryRepo(cats ...*model.Category) *stubCategoryRepo {
	r := &stubCategoryRepo{byID: make(map[uuid.UUID]*model.Category)}
	for _, c := range cats {
		r.byID[c.ID] = c
	}
	return r
}

func (r *stubCategoryRepo) Create(_ context.Context, c *model.Category) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.byID[c.ID] = c
	return nil
}

func (r *stubCategoryRepo) List(_ context.Context) ([]model.Category, error) {
	var out []model.Category
	for _, c := range r.byID {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Category, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return c, nil
}

func (r *stubCategoryRepo) FindByName(_ context.Context, name string) (*model.Category, error) {
	for _, c := range r.byID {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubCategoryRepo) Update(_ context.Context, c *model.Category) error {
	r.byID[c.ID] = c
	return nil
}

func (r *stubCategoryRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	if c, ok := r.byID[id]; ok {
		c.Active = false
	}
	return nil
}

var _ repository.CategoryRepository = (*stubCategoryRepo)(nil)

func TestCreateMenuItem(t *testing.T) {
	cat := &model.Category{ID: uuid.New(), Name: "Mains", Active: true}
	svc := service.NewMenuService(newStubMenuRepo(), newStubCategoryRepo(cat), nil)

	resp, err := svc.CreateItem(context.Background(), dto.CreateMenuItemRequest{
		Name:       "Lasagna",
		Price:      decimal.RequireFromString("14.50"),
		CategoryID: cat.ID.String(),
	})
	require.NoError(t, err)
	assert.Equal(t, "Mains", resp.Category)
	assert.True(t, resp.Price.Equal(decimal.RequireFromString("14.50")))
	assert.True(t, resp.Active)
}

func TestCreateMenuItem_UnknownCategory(t *testing.T) {
	svc := service.NewMenuService(newStubMenuRepo(), newStubCategoryRepo(), nil)

	_, err := svc.CreateItem(context.Background(), dto.CreateMenuItemRequest{
		Name:       "Orphan Dish",
		Price:      decimal.RequireFromString("5.00"),
		CategoryID: uuid.NewString(),
	})
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindValidation))
}

func TestCreateMenuItem_NegativePriceRejected(t *testing.T) {
	cat := &model.Category{ID: uuid.New(), Name: "Mains", Active: true}
	svc := service.NewMenuService(newStubMenuRepo(), newStubCategoryRepo(cat), nil)

	_, err := svc.CreateItem(context.Background(), dto.CreateMenuItemRequest{
		Name:       "Freebie",
		Price:      decimal.RequireFromString("-1.00"),
		CategoryID: cat.ID.String(),
	})
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindValidation))
}

func TestRemoveMenuItem_DeactivatesInsteadOfDeleting(t *testing.T) {
	dish := menuItem("Old Special", "9.99")
	menuRepo := newStubMenuRepo(dish)
	svc := service.NewMenuService(menuRepo, newStubCategoryRepo(), nil)

	require.NoError(t, svc.RemoveItem(context.Background(), dish.ID))

	// Still findable (historical orders reference it), just inactive.
	stored, err := menuRepo.FindByID(context.Background(), dish.ID)
	require.NoError(t, err)
	assert.False(t, stored.Active)
}

func TestListMenu_ActiveOnlyFiltersRetiredDishes(t *testing.T) {
	active := menuItem("Current", "5.00")
	retired := menuItem("Retired", "5.00")
	retired.Active = false
	svc := service.NewMenuService(newStubMenuRepo(active, retired), newStubCategoryRepo(), nil)

	public, err := svc.ListItems(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, "Current", public[0].Name)

	all, err := svc.ListItems(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
