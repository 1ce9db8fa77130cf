package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/prajapatkavitha/restaurant-management-project/internal/apierror"
	"github.com/prajapatkavitha/restaurant-management-project/internal/dto"
	"github.com/prajapatkavitha/restaurant-management-project/internal/model"
	"github.com/prajapatkavitha/restaurant-management-project/internal/repository"
	"github.com/prajapatkavitha/restaurant-management-project/internal/role"
	"github.com/prajapatkavitha/restaurant-management-project/internal/service"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubOrderRepo is an in-memory OrderRepository for testing.
type stubOrderRepo struct {
	orders map[uuid.UUID]*model.Order
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: make(map[uuid.UUID]*model.Order)}
}

func (r *stubOrderRepo) Create(_ context.Context, _ *gorm.DB, o *model.Order) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	o.CreatedAt = time.Now()
	o.UpdatedAt = o.CreatedAt
	r.orders[o.ID] = o
	return nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, errors.New("not found")
	}
	cp := *o
	return &cp, nil
}

func (r *stubOrderRepo) List(_ context.Context, _ dto.OrderFilter, scope repository.OrderScope) ([]model.Order, int64, error) {
	var out []model.Order
	for _, o := range r.orders {
		if scope.CustomerID != nil && (o.CustomerID == nil || *o.CustomerID != *scope.CustomerID) {
			continue
		}
		if scope.WaiterID != nil && (o.WaiterID == nil || *o.WaiterID != *scope.WaiterID) {
			continue
		}
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func (r *stubOrderRepo) DeleteItemsTx(_ *gorm.DB, orderID uuid.UUID) error {
	if o, ok := r.orders[orderID]; ok {
		o.Items = nil
	}
	return nil
}

func (r *stubOrderRepo) CreateItemsTx(_ *gorm.DB, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	if o, ok := r.orders[items[0].OrderID]; ok {
		o.Items = append(o.Items, items...)
	}
	return nil
}

func (r *stubOrderRepo) TouchTx(_ *gorm.DB, orderID uuid.UUID) error {
	if o, ok := r.orders[orderID]; ok {
		o.UpdatedAt = time.Now()
	}
	return nil
}

func (r *stubOrderRepo) UpdateStatusCAS(_ context.Context, id uuid.UUID, from, to model.OrderStatus) (bool, error) {
	o, ok := r.orders[id]
	if !ok || o.Status != from {
		return false, nil
	}
	o.Status = to
	return true, nil
}

func (r *stubOrderRepo) ListWithItems(_ context.Context) ([]model.Order, error) {
	var out []model.Order
	for _, o := range r.orders {
		if o.Status == model.StatusCancelled {
			continue
		}
		out = append(out, *o)
	}
	return out, nil
}

func (r *stubOrderRepo) ListCreatedBetween(_ context.Context, from, to time.Time) ([]model.Order, error) {
	var out []model.Order
	for _, o := range r.orders {
		if o.Status == model.StatusCancelled {
			continue
		}
		if o.CreatedAt.Before(from) || !o.CreatedAt.Before(to) {
			continue
		}
		out = append(out, *o)
	}
	return out, nil
}

func (r *stubOrderRepo) DB() *gorm.DB { return nil }

var _ repository.OrderRepository = (*stubOrderRepo)(nil)

// stubMenuRepo serves a fixed menu.
type stubMenuRepo struct {
	items map[uuid.UUID]*model.MenuItem
}

func newStubMenuRepo(items ...*model.MenuItem) *stubMenuRepo {
	r := &stubMenuRepo{items: make(map[uuid.UUID]*model.MenuItem)}
	for _, m := range items {
		r.items[m.ID] = m
	}
	return r
}

func (r *stubMenuRepo) Create(_ context.Context, m *model.MenuItem) error {
	r.items[m.ID] = m
	return nil
}

func (r *stubMenuRepo) FindByID(_ context.Context, id uuid.UUID) (*model.MenuItem, error) {
	m, ok := r.items[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return m, nil
}

func (r *stubMenuRepo) List(_ context.Context, activeOnly bool) ([]model.MenuItem, error) {
	var out []model.MenuItem
	for _, m := range r.items {
		if activeOnly && !m.Active {
			continue
		}
		out = append(out, *m)
	}
	return out, nil
}

func (r *stubMenuRepo) Update(_ context.Context, m *model.MenuItem) error {
	r.items[m.ID] = m
	return nil
}

func (r *stubMenuRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	if m, ok := r.items[id]; ok {
		m.Active = false
	}
	return nil
}

var _ repository.MenuRepository = (*stubMenuRepo)(nil)

// ── Fixtures ──────────────────────────────────────────────────────────────────

func menuItem(name, price string) *model.MenuItem {
	return &model.MenuItem{
		ID:     uuid.New(),
		Name:   name,
		Price:  decimal.RequireFromString(price),
		Active: true,
	}
}

func buildOrderSvc(items ...*model.MenuItem) (service.OrderService, *stubOrderRepo, *stubMenuRepo) {
	orderRepo := newStubOrderRepo()
	menuRepo := newStubMenuRepo(items...)
	return service.NewOrderService(orderRepo, menuRepo, nil), orderRepo, menuRepo
}

func customerActor() service.Actor {
	return service.Actor{ID: uuid.New(), Role: role.Customer}
}

// ── Creation ──────────────────────────────────────────────────────────────────

func TestCreateOrder_TotalIsExactDecimal(t *testing.T) {
	soup := menuItem("Tomato Soup", "3.10")
	cake := menuItem("Cheesecake", "0.10")
	svc, _, _ := buildOrderSvc(soup, cake)

	// 3 × 0.10 + 1 × 3.10 = 3.40 exactly, no float drift.
	resp, err := svc.Create(context.Background(), customerActor(), dto.CreateOrderRequest{
		TableNumber: 4,
		Items: []dto.OrderItemRequest{
			{MenuItemID: cake.ID.String(), Quantity: 3},
			{MenuItemID: soup.ID.String(), Quantity: 1},
		},
	})
	require.NoError(t, err)
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("3.40")), "total = %s", resp.Total)
	assert.Equal(t, "pending", resp.Status)
}

func TestCreateOrder_SnapshotsUnitPrice(t *testing.T) {
	dish := menuItem("Pad Thai", "12.50")
	svc, orderRepo, menuRepo := buildOrderSvc(dish)

	resp, err := svc.Create(context.Background(), customerActor(), dto.CreateOrderRequest{
		TableNumber: 2,
		Items:       []dto.OrderItemRequest{{MenuItemID: dish.ID.String(), Quantity: 2}},
	})
	require.NoError(t, err)

	// A later price change must not rewrite the stored total.
	dish.Price = decimal.RequireFromString("99.00")
	require.NoError(t, menuRepo.Update(context.Background(), dish))

	id := uuid.MustParse(resp.ID)
	stored, err := orderRepo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, stored.Total().Equal(decimal.RequireFromString("25.00")), "total = %s", stored.Total())
}

func TestCreateOrder_RejectsUnknownMenuItem(t *testing.T) {
	svc, _, _ := buildOrderSvc()

	_, err := svc.Create(context.Background(), customerActor(), dto.CreateOrderRequest{
		TableNumber: 1,
		Items:       []dto.OrderItemRequest{{MenuItemID: uuid.NewString(), Quantity: 1}},
	})
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindValidation))
}

func TestCreateOrder_RejectsInactiveMenuItem(t *testing.T) {
	dish := menuItem("Retired Dish", "5.00")
	dish.Active = false
	svc, _, _ := buildOrderSvc(dish)

	_, err := svc.Create(context.Background(), customerActor(), dto.CreateOrderRequest{
		TableNumber: 1,
		Items:       []dto.OrderItemRequest{{MenuItemID: dish.ID.String(), Quantity: 1}},
	})
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindValidation))
}

func TestCreateOrder_RejectsNonPositiveQuantity(t *testing.T) {
	dish := menuItem("Dumplings", "7.00")
	svc, _, _ := buildOrderSvc(dish)

	_, err := svc.Create(context.Background(), customerActor(), dto.CreateOrderRequest{
		TableNumber: 1,
		Items:       []dto.OrderItemRequest{{MenuItemID: dish.ID.String(), Quantity: 0}},
	})
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindValidation))
}

func TestCreateOrder_ChefForbidden(t *testing.T) {
	dish := menuItem("Bibimbap", "13.00")
	svc, orderRepo, _ := buildOrderSvc(dish)

	_, err := svc.Create(context.Background(), service.Actor{ID: uuid.New(), Role: role.Chef}, dto.CreateOrderRequest{
		TableNumber: 3,
		Items:       []dto.OrderItemRequest{{MenuItemID: dish.ID.String(), Quantity: 1}},
	})
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindPermission))
	assert.Empty(t, orderRepo.orders)
}

func TestCreateOrder_CustomerOwnsOrder(t *testing.T) {
	dish := menuItem("Ramen", "11.00")
	svc, orderRepo, _ := buildOrderSvc(dish)
	actor := customerActor()

	resp, err := svc.Create(context.Background(), actor, dto.CreateOrderRequest{
		TableNumber: 7,
		Items:       []dto.OrderItemRequest{{MenuItemID: dish.ID.String(), Quantity: 1}},
	})
	require.NoError(t, err)

	stored := orderRepo.orders[uuid.MustParse(resp.ID)]
	require.NotNil(t, stored.CustomerID)
	assert.Equal(t, actor.ID, *stored.CustomerID)
	assert.Nil(t, stored.WaiterID)
}

// ── Replace items ─────────────────────────────────────────────────────────────

func TestReplaceItems_SwapsFullSetAndRecomputesTotal(t *testing.T) {
	soup := menuItem("Soup", "4.00")
	steak := menuItem("Steak", "20.00")
	svc, _, _ := buildOrderSvc(soup, steak)

	created, err := svc.Create(context.Background(), customerActor(), dto.CreateOrderRequest{
		TableNumber: 3,
		Items:       []dto.OrderItemRequest{{MenuItemID: soup.ID.String(), Quantity: 2}},
	})
	require.NoError(t, err)

	replaced, err := svc.ReplaceItems(context.Background(), uuid.MustParse(created.ID), dto.ReplaceItemsRequest{
		Items: []dto.OrderItemRequest{{MenuItemID: steak.ID.String(), Quantity: 1}},
	})
	require.NoError(t, err)
	require.Len(t, replaced.Items, 1)
	assert.Equal(t, steak.ID.String(), replaced.Items[0].MenuItemID)
	assert.True(t, replaced.Total.Equal(decimal.RequireFromString("20.00")))
}

func TestReplaceItems_RejectedOnTerminalOrder(t *testing.T) {
	soup := menuItem("Soup", "4.00")
	svc, orderRepo, _ := buildOrderSvc(soup)

	created, err := svc.Create(context.Background(), customerActor(), dto.CreateOrderRequest{
		TableNumber: 3,
		Items:       []dto.OrderItemRequest{{MenuItemID: soup.ID.String(), Quantity: 1}},
	})
	require.NoError(t, err)
	orderRepo.orders[uuid.MustParse(created.ID)].Status = model.StatusCompleted

	_, err = svc.ReplaceItems(context.Background(), uuid.MustParse(created.ID), dto.ReplaceItemsRequest{
		Items: []dto.OrderItemRequest{{MenuItemID: soup.ID.String(), Quantity: 3}},
	})
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindInvalidTransition))
}

// ── Status workflow ───────────────────────────────────────────────────────────

func waiterActor() service.Actor {
	return service.Actor{ID: uuid.New(), Role: role.Waiter}
}

func createPendingOrder(t *testing.T, svc service.OrderService, dish *model.MenuItem) uuid.UUID {
	t.Helper()
	resp, err := svc.Create(context.Background(), customerActor(), dto.CreateOrderRequest{
		TableNumber: 1,
		Items:       []dto.OrderItemRequest{{MenuItemID: dish.ID.String(), Quantity: 1}},
	})
	require.NoError(t, err)
	return uuid.MustParse(resp.ID)
}

func TestTransition_HappyPath(t *testing.T) {
	dish := menuItem("Curry", "9.00")
	svc, _, _ := buildOrderSvc(dish)
	id := createPendingOrder(t, svc, dish)

	for _, next := range []string{"in_progress", "ready", "completed"} {
		resp, err := svc.Transition(context.Background(), id, next, waiterActor())
		require.NoError(t, err, "transition to %s", next)
		assert.Equal(t, next, resp.Status)
	}
}

func TestTransition_CustomerForbidden(t *testing.T) {
	dish := menuItem("Curry", "9.00")
	svc, _, _ := buildOrderSvc(dish)
	id := createPendingOrder(t, svc, dish)

	_, err := svc.Transition(context.Background(), id, "in_progress", customerActor())
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindPermission))
}

func TestTransition_SkippingStateRejected(t *testing.T) {
	dish := menuItem("Curry", "9.00")
	svc, _, _ := buildOrderSvc(dish)
	id := createPendingOrder(t, svc, dish)

	_, err := svc.Transition(context.Background(), id, "completed", waiterActor())
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindInvalidTransition))
}

func TestTransition_TerminalOrdersAreFrozen(t *testing.T) {
	dish := menuItem("Curry", "9.00")
	svc, orderRepo, _ := buildOrderSvc(dish)
	id := createPendingOrder(t, svc, dish)
	orderRepo.orders[id].Status = model.StatusCancelled

	for _, next := range []string{"pending", "in_progress", "ready", "completed", "cancelled"} {
		_, err := svc.Transition(context.Background(), id, next, waiterActor())
		require.Error(t, err, "transition to %s should fail", next)
		assert.True(t, apierror.IsKind(err, apierror.KindInvalidTransition))
	}
}

func TestTransition_CancelFromAnyNonTerminal(t *testing.T) {
	dish := menuItem("Curry", "9.00")
	for _, from := range []model.OrderStatus{model.StatusPending, model.StatusInProgress, model.StatusReady} {
		svc, orderRepo, _ := buildOrderSvc(dish)
		id := createPendingOrder(t, svc, dish)
		orderRepo.orders[id].Status = from

		resp, err := svc.Transition(context.Background(), id, "cancelled", waiterActor())
		require.NoError(t, err, "cancel from %s", from)
		assert.Equal(t, "cancelled", resp.Status)
	}
}

func TestTransition_UnknownStatusRejected(t *testing.T) {
	dish := menuItem("Curry", "9.00")
	svc, _, _ := buildOrderSvc(dish)
	id := createPendingOrder(t, svc, dish)

	_, err := svc.Transition(context.Background(), id, "delivered", waiterActor())
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindInvalidTransition))
}

// lostCASRepo simulates losing the compare-and-swap race: the load returns
// pending but the swap reports no row updated.
type lostCASRepo struct{ *stubOrderRepo }

func (r *lostCASRepo) UpdateStatusCAS(_ context.Context, _ uuid.UUID, _, _ model.OrderStatus) (bool, error) {
	return false, nil
}

func TestTransition_ConcurrentLoserGetsConflict(t *testing.T) {
	dish := menuItem("Curry", "9.00")
	menuRepo := newStubMenuRepo(dish)
	inner := newStubOrderRepo()
	svc := service.NewOrderService(&lostCASRepo{inner}, menuRepo, nil)

	id := createPendingOrder(t, svc, dish)

	_, err := svc.Transition(context.Background(), id, "in_progress", waiterActor())
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindConflict))
}

// ── Listing scope ─────────────────────────────────────────────────────────────

func TestList_CustomerSeesOnlyOwnOrders(t *testing.T) {
	dish := menuItem("Pho", "10.00")
	svc, _, _ := buildOrderSvc(dish)

	mine := customerActor()
	other := customerActor()
	for _, actor := range []service.Actor{mine, other, other} {
		_, err := svc.Create(context.Background(), actor, dto.CreateOrderRequest{
			TableNumber: 1,
			Items:       []dto.OrderItemRequest{{MenuItemID: dish.ID.String(), Quantity: 1}},
		})
		require.NoError(t, err)
	}

	resp, err := svc.List(context.Background(), mine, dto.OrderFilter{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, resp.Data, 1)
}

func TestGet_CustomerCannotReadOthersOrder(t *testing.T) {
	dish := menuItem("Pho", "10.00")
	svc, _, _ := buildOrderSvc(dish)

	owner := customerActor()
	created, err := svc.Create(context.Background(), owner, dto.CreateOrderRequest{
		TableNumber: 1,
		Items:       []dto.OrderItemRequest{{MenuItemID: dish.ID.String(), Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), customerActor(), uuid.MustParse(created.ID))
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindPermission))
}
