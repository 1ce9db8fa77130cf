package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prajapatkavitha/restaurant-management-project/internal/apierror"
	"github.com/prajapatkavitha/restaurant-management-project/internal/dto"
	"github.com/prajapatkavitha/restaurant-management-project/internal/model"
	"github.com/prajapatkavitha/restaurant-management-project/internal/repository"
	"github.com/prajapatkavitha/restaurant-management-project/internal/role"
	"github.com/prajapatkavitha/restaurant-management-project/internal/worker"
)

// Actor identifies the authenticated caller for role-gated operations.
type Actor struct {
	ID    uuid.UUID
	Email *string
	Role  role.Role
}

type OrderService interface {
	Create(ctx context.Context, actor Actor, req dto.CreateOrderRequest) (*dto.OrderResponse, error)
	Get(ctx context.Context, actor Actor, id uuid.UUID) (*dto.OrderResponse, error)
	List(ctx context.Context, actor Actor, filter dto.OrderFilter) (*dto.OrderListResponse, error)
	ReplaceItems(ctx context.Context, id uuid.UUID, req dto.ReplaceItemsRequest) (*dto.OrderResponse, error)
	Transition(ctx context.Context, id uuid.UUID, requested string, actor Actor) (*dto.OrderResponse, error)
}

type orderService struct {
	repo       repository.OrderRepository
	menuRepo   repository.MenuRepository
	dispatcher *worker.Dispatcher
}

func NewOrderService(repo repository.OrderRepository, menuRepo repository.MenuRepository, dispatcher *worker.Dispatcher) OrderService {
	return &orderService{repo: repo, menuRepo: menuRepo, dispatcher: dispatcher}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// resolveItems validates every requested line against the menu and snapshots
// the current unit price. All-or-nothing: one bad reference fails the call.
func (s *orderService) resolveItems(ctx context.Context, items []dto.OrderItemRequest) ([]model.OrderItem, error) {
	resolved := make([]model.OrderItem, 0, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, apierror.Validation("quantity must be positive")
		}
		mid, err := uuid.Parse(item.MenuItemID)
		if err != nil {
			return nil, apierror.Validation(fmt.Sprintf("invalid menu_item_id %q", item.MenuItemID))
		}
		m, err := s.menuRepo.FindByID(ctx, mid)
		if err != nil {
			return nil, apierror.Validation(fmt.Sprintf("menu item %s not found", item.MenuItemID))
		}
		if !m.Active {
			return nil, apierror.Validation(fmt.Sprintf("menu item %q is not available", m.Name))
		}
		resolved = append(resolved, model.OrderItem{
			MenuItemID: m.ID,
			Quantity:   item.Quantity,
			UnitPrice:  m.Price,
			MenuItem:   m,
		})
	}
	return resolved, nil
}

func (s *orderService) Create(ctx context.Context, actor Actor, req dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if !actor.Role.Can(role.CapOrderCreate) {
		return nil, apierror.Permission("role not allowed to create orders")
	}

	resolved, err := s.resolveItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	order := model.Order{
		TableNumber: req.TableNumber,
		Status:      model.StatusPending,
		Items:       resolved,
	}
	switch actor.Role {
	case role.Customer:
		id := actor.ID
		order.CustomerID = &id
	case role.Waiter:
		id := actor.ID
		order.WaiterID = &id
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.Create(ctx, tx, &order)
	})
	if txErr != nil {
		return nil, txErr
	}

	// Confirmation email — best effort, fire & forget
	if s.dispatcher != nil && actor.Email != nil {
		_ = s.dispatcher.EnqueueOrderConfirmed(ctx, worker.NotificationPayload{
			OrderID:     order.ID.String(),
			ToEmail:     *actor.Email,
			Status:      string(order.Status),
			TableNumber: order.TableNumber,
			Total:       order.Total().StringFixed(2),
		})
	}

	return orderToResponse(&order), nil
}

func (s *orderService) Get(ctx context.Context, actor Actor, id uuid.UUID) (*dto.OrderResponse, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("order not found")
	}
	if actor.Role == role.Customer {
		if order.CustomerID == nil || *order.CustomerID != actor.ID {
			return nil, apierror.Permission("not your order")
		}
	}
	return orderToResponse(order), nil
}

// List scopes results by the caller's role: customers see their own orders,
// waiters the orders assigned to them, everyone else the full set.
func (s *orderService) List(ctx context.Context, actor Actor, filter dto.OrderFilter) (*dto.OrderListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}

	var scope repository.OrderScope
	switch {
	case actor.Role == role.Customer:
		id := actor.ID
		scope.CustomerID = &id
	case actor.Role == role.Waiter && !actor.Role.Can(role.CapOrderListAll):
		id := actor.ID
		scope.WaiterID = &id
	}

	orders, total, err := s.repo.List(ctx, filter, scope)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, *orderToResponse(&orders[i]))
	}
	return &dto.OrderListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// ReplaceItems atomically discards the prior line-item set and installs the
// new one. The total is derived, so no separate recompute write is needed.
func (s *orderService) ReplaceItems(ctx context.Context, id uuid.UUID, req dto.ReplaceItemsRequest) (*dto.OrderResponse, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("order not found")
	}
	if order.Status.Terminal() {
		return nil, apierror.InvalidTransition("order is closed")
	}

	resolved, err := s.resolveItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}
	for i := range resolved {
		resolved[i].OrderID = order.ID
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.DeleteItemsTx(tx, order.ID); err != nil {
			return err
		}
		if err := s.repo.CreateItemsTx(tx, resolved); err != nil {
			return err
		}
		return s.repo.TouchTx(tx, order.ID)
	})
	if txErr != nil {
		return nil, txErr
	}

	order.Items = resolved
	order.UpdatedAt = time.Now()
	return orderToResponse(order), nil
}

// Transition moves an order through the status workflow. Permission is checked
// against the capability table; the legal-move check is the single transition
// table in status_workflow.go; and the write is an optimistic compare-and-swap
// so two racing transitions on the same order cannot both succeed.
func (s *orderService) Transition(ctx context.Context, id uuid.UUID, requested string, actor Actor) (*dto.OrderResponse, error) {
	if !actor.Role.Can(role.CapOrderTransition) {
		return nil, apierror.Permission("role not allowed to change order status")
	}

	target, ok := model.ParseStatus(requested)
	if !ok {
		return nil, apierror.InvalidTransition(fmt.Sprintf("unknown status %q", requested))
	}

	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("order not found")
	}
	if order.Status.Terminal() {
		return nil, apierror.InvalidTransition(fmt.Sprintf("order is already %s", order.Status))
	}
	if !canTransition(order.Status, target) {
		return nil, apierror.InvalidTransition(fmt.Sprintf("cannot move from %s to %s", order.Status, target))
	}

	swapped, err := s.repo.UpdateStatusCAS(ctx, order.ID, order.Status, target)
	if err != nil {
		return nil, err
	}
	if !swapped {
		return nil, apierror.Conflict("order status changed concurrently")
	}

	order.Status = target
	order.UpdatedAt = time.Now()

	// Notification is a caller-side effect, after the transition committed.
	if s.dispatcher != nil {
		payload := worker.NotificationPayload{
			OrderID:     order.ID.String(),
			Status:      string(target),
			TableNumber: order.TableNumber,
		}
		if order.Customer != nil && order.Customer.Email != nil {
			payload.ToEmail = *order.Customer.Email
		}
		_ = s.dispatcher.EnqueueStatusChanged(ctx, payload)
	}

	return orderToResponse(order), nil
}

func orderToResponse(o *model.Order) *dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		name := ""
		if item.MenuItem != nil {
			name = item.MenuItem.Name
		}
		items = append(items, dto.OrderItemResponse{
			MenuItemID: item.MenuItemID.String(),
			Name:       name,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			Subtotal:   item.Subtotal(),
		})
	}
	resp := &dto.OrderResponse{
		ID:          o.ID.String(),
		TableNumber: o.TableNumber,
		Status:      string(o.Status),
		Items:       items,
		Total:       o.Total(),
		CreatedAt:   o.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   o.UpdatedAt.Format(time.RFC3339),
	}
	if o.WaiterID != nil {
		id := o.WaiterID.String()
		resp.WaiterID = &id
	}
	if o.CustomerID != nil {
		id := o.CustomerID.String()
		resp.CustomerID = &id
	}
	return resp
}
