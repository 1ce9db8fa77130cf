package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prajapatkavitha/restaurant-management-project/internal/apierror"
	"github.com/prajapatkavitha/restaurant-management-project/internal/dto"
	"github.com/prajapatkavitha/restaurant-management-project/internal/middleware"
	"github.com/prajapatkavitha/restaurant-management-project/internal/service"
)

type OrdersHandler struct{ svc service.OrderService }

func NewOrdersHandler(svc service.OrderService) *OrdersHandler {
	return &OrdersHandler{svc: svc}
}

func (h *OrdersHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	actor := middleware.ActorFromClaims(middleware.GetClaims(c))
	resp, err := h.svc.Create(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *OrdersHandler) List(c *gin.Context) {
	var filter dto.OrderFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.Validation(err.Error()))
		return
	}
	actor := middleware.ActorFromClaims(middleware.GetClaims(c))
	resp, err := h.svc.List(c.Request.Context(), actor, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrdersHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	actor := middleware.ActorFromClaims(middleware.GetClaims(c))
	resp, err := h.svc.Get(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ReplaceItems swaps the order's full line-item set in one transaction.
func (h *OrdersHandler) ReplaceItems(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.ReplaceItemsRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ReplaceItems(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Transition moves the order along the status workflow.
func (h *OrdersHandler) Transition(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.TransitionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	actor := middleware.ActorFromClaims(middleware.GetClaims(c))
	resp, err := h.svc.Transition(c.Request.Context(), id, req.Status, actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
