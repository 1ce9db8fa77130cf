package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prajapatkavitha/restaurant-management-project/internal/dto"
	"github.com/prajapatkavitha/restaurant-management-project/internal/middleware"
	"github.com/prajapatkavitha/restaurant-management-project/internal/role"
	"github.com/prajapatkavitha/restaurant-management-project/internal/service"
)

type MenuHandler struct{ svc service.MenuService }

func NewMenuHandler(svc service.MenuService) *MenuHandler {
	return &MenuHandler{svc: svc}
}

func (h *MenuHandler) Create(c *gin.Context) {
	var req dto.CreateMenuItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateItem(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List serves the menu. Customers always get the active subset; staff can ask
// for everything with ?all=true.
func (h *MenuHandler) List(c *gin.Context) {
	activeOnly := true
	if c.Query("all") == "true" {
		claims := middleware.GetClaims(c)
		if r, ok := role.Parse(claims.Role); ok && r.Staff() {
			activeOnly = false
		}
	}
	resp, err := h.svc.ListItems(c.Request.Context(), activeOnly)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MenuHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.GetItem(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MenuHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.UpdateMenuItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateItem(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MenuHandler) Remove(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.RemoveItem(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
