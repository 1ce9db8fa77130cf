package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prajapatkavitha/restaurant-management-project/internal/dto"
	"github.com/prajapatkavitha/restaurant-management-project/internal/middleware"
	"github.com/prajapatkavitha/restaurant-management-project/internal/service"
)

type ReservationsHandler struct{ svc service.ReservationService }

func NewReservationsHandler(svc service.ReservationService) *ReservationsHandler {
	return &ReservationsHandler{svc: svc}
}

func (h *ReservationsHandler) Create(c *gin.Context) {
	var req dto.CreateReservationRequest
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

func (h *ReservationsHandler) List(c *gin.Context) {
	actor := middleware.ActorFromClaims(middleware.GetClaims(c))
	resp, err := h.svc.List(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReservationsHandler) Cancel(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	actor := middleware.ActorFromClaims(middleware.GetClaims(c))
	if err := h.svc.Cancel(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
