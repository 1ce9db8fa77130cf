package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prajapatkavitha/restaurant-management-project/internal/dto"
	"github.com/prajapatkavitha/restaurant-management-project/internal/service"
)

type CouponsHandler struct{ svc service.CouponService }

func NewCouponsHandler(svc service.CouponService) *CouponsHandler {
	return &CouponsHandler{svc: svc}
}

func (h *CouponsHandler) Issue(c *gin.Context) {
	var req dto.IssueCouponRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Issue(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CouponsHandler) Redeem(c *gin.Context) {
	var req dto.RedeemCouponRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Redeem(c.Request.Context(), req.Code)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CouponsHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CouponsHandler) Deactivate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Deactivate(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
