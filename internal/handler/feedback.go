package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prajapatkavitha/restaurant-management-project/internal/dto"
	"github.com/prajapatkavitha/restaurant-management-project/internal/middleware"
	"github.com/prajapatkavitha/restaurant-management-project/internal/service"
)

type FeedbackHandler struct{ svc service.FeedbackService }

func NewFeedbackHandler(svc service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{svc: svc}
}

// Submit posts feedback for the order named in the path.
func (h *FeedbackHandler) Submit(c *gin.Context) {
	orderID, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.SubmitFeedbackRequest
	if !bindAndValidate(c, &req) {
		return
	}
	actor := middleware.ActorFromClaims(middleware.GetClaims(c))
	resp, err := h.svc.Submit(c.Request.Context(), actor, orderID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *FeedbackHandler) GetForOrder(c *gin.Context) {
	orderID, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.GetForOrder(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FeedbackHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
