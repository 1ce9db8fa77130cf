package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/prajapatkavitha/restaurant-management-project/internal/dto"
	"github.com/prajapatkavitha/restaurant-management-project/internal/middleware"
	"github.com/prajapatkavitha/restaurant-management-project/internal/service"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Register creates a customer account (self-service signup).
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		// Always the same shape for bad username and bad password.
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.GetClaims(c)
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	resp, err := h.svc.GetUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateMe lets any authenticated user edit their own profile. Username and
// role cannot be changed through this route.
func (h *AuthHandler) UpdateMe(c *gin.Context) {
	claims := middleware.GetClaims(c)
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	var req dto.UpdateProfileRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateProfile(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
