package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AniruddhAgrahari/sweet-shop-management-system/internal/dto"
	"github.com/AniruddhAgrahari/sweet-shop-management-system/internal/service"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

// Register godoc
// @Summary Register a new customer account
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.RegisterRequest true "Credentials"
// @Success 201 {object} dto.UserResponse
// @Failure 409 {object} apierror.APIError
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Login godoc
// @Summary Exchange credentials for a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} apierror.APIError
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// BootstrapAdmin creates the first admin account. 403 once any admin exists.
func (h *AuthHandler) BootstrapAdmin(c *gin.Context) {
	var req dto.BootstrapAdminRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.BootstrapAdmin(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ResetAdminPassword is the operator break-glass path, gated by the setup
// secret inside the request, not by a bearer token.
func (h *AuthHandler) ResetAdminPassword(c *gin.Context) {
	var req dto.ResetAdminPasswordRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ResetAdminPassword(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
