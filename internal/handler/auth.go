package handler

import (
	"errors"
	"net/http"

	"github.com/NE0NOE/Veterinaria-gestor-sub002/internal/apierror"
	"github.com/NE0NOE/Veterinaria-gestor-sub002/internal/dto"
	"github.com/NE0NOE/Veterinaria-gestor-sub002/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

// Login godoc
// @Summary Login de usuario (proveedor de identidad local)
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credenciales"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} apierror.ValidationError
// @Failure 401 {object} apierror.APIError
// @Failure 501 {object} apierror.APIError
// @Router /v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req)
	if errors.Is(err, service.ErrLoginNoDisponible) {
		c.JSON(http.StatusNotImplemented, apierror.New(err.Error()))
		return
	}
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
