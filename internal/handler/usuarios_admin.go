package handler

import (
	"net/http"

	"github.com/NE0NOE/Veterinaria-gestor-sub002/internal/apierror"
	"github.com/NE0NOE/Veterinaria-gestor-sub002/internal/dto"
	"github.com/NE0NOE/Veterinaria-gestor-sub002/internal/middleware"
	"github.com/NE0NOE/Veterinaria-gestor-sub002/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type UsuariosAdminHandler struct{ svc service.UsuarioAdminService }

func NewUsuariosAdminHandler(svc service.UsuarioAdminService) *UsuariosAdminHandler {
	return &UsuariosAdminHandler{svc: svc}
}

// Ejecutar godoc
// @Summary Crear, eliminar o actualizar un usuario
// @Description Ejecuta una accion administrativa (add | delete | update_profile). Requiere rol admin.
// @Tags usuarios
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.AccionRequest true "Accion y datos"
// @Success 200 {object} dto.AccionResponse
// @Failure 400 {object} apierror.ValidationError
// @Failure 401 {object} apierror.APIError
// @Failure 403 {object} apierror.APIError
// @Failure 500 {object} apierror.APIError
// @Router /v1/admin/usuarios [post]
func (h *UsuariosAdminHandler) Ejecutar(c *gin.Context) {
	admin, ok := middleware.GetAdmin(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierror.New("Autenticacion requerida"))
		return
	}

	var req dto.AccionRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Ejecutar(c.Request.Context(), admin, req)
	if err != nil {
		status := apierror.Status(err)
		ev := log.Warn()
		if status >= http.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Str("request_id", c.GetString(middleware.RequestIDKey)).
			Str("action", req.Action).
			Str("admin_id", admin.AdminID.String()).
			Str("kind", service.KindOf(err).String()).
			Err(err).
			Msg("admin action failed")
		c.JSON(status, apierror.From(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}
