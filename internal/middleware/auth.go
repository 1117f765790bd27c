package middleware

import (
	"strings"

	"github.com/NE0NOE/Veterinaria-gestor-sub002/internal/apierror"
	"github.com/NE0NOE/Veterinaria-gestor-sub002/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	AdminKey = "admin"
)

// RequireAdmin runs the authorization gate on the Bearer token and stores the
// verified AdminContext for the handler. Nothing downstream runs on failure.
func RequireAdmin(gate service.AuthGate) gin.HandlerFunc {
	return func(c *gin.Context) {
		admin, err := gate.Authorize(c.Request.Context(), bearerToken(c))
		if err != nil {
			log.Info().
				Str("request_id", c.GetString(RequestIDKey)).
				Str("kind", service.KindOf(err).String()).
				Err(err).
				Msg("authorization rejected")
			c.AbortWithStatusJSON(apierror.Status(err), apierror.From(err))
			return
		}

		c.Set(AdminKey, *admin)
		c.Next()
	}
}

// GetAdmin is a helper to retrieve the verified admin from the Gin context.
func GetAdmin(c *gin.Context) (service.AdminContext, bool) {
	v, ok := c.Get(AdminKey)
	if !ok {
		return service.AdminContext{}, false
	}
	admin, ok := v.(service.AdminContext)
	return admin, ok
}

// bearerToken returns the credential of the Authorization header, or "".
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if len(header) < 7 || !strings.EqualFold(header[:7], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}
