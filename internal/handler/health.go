package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/NE0NOE/Veterinaria-gestor-sub002/internal/infra"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health returns a JSON health check response.
// Checks DB and Redis connectivity and the identity provider breaker (nil with
// the local provider); never exposes credentials or internals.
func Health(db *gorm.DB, rdb redis.Cmdable, cb *infra.CircuitBreaker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		dbStatus := "connected"
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			dbStatus = "error"
		}

		redisStatus := "connected"
		if rdb.Ping(ctx).Err() != nil {
			redisStatus = "error"
		}

		identityStatus := "local"
		if cb != nil {
			identityStatus = cb.State().String()
		}

		status := http.StatusOK
		if dbStatus != "connected" || redisStatus != "connected" || identityStatus == infra.CBOpen.String() {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"ok":                status == http.StatusOK,
			"db":                dbStatus,
			"redis":             redisStatus,
			"identity_provider": identityStatus,
		})
	}
}
