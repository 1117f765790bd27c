package repository

import (
	"context"
	"strconv"
	"time"

	"github.com/NE0NOE/Veterinaria-gestor-sub002/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const rolCachePrefix = "rol:"

// CachedRolRepository is a read-through redis cache in front of the roles
// table. Roles are never written by this service, so entries only expire.
type CachedRolRepository struct {
	inner RolRepository
	rdb   redis.Cmdable
	ttl   time.Duration
}

func NewCachedRolRepository(inner RolRepository, rdb redis.Cmdable, ttl time.Duration) *CachedRolRepository {
	return &CachedRolRepository{inner: inner, rdb: rdb, ttl: ttl}
}

func (r *CachedRolRepository) FindByID(ctx context.Context, id int64) (*model.Rol, error) {
	key := rolCachePrefix + strconv.FormatInt(id, 10)

	if nombre, err := r.rdb.Get(ctx, key).Result(); err == nil && nombre != "" {
		return &model.Rol{ID: id, Nombre: nombre}, nil
	} else if err != nil && err != redis.Nil {
		log.Debug().Err(err).Str("key", key).Msg("rol_cache: redis unavailable, reading postgres")
	}

	rol, err := r.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Populate cache, best effort, ignore errors
	_ = r.rdb.Set(context.Background(), key, rol.Nombre, r.ttl).Err()
	return rol, nil
}

func (r *CachedRolRepository) FindByNombre(ctx context.Context, nombre string) (*model.Rol, error) {
	return r.inner.FindByNombre(ctx, nombre)
}
