package service

import (
	"context"
	"strings"

	"github.com/NE0NOE/Veterinaria-gestor-sub002/internal/model"
	"github.com/NE0NOE/Veterinaria-gestor-sub002/internal/repository"

	"github.com/google/uuid"
)

// AdminContext is the verified caller of an administrative action.
type AdminContext struct {
	AdminID uuid.UUID
}

// AuthGate decides whether a credential belongs to an administrator.
type AuthGate interface {
	Authorize(ctx context.Context, token string) (*AdminContext, error)
}

type authGate struct {
	identidades  IdentityStore
	rolesUsuario repository.RolUsuarioRepository
	roles        repository.RolRepository
}

func NewAuthGate(identidades IdentityStore, rolesUsuario repository.RolUsuarioRepository, roles repository.RolRepository) AuthGate {
	return &authGate{identidades: identidades, rolesUsuario: rolesUsuario, roles: roles}
}

// Authorize only reads. Each check is a hard stop.
func (g *authGate) Authorize(ctx context.Context, token string) (*AdminContext, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, newError(KindUnauthenticated, "Autenticacion requerida", nil)
	}

	caller, err := g.identidades.ResolveToken(ctx, token)
	if err != nil {
		return nil, newError(KindUnauthenticated, "Token invalido o expirado", err)
	}
	if caller == nil || caller.ID == uuid.Nil {
		return nil, newError(KindUnauthenticated, "Token invalido o expirado", nil)
	}

	asignacion, err := g.rolesUsuario.FindByUsuarioID(ctx, caller.ID)
	if err != nil {
		return nil, newError(KindUnauthorized, "No se pudo determinar el rol del usuario", err)
	}

	rol, err := g.roles.FindByID(ctx, asignacion.RolID)
	if err != nil {
		return nil, newError(KindUnauthorized, "No se pudo determinar el rol del usuario", err)
	}
	if rol.Nombre != model.RolAdmin {
		return nil, newError(KindForbidden, "Permisos insuficientes", nil)
	}

	return &AdminContext{AdminID: caller.ID}, nil
}
