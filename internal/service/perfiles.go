package service

import (
	"context"

	"github.com/NE0NOE/Veterinaria-gestor-sub002/internal/model"
	"github.com/NE0NOE/Veterinaria-gestor-sub002/internal/repository"

	"github.com/google/uuid"
)

// DatosPerfil are the columns every role profile duplicates from the user
// record, plus the specialty only veterinarians keep.
type DatosPerfil struct {
	Nombre       string
	Email        string
	Telefono     string
	Especialidad *string
}

// PerfilRol is the role-specific profile table of one role name.
type PerfilRol interface {
	Tabla() string
	Insertar(ctx context.Context, id uuid.UUID, datos DatosPerfil) error
	Eliminar(ctx context.Context, id uuid.UUID) error
}

// PerfilConEspecialidad is implemented by profiles that store a specialty.
type PerfilConEspecialidad interface {
	Especialidad(ctx context.Context, id uuid.UUID) (*string, error)
	ActualizarEspecialidad(ctx context.Context, id uuid.UUID, especialidad string) error
}

// Perfiles maps a role name to its profile table. Roles absent from the map
// have no profile.
type Perfiles map[string]PerfilRol

func NewPerfiles(veterinarios repository.VeterinarioRepository, clientes repository.ClienteRepository) Perfiles {
	return Perfiles{
		model.RolVeterinario: perfilVeterinario{repo: veterinarios},
		model.RolCliente:     perfilCliente{repo: clientes},
	}
}

func (p Perfiles) para(rol string) (PerfilRol, bool) {
	perfil, ok := p[rol]
	return perfil, ok
}

type perfilVeterinario struct{ repo repository.VeterinarioRepository }

func (perfilVeterinario) Tabla() string { return "veterinarios" }

func (p perfilVeterinario) Insertar(ctx context.Context, id uuid.UUID, d DatosPerfil) error {
	return p.repo.Create(ctx, &model.Veterinario{
		ID:           id,
		Nombre:       d.Nombre,
		Email:        d.Email,
		Telefono:     d.Telefono,
		Especialidad: d.Especialidad,
	})
}

func (p perfilVeterinario) Eliminar(ctx context.Context, id uuid.UUID) error {
	return p.repo.Delete(ctx, id)
}

func (p perfilVeterinario) Especialidad(ctx context.Context, id uuid.UUID) (*string, error) {
	v, err := p.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return v.Especialidad, nil
}

func (p perfilVeterinario) ActualizarEspecialidad(ctx context.Context, id uuid.UUID, especialidad string) error {
	return p.repo.UpdateEspecialidad(ctx, id, especialidad)
}

type perfilCliente struct{ repo repository.ClienteRepository }

func (perfilCliente) Tabla() string { return "clientes" }

func (p perfilCliente) Insertar(ctx context.Context, id uuid.UUID, d DatosPerfil) error {
	return p.repo.Create(ctx, &model.Cliente{
		ID:       id,
		Nombre:   d.Nombre,
		Email:    d.Email,
		Telefono: d.Telefono,
	})
}

func (p perfilCliente) Eliminar(ctx context.Context, id uuid.UUID) error {
	return p.repo.Delete(ctx, id)
}
