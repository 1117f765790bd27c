package service

import (
	"context"

	"github.com/NE0NOE/Veterinaria-gestor-sub002/internal/model"

	"github.com/google/uuid"
)

// IdentityStore is the credential store the gate and the workflows depend on.
// repository.IdentidadRepository and infra.GoTrueClient implement it.
type IdentityStore interface {
	ResolveToken(ctx context.Context, token string) (*model.Identidad, error)
	Create(ctx context.Context, nueva model.NuevaIdentidad) (*model.Identidad, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Identidad, error)
	UpdateEmail(ctx context.Context, id uuid.UUID, email string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Notificador receives side notifications of the workflows. None of them can
// change a workflow result.
type Notificador interface {
	// Bienvenida is sent after a fully successful add.
	Bienvenida(ctx context.Context, email, nombre, rol string) error
	// IdentidadHuerfana reports an identity the add compensation could not delete.
	IdentidadHuerfana(ctx context.Context, id uuid.UUID, motivo string) error
}

type noopNotificador struct{}

func (noopNotificador) Bienvenida(context.Context, string, string, string) error { return nil }
func (noopNotificador) IdentidadHuerfana(context.Context, uuid.UUID, string) error {
	return nil
}
