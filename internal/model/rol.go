package model

import "github.com/google/uuid"

// Role names with a meaning inside this service.
const (
	RolAdmin       = "admin"
	RolVeterinario = "veterinario"
	RolCliente     = "cliente"
)

// Rol is the read-only reference table of roles.
type Rol struct {
	ID     int64  `gorm:"primaryKey;autoIncrement:false"`
	Nombre string `gorm:"column:name;uniqueIndex;not null"`
}

func (Rol) TableName() string { return "roles" }

// RolUsuario assigns exactly one role to an identity; user_id is the primary
// key so a second assignment cannot coexist with the first.
type RolUsuario struct {
	UsuarioID uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey"`
	RolID     int64     `gorm:"column:role_id;not null;index"`
}

func (RolUsuario) TableName() string { return "user_roles" }
