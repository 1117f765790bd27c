package model

import (
	"time"

	"github.com/google/uuid"
)

// Usuario is the relational user record, keyed by the identity id issued by
// the credential store. Columns keep the names shared with the other clients
// of this database.
type Usuario struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Nombre    string    `gorm:"column:name;not null"`
	Email     string    `gorm:"column:email;not null"`
	Telefono  string    `gorm:"column:phone"`
	Activo    bool      `gorm:"column:active;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Usuario) TableName() string { return "users" }

// UsuarioPatch holds the subset of fields an update touches; nil means untouched.
type UsuarioPatch struct {
	Nombre   *string
	Email    *string
	Telefono *string
}

// Vacio reports whether the patch carries no field at all.
func (p UsuarioPatch) Vacio() bool {
	return p.Nombre == nil && p.Email == nil && p.Telefono == nil
}

// Columnas maps the present fields to their column names.
func (p UsuarioPatch) Columnas() map[string]interface{} {
	cols := make(map[string]interface{}, 3)
	if p.Nombre != nil {
		cols["name"] = *p.Nombre
	}
	if p.Email != nil {
		cols["email"] = *p.Email
	}
	if p.Telefono != nil {
		cols["phone"] = *p.Telefono
	}
	return cols
}
