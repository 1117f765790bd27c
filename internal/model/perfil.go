package model

import "github.com/google/uuid"

// Veterinario is the role profile of identities assigned the veterinario role.
type Veterinario struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Nombre       string    `gorm:"column:name;not null"`
	Email        string    `gorm:"column:email;not null"`
	Telefono     string    `gorm:"column:phone"`
	Especialidad *string   `gorm:"column:specialty"`
}

func (Veterinario) TableName() string { return "veterinarios" }

// Cliente is the role profile of identities assigned the cliente role.
type Cliente struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Nombre   string    `gorm:"column:name;not null"`
	Email    string    `gorm:"column:email;not null"`
	Telefono string    `gorm:"column:phone"`
}

func (Cliente) TableName() string { return "clientes" }
