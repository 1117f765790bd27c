package model

import (
	"time"

	"github.com/google/uuid"
)

// Identidad is an account in the credential store. The local backend persists
// it in auth_identities; the GoTrue backend only maps API payloads onto it.
type Identidad struct {
	ID              uuid.UUID              `gorm:"type:uuid;primaryKey"`
	Email           string                 `gorm:"uniqueIndex;not null"`
	PasswordHash    string                 `gorm:"not null" json:"-"`
	EmailConfirmado bool                   `gorm:"column:email_confirmed;not null"`
	Metadata        map[string]interface{} `gorm:"serializer:json;type:jsonb"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (Identidad) TableName() string { return "auth_identities" }

// NombreVisible returns metadata.name, the display name given at creation.
func (i *Identidad) NombreVisible() string {
	if i == nil || i.Metadata == nil {
		return ""
	}
	name, _ := i.Metadata["name"].(string)
	return name
}

// NuevaIdentidad are the inputs of identity creation.
type NuevaIdentidad struct {
	Email    string
	Password string
	Nombre   string
}
