package dto

// Actions accepted by the user administration endpoint.
const (
	AccionAdd           = "add"
	AccionDelete        = "delete"
	AccionUpdateProfile = "update_profile"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

// AccionRequest is the single operation descriptor of POST /v1/admin/usuarios.
// Which optional members are required depends on Action; the service checks
// them per action.
type AccionRequest struct {
	Action     string              `json:"action"     validate:"required,oneof=add delete update_profile"`
	UserData   *DatosUsuario       `json:"userData"   validate:"-"`
	UserID     string              `json:"userId"`
	UpdateData *DatosActualizacion `json:"updateData" validate:"-"`
	NewRoleID  *int64              `json:"newRoleId"`
	Specialty  *string             `json:"specialty"`
}

// DatosUsuario is the payload of the add action.
type DatosUsuario struct {
	Email     string  `json:"email"     validate:"required,email"`
	Password  string  `json:"password"  validate:"required,min=6"`
	Name      string  `json:"name"      validate:"required,min=2,max=100"`
	Phone     string  `json:"phone"     validate:"omitempty,max=30"`
	RoleID    *int64  `json:"roleId"    validate:"required"`
	Specialty *string `json:"specialty" validate:"omitempty,max=100"`
}

// DatosActualizacion is the payload of update_profile; absent members are untouched.
type DatosActualizacion struct {
	Name  *string `json:"name"  validate:"omitempty,min=2,max=100"`
	Email *string `json:"email" validate:"omitempty,email"`
	Phone *string `json:"phone" validate:"omitempty,max=30"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type AccionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	UserID  string `json:"userId,omitempty"`
	Role    string `json:"role,omitempty"`
}
