package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/NE0NOE/Veterinaria-gestor-sub002/internal/dto"
	"github.com/NE0NOE/Veterinaria-gestor-sub002/internal/model"
	"github.com/NE0NOE/Veterinaria-gestor-sub002/internal/repository"
	"github.com/NE0NOE/Veterinaria-gestor-sub002/internal/saga"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var validate = validator.New()

func init() {
	// Report fields by their JSON names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// UsuarioAdminService runs the user lifecycle workflows for a verified admin.
// Every workflow is a fixed sequence of non-transactional steps; see the saga
// package for how failures and compensations are handled.
type UsuarioAdminService interface {
	Ejecutar(ctx context.Context, admin AdminContext, req dto.AccionRequest) (*dto.AccionResponse, error)
	CrearUsuario(ctx context.Context, admin AdminContext, datos *dto.DatosUsuario, especialidad *string) (*dto.AccionResponse, error)
	EliminarUsuario(ctx context.Context, admin AdminContext, userID string) (*dto.AccionResponse, error)
	ActualizarPerfil(ctx context.Context, admin AdminContext, userID string, datos *dto.DatosActualizacion, nuevoRolID *int64, especialidad *string) (*dto.AccionResponse, error)
}

type usuarioAdminService struct {
	identidades  IdentityStore
	usuarios     repository.UsuarioRepository
	roles        repository.RolRepository
	rolesUsuario repository.RolUsuarioRepository
	perfiles     Perfiles
	notificador  Notificador
}

// NewUsuarioAdminService wires the orchestrator. notificador may be nil.
func NewUsuarioAdminService(
	identidades IdentityStore,
	usuarios repository.UsuarioRepository,
	roles repository.RolRepository,
	rolesUsuario repository.RolUsuarioRepository,
	perfiles Perfiles,
	notificador Notificador,
) UsuarioAdminService {
	if notificador == nil {
		notificador = noopNotificador{}
	}
	return &usuarioAdminService{
		identidades:  identidades,
		usuarios:     usuarios,
		roles:        roles,
		rolesUsuario: rolesUsuario,
		perfiles:     perfiles,
		notificador:  notificador,
	}
}

func (s *usuarioAdminService) Ejecutar(ctx context.Context, admin AdminContext, req dto.AccionRequest) (*dto.AccionResponse, error) {
	switch req.Action {
	case dto.AccionAdd:
		return s.CrearUsuario(ctx, admin, req.UserData, req.Specialty)
	case dto.AccionDelete:
		return s.EliminarUsuario(ctx, admin, req.UserID)
	case dto.AccionUpdateProfile:
		return s.ActualizarPerfil(ctx, admin, req.UserID, req.UpdateData, req.NewRoleID, req.Specialty)
	default:
		return nil, invalido("Accion no valida")
	}
}

// ── add ──────────────────────────────────────────────────────────────────────

func (s *usuarioAdminService) CrearUsuario(ctx context.Context, admin AdminContext, datos *dto.DatosUsuario, especialidad *string) (*dto.AccionResponse, error) {
	if datos == nil {
		return nil, invalido("userData es requerido")
	}
	if err := validar(datos); err != nil {
		return nil, err
	}
	if datos.Specialty != nil {
		especialidad = datos.Specialty
	}

	// Resolved before any write: a failure here leaves nothing behind.
	rol, err := s.roles.FindByID(ctx, *datos.RoleID)
	if err != nil {
		return nil, newError(KindRoleResolution, "Rol no encontrado", err)
	}

	logger := workflowLogger("add", admin).With().Str("rol", rol.Nombre).Logger()
	email := strings.TrimSpace(datos.Email)
	nombre := strings.TrimSpace(datos.Name)
	telefono := strings.TrimSpace(datos.Phone)

	var ident *model.Identidad
	steps := []saga.Step{
		{
			Name: "crear_identidad",
			Run: func(ctx context.Context) error {
				creada, err := s.identidades.Create(ctx, model.NuevaIdentidad{
					Email:    email,
					Password: datos.Password,
					Nombre:   nombre,
				})
				if err != nil {
					if errors.Is(err, repository.ErrEmailDuplicado) {
						return newError(KindIdentityCreation, "El email ya esta registrado", err)
					}
					return newError(KindIdentityCreation, "No se pudo crear la identidad del usuario", err)
				}
				ident = creada
				return nil
			},
			// An identity without its user record is useless.
			Compensate: func(ctx context.Context) error {
				return s.identidades.Delete(ctx, ident.ID)
			},
		},
		{
			Name:  "insertar_usuario",
			Pivot: true,
			Run: func(ctx context.Context) error {
				err := s.usuarios.Create(ctx, &model.Usuario{
					ID:       ident.ID,
					Nombre:   nombre,
					Email:    email,
					Telefono: telefono,
					Activo:   true,
				})
				if err != nil {
					return newError(KindProfileInsert, "No se pudo crear el perfil del usuario", err)
				}
				return nil
			},
		},
		{
			// Failing here leaves identity + user record without a role.
			Name: "asignar_rol",
			Run: func(ctx context.Context) error {
				if err := s.rolesUsuario.Create(ctx, &model.RolUsuario{UsuarioID: ident.ID, RolID: rol.ID}); err != nil {
					return newError(KindRoleAssignment, "No se pudo asignar el rol al usuario", err)
				}
				return nil
			},
		},
	}

	if perfil, ok := s.perfiles.para(rol.Nombre); ok {
		steps = append(steps, saga.Step{
			Name: "insertar_perfil_" + perfil.Tabla(),
			Run: func(ctx context.Context) error {
				d := DatosPerfil{Nombre: nombre, Email: email, Telefono: telefono}
				if _, conEspecialidad := perfil.(PerfilConEspecialidad); conEspecialidad {
					d.Especialidad = especialidad
				}
				if err := perfil.Insertar(ctx, ident.ID, d); err != nil {
					return newError(KindRoleProfile, "No se pudo crear el perfil de "+rol.Nombre, err)
				}
				return nil
			},
		})
	}

	out := saga.NewRunner(logger).Run(ctx, steps...)
	if !out.OK() {
		if ident != nil && len(out.CompensationFailures) > 0 {
			s.reportarHuerfana(ctx, logger, ident.ID, out)
		}
		return nil, out.Err
	}

	if err := s.notificador.Bienvenida(ctx, email, nombre, rol.Nombre); err != nil {
		logger.Warn().Err(err).Str("user_id", ident.ID.String()).Msg("add: failed to enqueue welcome email")
	}
	logger.Info().Str("user_id", ident.ID.String()).Msg("add: user created")

	return &dto.AccionResponse{
		Success: true,
		Message: fmt.Sprintf("Usuario creado exitosamente con rol %s", rol.Nombre),
		UserID:  ident.ID.String(),
		Role:    rol.Nombre,
	}, nil
}

func (s *usuarioAdminService) reportarHuerfana(ctx context.Context, logger zerolog.Logger, id uuid.UUID, out saga.Outcome) {
	motivo := fmt.Sprintf("paso %q fallo: %v; compensacion fallo: %v", out.Failed, out.Err, out.CompensationFailures[0].Err)
	if err := s.notificador.IdentidadHuerfana(context.WithoutCancel(ctx), id, motivo); err != nil {
		logger.Error().Err(err).Str("user_id", id.String()).Msg("add: failed to report stranded identity")
	}
}

// ── delete ───────────────────────────────────────────────────────────────────

func (s *usuarioAdminService) EliminarUsuario(ctx context.Context, admin AdminContext, userID string) (*dto.AccionResponse, error) {
	id, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	logger := workflowLogger("delete", admin).With().Str("user_id", id.String()).Logger()
	var rolNombre string

	// Relational rows go first: the role assignment is what tells which
	// profile table to clean, and the identity is removed last.
	out := saga.NewRunner(logger).Run(ctx,
		saga.Step{
			Name:       "resolver_rol",
			BestEffort: true,
			Run: func(ctx context.Context) error {
				nombre, err := s.rolActual(ctx, id)
				if err != nil {
					return err
				}
				rolNombre = nombre
				return nil
			},
		},
		saga.Step{
			Name:       "eliminar_perfil",
			BestEffort: true,
			Run: func(ctx context.Context) error {
				perfil, ok := s.perfiles.para(rolNombre)
				if !ok {
					return nil
				}
				return perfil.Eliminar(ctx, id)
			},
		},
		saga.Step{
			Name:       "eliminar_rol_usuario",
			BestEffort: true,
			Run: func(ctx context.Context) error {
				return s.rolesUsuario.Delete(ctx, id)
			},
		},
		saga.Step{
			Name:       "eliminar_usuario",
			BestEffort: true,
			Run: func(ctx context.Context) error {
				return s.usuarios.Delete(ctx, id)
			},
		},
		saga.Step{
			Name: "eliminar_identidad",
			Run: func(ctx context.Context) error {
				if err := s.identidades.Delete(ctx, id); err != nil {
					return newError(KindIdentityDeletion, "No se pudo eliminar la identidad del usuario", err)
				}
				return nil
			},
		},
	)
	if !out.OK() {
		return nil, out.Err
	}

	logger.Info().Int("tolerated_failures", len(out.Tolerated)).Msg("delete: user deleted")
	return &dto.AccionResponse{
		Success: true,
		Message: "Usuario eliminado exitosamente",
		UserID:  id.String(),
	}, nil
}

// ── update_profile ───────────────────────────────────────────────────────────

func (s *usuarioAdminService) ActualizarPerfil(ctx context.Context, admin AdminContext, userID string, datos *dto.DatosActualizacion, nuevoRolID *int64, especialidad *string) (*dto.AccionResponse, error) {
	id, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}
	if datos == nil {
		return nil, invalido("updateData es requerido")
	}
	if err := validar(datos); err != nil {
		return nil, err
	}

	patch := model.UsuarioPatch{
		Nombre:   trimmed(datos.Name),
		Email:    trimmed(datos.Email),
		Telefono: trimmed(datos.Phone),
	}
	logger := workflowLogger("update_profile", admin).With().Str("user_id", id.String()).Logger()

	steps := []saga.Step{
		{
			// Not rolled back if a later step fails; a later update re-syncs it.
			Name: "actualizar_email_identidad",
			Run: func(ctx context.Context) error {
				if patch.Email == nil {
					return nil
				}
				actual, err := s.identidades.FindByID(ctx, id)
				if err != nil {
					return newError(KindIdentityUpdate, "No se pudo leer la identidad del usuario", err)
				}
				if actual.Email == *patch.Email {
					return nil
				}
				if err := s.identidades.UpdateEmail(ctx, id, *patch.Email); err != nil {
					if errors.Is(err, repository.ErrEmailDuplicado) {
						return newError(KindIdentityUpdate, "El email ya esta registrado", err)
					}
					return newError(KindIdentityUpdate, "No se pudo actualizar el email del usuario", err)
				}
				return nil
			},
		},
		{
			Name: "actualizar_usuario",
			Run: func(ctx context.Context) error {
				if err := s.usuarios.Update(ctx, id, patch); err != nil {
					if repository.IsNotFound(err) {
						return newError(KindProfileUpdate, "Usuario no encontrado", err)
					}
					return newError(KindProfileUpdate, "No se pudo actualizar el perfil del usuario", err)
				}
				return nil
			},
		},
	}

	// Without a new role id the role profile's copies of name/email/phone are
	// left as they are.
	if nuevoRolID != nil {
		steps = append(steps, s.pasosCambioRol(id, *nuevoRolID, especialidad)...)
	}

	out := saga.NewRunner(logger).Run(ctx, steps...)
	if !out.OK() {
		return nil, out.Err
	}

	logger.Info().Msg("update_profile: user updated")
	return &dto.AccionResponse{
		Success: true,
		Message: "Perfil actualizado exitosamente",
		UserID:  id.String(),
	}, nil
}

// pasosCambioRol builds the role part of update_profile. Prior steps are never
// rolled back from here.
func (s *usuarioAdminService) pasosCambioRol(id uuid.UUID, nuevoRolID int64, especialidad *string) []saga.Step {
	var (
		anterior   *model.RolUsuario
		rolAntes   *model.Rol
		rolDespues *model.Rol
	)
	mismoRol := func() bool { return anterior.RolID == rolDespues.ID }

	return []saga.Step{
		{
			Name: "resolver_roles",
			Run: func(ctx context.Context) error {
				var err error
				if anterior, err = s.rolesUsuario.FindByUsuarioID(ctx, id); err != nil {
					return newError(KindRoleResolution, "No se pudo resolver el rol actual del usuario", err)
				}
				if rolAntes, err = s.roles.FindByID(ctx, anterior.RolID); err != nil {
					return newError(KindRoleResolution, "No se pudo resolver el rol actual del usuario", err)
				}
				if rolDespues, err = s.roles.FindByID(ctx, nuevoRolID); err != nil {
					return newError(KindRoleResolution, "Rol no encontrado", err)
				}
				return nil
			},
		},
		{
			Name: "actualizar_especialidad",
			Run: func(ctx context.Context) error {
				if !mismoRol() || especialidad == nil {
					return nil
				}
				perfil, ok := s.perfiles.para(rolDespues.Nombre)
				if !ok {
					return nil
				}
				conEspecialidad, ok := perfil.(PerfilConEspecialidad)
				if !ok {
					return nil
				}
				actual, err := conEspecialidad.Especialidad(ctx, id)
				if err != nil {
					return newError(KindProfileUpdate, "No se pudo leer la especialidad", err)
				}
				if actual != nil && *actual == *especialidad {
					return nil
				}
				if err := conEspecialidad.ActualizarEspecialidad(ctx, id, *especialidad); err != nil {
					return newError(KindProfileUpdate, "No se pudo actualizar la especialidad", err)
				}
				return nil
			},
		},
		{
			Name: "reasignar_rol",
			Run: func(ctx context.Context) error {
				if mismoRol() {
					return nil
				}
				if err := s.rolesUsuario.UpdateRol(ctx, id, rolDespues.ID); err != nil {
					return newError(KindRoleAssignment, "No se pudo cambiar el rol del usuario", err)
				}
				return nil
			},
		},
		{
			Name:       "eliminar_perfil_anterior",
			BestEffort: true,
			Run: func(ctx context.Context) error {
				if mismoRol() {
					return nil
				}
				perfil, ok := s.perfiles.para(rolAntes.Nombre)
				if !ok {
					return nil
				}
				return perfil.Eliminar(ctx, id)
			},
		},
		{
			Name: "insertar_perfil_nuevo",
			Run: func(ctx context.Context) error {
				if mismoRol() {
					return nil
				}
				perfil, ok := s.perfiles.para(rolDespues.Nombre)
				if !ok {
					return nil
				}
				u, err := s.usuarios.FindByID(ctx, id)
				if err != nil {
					return newError(KindRoleProfile, "No se pudo crear el perfil de "+rolDespues.Nombre, err)
				}
				d := DatosPerfil{Nombre: u.Nombre, Email: u.Email, Telefono: u.Telefono}
				if _, conEspecialidad := perfil.(PerfilConEspecialidad); conEspecialidad {
					d.Especialidad = especialidad
				}
				if err := perfil.Insertar(ctx, id, d); err != nil {
					return newError(KindRoleProfile, "No se pudo crear el perfil de "+rolDespues.Nombre, err)
				}
				return nil
			},
		},
	}
}

// ── helpers ──────────────────────────────────────────────────────────────────

// rolActual resolves the role name currently assigned to id.
func (s *usuarioAdminService) rolActual(ctx context.Context, id uuid.UUID) (string, error) {
	asignacion, err := s.rolesUsuario.FindByUsuarioID(ctx, id)
	if err != nil {
		return "", err
	}
	rol, err := s.roles.FindByID(ctx, asignacion.RolID)
	if err != nil {
		return "", err
	}
	return rol.Nombre, nil
}

func workflowLogger(action string, admin AdminContext) zerolog.Logger {
	return log.With().Str("action", action).Str("admin_id", admin.AdminID.String()).Logger()
}

func parseUserID(userID string) (uuid.UUID, error) {
	if strings.TrimSpace(userID) == "" {
		return uuid.Nil, invalido("userId es requerido")
	}
	id, err := uuid.Parse(strings.TrimSpace(userID))
	if err != nil {
		return uuid.Nil, invalido("userId invalido")
	}
	return id, nil
}

func trimmed(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	return &t
}

// validar runs the validator tags of a payload struct.
func validar(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return invalido("Payload invalido")
	}
	fields := make(map[string]string, len(ves))
	for _, fe := range ves {
		fields[fe.Field()] = fe.Tag()
	}
	return &AdminError{Kind: KindInvalidRequest, Msg: "Error de validacion", Fields: fields}
}
