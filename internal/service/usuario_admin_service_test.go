package service

import (
	"context"
	"testing"

	"github.com/NE0NOE/Veterinaria-gestor-sub002/internal/dto"
	"github.com/NE0NOE/Veterinaria-gestor-sub002/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func datosVeterinario() *dto.DatosUsuario {
	return &dto.DatosUsuario{
		Email:     "ana@vet.test",
		Password:  "secreto123",
		Name:      "Ana Vet",
		Phone:     "555-0101",
		RoleID:    ptr(rolVeterinarioID),
		Specialty: ptr("exoticos"),
	}
}

func unicoID(t *testing.T, m *mundo) uuid.UUID {
	t.Helper()
	require.Len(t, m.identidades, 1)
	for id := range m.identidades {
		return id
	}
	return uuid.Nil
}

// ── add ──────────────────────────────────────────────────────────────────────

func TestCrearUsuario_Veterinario(t *testing.T) {
	m := newMundo()
	notif := &stubNotificador{}
	svc := newTestService(m, notif)

	resp, err := svc.CrearUsuario(context.Background(), testAdmin, datosVeterinario(), nil)

	require.NoError(t, err)
	id := unicoID(t, m)
	assert.True(t, resp.Success)
	assert.Equal(t, "Usuario creado exitosamente con rol veterinario", resp.Message)
	assert.Equal(t, id.String(), resp.UserID)
	assert.Equal(t, model.RolVeterinario, resp.Role)

	ident := m.identidades[id]
	assert.Equal(t, "ana@vet.test", ident.Email)
	assert.True(t, ident.EmailConfirmado)
	assert.Equal(t, "Ana Vet", ident.Metadata["name"])

	require.Contains(t, m.usuarios, id)
	assert.Equal(t, "Ana Vet", m.usuarios[id].Nombre)
	assert.Equal(t, "555-0101", m.usuarios[id].Telefono)
	assert.True(t, m.usuarios[id].Activo)
	assert.Equal(t, rolVeterinarioID, m.rolesUsuario[id])

	require.Contains(t, m.veterinarios, id)
	require.NotNil(t, m.veterinarios[id].Especialidad)
	assert.Equal(t, "exoticos", *m.veterinarios[id].Especialidad)
	assert.Empty(t, m.clientes)

	assert.Equal(t, []string{"ana@vet.test"}, notif.bienvenidas)
}

func TestCrearUsuario_ClienteIgnoresSpecialty(t *testing.T) {
	m := newMundo()
	datos := datosVeterinario()
	datos.RoleID = ptr(rolClienteID)

	resp, err := newTestService(m, nil).CrearUsuario(context.Background(), testAdmin, datos, nil)

	require.NoError(t, err)
	id := unicoID(t, m)
	assert.Equal(t, model.RolCliente, resp.Role)
	require.Contains(t, m.clientes, id)
	assert.Equal(t, "ana@vet.test", m.clientes[id].Email)
	assert.Empty(t, m.veterinarios)
}

func TestCrearUsuario_RoleWithoutProfileTable(t *testing.T) {
	m := newMundo()
	datos := datosVeterinario()
	datos.RoleID = ptr(rolRecepcionistaID)

	resp, err := newTestService(m, nil).CrearUsuario(context.Background(), testAdmin, datos, nil)

	require.NoError(t, err)
	assert.Equal(t, "recepcionista", resp.Role)
	id := unicoID(t, m)
	assert.Contains(t, m.usuarios, id)
	assert.Equal(t, rolRecepcionistaID, m.rolesUsuario[id])
	assert.Empty(t, m.veterinarios)
	assert.Empty(t, m.clientes)
}

func TestCrearUsuario_TopLevelSpecialtyFallback(t *testing.T) {
	m := newMundo()
	datos := datosVeterinario()
	datos.Specialty = nil

	_, err := newTestService(m, nil).CrearUsuario(context.Background(), testAdmin, datos, ptr("cirugia"))

	require.NoError(t, err)
	id := unicoID(t, m)
	require.NotNil(t, m.veterinarios[id].Especialidad)
	assert.Equal(t, "cirugia", *m.veterinarios[id].Especialidad)
}

func TestCrearUsuario_UnknownRoleWritesNothing(t *testing.T) {
	m := newMundo()
	datos := datosVeterinario()
	datos.RoleID = ptr(int64(99))

	_, err := newTestService(m, nil).CrearUsuario(context.Background(), testAdmin, datos, nil)

	require.Error(t, err)
	assert.Equal(t, KindRoleResolution, KindOf(err))
	assert.Equal(t, "Rol no encontrado", MessageOf(err))
	assert.Empty(t, m.escrituras())
}

func TestCrearUsuario_InvalidPayload(t *testing.T) {
	m := newMundo()
	datos := datosVeterinario()
	datos.Email = "no-es-email"
	datos.RoleID = nil

	_, err := newTestService(m, nil).CrearUsuario(context.Background(), testAdmin, datos, nil)

	require.Error(t, err)
	assert.Equal(t, KindInvalidRequest, KindOf(err))
	var ae *AdminError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "email", ae.Fields["email"])
	assert.Equal(t, "required", ae.Fields["roleId"])
	assert.Empty(t, m.llamadas)
}

func TestCrearUsuario_MissingUserData(t *testing.T) {
	_, err := newTestService(newMundo(), nil).CrearUsuario(context.Background(), testAdmin, nil, nil)

	require.Error(t, err)
	assert.Equal(t, KindInvalidRequest, KindOf(err))
	assert.Equal(t, "userData es requerido", MessageOf(err))
}

func TestCrearUsuario_IdentityFailureCreatesNothing(t *testing.T) {
	m := newMundo()
	m.fallas["identidad.create"] = errStore

	_, err := newTestService(m, nil).CrearUsuario(context.Background(), testAdmin, datosVeterinario(), nil)

	require.Error(t, err)
	assert.Equal(t, KindIdentityCreation, KindOf(err))
	assert.ErrorIs(t, err, errStore)
	assert.Empty(t, m.identidades)
	assert.Empty(t, m.usuarios)
	assert.Empty(t, m.rolesUsuario)
	assert.Empty(t, m.veterinarios)
	assert.Equal(t, []string{"identidad.create"}, m.escrituras())
}

func TestCrearUsuario_DuplicateEmail(t *testing.T) {
	m := newMundo()
	m.sembrarUsuario(t, rolClienteID, "ana@vet.test")

	_, err := newTestService(m, nil).CrearUsuario(context.Background(), testAdmin, datosVeterinario(), nil)

	require.Error(t, err)
	assert.Equal(t, KindIdentityCreation, KindOf(err))
	assert.Equal(t, "El email ya esta registrado", MessageOf(err))
	assert.Len(t, m.identidades, 1)
}

func TestCrearUsuario_UserInsertFailureDeletesIdentity(t *testing.T) {
	m := newMundo()
	m.fallas["usuario.create"] = errStore
	notif := &stubNotificador{}

	_, err := newTestService(m, notif).CrearUsuario(context.Background(), testAdmin, datosVeterinario(), nil)

	require.Error(t, err)
	assert.Equal(t, KindProfileInsert, KindOf(err))
	assert.Empty(t, m.identidades, "the identity must be compensated")
	assert.Empty(t, m.usuarios)
	assert.Empty(t, m.rolesUsuario)
	assert.Empty(t, m.veterinarios)
	assert.True(t, m.llamo("identidad.delete"))
	assert.Empty(t, notif.huerfanas)
	assert.Empty(t, notif.bienvenidas)
}

func TestCrearUsuario_FailedCompensationReportsStrandedIdentity(t *testing.T) {
	m := newMundo()
	m.fallas["usuario.create"] = errStore
	m.fallas["identidad.delete"] = errStore
	notif := &stubNotificador{}

	_, err := newTestService(m, notif).CrearUsuario(context.Background(), testAdmin, datosVeterinario(), nil)

	require.Error(t, err)
	assert.Equal(t, KindProfileInsert, KindOf(err), "the original failure is returned")
	id := unicoID(t, m)
	assert.Equal(t, []uuid.UUID{id}, notif.huerfanas)
}

func TestCrearUsuario_RoleAssignmentFailureKeepsIdentityAndUser(t *testing.T) {
	m := newMundo()
	m.fallas["rol_usuario.create"] = errStore

	_, err := newTestService(m, nil).CrearUsuario(context.Background(), testAdmin, datosVeterinario(), nil)

	require.Error(t, err)
	assert.Equal(t, KindRoleAssignment, KindOf(err))
	id := unicoID(t, m)
	assert.Contains(t, m.usuarios, id)
	assert.Empty(t, m.rolesUsuario)
	assert.Empty(t, m.veterinarios)
	assert.False(t, m.llamo("identidad.delete"))
	assert.False(t, m.llamo("veterinario.create"))
}

func TestCrearUsuario_ProfileFailureKeepsAssignment(t *testing.T) {
	m := newMundo()
	m.fallas["veterinario.create"] = errStore
	notif := &stubNotificador{}

	_, err := newTestService(m, notif).CrearUsuario(context.Background(), testAdmin, datosVeterinario(), nil)

	require.Error(t, err)
	assert.Equal(t, KindRoleProfile, KindOf(err))
	id := unicoID(t, m)
	assert.Contains(t, m.usuarios, id)
	assert.Equal(t, rolVeterinarioID, m.rolesUsuario[id])
	assert.Empty(t, m.veterinarios)
	assert.Empty(t, notif.bienvenidas)
}

func TestCrearUsuario_WelcomeFailureDoesNotFail(t *testing.T) {
	m := newMundo()
	notif := &stubNotificador{err: errStore}

	resp, err := newTestService(m, notif).CrearUsuario(context.Background(), testAdmin, datosVeterinario(), nil)

	require.NoError(t, err)
	assert.True(t, resp.Success)
}

// ── delete ───────────────────────────────────────────────────────────────────

func TestEliminarUsuario_RemovesEverything(t *testing.T) {
	m := newMundo()
	id := m.sembrarUsuario(t, rolVeterinarioID, "v@vet.test")
	otro := m.sembrarUsuario(t, rolClienteID, "c@vet.test")

	resp, err := newTestService(m, nil).EliminarUsuario(context.Background(), testAdmin, id.String())

	require.NoError(t, err)
	assert.Equal(t, "Usuario eliminado exitosamente", resp.Message)
	assert.NotContains(t, m.identidades, id)
	assert.NotContains(t, m.usuarios, id)
	assert.NotContains(t, m.rolesUsuario, id)
	assert.NotContains(t, m.veterinarios, id)
	assert.Contains(t, m.identidades, otro)
	assert.Contains(t, m.clientes, otro)
	assert.Equal(t,
		[]string{"veterinario.delete", "rol_usuario.delete", "usuario.delete", "identidad.delete"},
		m.escrituras())
}

func TestEliminarUsuario_RoleLookupFailureSkipsProfile(t *testing.T) {
	m := newMundo()
	id := m.sembrarUsuario(t, rolVeterinarioID, "v@vet.test")
	m.fallas["rol_usuario.find"] = errStore

	_, err := newTestService(m, nil).EliminarUsuario(context.Background(), testAdmin, id.String())

	require.NoError(t, err)
	assert.Contains(t, m.veterinarios, id, "without role knowledge the profile row stays")
	assert.NotContains(t, m.rolesUsuario, id)
	assert.NotContains(t, m.usuarios, id)
	assert.NotContains(t, m.identidades, id)
	assert.False(t, m.llamo("veterinario.delete"))
}

func TestEliminarUsuario_IntermediateFailuresAreTolerated(t *testing.T) {
	m := newMundo()
	id := m.sembrarUsuario(t, rolClienteID, "c@vet.test")
	m.fallas["cliente.delete"] = errStore
	m.fallas["rol_usuario.delete"] = errStore
	m.fallas["usuario.delete"] = errStore

	resp, err := newTestService(m, nil).EliminarUsuario(context.Background(), testAdmin, id.String())

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.NotContains(t, m.identidades, id)
}

func TestEliminarUsuario_IdentityFailureIsFatal(t *testing.T) {
	m := newMundo()
	id := m.sembrarUsuario(t, rolClienteID, "c@vet.test")
	m.fallas["identidad.delete"] = errStore

	_, err := newTestService(m, nil).EliminarUsuario(context.Background(), testAdmin, id.String())

	require.Error(t, err)
	assert.Equal(t, KindIdentityDeletion, KindOf(err))
	assert.Contains(t, m.identidades, id)
	assert.NotContains(t, m.usuarios, id)
}

func TestEliminarUsuario_UnknownUserFailsOnIdentity(t *testing.T) {
	m := newMundo()

	_, err := newTestService(m, nil).EliminarUsuario(context.Background(), testAdmin, uuid.NewString())

	require.Error(t, err)
	assert.Equal(t, KindIdentityDeletion, KindOf(err))
}

func TestEliminarUsuario_InvalidUserID(t *testing.T) {
	tests := []struct {
		userID string
		msg    string
	}{
		{"", "userId es requerido"},
		{"  ", "userId es requerido"},
		{"not-a-uuid", "userId invalido"},
	}
	for _, tt := range tests {
		t.Run(tt.msg+"/"+tt.userID, func(t *testing.T) {
			m := newMundo()
			_, err := newTestService(m, nil).EliminarUsuario(context.Background(), testAdmin, tt.userID)

			require.Error(t, err)
			assert.Equal(t, KindInvalidRequest, KindOf(err))
			assert.Equal(t, tt.msg, MessageOf(err))
			assert.Empty(t, m.llamadas)
		})
	}
}

// ── update_profile ───────────────────────────────────────────────────────────

func TestActualizarPerfil_EmailBeforeUserRecord(t *testing.T) {
	m := newMundo()
	id := m.sembrarUsuario(t, rolClienteID, "old@vet.test")
	datos := &dto.DatosActualizacion{Email: ptr("new@vet.test"), Name: ptr(" Nuevo Nombre ")}

	resp, err := newTestService(m, nil).ActualizarPerfil(context.Background(), testAdmin, id.String(), datos, nil, nil)

	require.NoError(t, err)
	assert.Equal(t, "Perfil actualizado exitosamente", resp.Message)
	assert.Equal(t, "new@vet.test", m.identidades[id].Email)
	assert.Equal(t, "new@vet.test", m.usuarios[id].Email)
	assert.Equal(t, "Nuevo Nombre", m.usuarios[id].Nombre)
	assert.Equal(t, "111", m.usuarios[id].Telefono, "absent members are untouched")
	assert.Less(t, m.indice("identidad.update_email"), m.indice("usuario.update"))
	assert.Equal(t, "old@vet.test", m.clientes[id].Email, "profile copies change only with a role id")
}

func TestActualizarPerfil_UserRecordFailureKeepsNewEmail(t *testing.T) {
	m := newMundo()
	id := m.sembrarUsuario(t, rolClienteID, "old@vet.test")
	m.fallas["usuario.update"] = errStore
	datos := &dto.DatosActualizacion{Email: ptr("new@vet.test")}

	_, err := newTestService(m, nil).ActualizarPerfil(context.Background(), testAdmin, id.String(), datos, nil, nil)

	require.Error(t, err)
	assert.Equal(t, KindProfileUpdate, KindOf(err))
	assert.Equal(t, "new@vet.test", m.identidades[id].Email)
	assert.Equal(t, "old@vet.test", m.usuarios[id].Email)
}

func TestActualizarPerfil_SameEmailSkipsIdentityWrite(t *testing.T) {
	m := newMundo()
	id := m.sembrarUsuario(t, rolClienteID, "same@vet.test")
	datos := &dto.DatosActualizacion{Email: ptr("same@vet.test")}
	svc := newTestService(m, nil)

	for i := 0; i < 2; i++ {
		_, err := svc.ActualizarPerfil(context.Background(), testAdmin, id.String(), datos, nil, nil)
		require.NoError(t, err)
	}

	assert.False(t, m.llamo("identidad.update_email"))
	assert.Equal(t, "same@vet.test", m.usuarios[id].Email)
}

func TestActualizarPerfil_IdentityFailureStopsBeforeRelationalWrites(t *testing.T) {
	m := newMundo()
	id := m.sembrarUsuario(t, rolClienteID, "old@vet.test")
	m.fallas["identidad.update_email"] = errStore
	datos := &dto.DatosActualizacion{Email: ptr("new@vet.test"), Name: ptr("Otro")}

	_, err := newTestService(m, nil).ActualizarPerfil(context.Background(), testAdmin, id.String(), datos, ptr(rolVeterinarioID), nil)

	require.Error(t, err)
	assert.Equal(t, KindIdentityUpdate, KindOf(err))
	assert.Equal(t, []string{"identidad.update_email"}, m.escrituras())
	assert.Equal(t, "Seed", m.usuarios[id].Nombre)
}

func TestActualizarPerfil_UnknownUser(t *testing.T) {
	m := newMundo()
	datos := &dto.DatosActualizacion{Name: ptr("Alguien")}

	_, err := newTestService(m, nil).ActualizarPerfil(context.Background(), testAdmin, uuid.NewString(), datos, nil, nil)

	require.Error(t, err)
	assert.Equal(t, KindProfileUpdate, KindOf(err))
	assert.Equal(t, "Usuario no encontrado", MessageOf(err))
}

func TestActualizarPerfil_ClienteToVeterinario(t *testing.T) {
	m := newMundo()
	id := m.sembrarUsuario(t, rolClienteID, "c@vet.test")
	datos := &dto.DatosActualizacion{Name: ptr("Carla"), Phone: ptr("999")}

	_, err := newTestService(m, nil).ActualizarPerfil(context.Background(), testAdmin, id.String(), datos, ptr(rolVeterinarioID), ptr("aves"))

	require.NoError(t, err)
	assert.Equal(t, rolVeterinarioID, m.rolesUsuario[id])
	assert.NotContains(t, m.clientes, id)
	require.Contains(t, m.veterinarios, id)
	vet := m.veterinarios[id]
	assert.Equal(t, "Carla", vet.Nombre)
	assert.Equal(t, "c@vet.test", vet.Email)
	assert.Equal(t, "999", vet.Telefono)
	require.NotNil(t, vet.Especialidad)
	assert.Equal(t, "aves", *vet.Especialidad)
	assert.Less(t, m.indice("rol_usuario.update"), m.indice("cliente.delete"))
	assert.Less(t, m.indice("cliente.delete"), m.indice("veterinario.create"))
}

func TestActualizarPerfil_VeterinarioToRoleWithoutProfile(t *testing.T) {
	m := newMundo()
	id := m.sembrarUsuario(t, rolVeterinarioID, "v@vet.test")

	_, err := newTestService(m, nil).ActualizarPerfil(context.Background(), testAdmin, id.String(),
		&dto.DatosActualizacion{}, ptr(rolRecepcionistaID), nil)

	require.NoError(t, err)
	assert.Equal(t, rolRecepcionistaID, m.rolesUsuario[id])
	assert.Empty(t, m.veterinarios)
	assert.Empty(t, m.clientes)
	assert.False(t, m.llamo("usuario.update"), "an empty patch does not touch the user record")
}

func TestActualizarPerfil_SameRoleSpecialtyOnly(t *testing.T) {
	m := newMundo()
	id := m.sembrarUsuario(t, rolVeterinarioID, "v@vet.test")

	_, err := newTestService(m, nil).ActualizarPerfil(context.Background(), testAdmin, id.String(),
		&dto.DatosActualizacion{}, ptr(rolVeterinarioID), ptr("dermatologia"))

	require.NoError(t, err)
	require.Contains(t, m.veterinarios, id)
	assert.Equal(t, "dermatologia", *m.veterinarios[id].Especialidad)
	assert.Equal(t, []string{"veterinario.update_especialidad"}, m.escrituras())
}

func TestActualizarPerfil_SameRoleSameSpecialtyIsNoop(t *testing.T) {
	m := newMundo()
	id := m.sembrarUsuario(t, rolVeterinarioID, "v@vet.test")

	_, err := newTestService(m, nil).ActualizarPerfil(context.Background(), testAdmin, id.String(),
		&dto.DatosActualizacion{}, ptr(rolVeterinarioID), ptr("felinos"))

	require.NoError(t, err)
	assert.Empty(t, m.escrituras())
}

func TestActualizarPerfil_UnknownNewRole(t *testing.T) {
	m := newMundo()
	id := m.sembrarUsuario(t, rolClienteID, "c@vet.test")

	_, err := newTestService(m, nil).ActualizarPerfil(context.Background(), testAdmin, id.String(),
		&dto.DatosActualizacion{Name: ptr("Nombre Nuevo")}, ptr(int64(99)), nil)

	require.Error(t, err)
	assert.Equal(t, KindRoleResolution, KindOf(err))
	assert.Equal(t, "Nombre Nuevo", m.usuarios[id].Nombre, "earlier steps are not rolled back")
	assert.Equal(t, rolClienteID, m.rolesUsuario[id])
	assert.Contains(t, m.clientes, id)
}

func TestActualizarPerfil_RoleAssignmentFailureKeepsOldProfile(t *testing.T) {
	m := newMundo()
	id := m.sembrarUsuario(t, rolClienteID, "c@vet.test")
	m.fallas["rol_usuario.update"] = errStore

	_, err := newTestService(m, nil).ActualizarPerfil(context.Background(), testAdmin, id.String(),
		&dto.DatosActualizacion{}, ptr(rolVeterinarioID), nil)

	require.Error(t, err)
	assert.Equal(t, KindRoleAssignment, KindOf(err))
	assert.Equal(t, rolClienteID, m.rolesUsuario[id])
	assert.Contains(t, m.clientes, id)
	assert.Empty(t, m.veterinarios)
}

func TestActualizarPerfil_NewProfileFailure(t *testing.T) {
	m := newMundo()
	id := m.sembrarUsuario(t, rolClienteID, "c@vet.test")
	m.fallas["veterinario.create"] = errStore

	_, err := newTestService(m, nil).ActualizarPerfil(context.Background(), testAdmin, id.String(),
		&dto.DatosActualizacion{}, ptr(rolVeterinarioID), nil)

	require.Error(t, err)
	assert.Equal(t, KindRoleProfile, KindOf(err))
	assert.Equal(t, rolVeterinarioID, m.rolesUsuario[id])
	assert.NotContains(t, m.clientes, id)
	assert.Empty(t, m.veterinarios)
}

func TestActualizarPerfil_OldProfileDeleteFailureIsTolerated(t *testing.T) {
	m := newMundo()
	id := m.sembrarUsuario(t, rolClienteID, "c@vet.test")
	m.fallas["cliente.delete"] = errStore

	_, err := newTestService(m, nil).ActualizarPerfil(context.Background(), testAdmin, id.String(),
		&dto.DatosActualizacion{}, ptr(rolVeterinarioID), nil)

	require.NoError(t, err)
	assert.Contains(t, m.veterinarios, id)
}

func TestActualizarPerfil_InvalidRequests(t *testing.T) {
	id := uuid.NewString()
	tests := []struct {
		name   string
		userID string
		datos  *dto.DatosActualizacion
		msg    string
	}{
		{"missing user id", "", &dto.DatosActualizacion{}, "userId es requerido"},
		{"missing update data", id, nil, "updateData es requerido"},
		{"invalid email", id, &dto.DatosActualizacion{Email: ptr("x")}, "Error de validacion"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMundo()
			_, err := newTestService(m, nil).ActualizarPerfil(context.Background(), testAdmin, tt.userID, tt.datos, nil, nil)

			require.Error(t, err)
			assert.Equal(t, KindInvalidRequest, KindOf(err))
			assert.Equal(t, tt.msg, MessageOf(err))
			assert.Empty(t, m.llamadas)
		})
	}
}

// ── dispatch ─────────────────────────────────────────────────────────────────

func TestEjecutar_Dispatch(t *testing.T) {
	m := newMundo()
	svc := newTestService(m, nil)

	created, err := svc.Ejecutar(context.Background(), testAdmin, dto.AccionRequest{
		Action:    dto.AccionAdd,
		UserData:  datosVeterinario(),
		Specialty: ptr("ignorada"),
	})
	require.NoError(t, err)
	id := uuid.MustParse(created.UserID)
	assert.Equal(t, "exoticos", *m.veterinarios[id].Especialidad, "userData.specialty wins")

	_, err = svc.Ejecutar(context.Background(), testAdmin, dto.AccionRequest{
		Action:     dto.AccionUpdateProfile,
		UserID:     created.UserID,
		UpdateData: &dto.DatosActualizacion{Phone: ptr("777")},
	})
	require.NoError(t, err)
	assert.Equal(t, "777", m.usuarios[id].Telefono)

	_, err = svc.Ejecutar(context.Background(), testAdmin, dto.AccionRequest{
		Action: dto.AccionDelete,
		UserID: created.UserID,
	})
	require.NoError(t, err)
	assert.Empty(t, m.identidades)
	assert.Empty(t, m.usuarios)
	assert.Empty(t, m.rolesUsuario)
	assert.Empty(t, m.veterinarios)
}

func TestEjecutar_UnknownAction(t *testing.T) {
	m := newMundo()

	_, err := newTestService(m, nil).Ejecutar(context.Background(), testAdmin, dto.AccionRequest{Action: "purge"})

	require.Error(t, err)
	assert.Equal(t, KindInvalidRequest, KindOf(err))
	assert.Equal(t, "Accion no valida", MessageOf(err))
	assert.Empty(t, m.llamadas)
}
