package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/NE0NOE/Veterinaria-gestor-sub002/internal/model"
	"github.com/NE0NOE/Veterinaria-gestor-sub002/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ── In-memory stores ──────────────────────────────────────────────────────────

// mundo holds every table of the stub stores plus an ordered log of the
// operations called on them. Setting fallas[op] makes that operation fail.
type mundo struct {
	identidades  map[uuid.UUID]*model.Identidad
	tokens       map[string]uuid.UUID
	usuarios     map[uuid.UUID]*model.Usuario
	roles        map[int64]*model.Rol
	rolesUsuario map[uuid.UUID]int64
	veterinarios map[uuid.UUID]*model.Veterinario
	clientes     map[uuid.UUID]*model.Cliente

	fallas   map[string]error
	llamadas []string
}

const (
	rolAdminID         int64 = 1
	rolVeterinarioID   int64 = 2
	rolClienteID       int64 = 3
	rolRecepcionistaID int64 = 4
)

var errStore = errors.New("store unavailable")

func newMundo() *mundo {
	return &mundo{
		identidades: make(map[uuid.UUID]*model.Identidad),
		tokens:      make(map[string]uuid.UUID),
		usuarios:    make(map[uuid.UUID]*model.Usuario),
		roles: map[int64]*model.Rol{
			rolAdminID:         {ID: rolAdminID, Nombre: model.RolAdmin},
			rolVeterinarioID:   {ID: rolVeterinarioID, Nombre: model.RolVeterinario},
			rolClienteID:       {ID: rolClienteID, Nombre: model.RolCliente},
			rolRecepcionistaID: {ID: rolRecepcionistaID, Nombre: "recepcionista"},
		},
		rolesUsuario: make(map[uuid.UUID]int64),
		veterinarios: make(map[uuid.UUID]*model.Veterinario),
		clientes:     make(map[uuid.UUID]*model.Cliente),
		fallas:       make(map[string]error),
	}
}

func (m *mundo) registrar(op string) error {
	m.llamadas = append(m.llamadas, op)
	return m.fallas[op]
}

// escrituras lists the mutating operations that were called.
func (m *mundo) escrituras() []string {
	var out []string
	for _, op := range m.llamadas {
		if strings.HasSuffix(op, ".find") || strings.HasSuffix(op, ".resolve") {
			continue
		}
		out = append(out, op)
	}
	return out
}

func (m *mundo) llamo(op string) bool {
	for _, c := range m.llamadas {
		if c == op {
			return true
		}
	}
	return false
}

func (m *mundo) indice(op string) int {
	for i, c := range m.llamadas {
		if c == op {
			return i
		}
	}
	return -1
}

// sembrarUsuario creates a fully consistent user with the given role.
func (m *mundo) sembrarUsuario(t *testing.T, rolID int64, email string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	m.identidades[id] = &model.Identidad{ID: id, Email: email, EmailConfirmado: true,
		Metadata: map[string]interface{}{"name": "Seed"}}
	m.usuarios[id] = &model.Usuario{ID: id, Nombre: "Seed", Email: email, Telefono: "111", Activo: true}
	m.rolesUsuario[id] = rolID
	switch m.roles[rolID].Nombre {
	case model.RolVeterinario:
		esp := "felinos"
		m.veterinarios[id] = &model.Veterinario{ID: id, Nombre: "Seed", Email: email, Telefono: "111", Especialidad: &esp}
	case model.RolCliente:
		m.clientes[id] = &model.Cliente{ID: id, Nombre: "Seed", Email: email, Telefono: "111"}
	}
	return id
}

type stubIdentidades struct{ m *mundo }

func (s stubIdentidades) ResolveToken(_ context.Context, token string) (*model.Identidad, error) {
	if err := s.m.registrar("identidad.resolve"); err != nil {
		return nil, err
	}
	id, ok := s.m.tokens[token]
	if !ok {
		return nil, errors.New("invalid token")
	}
	ident, ok := s.m.identidades[id]
	if !ok {
		return nil, errors.New("identity not found")
	}
	return ident, nil
}

func (s stubIdentidades) Create(_ context.Context, n model.NuevaIdentidad) (*model.Identidad, error) {
	if err := s.m.registrar("identidad.create"); err != nil {
		return nil, err
	}
	for _, i := range s.m.identidades {
		if i.Email == n.Email {
			return nil, repository.ErrEmailDuplicado
		}
	}
	ident := &model.Identidad{ID: uuid.New(), Email: n.Email, EmailConfirmado: true,
		Metadata: map[string]interface{}{"name": n.Nombre}}
	s.m.identidades[ident.ID] = ident
	return ident, nil
}

func (s stubIdentidades) FindByID(_ context.Context, id uuid.UUID) (*model.Identidad, error) {
	if err := s.m.registrar("identidad.find"); err != nil {
		return nil, err
	}
	ident, ok := s.m.identidades[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *ident
	return &cp, nil
}

func (s stubIdentidades) UpdateEmail(_ context.Context, id uuid.UUID, email string) error {
	if err := s.m.registrar("identidad.update_email"); err != nil {
		return err
	}
	ident, ok := s.m.identidades[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	ident.Email = email
	return nil
}

func (s stubIdentidades) Delete(_ context.Context, id uuid.UUID) error {
	if err := s.m.registrar("identidad.delete"); err != nil {
		return err
	}
	if _, ok := s.m.identidades[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.m.identidades, id)
	return nil
}

type stubUsuarios struct{ m *mundo }

func (s stubUsuarios) Create(_ context.Context, u *model.Usuario) error {
	if err := s.m.registrar("usuario.create"); err != nil {
		return err
	}
	cp := *u
	s.m.usuarios[u.ID] = &cp
	return nil
}

func (s stubUsuarios) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	if err := s.m.registrar("usuario.find"); err != nil {
		return nil, err
	}
	u, ok := s.m.usuarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (s stubUsuarios) Update(_ context.Context, id uuid.UUID, p model.UsuarioPatch) error {
	if p.Vacio() {
		return nil
	}
	if err := s.m.registrar("usuario.update"); err != nil {
		return err
	}
	u, ok := s.m.usuarios[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if p.Nombre != nil {
		u.Nombre = *p.Nombre
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Telefono != nil {
		u.Telefono = *p.Telefono
	}
	return nil
}

func (s stubUsuarios) Delete(_ context.Context, id uuid.UUID) error {
	if err := s.m.registrar("usuario.delete"); err != nil {
		return err
	}
	if _, ok := s.m.usuarios[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.m.usuarios, id)
	return nil
}

type stubRoles struct{ m *mundo }

func (s stubRoles) FindByID(_ context.Context, id int64) (*model.Rol, error) {
	if err := s.m.registrar("rol.find"); err != nil {
		return nil, err
	}
	r, ok := s.m.roles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r, nil
}

func (s stubRoles) FindByNombre(_ context.Context, nombre string) (*model.Rol, error) {
	if err := s.m.registrar("rol.find"); err != nil {
		return nil, err
	}
	for _, r := range s.m.roles {
		if r.Nombre == nombre {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type stubRolesUsuario struct{ m *mundo }

func (s stubRolesUsuario) FindByUsuarioID(_ context.Context, id uuid.UUID) (*model.RolUsuario, error) {
	if err := s.m.registrar("rol_usuario.find"); err != nil {
		return nil, err
	}
	rolID, ok := s.m.rolesUsuario[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &model.RolUsuario{UsuarioID: id, RolID: rolID}, nil
}

func (s stubRolesUsuario) Create(_ context.Context, ru *model.RolUsuario) error {
	if err := s.m.registrar("rol_usuario.create"); err != nil {
		return err
	}
	if _, ok := s.m.rolesUsuario[ru.UsuarioID]; ok {
		return errors.New("duplicate key")
	}
	s.m.rolesUsuario[ru.UsuarioID] = ru.RolID
	return nil
}

func (s stubRolesUsuario) UpdateRol(_ context.Context, id uuid.UUID, rolID int64) error {
	if err := s.m.registrar("rol_usuario.update"); err != nil {
		return err
	}
	if _, ok := s.m.rolesUsuario[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	s.m.rolesUsuario[id] = rolID
	return nil
}

func (s stubRolesUsuario) Delete(_ context.Context, id uuid.UUID) error {
	if err := s.m.registrar("rol_usuario.delete"); err != nil {
		return err
	}
	if _, ok := s.m.rolesUsuario[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.m.rolesUsuario, id)
	return nil
}

type stubVeterinarios struct{ m *mundo }

func (s stubVeterinarios) Create(_ context.Context, v *model.Veterinario) error {
	if err := s.m.registrar("veterinario.create"); err != nil {
		return err
	}
	cp := *v
	s.m.veterinarios[v.ID] = &cp
	return nil
}

func (s stubVeterinarios) FindByID(_ context.Context, id uuid.UUID) (*model.Veterinario, error) {
	if err := s.m.registrar("veterinario.find"); err != nil {
		return nil, err
	}
	v, ok := s.m.veterinarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *v
	return &cp, nil
}

func (s stubVeterinarios) UpdateEspecialidad(_ context.Context, id uuid.UUID, esp string) error {
	if err := s.m.registrar("veterinario.update_especialidad"); err != nil {
		return err
	}
	v, ok := s.m.veterinarios[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	v.Especialidad = &esp
	return nil
}

func (s stubVeterinarios) Delete(_ context.Context, id uuid.UUID) error {
	if err := s.m.registrar("veterinario.delete"); err != nil {
		return err
	}
	if _, ok := s.m.veterinarios[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.m.veterinarios, id)
	return nil
}

type stubClientes struct{ m *mundo }

func (s stubClientes) Create(_ context.Context, c *model.Cliente) error {
	if err := s.m.registrar("cliente.create"); err != nil {
		return err
	}
	cp := *c
	s.m.clientes[c.ID] = &cp
	return nil
}

func (s stubClientes) FindByID(_ context.Context, id uuid.UUID) (*model.Cliente, error) {
	if err := s.m.registrar("cliente.find"); err != nil {
		return nil, err
	}
	c, ok := s.m.clientes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (s stubClientes) Delete(_ context.Context, id uuid.UUID) error {
	if err := s.m.registrar("cliente.delete"); err != nil {
		return err
	}
	if _, ok := s.m.clientes[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.m.clientes, id)
	return nil
}

type stubNotificador struct {
	bienvenidas []string
	huerfanas   []uuid.UUID
	err         error
}

func (n *stubNotificador) Bienvenida(_ context.Context, email, _, _ string) error {
	n.bienvenidas = append(n.bienvenidas, email)
	return n.err
}

func (n *stubNotificador) IdentidadHuerfana(_ context.Context, id uuid.UUID, _ string) error {
	n.huerfanas = append(n.huerfanas, id)
	return n.err
}

var (
	_ IdentityStore                   = stubIdentidades{}
	_ repository.UsuarioRepository     = stubUsuarios{}
	_ repository.RolRepository         = stubRoles{}
	_ repository.RolUsuarioRepository  = stubRolesUsuario{}
	_ repository.VeterinarioRepository = stubVeterinarios{}
	_ repository.ClienteRepository     = stubClientes{}
)

// ── Helpers ───────────────────────────────────────────────────────────────────

func newTestService(m *mundo, n *stubNotificador) UsuarioAdminService {
	var notif Notificador
	if n != nil {
		notif = n
	}
	return NewUsuarioAdminService(
		stubIdentidades{m},
		stubUsuarios{m},
		stubRoles{m},
		stubRolesUsuario{m},
		NewPerfiles(stubVeterinarios{m}, stubClientes{m}),
		notif,
	)
}

func newTestGate(m *mundo) AuthGate {
	return NewAuthGate(stubIdentidades{m}, stubRolesUsuario{m}, stubRoles{m})
}

func ptr[T any](v T) *T { return &v }

var testAdmin = AdminContext{AdminID: uuid.New()}
