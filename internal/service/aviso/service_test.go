package aviso

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escueladigital/escuela-api/internal/model"
	"github.com/escueladigital/escuela-api/internal/repository"
)

type fakeAvisoRepo struct {
	avisos    []*model.Aviso
	createErr error
}

func (f *fakeAvisoRepo) Create(_ context.Context, aviso *model.Aviso) error {
	if f.createErr != nil {
		return f.createErr
	}
	aviso.ID = uuid.New()
	f.avisos = append(f.avisos, aviso)
	return nil
}

func (f *fakeAvisoRepo) List(_ context.Context, skip, limit int) ([]*model.Aviso, error) {
	return f.avisos, nil
}

func (f *fakeAvisoRepo) ListByDestinatario(_ context.Context, destinatario string, skip, limit int) ([]*model.Aviso, error) {
	out := []*model.Aviso{}
	for _, a := range f.avisos {
		if a.Destinatario == destinatario {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAvisoRepo) Update(_ context.Context, id uuid.UUID, req *model.ActualizarAvisoRequest) (*model.Aviso, error) {
	for _, a := range f.avisos {
		if a.ID == id {
			if req.Titulo != nil {
				a.Titulo = *req.Titulo
			}
			if req.Contenido != nil {
				a.Contenido = *req.Contenido
			}
			if req.Destinatario != nil {
				a.Destinatario = *req.Destinatario
			}
			return a, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeAvisoRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	for i, a := range f.avisos {
		if a.ID == id {
			f.avisos = append(f.avisos[:i], f.avisos[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type bulkCall struct {
	ownerIDs  []uuid.UUID
	plantilla *model.Notificacion
}

type fakeNotificacionRepo struct {
	bulkCalls []bulkCall
	bulkErr   error
}

func (f *fakeNotificacionRepo) Create(_ context.Context, n *model.Notificacion) error { return nil }

func (f *fakeNotificacionRepo) CreateBulk(_ context.Context, ownerIDs []uuid.UUID, plantilla *model.Notificacion) (int, error) {
	if f.bulkErr != nil {
		return 0, f.bulkErr
	}
	f.bulkCalls = append(f.bulkCalls, bulkCall{ownerIDs: ownerIDs, plantilla: plantilla})
	return len(ownerIDs), nil
}

func (f *fakeNotificacionRepo) Get(_ context.Context, id uuid.UUID) (*model.Notificacion, error) {
	return nil, repository.ErrNotFound
}

func (f *fakeNotificacionRepo) ListForUser(_ context.Context, ownerID uuid.UUID, skip, limit int, soloNoLeidas bool) ([]*model.Notificacion, int, int, error) {
	return nil, 0, 0, nil
}

func (f *fakeNotificacionRepo) UpdatePartial(_ context.Context, id uuid.UUID, req *model.ActualizarNotificacionRequest) (*model.Notificacion, error) {
	return nil, repository.ErrNotFound
}

func (f *fakeNotificacionRepo) MarkRead(_ context.Context, id uuid.UUID) (*model.Notificacion, error) {
	return nil, repository.ErrNotFound
}

func (f *fakeNotificacionRepo) MarkAllRead(_ context.Context, ownerID uuid.UUID) (int64, error) {
	return 0, nil
}

func (f *fakeNotificacionRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	return false, nil
}

type fakeUsuarioRepo struct {
	usuarios     []*model.Usuario
	listErr      error
	activosCalls int
	rolCalls     int
}

func (f *fakeUsuarioRepo) Create(_ context.Context, u *model.Usuario) error { return nil }

func (f *fakeUsuarioRepo) Get(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	return nil, repository.ErrNotFound
}

func (f *fakeUsuarioRepo) GetByEmail(_ context.Context, email string) (*model.Usuario, error) {
	return nil, repository.ErrNotFound
}

func (f *fakeUsuarioRepo) ListActivos(_ context.Context) ([]*model.Usuario, error) {
	f.activosCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []*model.Usuario{}
	for _, u := range f.usuarios {
		if u.Activo {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUsuarioRepo) ListByRol(_ context.Context, rol string) ([]*model.Usuario, error) {
	f.rolCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []*model.Usuario{}
	for _, u := range f.usuarios {
		if u.Rol == rol && u.Activo {
			out = append(out, u)
		}
	}
	return out, nil
}

func usuario(rol string) *model.Usuario {
	return &model.Usuario{ID: uuid.New(), Rol: rol, Activo: true}
}

func TestCreateAvisoFanoutPadres(t *testing.T) {
	usuarios := &fakeUsuarioRepo{usuarios: []*model.Usuario{
		usuario(model.RolPadre),
		usuario(model.RolPadre),
		usuario(model.RolPadre),
		usuario(model.RolProfesor),
	}}
	notifs := &fakeNotificacionRepo{}
	svc := NewService(&fakeAvisoRepo{}, notifs, NewUserResolver(usuarios))

	aviso, err := svc.Create(context.Background(), &model.CrearAvisoRequest{
		Titulo:       "Reunión",
		Contenido:    "Mañana 8am",
		Destinatario: model.DestinatarioPadres,
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, aviso.ID)

	require.Len(t, notifs.bulkCalls, 1)
	call := notifs.bulkCalls[0]
	assert.Len(t, call.ownerIDs, 3)

	assert.Equal(t, "Nuevo aviso: Reunión", call.plantilla.Titulo)
	assert.Equal(t, "Mañana 8am", call.plantilla.Mensaje)
	assert.Equal(t, model.TipoAviso, call.plantilla.Tipo)
	assert.True(t, call.plantilla.Accionable)
	require.NotNil(t, call.plantilla.Accion)
	assert.Equal(t, "ver-aviso", *call.plantilla.Accion)
	require.NotNil(t, call.plantilla.AccionTexto)
	assert.Equal(t, "Ver aviso completo", *call.plantilla.AccionTexto)
	require.NotNil(t, call.plantilla.ReferenciaID)
	assert.Equal(t, aviso.ID, *call.plantilla.ReferenciaID)
	require.NotNil(t, call.plantilla.ReferenciaTipo)
	assert.Equal(t, "aviso", *call.plantilla.ReferenciaTipo)
}

func TestCreateAvisoFanoutTodos(t *testing.T) {
	inactivo := usuario(model.RolAlumno)
	inactivo.Activo = false

	usuarios := &fakeUsuarioRepo{usuarios: []*model.Usuario{
		usuario(model.RolPadre),
		usuario(model.RolProfesor),
		usuario(model.RolDireccion),
		inactivo,
	}}
	notifs := &fakeNotificacionRepo{}
	svc := NewService(&fakeAvisoRepo{}, notifs, NewUserResolver(usuarios))

	_, err := svc.Create(context.Background(), &model.CrearAvisoRequest{
		Titulo:       "Cierre",
		Contenido:    "El viernes no hay clase",
		Destinatario: model.DestinatarioTodos,
	})
	require.NoError(t, err)

	require.Len(t, notifs.bulkCalls, 1)
	assert.Len(t, notifs.bulkCalls[0].ownerIDs, 3)
}

func TestCreateAvisoFanoutDestinatarioDesconocido(t *testing.T) {
	usuarios := &fakeUsuarioRepo{usuarios: []*model.Usuario{usuario(model.RolPadre)}}
	notifs := &fakeNotificacionRepo{}
	svc := NewService(&fakeAvisoRepo{}, notifs, NewUserResolver(usuarios))

	aviso, err := svc.Create(context.Background(), &model.CrearAvisoRequest{
		Titulo:       "Aviso",
		Contenido:    "Contenido",
		Destinatario: "alumnos",
	})
	require.NoError(t, err)
	assert.NotNil(t, aviso)
	assert.Empty(t, notifs.bulkCalls)
}

func TestCreateAvisoFanoutBulkFailureIsSwallowed(t *testing.T) {
	usuarios := &fakeUsuarioRepo{usuarios: []*model.Usuario{usuario(model.RolProfesor)}}
	notifs := &fakeNotificacionRepo{bulkErr: errors.New("insert failed")}
	svc := NewService(&fakeAvisoRepo{}, notifs, NewUserResolver(usuarios))

	aviso, err := svc.Create(context.Background(), &model.CrearAvisoRequest{
		Titulo:       "Claustro",
		Contenido:    "Lunes 17h",
		Destinatario: model.DestinatarioProfesores,
	})
	require.NoError(t, err)
	assert.NotNil(t, aviso)
}

func TestCreateAvisoFanoutResolutionFailureIsSwallowed(t *testing.T) {
	usuarios := &fakeUsuarioRepo{listErr: errors.New("db down")}
	notifs := &fakeNotificacionRepo{}
	svc := NewService(&fakeAvisoRepo{}, notifs, NewUserResolver(usuarios))

	aviso, err := svc.Create(context.Background(), &model.CrearAvisoRequest{
		Titulo:       "Aviso",
		Contenido:    "Contenido",
		Destinatario: model.DestinatarioTodos,
	})
	require.NoError(t, err)
	assert.NotNil(t, aviso)
	assert.Empty(t, notifs.bulkCalls)
}

func TestCreateAvisoRepoFailurePropagates(t *testing.T) {
	repo := &fakeAvisoRepo{createErr: errors.New("insert failed")}
	notifs := &fakeNotificacionRepo{}
	svc := NewService(repo, notifs, NewUserResolver(&fakeUsuarioRepo{}))

	_, err := svc.Create(context.Background(), &model.CrearAvisoRequest{
		Titulo:       "Aviso",
		Contenido:    "Contenido",
		Destinatario: model.DestinatarioTodos,
	})
	require.Error(t, err)
	assert.Empty(t, notifs.bulkCalls)
}

func TestCreateAvisoFanoutSeesNewUsers(t *testing.T) {
	usuarios := &fakeUsuarioRepo{usuarios: []*model.Usuario{
		usuario(model.RolPadre),
		usuario(model.RolPadre),
		usuario(model.RolPadre),
	}}
	notifs := &fakeNotificacionRepo{}
	svc := NewService(&fakeAvisoRepo{}, notifs, NewUserResolver(usuarios))

	req := &model.CrearAvisoRequest{
		Titulo:       "Excursión",
		Contenido:    "Autorización pendiente",
		Destinatario: model.DestinatarioPadres,
	}
	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	// a padre registered after the first aviso must receive the second
	usuarios.usuarios = append(usuarios.usuarios, usuario(model.RolPadre))

	_, err = svc.Create(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, notifs.bulkCalls, 2)
	assert.Len(t, notifs.bulkCalls[0].ownerIDs, 3)
	assert.Len(t, notifs.bulkCalls[1].ownerIDs, 4)
}

func TestCreateAvisoFanoutSkipsDeactivatedUsers(t *testing.T) {
	baja := usuario(model.RolProfesor)
	usuarios := &fakeUsuarioRepo{usuarios: []*model.Usuario{
		usuario(model.RolProfesor),
		baja,
	}}
	notifs := &fakeNotificacionRepo{}
	svc := NewService(&fakeAvisoRepo{}, notifs, NewUserResolver(usuarios))

	req := &model.CrearAvisoRequest{
		Titulo:       "Claustro",
		Contenido:    "Jueves 17h",
		Destinatario: model.DestinatarioProfesores,
	}
	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	baja.Activo = false

	_, err = svc.Create(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, notifs.bulkCalls, 2)
	assert.Len(t, notifs.bulkCalls[0].ownerIDs, 2)
	assert.Len(t, notifs.bulkCalls[1].ownerIDs, 1)
	assert.NotContains(t, notifs.bulkCalls[1].ownerIDs, baja.ID)
}
