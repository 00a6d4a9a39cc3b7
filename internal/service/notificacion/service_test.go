package notificacion

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escueladigital/escuela-api/internal/model"
	"github.com/escueladigital/escuela-api/internal/repository"
)

type fakeRepo struct {
	notificaciones []*model.Notificacion
	listErr        error
	bulkErr        error
	bulkCount      int
	markAllCount   int64
}

func (f *fakeRepo) Create(_ context.Context, n *model.Notificacion) error {
	n.ID = uuid.New()
	n.Fecha = time.Now()
	f.notificaciones = append(f.notificaciones, n)
	return nil
}

func (f *fakeRepo) CreateBulk(_ context.Context, ownerIDs []uuid.UUID, plantilla *model.Notificacion) (int, error) {
	if f.bulkErr != nil {
		return 0, f.bulkErr
	}
	f.bulkCount = len(ownerIDs)
	return len(ownerIDs), nil
}

func (f *fakeRepo) Get(_ context.Context, id uuid.UUID) (*model.Notificacion, error) {
	for _, n := range f.notificaciones {
		if n.ID == id {
			return n, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeRepo) ListForUser(_ context.Context, ownerID uuid.UUID, skip, limit int, soloNoLeidas bool) ([]*model.Notificacion, int, int, error) {
	if f.listErr != nil {
		return nil, 0, 0, f.listErr
	}

	noLeidas := 0
	filtered := []*model.Notificacion{}
	for _, n := range f.notificaciones {
		if n.IDUsuario != ownerID {
			continue
		}
		if !n.Leida {
			noLeidas++
		}
		if soloNoLeidas && n.Leida {
			continue
		}
		filtered = append(filtered, n)
	}

	total := len(filtered)
	if skip > len(filtered) {
		skip = len(filtered)
	}
	end := skip + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[skip:end], total, noLeidas, nil
}

func (f *fakeRepo) UpdatePartial(ctx context.Context, id uuid.UUID, req *model.ActualizarNotificacionRequest) (*model.Notificacion, error) {
	n, err := f.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Leida != nil {
		n.Leida = *req.Leida
	}
	if req.Accionable != nil {
		n.Accionable = *req.Accionable
	}
	return n, nil
}

func (f *fakeRepo) MarkRead(ctx context.Context, id uuid.UUID) (*model.Notificacion, error) {
	n, err := f.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	n.Leida = true
	return n, nil
}

func (f *fakeRepo) MarkAllRead(_ context.Context, ownerID uuid.UUID) (int64, error) {
	var count int64
	for _, n := range f.notificaciones {
		if n.IDUsuario == ownerID && !n.Leida {
			n.Leida = true
			count++
		}
	}
	f.markAllCount = count
	return count, nil
}

func (f *fakeRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	for i, n := range f.notificaciones {
		if n.ID == id {
			f.notificaciones = append(f.notificaciones[:i], f.notificaciones[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func seed(repo *fakeRepo, ownerID uuid.UUID, leida bool) *model.Notificacion {
	n := &model.Notificacion{
		ID:        uuid.New(),
		IDUsuario: ownerID,
		Titulo:    "titulo",
		Mensaje:   "mensaje",
		Tipo:      model.TipoSistema,
		Leida:     leida,
		Fecha:     time.Now(),
	}
	repo.notificaciones = append(repo.notificaciones, n)
	return n
}

func TestListForUserCounts(t *testing.T) {
	repo := &fakeRepo{}
	owner := uuid.New()
	for i := 0; i < 2; i++ {
		seed(repo, owner, false)
	}
	for i := 0; i < 5; i++ {
		seed(repo, owner, true)
	}
	seed(repo, uuid.New(), false)

	svc := NewService(repo)

	// solo_no_leidas: total reflects the filter, no_leidas stays global
	res := svc.ListForUser(context.Background(), owner, 0, 10, true)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 2, res.NoLeidas)
	assert.LessOrEqual(t, len(res.Notificaciones), 10)
	for _, n := range res.Notificaciones {
		assert.False(t, n.Leida)
	}

	// without the filter the total covers everything, no_leidas is unchanged
	res = svc.ListForUser(context.Background(), owner, 0, 10, false)
	assert.Equal(t, 7, res.Total)
	assert.Equal(t, 2, res.NoLeidas)
}

func TestListForUserUnreadCountInvariantUnderPagination(t *testing.T) {
	repo := &fakeRepo{}
	owner := uuid.New()
	for i := 0; i < 4; i++ {
		seed(repo, owner, false)
	}
	for i := 0; i < 6; i++ {
		seed(repo, owner, true)
	}

	svc := NewService(repo)

	for _, skip := range []int{0, 3, 8, 20} {
		res := svc.ListForUser(context.Background(), owner, skip, 2, false)
		assert.Equal(t, 4, res.NoLeidas, "skip=%d", skip)
		assert.Equal(t, 10, res.Total, "skip=%d", skip)
	}
}

func TestListForUserFailSoft(t *testing.T) {
	repo := &fakeRepo{listErr: errors.New("db down")}
	svc := NewService(repo)

	res := svc.ListForUser(context.Background(), uuid.New(), 0, 10, false)
	assert.Empty(t, res.Notificaciones)
	assert.Equal(t, 0, res.Total)
	assert.Equal(t, 0, res.NoLeidas)
}

func TestListForUserNilOwner(t *testing.T) {
	repo := &fakeRepo{}
	seed(repo, uuid.New(), false)
	svc := NewService(repo)

	res := svc.ListForUser(context.Background(), uuid.Nil, 0, 10, false)
	assert.Empty(t, res.Notificaciones)
	assert.Equal(t, 0, res.Total)
	assert.Equal(t, 0, res.NoLeidas)
}

func TestCreateBulkDefaultsTipoSistema(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	count, err := svc.CreateBulk(context.Background(), &model.CrearNotificacionMasivaRequest{
		IDsUsuarios: []uuid.UUID{uuid.New(), uuid.New()},
		Titulo:      "titulo",
		Mensaje:     "mensaje",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestMarkReadIsIdempotent(t *testing.T) {
	repo := &fakeRepo{}
	owner := uuid.New()
	n := seed(repo, owner, false)

	svc := NewService(repo)

	first, err := svc.MarkRead(context.Background(), n.ID)
	require.NoError(t, err)
	assert.True(t, first.Leida)

	second, err := svc.MarkRead(context.Background(), n.ID)
	require.NoError(t, err)
	assert.True(t, second.Leida)
}

func TestMarkAllReadWithNothingUnread(t *testing.T) {
	repo := &fakeRepo{}
	owner := uuid.New()
	seed(repo, owner, true)
	seed(repo, owner, true)

	svc := NewService(repo)

	count, err := svc.MarkAllRead(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestMarkAllReadCountsOnlyUnread(t *testing.T) {
	repo := &fakeRepo{}
	owner := uuid.New()
	seed(repo, owner, false)
	seed(repo, owner, false)
	seed(repo, owner, true)

	svc := NewService(repo)

	count, err := svc.MarkAllRead(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
