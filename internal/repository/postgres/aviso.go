package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/escueladigital/escuela-api/internal/model"
	"github.com/escueladigital/escuela-api/internal/repository"
)

type avisoRepository struct {
	BaseRepository
}

func NewAvisoRepository(base BaseRepository) repository.AvisoRepository {
	return &avisoRepository{base}
}

func (r *avisoRepository) Create(ctx context.Context, aviso *model.Aviso) error {
	query := `
		INSERT INTO aviso (id_aviso, titulo, contenido, destinatario, fecha_creacion, fecha_edicion)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	aviso.ID = uuid.New()
	aviso.FechaCreacion = time.Now()
	aviso.FechaEdicion = aviso.FechaCreacion

	_, err := r.db.ExecContext(ctx, query,
		aviso.ID,
		aviso.Titulo,
		aviso.Contenido,
		aviso.Destinatario,
		aviso.FechaCreacion,
		aviso.FechaEdicion,
	)
	if err != nil {
		return fmt.Errorf("failed to create aviso: %w", err)
	}
	return nil
}

func (r *avisoRepository) List(ctx context.Context, skip, limit int) ([]*model.Aviso, error) {
	query := `SELECT * FROM aviso ORDER BY fecha_creacion DESC OFFSET $1 LIMIT $2`
	avisos := []*model.Aviso{}
	if err := r.db.SelectContext(ctx, &avisos, query, skip, limit); err != nil {
		return nil, fmt.Errorf("failed to list avisos: %w", err)
	}
	return avisos, nil
}

// ListByDestinatario is a literal equality filter on whatever value the
// caller supplies; the "todos"/"para mi" validation lives at the API
// boundary.
func (r *avisoRepository) ListByDestinatario(ctx context.Context, destinatario string, skip, limit int) ([]*model.Aviso, error) {
	query := `SELECT * FROM aviso WHERE destinatario = $1 ORDER BY fecha_creacion DESC OFFSET $2 LIMIT $3`
	avisos := []*model.Aviso{}
	if err := r.db.SelectContext(ctx, &avisos, query, destinatario, skip, limit); err != nil {
		return nil, fmt.Errorf("failed to list avisos by destinatario: %w", err)
	}
	return avisos, nil
}

func (r *avisoRepository) Update(ctx context.Context, id uuid.UUID, req *model.ActualizarAvisoRequest) (*model.Aviso, error) {
	sets := []string{}
	args := []interface{}{}
	i := 1

	if req.Titulo != nil {
		sets = append(sets, fmt.Sprintf("titulo = $%d", i))
		args = append(args, *req.Titulo)
		i++
	}
	if req.Contenido != nil {
		sets = append(sets, fmt.Sprintf("contenido = $%d", i))
		args = append(args, *req.Contenido)
		i++
	}
	if req.Destinatario != nil {
		sets = append(sets, fmt.Sprintf("destinatario = $%d", i))
		args = append(args, *req.Destinatario)
		i++
	}

	if len(sets) == 0 {
		return r.get(ctx, id)
	}

	sets = append(sets, fmt.Sprintf("fecha_edicion = $%d", i))
	args = append(args, time.Now())
	i++
	args = append(args, id)

	query := "UPDATE aviso SET "
	for n, s := range sets {
		if n > 0 {
			query += ", "
		}
		query += s
	}
	query += fmt.Sprintf(" WHERE id_aviso = $%d RETURNING *", i)

	var aviso model.Aviso
	if err := r.db.GetContext(ctx, &aviso, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update aviso: %w", err)
	}
	return &aviso, nil
}

func (r *avisoRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM aviso WHERE id_aviso = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete aviso: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete aviso: %w", err)
	}
	return affected > 0, nil
}

func (r *avisoRepository) get(ctx context.Context, id uuid.UUID) (*model.Aviso, error) {
	var aviso model.Aviso
	if err := r.db.GetContext(ctx, &aviso, `SELECT * FROM aviso WHERE id_aviso = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get aviso: %w", err)
	}
	return &aviso, nil
}
