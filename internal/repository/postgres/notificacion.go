package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/escueladigital/escuela-api/internal/model"
	"github.com/escueladigital/escuela-api/internal/repository"
)

type notificacionRepository struct {
	BaseRepository
}

func NewNotificacionRepository(base BaseRepository) repository.NotificacionRepository {
	return &notificacionRepository{base}
}

const notificacionColumns = `
	id_notificacion, id_usuario, titulo, mensaje, fecha, tipo, leida,
	accionable, accion, accion_texto, accion_icono, referencia_id, referencia_tipo
`

func (r *notificacionRepository) Create(ctx context.Context, n *model.Notificacion) error {
	query := `
		INSERT INTO notificacion (` + notificacionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	n.ID = uuid.New()
	n.Fecha = time.Now()
	n.Leida = false

	_, err := r.db.ExecContext(ctx, query,
		n.ID,
		n.IDUsuario,
		n.Titulo,
		n.Mensaje,
		n.Fecha,
		n.Tipo,
		n.Leida,
		n.Accionable,
		n.Accion,
		n.AccionTexto,
		n.AccionIcono,
		n.ReferenciaID,
		n.ReferenciaTipo,
	)
	if err != nil {
		return fmt.Errorf("failed to create notificacion: %w", err)
	}
	return nil
}

// CreateBulk writes one row per owner id with the template's content.
// The rows go in as a single multi-row INSERT inside one transaction, so
// the batch is all-or-nothing.
func (r *notificacionRepository) CreateBulk(ctx context.Context, ownerIDs []uuid.UUID, plantilla *model.Notificacion) (int, error) {
	if len(ownerIDs) == 0 {
		return 0, nil
	}

	fecha := time.Now()
	var sb strings.Builder
	sb.WriteString(`INSERT INTO notificacion (` + notificacionColumns + `) VALUES `)

	args := make([]interface{}, 0, len(ownerIDs)*13)
	for i, ownerID := range ownerIDs {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * 13
		sb.WriteString("(")
		for j := 1; j <= 13; j++ {
			if j > 1 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "$%d", base+j)
		}
		sb.WriteString(")")

		args = append(args,
			uuid.New(),
			ownerID,
			plantilla.Titulo,
			plantilla.Mensaje,
			fecha,
			plantilla.Tipo,
			false,
			plantilla.Accionable,
			plantilla.Accion,
			plantilla.AccionTexto,
			plantilla.AccionIcono,
			plantilla.ReferenciaID,
			plantilla.ReferenciaTipo,
		)
	}

	err := r.WithTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, sb.String(), args...)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to bulk create notificaciones: %w", err)
	}
	return len(ownerIDs), nil
}

func (r *notificacionRepository) Get(ctx context.Context, id uuid.UUID) (*model.Notificacion, error) {
	var n model.Notificacion
	err := r.db.GetContext(ctx, &n, `SELECT * FROM notificacion WHERE id_notificacion = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get notificacion: %w", err)
	}
	return &n, nil
}

// ListForUser returns the filtered page plus the filtered total and the
// owner's global unread count. The unread count ignores both the
// soloNoLeidas filter and pagination.
func (r *notificacionRepository) ListForUser(ctx context.Context, ownerID uuid.UUID, skip, limit int, soloNoLeidas bool) ([]*model.Notificacion, int, int, error) {
	var noLeidas int
	err := r.db.GetContext(ctx, &noLeidas,
		`SELECT COUNT(*) FROM notificacion WHERE id_usuario = $1 AND leida = false`, ownerID)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to count unread notificaciones: %w", err)
	}

	filter := `WHERE id_usuario = $1`
	if soloNoLeidas {
		filter += ` AND leida = false`
	}

	var total int
	err = r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM notificacion `+filter, ownerID)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to count notificaciones: %w", err)
	}

	notificaciones := []*model.Notificacion{}
	query := `SELECT * FROM notificacion ` + filter + ` ORDER BY fecha DESC OFFSET $2 LIMIT $3`
	err = r.db.SelectContext(ctx, &notificaciones, query, ownerID, skip, limit)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to list notificaciones: %w", err)
	}

	return notificaciones, total, noLeidas, nil
}

func (r *notificacionRepository) UpdatePartial(ctx context.Context, id uuid.UUID, req *model.ActualizarNotificacionRequest) (*model.Notificacion, error) {
	sets := []string{}
	args := []interface{}{}
	i := 1

	if req.Leida != nil {
		sets = append(sets, fmt.Sprintf("leida = $%d", i))
		args = append(args, *req.Leida)
		i++
	}
	if req.Accionable != nil {
		sets = append(sets, fmt.Sprintf("accionable = $%d", i))
		args = append(args, *req.Accionable)
		i++
	}
	if req.Accion != nil {
		sets = append(sets, fmt.Sprintf("accion = $%d", i))
		args = append(args, *req.Accion)
		i++
	}
	if req.AccionTexto != nil {
		sets = append(sets, fmt.Sprintf("accion_texto = $%d", i))
		args = append(args, *req.AccionTexto)
		i++
	}
	if req.AccionIcono != nil {
		sets = append(sets, fmt.Sprintf("accion_icono = $%d", i))
		args = append(args, *req.AccionIcono)
		i++
	}

	if len(sets) == 0 {
		return r.Get(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE notificacion SET %s WHERE id_notificacion = $%d RETURNING *",
		strings.Join(sets, ", "), i)

	var n model.Notificacion
	if err := r.db.GetContext(ctx, &n, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update notificacion: %w", err)
	}
	return &n, nil
}

func (r *notificacionRepository) MarkRead(ctx context.Context, id uuid.UUID) (*model.Notificacion, error) {
	var n model.Notificacion
	err := r.db.GetContext(ctx, &n,
		`UPDATE notificacion SET leida = true WHERE id_notificacion = $1 RETURNING *`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to mark notificacion as read: %w", err)
	}
	return &n, nil
}

func (r *notificacionRepository) MarkAllRead(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE notificacion SET leida = true WHERE id_usuario = $1 AND leida = false`, ownerID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark all notificaciones as read: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to mark all notificaciones as read: %w", err)
	}
	return affected, nil
}

func (r *notificacionRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notificacion WHERE id_notificacion = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete notificacion: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete notificacion: %w", err)
	}
	return affected > 0, nil
}
