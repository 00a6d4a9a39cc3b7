package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/escueladigital/escuela-api/internal/model"
)

// ErrNotFound is returned when an id does not resolve to a row
var ErrNotFound = errors.New("not found")

// All repository interfaces in one file
type (
	// AvisoRepository handles announcement persistence
	AvisoRepository interface {
		Create(ctx context.Context, aviso *model.Aviso) error
		List(ctx context.Context, skip, limit int) ([]*model.Aviso, error)
		ListByDestinatario(ctx context.Context, destinatario string, skip, limit int) ([]*model.Aviso, error)
		Update(ctx context.Context, id uuid.UUID, req *model.ActualizarAvisoRequest) (*model.Aviso, error)
		Delete(ctx context.Context, id uuid.UUID) (bool, error)
	}

	// NotificacionRepository handles notification persistence
	NotificacionRepository interface {
		Create(ctx context.Context, notificacion *model.Notificacion) error
		// CreateBulk inserts one row per owner id with the template's
		// content as a single atomic batch.
		CreateBulk(ctx context.Context, ownerIDs []uuid.UUID, plantilla *model.Notificacion) (int, error)
		Get(ctx context.Context, id uuid.UUID) (*model.Notificacion, error)
		// ListForUser returns the filtered page plus two counts: total
		// rows matching the filter (pre-pagination) and the owner's
		// global unread count (ignores filter and pagination).
		ListForUser(ctx context.Context, ownerID uuid.UUID, skip, limit int, soloNoLeidas bool) ([]*model.Notificacion, int, int, error)
		UpdatePartial(ctx context.Context, id uuid.UUID, req *model.ActualizarNotificacionRequest) (*model.Notificacion, error)
		MarkRead(ctx context.Context, id uuid.UUID) (*model.Notificacion, error)
		MarkAllRead(ctx context.Context, ownerID uuid.UUID) (int64, error)
		Delete(ctx context.Context, id uuid.UUID) (bool, error)
	}

	// UsuarioRepository handles user lookups for auth and fan-out
	UsuarioRepository interface {
		Create(ctx context.Context, usuario *model.Usuario) error
		Get(ctx context.Context, id uuid.UUID) (*model.Usuario, error)
		GetByEmail(ctx context.Context, email string) (*model.Usuario, error)
		ListActivos(ctx context.Context) ([]*model.Usuario, error)
		ListByRol(ctx context.Context, rol string) ([]*model.Usuario, error)
	}
)
