package notificacion

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/escueladigital/escuela-api/internal/model"
	"github.com/escueladigital/escuela-api/internal/repository"
)

type Service interface {
	Create(ctx context.Context, req *model.CrearNotificacionRequest) (*model.Notificacion, error)
	CreateBulk(ctx context.Context, req *model.CrearNotificacionMasivaRequest) (int, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Notificacion, error)
	ListForUser(ctx context.Context, ownerID uuid.UUID, skip, limit int, soloNoLeidas bool) *model.NotificacionesResponse
	UpdatePartial(ctx context.Context, id uuid.UUID, req *model.ActualizarNotificacionRequest) (*model.Notificacion, error)
	MarkRead(ctx context.Context, id uuid.UUID) (*model.Notificacion, error)
	MarkAllRead(ctx context.Context, ownerID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type service struct {
	repo repository.NotificacionRepository
}

func NewService(repo repository.NotificacionRepository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req *model.CrearNotificacionRequest) (*model.Notificacion, error) {
	n := &model.Notificacion{
		IDUsuario:      req.IDUsuario,
		Titulo:         req.Titulo,
		Mensaje:        req.Mensaje,
		Tipo:           req.Tipo,
		Accionable:     req.Accionable,
		Accion:         req.Accion,
		AccionTexto:    req.AccionTexto,
		AccionIcono:    req.AccionIcono,
		ReferenciaID:   req.ReferenciaID,
		ReferenciaTipo: req.ReferenciaTipo,
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("failed to create notificacion: %w", err)
	}
	return n, nil
}

func (s *service) CreateBulk(ctx context.Context, req *model.CrearNotificacionMasivaRequest) (int, error) {
	tipo := req.Tipo
	if tipo == "" {
		tipo = model.TipoSistema
	}

	plantilla := &model.Notificacion{
		Titulo:         req.Titulo,
		Mensaje:        req.Mensaje,
		Tipo:           tipo,
		Accionable:     req.Accionable,
		Accion:         req.Accion,
		AccionTexto:    req.AccionTexto,
		AccionIcono:    req.AccionIcono,
		ReferenciaID:   req.ReferenciaID,
		ReferenciaTipo: req.ReferenciaTipo,
	}

	count, err := s.repo.CreateBulk(ctx, req.IDsUsuarios, plantilla)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk create notificaciones: %w", err)
	}
	return count, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*model.Notificacion, error) {
	return s.repo.Get(ctx, id)
}

// ListForUser never returns an error: an empty owner id or a failing query
// degrades to the zero-value inbox. Callers cannot tell "no notifications"
// from "query failed"; the cause is only logged. Existing clients depend on
// this contract, do not upgrade it to an error return.
func (s *service) ListForUser(ctx context.Context, ownerID uuid.UUID, skip, limit int, soloNoLeidas bool) *model.NotificacionesResponse {
	empty := &model.NotificacionesResponse{
		Notificaciones: []*model.Notificacion{},
		Total:          0,
		NoLeidas:       0,
	}

	if ownerID == uuid.Nil {
		return empty
	}

	items, total, noLeidas, err := s.repo.ListForUser(ctx, ownerID, skip, limit, soloNoLeidas)
	if err != nil {
		log.Warn().Err(err).Str("id_usuario", ownerID.String()).Msg("inbox query failed, returning empty result")
		return empty
	}

	return &model.NotificacionesResponse{
		Notificaciones: items,
		Total:          total,
		NoLeidas:       noLeidas,
	}
}

func (s *service) UpdatePartial(ctx context.Context, id uuid.UUID, req *model.ActualizarNotificacionRequest) (*model.Notificacion, error) {
	return s.repo.UpdatePartial(ctx, id, req)
}

func (s *service) MarkRead(ctx context.Context, id uuid.UUID) (*model.Notificacion, error) {
	return s.repo.MarkRead(ctx, id)
}

func (s *service) MarkAllRead(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	count, err := s.repo.MarkAllRead(ctx, ownerID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark all as read: %w", err)
	}
	return count, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.repo.Delete(ctx, id)
}
