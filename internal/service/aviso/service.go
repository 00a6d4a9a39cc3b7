package aviso

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/escueladigital/escuela-api/internal/model"
	"github.com/escueladigital/escuela-api/internal/repository"
)

const (
	fanoutAccion      = "ver-aviso"
	fanoutAccionTexto = "Ver aviso completo"
	fanoutAccionIcono = "arrow-right"
)

type Service interface {
	List(ctx context.Context, skip, limit int) ([]*model.Aviso, error)
	ListByDestinatario(ctx context.Context, destinatario string, skip, limit int) ([]*model.Aviso, error)
	Create(ctx context.Context, req *model.CrearAvisoRequest) (*model.Aviso, error)
	Update(ctx context.Context, id uuid.UUID, req *model.ActualizarAvisoRequest) (*model.Aviso, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type service struct {
	repo     repository.AvisoRepository
	notifs   repository.NotificacionRepository
	resolver RecipientResolver
}

func NewService(repo repository.AvisoRepository, notifs repository.NotificacionRepository, resolver RecipientResolver) Service {
	return &service{
		repo:     repo,
		notifs:   notifs,
		resolver: resolver,
	}
}

func (s *service) List(ctx context.Context, skip, limit int) ([]*model.Aviso, error) {
	avisos, err := s.repo.List(ctx, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list avisos: %w", err)
	}
	return avisos, nil
}

func (s *service) ListByDestinatario(ctx context.Context, destinatario string, skip, limit int) ([]*model.Aviso, error) {
	avisos, err := s.repo.ListByDestinatario(ctx, destinatario, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list avisos by destinatario: %w", err)
	}
	return avisos, nil
}

// Create persists the aviso and then fans it out into per-recipient
// notifications. Fan-out is best effort: its failures are logged and
// swallowed so the aviso creation itself never fails because of them.
func (s *service) Create(ctx context.Context, req *model.CrearAvisoRequest) (*model.Aviso, error) {
	aviso := &model.Aviso{
		Titulo:       req.Titulo,
		Contenido:    req.Contenido,
		Destinatario: req.Destinatario,
	}

	if err := s.repo.Create(ctx, aviso); err != nil {
		return nil, fmt.Errorf("failed to create aviso: %w", err)
	}

	s.fanout(ctx, aviso)

	return aviso, nil
}

func (s *service) fanout(ctx context.Context, aviso *model.Aviso) {
	ids, err := s.resolver.Resolve(ctx, aviso.Destinatario)
	if err != nil {
		log.Error().Err(err).
			Str("id_aviso", aviso.ID.String()).
			Str("destinatario", aviso.Destinatario).
			Msg("fan-out recipient resolution failed")
		return
	}
	if len(ids) == 0 {
		return
	}

	accion := fanoutAccion
	accionTexto := fanoutAccionTexto
	accionIcono := fanoutAccionIcono
	referenciaTipo := model.TipoAviso
	referenciaID := aviso.ID

	plantilla := &model.Notificacion{
		Titulo:         fmt.Sprintf("Nuevo aviso: %s", aviso.Titulo),
		Mensaje:        aviso.Contenido,
		Tipo:           model.TipoAviso,
		Accionable:     true,
		Accion:         &accion,
		AccionTexto:    &accionTexto,
		AccionIcono:    &accionIcono,
		ReferenciaID:   &referenciaID,
		ReferenciaTipo: &referenciaTipo,
	}

	count, err := s.notifs.CreateBulk(ctx, ids, plantilla)
	if err != nil {
		log.Error().Err(err).
			Str("id_aviso", aviso.ID.String()).
			Int("destinatarios", len(ids)).
			Msg("fan-out bulk create failed")
		return
	}

	log.Info().
		Str("id_aviso", aviso.ID.String()).
		Int("notificaciones", count).
		Msg("aviso fan-out completed")
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req *model.ActualizarAvisoRequest) (*model.Aviso, error) {
	return s.repo.Update(ctx, id, req)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.repo.Delete(ctx, id)
}
