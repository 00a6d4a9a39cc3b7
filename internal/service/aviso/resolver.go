package aviso

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/escueladigital/escuela-api/internal/model"
	"github.com/escueladigital/escuela-api/internal/repository"
)

// RecipientResolver maps an audience tag to the concrete set of user ids
// that should receive a notification for it.
type RecipientResolver interface {
	Resolve(ctx context.Context, destinatario string) ([]uuid.UUID, error)
}

type userResolver struct {
	usuarios repository.UsuarioRepository
}

func NewUserResolver(usuarios repository.UsuarioRepository) RecipientResolver {
	return &userResolver{usuarios: usuarios}
}

// Resolve returns the recipients for a destinatario. Unknown values yield
// an empty set without error, so fan-out silently creates nothing.
// Every call queries the store: the recipient set has to reflect role and
// activo changes as of the aviso being created, so it is never cached.
func (r *userResolver) Resolve(ctx context.Context, destinatario string) ([]uuid.UUID, error) {
	var usuarios []*model.Usuario
	var err error

	switch destinatario {
	case model.DestinatarioTodos:
		usuarios, err = r.usuarios.ListActivos(ctx)
	case model.DestinatarioProfesores:
		usuarios, err = r.usuarios.ListByRol(ctx, model.RolProfesor)
	case model.DestinatarioPadres:
		usuarios, err = r.usuarios.ListByRol(ctx, model.RolPadre)
	default:
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve recipients for %q: %w", destinatario, err)
	}

	ids := make([]uuid.UUID, 0, len(usuarios))
	for _, u := range usuarios {
		ids = append(ids, u.ID)
	}
	return ids, nil
}
