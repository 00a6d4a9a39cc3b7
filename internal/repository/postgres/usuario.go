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

type usuarioRepository struct {
	BaseRepository
}

func NewUsuarioRepository(base BaseRepository) repository.UsuarioRepository {
	return &usuarioRepository{base}
}

func (r *usuarioRepository) Create(ctx context.Context, usuario *model.Usuario) error {
	query := `
		INSERT INTO usuario (id_usuario, nombre, email, password_hash, rol, activo, fecha_creacion)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	usuario.ID = uuid.New()
	usuario.FechaCreacion = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		usuario.ID,
		usuario.Nombre,
		usuario.Email,
		usuario.PasswordHash,
		usuario.Rol,
		usuario.Activo,
		usuario.FechaCreacion,
	)
	if err != nil {
		return fmt.Errorf("failed to create usuario: %w", err)
	}
	return nil
}

func (r *usuarioRepository) Get(ctx context.Context, id uuid.UUID) (*model.Usuario, error) {
	var usuario model.Usuario
	err := r.db.GetContext(ctx, &usuario, `SELECT * FROM usuario WHERE id_usuario = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get usuario: %w", err)
	}
	return &usuario, nil
}

func (r *usuarioRepository) GetByEmail(ctx context.Context, email string) (*model.Usuario, error) {
	var usuario model.Usuario
	err := r.db.GetContext(ctx, &usuario, `SELECT * FROM usuario WHERE email = $1`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get usuario by email: %w", err)
	}
	return &usuario, nil
}

func (r *usuarioRepository) ListActivos(ctx context.Context) ([]*model.Usuario, error) {
	usuarios := []*model.Usuario{}
	err := r.db.SelectContext(ctx, &usuarios, `SELECT * FROM usuario WHERE activo = true`)
	if err != nil {
		return nil, fmt.Errorf("failed to list active usuarios: %w", err)
	}
	return usuarios, nil
}

func (r *usuarioRepository) ListByRol(ctx context.Context, rol string) ([]*model.Usuario, error) {
	usuarios := []*model.Usuario{}
	err := r.db.SelectContext(ctx, &usuarios,
		`SELECT * FROM usuario WHERE rol = $1 AND activo = true`, rol)
	if err != nil {
		return nil, fmt.Errorf("failed to list usuarios by rol: %w", err)
	}
	return usuarios, nil
}
