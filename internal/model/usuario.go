package model

import (
	"time"

	"github.com/google/uuid"
)

// Roles de usuario
const (
	RolDireccion = "direccion"
	RolProfesor  = "profesor"
	RolPadre     = "padre"
	RolAlumno    = "alumno"
)

// Usuario represents a system user
type Usuario struct {
	ID            uuid.UUID `json:"id_usuario" db:"id_usuario"`
	Nombre        string    `json:"nombre" db:"nombre"`
	Email         string    `json:"email" db:"email"`
	PasswordHash  string    `json:"-" db:"password_hash"`
	Rol           string    `json:"rol" db:"rol"`
	Activo        bool      `json:"activo" db:"activo"`
	FechaCreacion time.Time `json:"fecha_creacion" db:"fecha_creacion"`
}

// LoginRequest represents login parameters
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse is returned on a successful login
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// TokenClaims holds the identity extracted from a validated token
type TokenClaims struct {
	UserID uuid.UUID
	Email  string
	Rol    string
}
