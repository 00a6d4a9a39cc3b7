package model

import (
	"time"

	"github.com/google/uuid"
)

// Destinatarios válidos al crear un aviso
const (
	DestinatarioTodos      = "todos"
	DestinatarioProfesores = "profesores"
	DestinatarioPadres     = "padres"
)

// DestinatarioParaMi is only valid as a listing filter, never at creation.
// The listing vocabulary ("todos"/"para mi") differs from the creation
// vocabulary on purpose; the store applies it as a literal equality filter.
const DestinatarioParaMi = "para mi"

// Aviso represents a broadcast announcement authored by dirección
type Aviso struct {
	ID            uuid.UUID `json:"id_aviso" db:"id_aviso"`
	Titulo        string    `json:"titulo" db:"titulo"`
	Contenido     string    `json:"contenido" db:"contenido"`
	Destinatario  string    `json:"destinatario" db:"destinatario"`
	FechaCreacion time.Time `json:"fecha_creacion" db:"fecha_creacion"`
	FechaEdicion  time.Time `json:"fecha_edicion" db:"fecha_edicion"`
}

// CrearAvisoRequest represents announcement creation parameters
type CrearAvisoRequest struct {
	Titulo       string `json:"titulo" binding:"required"`
	Contenido    string `json:"contenido" binding:"required"`
	Destinatario string `json:"destinatario" binding:"required,oneof=todos profesores padres"`
}

// ActualizarAvisoRequest represents a partial announcement update.
// Only fields explicitly present in the payload are applied.
type ActualizarAvisoRequest struct {
	Titulo       *string `json:"titulo"`
	Contenido    *string `json:"contenido"`
	Destinatario *string `json:"destinatario" binding:"omitempty,oneof=todos profesores padres"`
}
