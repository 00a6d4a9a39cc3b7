package model

import (
	"time"

	"github.com/google/uuid"
)

// Tipos de notificación
const (
	TipoSistema    = "sistema"
	TipoCita       = "cita"
	TipoMaterial   = "material"
	TipoCalendario = "calendario"
	TipoMensaje    = "mensaje"
	TipoAlerta     = "alerta"
	TipoAviso      = "aviso"
)

// Notificacion represents a per-user inbox entry.
// The owner (IDUsuario) is immutable after creation; no update path
// touches it.
type Notificacion struct {
	ID             uuid.UUID  `json:"id_notificacion" db:"id_notificacion"`
	IDUsuario      uuid.UUID  `json:"id_usuario" db:"id_usuario"`
	Titulo         string     `json:"titulo" db:"titulo"`
	Mensaje        string     `json:"mensaje" db:"mensaje"`
	Fecha          time.Time  `json:"fecha" db:"fecha"`
	Tipo           string     `json:"tipo" db:"tipo"`
	Leida          bool       `json:"leida" db:"leida"`
	Accionable     bool       `json:"accionable" db:"accionable"`
	Accion         *string    `json:"accion" db:"accion"`
	AccionTexto    *string    `json:"accion_texto" db:"accion_texto"`
	AccionIcono    *string    `json:"accion_icono" db:"accion_icono"`
	ReferenciaID   *uuid.UUID `json:"referencia_id" db:"referencia_id"`
	ReferenciaTipo *string    `json:"referencia_tipo" db:"referencia_tipo"`
}

// CrearNotificacionRequest represents notification creation parameters
type CrearNotificacionRequest struct {
	IDUsuario      uuid.UUID  `json:"id_usuario" binding:"required"`
	Titulo         string     `json:"titulo" binding:"required"`
	Mensaje        string     `json:"mensaje" binding:"required"`
	Tipo           string     `json:"tipo" binding:"required,oneof=sistema cita material calendario mensaje alerta aviso"`
	Accionable     bool       `json:"accionable"`
	Accion         *string    `json:"accion"`
	AccionTexto    *string    `json:"accion_texto"`
	AccionIcono    *string    `json:"accion_icono"`
	ReferenciaID   *uuid.UUID `json:"referencia_id"`
	ReferenciaTipo *string    `json:"referencia_tipo"`
}

// CrearNotificacionMasivaRequest creates the same notification for a set
// of recipients
type CrearNotificacionMasivaRequest struct {
	IDsUsuarios    []uuid.UUID `json:"ids_usuarios" binding:"required"`
	Titulo         string      `json:"titulo" binding:"required"`
	Mensaje        string      `json:"mensaje" binding:"required"`
	Tipo           string      `json:"tipo" binding:"omitempty,oneof=sistema cita material calendario mensaje alerta aviso"`
	Accionable     bool        `json:"accionable"`
	Accion         *string     `json:"accion"`
	AccionTexto    *string     `json:"accion_texto"`
	AccionIcono    *string     `json:"accion_icono"`
	ReferenciaID   *uuid.UUID  `json:"referencia_id"`
	ReferenciaTipo *string     `json:"referencia_tipo"`
}

// ActualizarNotificacionRequest represents a partial notification update.
// Only these five fields are mutable; titulo, mensaje, tipo and the owner
// are not reachable through this path.
type ActualizarNotificacionRequest struct {
	Leida       *bool   `json:"leida"`
	Accionable  *bool   `json:"accionable"`
	Accion      *string `json:"accion"`
	AccionTexto *string `json:"accion_texto"`
	AccionIcono *string `json:"accion_icono"`
}

// NotificacionesResponse is the inbox payload for a user.
// NoLeidas is the global unread count for the owner, independent of the
// solo_no_leidas filter and of pagination; Total counts the filtered set
// before pagination.
type NotificacionesResponse struct {
	Notificaciones []*Notificacion `json:"notificaciones"`
	Total          int             `json:"total"`
	NoLeidas       int             `json:"no_leidas"`
}
