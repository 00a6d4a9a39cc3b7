package notificacion

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/escueladigital/escuela-api/internal/handler"
	"github.com/escueladigital/escuela-api/internal/middleware"
	"github.com/escueladigital/escuela-api/internal/model"
	"github.com/escueladigital/escuela-api/internal/repository"
	"github.com/escueladigital/escuela-api/internal/service/notificacion"
)

type Handler struct {
	service notificacion.Service
}

func NewHandler(service notificacion.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	rg.GET("/obtener-notificaciones", h.ListNotificaciones)
	rg.POST("/crear-notificacion", h.CreateNotificacion)
	rg.POST("/crear-notificacion-masiva", auth.RequireRol(model.RolDireccion), h.CreateNotificacionMasiva)
	rg.GET("/obtener-notificacion-id/:id", h.GetNotificacion)
	rg.PATCH("/actualizar-notificacion/:id", h.UpdateNotificacion)
	rg.PATCH("/marcar-como-leida/:id", h.MarkRead)
	rg.PATCH("/marcar-todas-como-leidas", h.MarkAllRead)
	rg.DELETE("/eliminar-notificacion/:id", h.DeleteNotificacion)
}

// ListNotificaciones returns the caller's inbox. Internal failures degrade
// to an empty result inside the service, so this endpoint answers 200
// unconditionally.
func (h *Handler) ListNotificaciones(c *gin.Context) {
	skip, limit := handler.ParsePagination(c)
	// accepts 1/t/true in any casing; anything else means false
	soloNoLeidas, _ := strconv.ParseBool(c.Query("solo_no_leidas"))

	resultado := h.service.ListForUser(c.Request.Context(), middleware.CurrentUserID(c), skip, limit, soloNoLeidas)
	c.JSON(http.StatusOK, resultado)
}

func (h *Handler) CreateNotificacion(c *gin.Context) {
	var req model.CrearNotificacionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	// dirección puede crear para terceros, el resto solo para sí mismo
	if middleware.CurrentRol(c) != model.RolDireccion && req.IDUsuario != middleware.CurrentUserID(c) {
		c.JSON(http.StatusForbidden, handler.NewErrorResponse("no tiene permisos para crear notificaciones para otros usuarios"))
		return
	}

	creada, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(creada))
}

func (h *Handler) CreateNotificacionMasiva(c *gin.Context) {
	var req model.CrearNotificacionMasivaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if len(req.IDsUsuarios) == 0 {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("la lista de usuarios destinatarios no puede estar vacía"))
		return
	}

	cantidad, err := h.service.CreateBulk(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"mensaje":  fmt.Sprintf("Se han creado %d notificaciones correctamente", cantidad),
		"cantidad": cantidad,
	})
}

func (h *Handler) GetNotificacion(c *gin.Context) {
	n, ok := h.ownedNotificacion(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(n))
}

func (h *Handler) UpdateNotificacion(c *gin.Context) {
	n, ok := h.ownedNotificacion(c)
	if !ok {
		return
	}

	var req model.ActualizarNotificacionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	actualizada, err := h.service.UpdatePartial(c.Request.Context(), n.ID, &req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, handler.NewErrorResponse("notificación no encontrada"))
			return
		}
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(actualizada))
}

func (h *Handler) MarkRead(c *gin.Context) {
	n, ok := h.ownedNotificacion(c)
	if !ok {
		return
	}

	leida, err := h.service.MarkRead(c.Request.Context(), n.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, handler.NewErrorResponse("notificación no encontrada"))
			return
		}
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(leida))
}

func (h *Handler) MarkAllRead(c *gin.Context) {
	cantidad, err := h.service.MarkAllRead(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"actualizadas": cantidad,
		"mensaje":      "Notificaciones marcadas como leídas",
	})
}

func (h *Handler) DeleteNotificacion(c *gin.Context) {
	n, ok := h.ownedNotificacion(c)
	if !ok {
		return
	}

	deleted, err := h.service.Delete(c.Request.Context(), n.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}
	if !deleted {
		// existence was just checked, a false here is an inconsistency
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("error al eliminar la notificación"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"mensaje": "Notificación eliminada correctamente"})
}

// ownedNotificacion loads the notification in the path and enforces that
// the caller owns it: 404 when missing, 403 when owned by someone else.
func (h *Handler) ownedNotificacion(c *gin.Context) (*model.Notificacion, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("id de notificación inválido"))
		return nil, false
	}

	n, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, handler.NewErrorResponse("notificación no encontrada"))
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return nil, false
	}

	if n.IDUsuario != middleware.CurrentUserID(c) {
		c.JSON(http.StatusForbidden, handler.NewErrorResponse("no tiene permisos para acceder a esta notificación"))
		return nil, false
	}

	return n, true
}
