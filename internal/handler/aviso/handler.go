package aviso

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/escueladigital/escuela-api/internal/handler"
	"github.com/escueladigital/escuela-api/internal/middleware"
	"github.com/escueladigital/escuela-api/internal/model"
	"github.com/escueladigital/escuela-api/internal/repository"
	"github.com/escueladigital/escuela-api/internal/service/aviso"
)

type Handler struct {
	service aviso.Service
}

func NewHandler(service aviso.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	rg.GET("/obtener-avisos", h.ListAvisos)
	rg.GET("/obtener-avisos/:destinatario", h.ListAvisosPorDestinatario)

	direccion := auth.RequireRol(model.RolDireccion)
	rg.POST("/crear-aviso", direccion, h.CreateAviso)
	rg.PUT("/actualizar-aviso/:id", direccion, h.UpdateAviso)
	rg.DELETE("/eliminar-aviso/:id", direccion, h.DeleteAviso)
}

func (h *Handler) ListAvisos(c *gin.Context) {
	skip, limit := handler.ParsePagination(c)

	avisos, err := h.service.List(c.Request.Context(), skip, limit)
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(avisos))
}

func (h *Handler) ListAvisosPorDestinatario(c *gin.Context) {
	destinatario := c.Param("destinatario")
	if destinatario != model.DestinatarioTodos && destinatario != model.DestinatarioParaMi {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("destinatario inválido, debe ser 'todos' o 'para mi'"))
		return
	}

	skip, limit := handler.ParsePagination(c)

	avisos, err := h.service.ListByDestinatario(c.Request.Context(), destinatario, skip, limit)
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(avisos))
}

func (h *Handler) CreateAviso(c *gin.Context) {
	var req model.CrearAvisoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	nuevo, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(nuevo))
}

func (h *Handler) UpdateAviso(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("id de aviso inválido"))
		return
	}

	var req model.ActualizarAvisoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	actualizado, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, handler.NewErrorResponse("aviso no encontrado"))
			return
		}
		c.Error(err)
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(actualizado))
}

func (h *Handler) DeleteAviso(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("id de aviso inválido"))
		return
	}

	deleted, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, handler.NewErrorResponse("aviso no encontrado"))
		return
	}

	c.Status(http.StatusNoContent)
}
