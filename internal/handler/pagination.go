package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/escueladigital/escuela-api/internal/model"
)

const defaultLimit = 100

// ParsePagination reads skip/limit query parameters. Values are clamped to
// be non-negative; no upper bound is applied, the store accepts any
// limit >= 0.
func ParsePagination(c *gin.Context) (skip, limit int) {
	p := model.Pagination{Limit: defaultLimit}
	if err := c.ShouldBindQuery(&p); err != nil {
		return 0, defaultLimit
	}
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Limit < 0 {
		p.Limit = defaultLimit
	}
	return p.Skip, p.Limit
}
