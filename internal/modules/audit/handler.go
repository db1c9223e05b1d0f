package audit

import (
	"github.com/gin-gonic/gin"
	"github.com/lumen-studio/core/internal/pkg/pagination"
	"github.com/lumen-studio/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.GET("/admin/audit", authMW, h.list)
}

func (h *Handler) list(c *gin.Context) {
	limit := pagination.ParseIntOr(c.DefaultQuery("limit", "100"), DefaultQueryLimit)
	entries, err := h.svc.Recent(limit)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, entries)
}
