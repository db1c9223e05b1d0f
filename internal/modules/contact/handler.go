package contact

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lumen-studio/core/internal/middleware"
	"github.com/lumen-studio/core/internal/pkg/pagination"
	"github.com/lumen-studio/core/internal/pkg/response"
	"gorm.io/gorm"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.POST("/contact", h.submit)

	authed := rg.Group("/admin/contacts", authMW)
	authed.GET("", h.list)
	authed.GET("/:id", h.get)
	authed.DELETE("/:id", h.delete)
}

func (h *Handler) submit(c *gin.Context) {
	var dto SubmitDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	msg, err := h.svc.Submit(&dto, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, msg)
}

func (h *Handler) list(c *gin.Context) {
	msgs, pag, err := h.svc.List(pagination.FromContext(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, msgs, pag)
}

func (h *Handler) get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.NotFound(c)
		return
	}

	msg, err := h.svc.GetByID(uint(id))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if msg == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, msg)
}

func (h *Handler) delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.NotFound(c)
		return
	}

	if err := h.svc.Delete(middleware.CurrentActor(c), uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}
