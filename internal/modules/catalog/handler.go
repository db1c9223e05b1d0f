package catalog

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lumen-studio/core/internal/pkg/response"
)

// Handler serves the public catalog surface.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/portfolio")
	g.GET("", h.list)
	g.GET("/:id", h.get)
}

func (h *Handler) list(c *gin.Context) {
	q := ParseListQuery(c)

	items, pag, err := h.svc.ListPublic(q)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       items,
		"pagination": pag,
		"filters": Filters{
			Sort:       q.Sort,
			CategoryID: q.CategoryID,
			Search:     q.Search,
		},
	})
}

func (h *Handler) get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.NotFound(c)
		return
	}

	item, err := h.svc.GetPublic(uint(id))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if item == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, item)
}
