package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lumen-studio/core/internal/middleware"
	"github.com/lumen-studio/core/internal/models"
	"github.com/lumen-studio/core/internal/pkg/pagination"
	"github.com/lumen-studio/core/internal/pkg/response"
)

const (
	coverFormField   = "cover_image"
	detailsFormField = "files"
)

// AdminHandler serves the authenticated mutation and listing surface.
type AdminHandler struct {
	svc *Service
}

func NewAdminHandler(svc *Service) *AdminHandler {
	return &AdminHandler{svc: svc}
}

func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/admin/portfolio", authMW)
	g.GET("", h.list)
	g.GET("/archived", h.listArchived)
	g.GET("/:id", h.get)
	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.POST("/:id/archive", h.archive)
	g.POST("/:id/unarchive", h.unarchive)
	g.DELETE("/:id", h.archive) // default delete is soft
	g.DELETE("/:id/permanent", h.purge)
}

func (h *AdminHandler) list(c *gin.Context)         { h.listView(c, false) }
func (h *AdminHandler) listArchived(c *gin.Context) { h.listView(c, true) }

func (h *AdminHandler) listView(c *gin.Context, archived bool) {
	q := pagination.FromContext(c)
	search := strings.TrimSpace(c.Query("search"))
	categoryID := uint(pagination.ParseIntOr(c.Query("category_id"), 0))

	items, pag, err := h.svc.ListAdmin(q, search, categoryID, archived)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, items, pag)
}

func (h *AdminHandler) get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	item, err := h.svc.GetByID(id)
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

func (h *AdminHandler) create(c *gin.Context) {
	in, err := parseCreateForm(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	item, err := h.svc.Create(c.Request.Context(), middleware.CurrentActor(c), *in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Created(c, item)
}

func (h *AdminHandler) update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	in, err := parseUpdateForm(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	item, err := h.svc.Update(c.Request.Context(), middleware.CurrentActor(c), id, *in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if item == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, item)
}

func (h *AdminHandler) archive(c *gin.Context) {
	h.flagView(c, h.svc.Archive)
}

func (h *AdminHandler) unarchive(c *gin.Context) {
	h.flagView(c, h.svc.Unarchive)
}

func (h *AdminHandler) flagView(c *gin.Context, op func(ctx context.Context, actor string, id uint) (*models.PortfolioItem, error)) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	item, err := op(c.Request.Context(), middleware.CurrentActor(c), id)
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

func (h *AdminHandler) purge(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	item, err := h.svc.Purge(c.Request.Context(), middleware.CurrentActor(c), id)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if item == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, gin.H{"deleted": true, "id": item.ID})
}

func (h *AdminHandler) writeError(c *gin.Context, err error) {
	var unknownCat *UnknownCategoryError
	switch {
	case errors.Is(err, ErrTitleRequired),
		errors.Is(err, ErrCategoryRequired),
		errors.Is(err, ErrCoverRequired),
		errors.Is(err, ErrInvalidKind),
		errors.Is(err, ErrDetailURLRequired),
		errors.Is(err, ErrDetailFilesRequired),
		errors.As(err, &unknownCat):
		response.BadRequest(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.NotFound(c)
		return 0, false
	}
	return uint(id), true
}

func parseCreateForm(c *gin.Context) (*CreateItemInput, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, errors.New("multipart form data is required")
	}

	in := CreateItemInput{
		Title:       formValue(form, "title"),
		Description: formValue(form, "description"),
		CategoryID:  uint(pagination.ParseIntOr(formValue(form, "category_id"), 0)),
		Kind:        models.MediaKind(formValue(form, "type")),
		URL:         formValue(form, "url"),
	}
	if in.Kind == "" {
		in.Kind = models.MediaImage
	}

	if cover := formFile(form, coverFormField); cover != nil {
		up, err := readUpload(cover)
		if err != nil {
			return nil, err
		}
		in.Cover = up
	}

	for _, fh := range form.File[detailsFormField] {
		up, err := readUpload(fh)
		if err != nil {
			return nil, err
		}
		in.DetailFiles = append(in.DetailFiles, *up)
	}
	return &in, nil
}

func parseUpdateForm(c *gin.Context) (*UpdateItemInput, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, errors.New("multipart form data is required")
	}

	in := UpdateItemInput{}
	if v, ok := formLookup(form, "title"); ok {
		in.Title = &v
	}
	if v, ok := formLookup(form, "description"); ok {
		in.Description = &v
	}
	if v, ok := formLookup(form, "category_id"); ok {
		id := uint(pagination.ParseIntOr(v, 0))
		in.CategoryID = &id
	}
	if v, ok := formLookup(form, "type"); ok {
		kind := models.MediaKind(v)
		in.Kind = &kind
	}
	if v, ok := formLookup(form, "url"); ok {
		in.URL = &v
	}
	if v, ok := formLookup(form, "existing_files"); ok {
		var kept []string
		if err := json.Unmarshal([]byte(v), &kept); err != nil {
			return nil, errors.New("existing_files must be a JSON array of strings")
		}
		in.ExistingFiles = &kept
	}

	if cover := formFile(form, coverFormField); cover != nil {
		up, err := readUpload(cover)
		if err != nil {
			return nil, err
		}
		in.Cover = up
	}
	for _, fh := range form.File[detailsFormField] {
		up, err := readUpload(fh)
		if err != nil {
			return nil, err
		}
		in.DetailFiles = append(in.DetailFiles, *up)
	}
	return &in, nil
}

func formValue(form *multipart.Form, key string) string {
	v, _ := formLookup(form, key)
	return v
}

func formLookup(form *multipart.Form, key string) (string, bool) {
	vals, ok := form.Value[key]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return strings.TrimSpace(vals[0]), true
}

func formFile(form *multipart.Form, key string) *multipart.FileHeader {
	files, ok := form.File[key]
	if !ok || len(files) == 0 {
		return nil
	}
	return files[0]
}

func readUpload(fh *multipart.FileHeader) (*Upload, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return &Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
