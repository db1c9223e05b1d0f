package catalog

import (
	"errors"
	"fmt"

	"github.com/lumen-studio/core/internal/models"
)

// SortOrder is a listing sort mode.
type SortOrder string

const (
	SortLatest SortOrder = "latest"
	SortAtoZ   SortOrder = "atoz"
	SortZtoA   SortOrder = "ztoa"
)

// ParseSort maps a raw sort parameter to a SortOrder, falling back to latest
// for anything unrecognized.
func ParseSort(raw string) SortOrder {
	switch SortOrder(raw) {
	case SortAtoZ:
		return SortAtoZ
	case SortZtoA:
		return SortZtoA
	default:
		return SortLatest
	}
}

// ListQuery holds parsed listing parameters. CategoryID 0 means "no filter";
// the "All" sentinel id is normalized to 0 during parsing.
type ListQuery struct {
	Page       int
	Search     string
	CategoryID uint
	Sort       SortOrder
}

// PublicPagination mirrors the public listing response contract.
type PublicPagination struct {
	TotalItems   int64 `json:"totalItems"`
	TotalPages   int   `json:"totalPages"`
	CurrentPage  int   `json:"currentPage"`
	ItemsPerPage int   `json:"itemsPerPage"`
}

// Filters echoes the effective filter set back to the client.
type Filters struct {
	Sort       SortOrder `json:"sort"`
	CategoryID uint      `json:"category_id"`
	Search     string    `json:"search"`
}

// Upload is one file received via multipart form data.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// CreateItemInput describes an admin create operation.
type CreateItemInput struct {
	Title       string
	Description string
	CategoryID  uint
	Kind        models.MediaKind
	URL         string
	Cover       *Upload
	DetailFiles []Upload
}

// UpdateItemInput describes an admin update operation. Nil fields are left
// untouched.
type UpdateItemInput struct {
	Title       *string
	Description *string
	CategoryID  *uint
	Kind        *models.MediaKind
	URL         *string
	Cover       *Upload
	DetailFiles []Upload

	// ExistingFiles lists the image detail URLs the client wants to keep.
	// Nil means keep everything; an empty list drops all existing images.
	ExistingFiles *[]string
}

// Validation failures surfaced to the client as 400s.
var (
	ErrTitleRequired       = errors.New("title is required")
	ErrCategoryRequired    = errors.New("category_id is required")
	ErrCoverRequired       = errors.New("cover image is required")
	ErrInvalidKind         = errors.New("type must be one of image, pdf, youtube, vimeo")
	ErrDetailURLRequired   = errors.New("url is required for non-image detail types")
	ErrDetailFilesRequired = errors.New("at least one file is required for image detail type")
)

// UnknownCategoryError indicates the referenced category does not exist.
type UnknownCategoryError struct {
	ID uint
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("category %d does not exist", e.ID)
}
