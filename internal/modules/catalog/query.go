package catalog

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lumen-studio/core/internal/config"
	"github.com/lumen-studio/core/internal/models"
	"github.com/lumen-studio/core/internal/pkg/pagination"
	"gorm.io/gorm"
)

// ParseListQuery extracts listing parameters from the request. Parsing is
// deliberately tolerant: non-numeric page/category values fall back to
// defaults instead of being rejected, and the "All" sentinel category is
// normalized away.
func ParseListQuery(c *gin.Context) ListQuery {
	page := pagination.ParseIntOr(c.DefaultQuery("page", "1"), 1)
	if page < 1 {
		page = 1
	}

	categoryID := pagination.ParseIntOr(c.Query("category_id"), 0)
	if categoryID < 0 || categoryID == config.AllCategoriesID {
		categoryID = 0
	}

	return ListQuery{
		Page:       page,
		Search:     strings.TrimSpace(c.Query("search")),
		CategoryID: uint(categoryID),
		Sort:       ParseSort(c.Query("sort")),
	}
}

// publicQuery builds the public listing predicate: never shows archived
// items, matches search against title only.
func (s *Service) publicQuery(q ListQuery) *gorm.DB {
	tx := s.db.Model(&models.PortfolioItem{}).Where("is_deleted = ?", false)
	if q.Search != "" {
		tx = tx.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(q.Search)+"%")
	}
	if q.CategoryID != 0 {
		tx = tx.Where("category_id = ?", q.CategoryID)
	}
	return applySort(tx, q.Sort)
}

// adminQuery matches search against title or description and filters by the
// archive flag instead of hiding archived rows.
func (s *Service) adminQuery(search string, categoryID uint, archived bool) *gorm.DB {
	tx := s.db.Model(&models.PortfolioItem{}).Where("is_deleted = ?", archived)
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		tx = tx.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	if categoryID != 0 && categoryID != config.AllCategoriesID {
		tx = tx.Where("category_id = ?", categoryID)
	}
	return tx.Order("created_at DESC")
}

func applySort(tx *gorm.DB, sort SortOrder) *gorm.DB {
	switch sort {
	case SortAtoZ:
		return tx.Order("title ASC")
	case SortZtoA:
		return tx.Order("title DESC")
	default:
		return tx.Order("created_at DESC")
	}
}
