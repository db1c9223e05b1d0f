package catalog

import (
	"strings"

	"github.com/lumen-studio/core/internal/models"
)

// listMerged implements the pinned-category-first listing used when sort is
// latest and no explicit category filter is in effect. Two partitions are
// fetched independently (pinned category, then everything else), each ordered
// by created_at descending with the search predicate applied, concatenated
// pinned-first, and paginated by slicing the combined list. A store-level
// ORDER BY across both partitions cannot express this priority without a
// composite sort key, which the schema deliberately does not have.
func (s *Service) listMerged(q ListQuery, limit int) ([]models.PortfolioItem, int64, error) {
	partition := func(dest *[]models.PortfolioItem, pinned bool) error {
		tx := s.db.Model(&models.PortfolioItem{}).
			Where("is_deleted = ?", false).
			Order("created_at DESC, id DESC")
		if pinned {
			tx = tx.Where("category_id = ?", s.pinnedCategoryID)
		} else {
			tx = tx.Where("category_id <> ?", s.pinnedCategoryID)
		}
		if q.Search != "" {
			tx = tx.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(q.Search)+"%")
		}
		return tx.Find(dest).Error
	}

	var pinned, rest []models.PortfolioItem
	if err := partition(&pinned, true); err != nil {
		return nil, 0, err
	}
	if err := partition(&rest, false); err != nil {
		return nil, 0, err
	}

	merged := make([]models.PortfolioItem, 0, len(pinned)+len(rest))
	merged = append(merged, pinned...)
	merged = append(merged, rest...)

	return pageSlice(merged, q.Page, limit), int64(len(merged)), nil
}

// pageSlice applies page/limit to an already-ordered list. Out-of-range pages
// yield an empty slice, not an error.
func pageSlice[T any](items []T, page, limit int) []T {
	if page < 1 || limit < 1 {
		return []T{}
	}
	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
