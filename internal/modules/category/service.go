package category

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lumen-studio/core/internal/models"
	"github.com/lumen-studio/core/internal/modules/audit"
	"gorm.io/gorm"
)

const auditTable = "categories"

type CreateCategoryDTO struct {
	Name string `json:"name" binding:"required"`
}

type UpdateCategoryDTO struct {
	Name *string `json:"name"`
}

// CategoryWithCount is a category plus the number of items referencing it
// (active and archived both count).
type CategoryWithCount struct {
	models.Category
	ItemCount int64 `json:"item_count"`
}

// ErrNameTaken indicates a duplicate category name.
var ErrNameTaken = errors.New("category name already exists")

// InUseError blocks deletion of a referenced category.
type InUseError struct {
	Count int64
}

func (e *InUseError) Error() string {
	return fmt.Sprintf("category is referenced by %d portfolio item(s) and cannot be deleted", e.Count)
}

type Service struct {
	db    *gorm.DB
	audit *audit.Recorder
}

func NewService(db *gorm.DB, rec *audit.Recorder) *Service {
	return &Service{db: db, audit: rec}
}

// List returns all categories with their item reference counts.
func (s *Service) List() ([]CategoryWithCount, error) {
	var cats []models.Category
	if err := s.db.Order("created_at ASC").Find(&cats).Error; err != nil {
		return nil, err
	}

	type countRow struct {
		CategoryID uint
		N          int64
	}
	var rows []countRow
	err := s.db.Model(&models.PortfolioItem{}).
		Select("category_id, COUNT(*) AS n").
		Group("category_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[uint]int64, len(rows))
	for _, r := range rows {
		counts[r.CategoryID] = r.N
	}

	out := make([]CategoryWithCount, 0, len(cats))
	for _, cat := range cats {
		out = append(out, CategoryWithCount{Category: cat, ItemCount: counts[cat.ID]})
	}
	return out, nil
}

func (s *Service) GetByID(id uint) (*models.Category, error) {
	var cat models.Category
	if err := s.db.First(&cat, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cat, nil
}

func (s *Service) Create(actor string, dto *CreateCategoryDTO) (*models.Category, error) {
	name := strings.TrimSpace(dto.Name)
	if name == "" {
		return nil, errors.New("name is required")
	}

	var count int64
	if err := s.db.Model(&models.Category{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrNameTaken
	}

	cat := models.Category{Name: name}
	if err := s.db.Create(&cat).Error; err != nil {
		return nil, err
	}

	s.audit.Record(actor, models.AuditCreate, auditTable, cat.ID, nil, cat)
	return &cat, nil
}

// Update renames a category. A rename re-syncs the denormalized
// category_name on every referencing item; the copy is eventually consistent
// with respect to concurrent item writes, not live-joined.
func (s *Service) Update(actor string, id uint, dto *UpdateCategoryDTO) (*models.Category, error) {
	cat, err := s.GetByID(id)
	if err != nil || cat == nil {
		return cat, err
	}
	before := *cat

	if dto.Name == nil {
		return cat, nil
	}
	name := strings.TrimSpace(*dto.Name)
	if name == "" {
		return nil, errors.New("name is required")
	}
	if name == cat.Name {
		return cat, nil
	}

	var count int64
	if err := s.db.Model(&models.Category{}).Where("name = ? AND id <> ?", name, id).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrNameTaken
	}

	if err := s.db.Model(cat).Update("name", name).Error; err != nil {
		return nil, err
	}
	if err := s.syncItemNames(cat.ID, name); err != nil {
		return nil, err
	}

	s.audit.Record(actor, models.AuditUpdate, auditTable, cat.ID, before, *cat)
	return cat, nil
}

// Delete removes a category. Blocked with InUseError while any item, active
// or archived, still references it.
func (s *Service) Delete(actor string, id uint) error {
	cat, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if cat == nil {
		return gorm.ErrRecordNotFound
	}

	var refs int64
	err = s.db.Model(&models.PortfolioItem{}).
		Where("category_id = ?", id).
		Count(&refs).Error
	if err != nil {
		return err
	}
	if refs > 0 {
		return &InUseError{Count: refs}
	}

	if err := s.db.Delete(&models.Category{}, "id = ?", id).Error; err != nil {
		return err
	}

	s.audit.Record(actor, models.AuditDelete, auditTable, id, *cat, nil)
	return nil
}

func (s *Service) syncItemNames(categoryID uint, name string) error {
	return s.db.Model(&models.PortfolioItem{}).
		Where("category_id = ?", categoryID).
		Update("category_name", name).Error
}
