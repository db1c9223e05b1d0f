package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/lumen-studio/core/internal/config"
	"github.com/lumen-studio/core/internal/models"
	"github.com/lumen-studio/core/internal/modules/audit"
	"github.com/lumen-studio/core/internal/pkg/pagination"
	"github.com/lumen-studio/core/internal/pkg/response"
	"github.com/lumen-studio/core/internal/pkg/storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const auditTable = "portfolio_items"

// Service owns portfolio items and their object-storage assets. Every admin
// mutation runs through the snapshot → mutate → snapshot → audit pipeline;
// audit writes and asset deletions are best-effort and never fail the
// request.
type Service struct {
	db    *gorm.DB
	store storage.ObjectStorage
	audit *audit.Recorder
	log   *zap.Logger

	pinnedCategoryID uint
	publicPageSize   int
	assetPrefix      string
}

func NewService(db *gorm.DB, store storage.ObjectStorage, rec *audit.Recorder, log *zap.Logger, cfg config.CatalogConfig, assetPrefix string) *Service {
	return &Service{
		db:               db,
		store:            store,
		audit:            rec,
		log:              log,
		pinnedCategoryID: cfg.PinnedCategoryID,
		publicPageSize:   cfg.PublicPageSize,
		assetPrefix:      assetPrefix,
	}
}

// ListPublic returns the public listing page. The default sort with no
// category filter goes through the pinned-category merge paginator; every
// other combination paginates at the store.
func (s *Service) ListPublic(q ListQuery) ([]models.PortfolioItem, PublicPagination, error) {
	limit := s.publicPageSize

	var (
		items []models.PortfolioItem
		total int64
		err   error
	)
	if q.Sort == SortLatest && q.CategoryID == 0 {
		items, total, err = s.listMerged(q, limit)
	} else {
		tx := s.publicQuery(q)
		if err = tx.Count(&total).Error; err == nil {
			err = tx.Offset((q.Page - 1) * limit).Limit(limit).Find(&items).Error
		}
	}
	if err != nil {
		return nil, PublicPagination{}, err
	}

	return items, PublicPagination{
		TotalItems:   total,
		TotalPages:   pagination.TotalPages(total, limit),
		CurrentPage:  q.Page,
		ItemsPerPage: limit,
	}, nil
}

// GetPublic fetches one active item. Archived and unknown ids both read as
// not found.
func (s *Service) GetPublic(id uint) (*models.PortfolioItem, error) {
	var item models.PortfolioItem
	err := s.db.Preload("Category").
		Where("is_deleted = ?", false).
		First(&item, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// ListAdmin returns the admin listing, active or archived view.
func (s *Service) ListAdmin(q pagination.Query, search string, categoryID uint, archived bool) ([]models.PortfolioItem, response.Pagination, error) {
	var items []models.PortfolioItem
	pag, err := pagination.Paginate(s.adminQuery(search, categoryID, archived), q, &items)
	return items, pag, err
}

// GetByID fetches one item regardless of archive state.
func (s *Service) GetByID(id uint) (*models.PortfolioItem, error) {
	var item models.PortfolioItem
	if err := s.db.Preload("Category").First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// Create inserts a new item. A cover image is mandatory; detail media follow
// the declared kind's rules.
func (s *Service) Create(ctx context.Context, actor string, in CreateItemInput) (*models.PortfolioItem, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, ErrTitleRequired
	}
	if in.CategoryID == 0 {
		return nil, ErrCategoryRequired
	}
	if in.Cover == nil {
		return nil, ErrCoverRequired
	}
	if !in.Kind.Valid() {
		return nil, ErrInvalidKind
	}

	cat, err := s.lookupCategory(in.CategoryID)
	if err != nil {
		return nil, err
	}

	details, err := s.buildDetails(ctx, in.Kind, in.URL, in.DetailFiles)
	if err != nil {
		return nil, err
	}

	coverURL, err := s.uploadFile(ctx, *in.Cover)
	if err != nil {
		return nil, err
	}

	item := models.PortfolioItem{
		Title:         strings.TrimSpace(in.Title),
		Description:   in.Description,
		CategoryID:    cat.ID,
		CategoryName:  cat.Name,
		CoverImageURL: coverURL,
		Details:       details,
	}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}

	s.audit.Record(actor, models.AuditCreate, auditTable, item.ID, nil, item)
	return &item, nil
}

// Update patches an item. Cover replacement deletes the previous managed
// asset; detail replacement semantics depend on the declared kind; a category
// change re-syncs the denormalized category name.
func (s *Service) Update(ctx context.Context, actor string, id uint, in UpdateItemInput) (*models.PortfolioItem, error) {
	item, err := s.GetByID(id)
	if err != nil || item == nil {
		return item, err
	}
	before := *item

	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, ErrTitleRequired
		}
		item.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		item.Description = *in.Description
	}

	if in.Kind != nil {
		if !in.Kind.Valid() {
			return nil, ErrInvalidKind
		}
		if *in.Kind != models.MediaImage && (in.URL == nil || strings.TrimSpace(*in.URL) == "") {
			return nil, ErrDetailURLRequired
		}
	}

	if in.CategoryID != nil && *in.CategoryID != item.CategoryID {
		cat, err := s.lookupCategory(*in.CategoryID)
		if err != nil {
			return nil, err
		}
		item.CategoryID = cat.ID
		item.CategoryName = cat.Name
	}

	// Replaced cover is removed only once the row has saved; a rejected or
	// failed update must never destroy an asset the stored row points at.
	var staleCover string
	if in.Cover != nil {
		coverURL, err := s.uploadFile(ctx, *in.Cover)
		if err != nil {
			return nil, err
		}
		staleCover = before.CoverImageURL
		item.CoverImageURL = coverURL
	}

	if in.Kind != nil {
		details, err := s.replaceDetails(ctx, item, *in.Kind, in)
		if err != nil {
			return nil, err
		}
		item.Details = details
	}

	item.Category = nil
	if err := s.db.Save(item).Error; err != nil {
		return nil, err
	}

	if staleCover != "" {
		s.deleteAssets(ctx, staleCover)
	}

	s.audit.Record(actor, models.AuditUpdate, auditTable, item.ID, before, *item)
	return item, nil
}

// Archive flips an item to the archived state. Archiving an already-archived
// item is a no-op that returns the current state without a redundant audit
// entry.
func (s *Service) Archive(ctx context.Context, actor string, id uint) (*models.PortfolioItem, error) {
	return s.setArchived(actor, id, true)
}

// Unarchive restores an archived item to public visibility. Idempotent like
// Archive.
func (s *Service) Unarchive(ctx context.Context, actor string, id uint) (*models.PortfolioItem, error) {
	return s.setArchived(actor, id, false)
}

func (s *Service) setArchived(actor string, id uint, archived bool) (*models.PortfolioItem, error) {
	item, err := s.GetByID(id)
	if err != nil || item == nil {
		return item, err
	}
	if item.IsDeleted == archived {
		return item, nil
	}
	before := *item

	if err := s.db.Model(item).Update("is_deleted", archived).Error; err != nil {
		return nil, err
	}

	s.audit.Record(actor, models.AuditUpdate, auditTable, item.ID, before, *item)
	return item, nil
}

// Purge permanently deletes an item: cover and image detail assets are
// removed from managed storage first (best-effort), then the row. Returns the
// deleted item, or nil when the id is unknown.
func (s *Service) Purge(ctx context.Context, actor string, id uint) (*models.PortfolioItem, error) {
	item, err := s.GetByID(id)
	if err != nil || item == nil {
		return item, err
	}

	urls := append([]string{item.CoverImageURL}, item.ImageDetailURLs()...)
	s.deleteAssets(ctx, urls...)

	if err := s.db.Delete(&models.PortfolioItem{}, "id = ?", id).Error; err != nil {
		return nil, err
	}

	s.audit.Record(actor, models.AuditDelete, auditTable, item.ID, *item, nil)
	return item, nil
}

func (s *Service) lookupCategory(id uint) (*models.Category, error) {
	var cat models.Category
	if err := s.db.First(&cat, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &UnknownCategoryError{ID: id}
		}
		return nil, err
	}
	return &cat, nil
}
