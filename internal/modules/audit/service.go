package audit

import (
	"github.com/lumen-studio/core/internal/models"
	"gorm.io/gorm"
)

const (
	DefaultQueryLimit = 100
	MaxQueryLimit     = 500
)

// Service reads the append-only audit log.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Recent returns up to limit entries, newest first.
func (s *Service) Recent(limit int) ([]models.AuditLogEntry, error) {
	if limit <= 0 {
		limit = DefaultQueryLimit
	}
	if limit > MaxQueryLimit {
		limit = MaxQueryLimit
	}

	var entries []models.AuditLogEntry
	err := s.db.Order("created_at DESC, id DESC").Limit(limit).Find(&entries).Error
	return entries, err
}
