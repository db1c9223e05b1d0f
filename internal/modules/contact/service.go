package contact

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lumen-studio/core/internal/models"
	"github.com/lumen-studio/core/internal/modules/audit"
	"github.com/lumen-studio/core/internal/pkg/mail"
	"github.com/lumen-studio/core/internal/pkg/pagination"
	"github.com/lumen-studio/core/internal/pkg/response"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const auditTable = "contact_messages"

type SubmitDTO struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Service string `json:"service"`
	Message string `json:"message" binding:"required"`
}

type Service struct {
	db     *gorm.DB
	audit  *audit.Recorder
	sender *mail.Sender
	log    *zap.Logger
}

func NewService(db *gorm.DB, rec *audit.Recorder, sender *mail.Sender, log *zap.Logger) *Service {
	return &Service{db: db, audit: rec, sender: sender, log: log}
}

// Submit stores a public contact-form submission and fires an optional mail
// notification. Notification failures are logged and never surfaced; the
// submission's success does not depend on them.
func (s *Service) Submit(dto *SubmitDTO, ip, userAgent string) (*models.ContactMessage, error) {
	msg := models.ContactMessage{
		Name:      strings.TrimSpace(dto.Name),
		Email:     strings.TrimSpace(dto.Email),
		Phone:     strings.TrimSpace(dto.Phone),
		Service:   strings.TrimSpace(dto.Service),
		Message:   strings.TrimSpace(dto.Message),
		IP:        ip,
		UserAgent: userAgent,
	}
	if err := s.db.Create(&msg).Error; err != nil {
		return nil, err
	}

	if s.sender.Enabled() {
		go s.notify(msg)
	}
	return &msg, nil
}

func (s *Service) notify(msg models.ContactMessage) {
	err := s.sender.Send(mail.Message{
		To:      s.sender.DefaultRecipients(),
		Subject: fmt.Sprintf("New contact message from %s", msg.Name),
		Text: fmt.Sprintf("Name: %s\nEmail: %s\nPhone: %s\nService: %s\n\n%s\n",
			msg.Name, msg.Email, msg.Phone, msg.Service, msg.Message),
	})
	if err != nil {
		s.log.Warn("contact notification mail failed", zap.Uint("id", msg.ID), zap.Error(err))
	}
}

// List returns submissions newest first.
func (s *Service) List(q pagination.Query) ([]models.ContactMessage, response.Pagination, error) {
	tx := s.db.Model(&models.ContactMessage{}).Order("created_at DESC, id DESC")
	var msgs []models.ContactMessage
	pag, err := pagination.Paginate(tx, q, &msgs)
	return msgs, pag, err
}

func (s *Service) GetByID(id uint) (*models.ContactMessage, error) {
	var msg models.ContactMessage
	if err := s.db.First(&msg, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &msg, nil
}

// Delete removes a submission (the only mutation allowed after creation).
func (s *Service) Delete(actor string, id uint) error {
	msg, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if msg == nil {
		return gorm.ErrRecordNotFound
	}

	if err := s.db.Delete(&models.ContactMessage{}, "id = ?", id).Error; err != nil {
		return err
	}

	s.audit.Record(actor, models.AuditDelete, auditTable, id, *msg, nil)
	return nil
}
