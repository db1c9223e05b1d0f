package auth

import (
	"errors"
	"strings"

	"github.com/lumen-studio/core/internal/config"
	"github.com/lumen-studio/core/internal/models"
	sessionpkg "github.com/lumen-studio/core/internal/pkg/session"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrBadCredentials is returned for unknown users and wrong passwords alike.
var ErrBadCredentials = errors.New("invalid username or password")

type Service struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewService(db *gorm.DB, log *zap.Logger) *Service {
	return &Service{db: db, log: log}
}

// Login verifies credentials and issues a session-bound JWT.
func (s *Service) Login(username, password, ip, ua string) (string, *models.AdminUser, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", nil, ErrBadCredentials
	}

	var user models.AdminUser
	if err := s.db.First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrBadCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrBadCredentials
	}

	token, _, err := sessionpkg.Issue(s.db, user.ID, ip, ua, sessionpkg.DefaultTTL)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

// Logout revokes the current session.
func (s *Service) Logout(userID uint, sessionID string) error {
	err := sessionpkg.Revoke(s.db, userID, sessionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}

// GetUser fetches an admin account by id.
func (s *Service) GetUser(id uint) (*models.AdminUser, error) {
	var user models.AdminUser
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// Seed creates the initial admin account on first boot when the table is
// empty and credentials are configured.
func (s *Service) Seed(cfg config.AdminSeedConfig) error {
	if strings.TrimSpace(cfg.Username) == "" || cfg.Password == "" {
		return nil
	}

	var count int64
	if err := s.db.Model(&models.AdminUser{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := models.AdminUser{
		Username:     strings.TrimSpace(cfg.Username),
		Name:         cfg.Name,
		PasswordHash: string(hash),
	}
	if err := s.db.Create(&user).Error; err != nil {
		return err
	}
	s.log.Info("seeded initial admin account", zap.String("username", user.Username))
	return nil
}
