package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdminUser is a dashboard account.
type AdminUser struct {
	Base
	Username     string `json:"username" gorm:"uniqueIndex;not null"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"        gorm:"not null"`
}

func (AdminUser) TableName() string { return "admin_users" }

// AdminSession is a revocable login session backing a JWT.
type AdminSession struct {
	ID        string     `json:"id"         gorm:"type:char(36);primaryKey"`
	UserID    uint       `json:"user_id"    gorm:"index;not null"`
	IP        string     `json:"ip"`
	UA        string     `json:"ua"         gorm:"type:text"`
	ExpiresAt time.Time  `json:"expires_at"`
	RevokedAt *time.Time `json:"revoked_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (AdminSession) TableName() string { return "admin_sessions" }

func (s *AdminSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}
