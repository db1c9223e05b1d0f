package models

// ContactMessage captures a public contact-form submission. Immutable once
// created except for admin-initiated deletion.
type ContactMessage struct {
	Base
	Name      string `json:"name"    gorm:"not null"`
	Email     string `json:"email"   gorm:"not null;index"`
	Phone     string `json:"phone"`
	Service   string `json:"service"`
	Message   string `json:"message" gorm:"type:text;not null"`
	IP        string `json:"ip"`
	UserAgent string `json:"user_agent" gorm:"type:text"`
}

func (ContactMessage) TableName() string { return "contact_messages" }
