package models

import "time"

// Base is the base model for all entities. The API exposes numeric ids, so
// primary keys are auto-incremented integers.
type Base struct {
	ID        uint      `json:"id"         gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
