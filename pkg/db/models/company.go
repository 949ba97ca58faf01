package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Company is the tenant boundary every catalog row hangs off.
type Company struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	Name      string         `gorm:"column:name;not null"`
	LegalName *string        `gorm:"column:legal_name"`
	Phone     *string        `gorm:"column:phone"`
	Email     *string        `gorm:"column:email"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (c *Company) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
