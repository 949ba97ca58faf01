package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category groups products inside one company's menu.
type Category struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	CompanyID uuid.UUID      `gorm:"column:company_id;type:uuid;not null;index"`
	Name      string         `gorm:"column:name;not null"`
	Position  int            `gorm:"column:position;not null;default:0"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (c *Category) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
