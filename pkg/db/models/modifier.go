package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Modifier belongs to exactly one modifier group.
type Modifier struct {
	ID              uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	ModifierGroupID uuid.UUID       `gorm:"column:modifier_group_id;type:uuid;not null;index"`
	Name            string          `gorm:"column:name;not null"`
	Price           decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null;default:0"`
	MaxQuantity     int             `gorm:"column:max_quantity;not null;default:1"`
	DisplayOrder    int             `gorm:"column:display_order;not null;default:0"`
	IsActive        bool            `gorm:"column:is_active;not null;default:true"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (m *Modifier) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
