package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Variant belongs to exactly one product. DisplayOrder always equals the
// variant's index in the last submitted collection.
type Variant struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	ProductID    uuid.UUID       `gorm:"column:product_id;type:uuid;not null;index"`
	Name         string          `gorm:"column:name;not null"`
	SKU          *string         `gorm:"column:sku"`
	Price        decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	DisplayOrder int             `gorm:"column:display_order;not null;default:0"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (v *Variant) BeforeCreate(_ *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
