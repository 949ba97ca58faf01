package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductModifierGroup links a product to a shared modifier group. At most
// one row per (product_id, modifier_group_id); DisplayOrder equals the
// group's index in the last submitted collection.
type ProductModifierGroup struct {
	ID              uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	ProductID       uuid.UUID      `gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_product_modifier_groups_pair"`
	ModifierGroupID uuid.UUID      `gorm:"column:modifier_group_id;type:uuid;not null;uniqueIndex:idx_product_modifier_groups_pair"`
	DisplayOrder    int            `gorm:"column:display_order;not null;default:0"`
	ModifierGroup   *ModifierGroup `gorm:"foreignKey:ModifierGroupID"`
	CreatedAt       time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (j *ProductModifierGroup) BeforeCreate(_ *gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}
