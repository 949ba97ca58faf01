package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ModifierGroup is an independent entity shared across products via the join
// table. Required is derived: MinSelection > 0.
type ModifierGroup struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	Name         string     `gorm:"column:name;not null"`
	MinSelection int        `gorm:"column:min_selection;not null;default:0"`
	MaxSelection int        `gorm:"column:max_selection;not null;default:0"`
	Required     bool       `gorm:"column:required;not null;default:false"`
	Modifiers    []Modifier `gorm:"foreignKey:ModifierGroupID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (g *ModifierGroup) BeforeCreate(_ *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
