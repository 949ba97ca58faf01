package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is the canonical menu item. HasVariants/HasModifiers are derived
// flags kept in sync with the child collections at every write.
type Product struct {
	ID            uuid.UUID              `gorm:"column:id;type:uuid;primaryKey"`
	CompanyID     uuid.UUID              `gorm:"column:company_id;type:uuid;not null;uniqueIndex:idx_products_company_code"`
	CategoryID    *uuid.UUID             `gorm:"column:category_id;type:uuid;index"`
	TaxID         *uuid.UUID             `gorm:"column:tax_id;type:uuid"`
	Code          string                 `gorm:"column:code;not null;uniqueIndex:idx_products_company_code"`
	Name          string                 `gorm:"column:name;not null"`
	Description   *string                `gorm:"column:description"`
	Price         decimal.Decimal        `gorm:"column:price;type:numeric(10,2);not null"`
	ImageURL      *string                `gorm:"column:image_url"`
	IsActive      bool                   `gorm:"column:is_active;not null;default:true"`
	HasVariants   bool                   `gorm:"column:has_variants;not null;default:false"`
	HasModifiers  bool                   `gorm:"column:has_modifiers;not null;default:false"`
	Variants      []Variant              `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	ModifierJoins []ProductModifierGroup `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time              `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt     gorm.DeletedAt         `gorm:"column:deleted_at;index"`
}

func (p *Product) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
