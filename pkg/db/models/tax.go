package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Tax is a named percentage rate products can reference.
type Tax struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	CompanyID uuid.UUID       `gorm:"column:company_id;type:uuid;not null;index"`
	Name      string          `gorm:"column:name;not null"`
	Rate      decimal.Decimal `gorm:"column:rate;type:numeric(5,2);not null"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt  `gorm:"column:deleted_at;index"`
}

func (t *Tax) BeforeCreate(_ *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
