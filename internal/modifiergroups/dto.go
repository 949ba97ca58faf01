package modifiergroups

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/comandahq/backoffice-backend/pkg/db/models"
)

// ModifierDTO is one selectable option inside a group.
type ModifierDTO struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	MaxQuantity  int             `json:"max_quantity"`
	DisplayOrder int             `json:"display_order"`
	IsActive     bool            `json:"is_active"`
}

// ModifierGroupDTO is the group payload returned to clients.
type ModifierGroupDTO struct {
	ID           uuid.UUID     `json:"id"`
	Name         string        `json:"name"`
	MinSelection int           `json:"min_selection"`
	MaxSelection int           `json:"max_selection"`
	Required     bool          `json:"required"`
	Items        []ModifierDTO `json:"items"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// NewModifierDTO builds a DTO from the persisted modifier.
func NewModifierDTO(m *models.Modifier) ModifierDTO {
	return ModifierDTO{
		ID:           m.ID,
		Name:         m.Name,
		Price:        m.Price,
		MaxQuantity:  m.MaxQuantity,
		DisplayOrder: m.DisplayOrder,
		IsActive:     m.IsActive,
	}
}

// NewModifierGroupDTO builds a DTO from the persisted group and its modifiers.
func NewModifierGroupDTO(group *models.ModifierGroup) *ModifierGroupDTO {
	items := make([]ModifierDTO, 0, len(group.Modifiers))
	for i := range group.Modifiers {
		items = append(items, NewModifierDTO(&group.Modifiers[i]))
	}
	return &ModifierGroupDTO{
		ID:           group.ID,
		Name:         group.Name,
		MinSelection: group.MinSelection,
		MaxSelection: group.MaxSelection,
		Required:     group.Required,
		Items:        items,
		CreatedAt:    group.CreatedAt,
		UpdatedAt:    group.UpdatedAt,
	}
}
