package products

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/comandahq/backoffice-backend/internal/modifiergroups"
	"github.com/comandahq/backoffice-backend/pkg/db/models"
)

// VariantDTO is one product variant in API responses.
type VariantDTO struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	SKU          *string         `json:"sku,omitempty"`
	Price        decimal.Decimal `json:"price"`
	DisplayOrder int             `json:"display_order"`
}

// ProductGroupDTO is a modifier group as attached to a product, carrying the
// product-scoped display order alongside the shared group payload.
type ProductGroupDTO struct {
	modifiergroups.ModifierGroupDTO
	DisplayOrder int `json:"display_order"`
}

// ProductDTO is the full product payload returned to clients.
type ProductDTO struct {
	ID             uuid.UUID         `json:"id"`
	CompanyID      uuid.UUID         `json:"company_id"`
	CategoryID     *uuid.UUID        `json:"category_id,omitempty"`
	TaxID          *uuid.UUID        `json:"tax_id,omitempty"`
	Code           string            `json:"code"`
	Name           string            `json:"name"`
	Description    *string           `json:"description,omitempty"`
	Price          decimal.Decimal   `json:"price"`
	ImageURL       *string           `json:"image_url,omitempty"`
	IsActive       bool              `json:"is_active"`
	HasVariants    bool              `json:"has_variants"`
	HasModifiers   bool              `json:"has_modifiers"`
	Variants       []VariantDTO      `json:"variants"`
	ModifierGroups []ProductGroupDTO `json:"modifier_groups"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// ProductSummaryDTO is the compact listing payload. Child collections are
// omitted; the derived flags signal whether they exist.
type ProductSummaryDTO struct {
	ID           uuid.UUID       `json:"id"`
	CategoryID   *uuid.UUID      `json:"category_id,omitempty"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	ImageURL     *string         `json:"image_url,omitempty"`
	IsActive     bool            `json:"is_active"`
	HasVariants  bool            `json:"has_variants"`
	HasModifiers bool            `json:"has_modifiers"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ProductPageDTO wraps one page of summaries with the cursor for the next.
type ProductPageDTO struct {
	Products   []ProductSummaryDTO `json:"products"`
	NextCursor *string             `json:"next_cursor,omitempty"`
}

// NewVariantDTO builds a DTO from the persisted variant.
func NewVariantDTO(v *models.Variant) VariantDTO {
	return VariantDTO{
		ID:           v.ID,
		Name:         v.Name,
		SKU:          v.SKU,
		Price:        v.Price,
		DisplayOrder: v.DisplayOrder,
	}
}

// NewProductDTO builds the full DTO from a product loaded with its children.
func NewProductDTO(product *models.Product) *ProductDTO {
	variants := make([]VariantDTO, 0, len(product.Variants))
	for i := range product.Variants {
		variants = append(variants, NewVariantDTO(&product.Variants[i]))
	}

	groups := make([]ProductGroupDTO, 0, len(product.ModifierJoins))
	for i := range product.ModifierJoins {
		join := &product.ModifierJoins[i]
		if join.ModifierGroup == nil {
			continue
		}
		groups = append(groups, ProductGroupDTO{
			ModifierGroupDTO: *modifiergroups.NewModifierGroupDTO(join.ModifierGroup),
			DisplayOrder:     join.DisplayOrder,
		})
	}

	return &ProductDTO{
		ID:             product.ID,
		CompanyID:      product.CompanyID,
		CategoryID:     product.CategoryID,
		TaxID:          product.TaxID,
		Code:           product.Code,
		Name:           product.Name,
		Description:    product.Description,
		Price:          product.Price,
		ImageURL:       product.ImageURL,
		IsActive:       product.IsActive,
		HasVariants:    product.HasVariants,
		HasModifiers:   product.HasModifiers,
		Variants:       variants,
		ModifierGroups: groups,
		CreatedAt:      product.CreatedAt,
		UpdatedAt:      product.UpdatedAt,
	}
}

// NewProductSummaryDTO builds the listing payload from a bare product row.
func NewProductSummaryDTO(product *models.Product) ProductSummaryDTO {
	return ProductSummaryDTO{
		ID:           product.ID,
		CategoryID:   product.CategoryID,
		Code:         product.Code,
		Name:         product.Name,
		Price:        product.Price,
		ImageURL:     product.ImageURL,
		IsActive:     product.IsActive,
		HasVariants:  product.HasVariants,
		HasModifiers: product.HasModifiers,
		CreatedAt:    product.CreatedAt,
	}
}
