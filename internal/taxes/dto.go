package taxes

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/comandahq/backoffice-backend/pkg/db/models"
)

// TaxDTO is the tax payload returned to clients.
type TaxDTO struct {
	ID        uuid.UUID       `json:"id"`
	CompanyID uuid.UUID       `json:"company_id"`
	Name      string          `json:"name"`
	Rate      decimal.Decimal `json:"rate"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// NewTaxDTO builds a DTO from the persisted model.
func NewTaxDTO(tax *models.Tax) *TaxDTO {
	return &TaxDTO{
		ID:        tax.ID,
		CompanyID: tax.CompanyID,
		Name:      tax.Name,
		Rate:      tax.Rate,
		CreatedAt: tax.CreatedAt,
		UpdatedAt: tax.UpdatedAt,
	}
}
