package companies

import (
	"time"

	"github.com/google/uuid"

	"github.com/comandahq/backoffice-backend/pkg/db/models"
)

// CompanyDTO is the company payload returned to clients.
type CompanyDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	LegalName *string   `json:"legal_name,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	Email     *string   `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCompanyDTO builds a DTO from the persisted model.
func NewCompanyDTO(company *models.Company) *CompanyDTO {
	return &CompanyDTO{
		ID:        company.ID,
		Name:      company.Name,
		LegalName: company.LegalName,
		Phone:     company.Phone,
		Email:     company.Email,
		CreatedAt: company.CreatedAt,
		UpdatedAt: company.UpdatedAt,
	}
}
