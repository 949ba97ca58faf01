package categories

import (
	"time"

	"github.com/google/uuid"

	"github.com/comandahq/backoffice-backend/pkg/db/models"
)

// CategoryDTO is the category payload returned to clients.
type CategoryDTO struct {
	ID        uuid.UUID `json:"id"`
	CompanyID uuid.UUID `json:"company_id"`
	Name      string    `json:"name"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCategoryDTO builds a DTO from the persisted model.
func NewCategoryDTO(category *models.Category) *CategoryDTO {
	return &CategoryDTO{
		ID:        category.ID,
		CompanyID: category.CompanyID,
		Name:      category.Name,
		Position:  category.Position,
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}
}
