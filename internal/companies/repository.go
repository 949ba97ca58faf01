package companies

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/comandahq/backoffice-backend/pkg/db/models"
)

// Repository handles company persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to company operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new company row.
func (r *Repository) Create(ctx context.Context, company *models.Company) (*models.Company, error) {
	if err := r.db.WithContext(ctx).Create(company).Error; err != nil {
		return nil, err
	}
	return company, nil
}

// FindByID loads a company by its UUID. Soft-deleted rows are excluded.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	var company models.Company
	if err := r.db.WithContext(ctx).First(&company, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

// List returns all live companies ordered by name.
func (r *Repository) List(ctx context.Context) ([]models.Company, error) {
	var rows []models.Company
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}

// Update saves the provided company.
func (r *Repository) Update(ctx context.Context, company *models.Company) (*models.Company, error) {
	if err := r.db.WithContext(ctx).Save(company).Error; err != nil {
		return nil, err
	}
	return company, nil
}

// Delete soft-deletes a company by ID.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Company{}).Error
}
