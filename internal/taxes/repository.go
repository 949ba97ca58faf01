package taxes

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/comandahq/backoffice-backend/pkg/db/models"
)

// Repository handles tax persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to tax operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new tax row.
func (r *Repository) Create(ctx context.Context, tax *models.Tax) (*models.Tax, error) {
	if err := r.db.WithContext(ctx).Create(tax).Error; err != nil {
		return nil, err
	}
	return tax, nil
}

// FindByID loads a tax by its UUID. Soft-deleted rows are excluded.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Tax, error) {
	var tax models.Tax
	if err := r.db.WithContext(ctx).First(&tax, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tax, nil
}

// ListByCompany returns a company's live taxes ordered by name.
func (r *Repository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]models.Tax, error) {
	var rows []models.Tax
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("name ASC").
		Find(&rows).
		Error
	return rows, err
}

// Update saves the provided tax.
func (r *Repository) Update(ctx context.Context, tax *models.Tax) (*models.Tax, error) {
	if err := r.db.WithContext(ctx).Save(tax).Error; err != nil {
		return nil, err
	}
	return tax, nil
}

// Delete soft-deletes a tax by ID.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Tax{}).Error
}
