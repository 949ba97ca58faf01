package categories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/comandahq/backoffice-backend/pkg/db/models"
)

// Repository handles category persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to category operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new category row.
func (r *Repository) Create(ctx context.Context, category *models.Category) (*models.Category, error) {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// FindByID loads a category by its UUID. Soft-deleted rows are excluded.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// ListByCompany returns a company's live categories in display order.
func (r *Repository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]models.Category, error) {
	var rows []models.Category
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("position ASC").
		Order("name ASC").
		Find(&rows).
		Error
	return rows, err
}

// Update saves the provided category.
func (r *Repository) Update(ctx context.Context, category *models.Category) (*models.Category, error) {
	if err := r.db.WithContext(ctx).Save(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// Delete soft-deletes a category by ID.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Category{}).Error
}
