package modifiergroups

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/comandahq/backoffice-backend/pkg/db/models"
)

// Repository wires together modifier-group persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindByID loads the group with its modifiers in display order.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.ModifierGroup, error) {
	var group models.ModifierGroup
	err := r.db.WithContext(ctx).
		Preload("Modifiers", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		First(&group, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// FindBare loads the group row without associations.
func (r *Repository) FindBare(ctx context.Context, id uuid.UUID) (*models.ModifierGroup, error) {
	var group models.ModifierGroup
	if err := r.db.WithContext(ctx).First(&group, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

// List returns every group with modifiers preloaded in display order.
func (r *Repository) List(ctx context.Context) ([]models.ModifierGroup, error) {
	var rows []models.ModifierGroup
	err := r.db.WithContext(ctx).
		Preload("Modifiers", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		Order("name ASC").
		Find(&rows).
		Error
	return rows, err
}

// Create inserts a new group row.
func (r *Repository) Create(ctx context.Context, group *models.ModifierGroup) (*models.ModifierGroup, error) {
	if err := r.db.WithContext(ctx).Create(group).Error; err != nil {
		return nil, err
	}
	return group, nil
}

// Update saves an existing group row.
func (r *Repository) Update(ctx context.Context, group *models.ModifierGroup) (*models.ModifierGroup, error) {
	if err := r.db.WithContext(ctx).Save(group).Error; err != nil {
		return nil, err
	}
	return group, nil
}

// Delete hard-deletes the group, its modifiers, and any join rows pointing at
// it. Groups are not soft-deleted.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("modifier_group_id = ?", id).Delete(&models.ProductModifierGroup{}).Error; err != nil {
		return err
	}
	if err := tx.Where("modifier_group_id = ?", id).Delete(&models.Modifier{}).Error; err != nil {
		return err
	}
	return tx.Where("id = ?", id).Delete(&models.ModifierGroup{}).Error
}

// ListModifiers returns the group's modifiers in display order.
func (r *Repository) ListModifiers(ctx context.Context, groupID uuid.UUID) ([]models.Modifier, error) {
	var rows []models.Modifier
	err := r.db.WithContext(ctx).
		Where("modifier_group_id = ?", groupID).
		Order("display_order ASC").
		Find(&rows).
		Error
	return rows, err
}

// CreateModifier inserts a new modifier row.
func (r *Repository) CreateModifier(ctx context.Context, modifier *models.Modifier) error {
	return r.db.WithContext(ctx).Create(modifier).Error
}

// UpdateModifier saves an existing modifier row.
func (r *Repository) UpdateModifier(ctx context.Context, modifier *models.Modifier) error {
	return r.db.WithContext(ctx).Save(modifier).Error
}

// DeleteModifier removes a modifier row. Hard delete, per child lifecycle.
func (r *Repository) DeleteModifier(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Modifier{}).Error
}
