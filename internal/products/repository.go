package products

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/comandahq/backoffice-backend/pkg/db/models"
	"github.com/comandahq/backoffice-backend/pkg/pagination"
)

// Repository wires together product persistence helpers.
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

// Create inserts a new product row.
func (r *Repository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// FindByID loads the bare product row.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByIDForUpdate loads the product row under a row lock so concurrent
// writes to the same product serialize.
func (r *Repository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&product, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetDetail loads the product with variants and modifier groups, children
// ordered by display order.
func (r *Repository) GetDetail(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		Preload("ModifierJoins", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		Preload("ModifierJoins.ModifierGroup").
		Preload("ModifierJoins.ModifierGroup.Modifiers", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		First(&product, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ListFilter narrows the product listing.
type ListFilter struct {
	CompanyID  uuid.UUID
	CategoryID *uuid.UUID
	ActiveOnly bool
}

// List returns a page of products for the company ordered by newest first,
// fetching one extra row so callers can detect a next page.
func (r *Repository) List(ctx context.Context, filter ListFilter, params pagination.Params) ([]models.Product, error) {
	query := r.db.WithContext(ctx).
		Where("company_id = ?", filter.CompanyID).
		Order("created_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit))

	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		query = query.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	var rows []models.Product
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Update saves the product's scalar columns.
func (r *Repository) Update(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Omit("Variants", "ModifierJoins").Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// Delete soft-deletes the product row. Children stay in place so a restore
// keeps the product intact.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{}).Error
}

// ListVariants returns the product's variants in display order.
func (r *Repository) ListVariants(ctx context.Context, productID uuid.UUID) ([]models.Variant, error) {
	var rows []models.Variant
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("display_order ASC").
		Find(&rows).
		Error
	return rows, err
}

// CreateVariant inserts a new variant row.
func (r *Repository) CreateVariant(ctx context.Context, variant *models.Variant) error {
	return r.db.WithContext(ctx).Create(variant).Error
}

// UpdateVariant saves an existing variant row.
func (r *Repository) UpdateVariant(ctx context.Context, variant *models.Variant) error {
	return r.db.WithContext(ctx).Save(variant).Error
}

// DeleteVariant removes a variant row. Hard delete, per child lifecycle.
func (r *Repository) DeleteVariant(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Variant{}).Error
}

// ListJoins returns the product's modifier-group links in display order.
func (r *Repository) ListJoins(ctx context.Context, productID uuid.UUID) ([]models.ProductModifierGroup, error) {
	var rows []models.ProductModifierGroup
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("display_order ASC").
		Find(&rows).
		Error
	return rows, err
}

// UpsertJoin creates or repositions the link between a product and a group.
func (r *Repository) UpsertJoin(ctx context.Context, productID, groupID uuid.UUID, displayOrder int) error {
	tx := r.db.WithContext(ctx)

	var join models.ProductModifierGroup
	err := tx.Where("product_id = ? AND modifier_group_id = ?", productID, groupID).First(&join).Error
	switch {
	case err == nil:
		join.DisplayOrder = displayOrder
		return tx.Save(&join).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		join = models.ProductModifierGroup{
			ProductID:       productID,
			ModifierGroupID: groupID,
			DisplayOrder:    displayOrder,
		}
		return tx.Create(&join).Error
	default:
		return err
	}
}

// DeleteJoinsExcept removes link rows for groups no longer referenced. The
// groups themselves and their modifiers are untouched.
func (r *Repository) DeleteJoinsExcept(ctx context.Context, productID uuid.UUID, keep []uuid.UUID) error {
	query := r.db.WithContext(ctx).Where("product_id = ?", productID)
	if len(keep) > 0 {
		query = query.Where("modifier_group_id NOT IN ?", keep)
	}
	return query.Delete(&models.ProductModifierGroup{}).Error
}

// CountVariants reports how many variants the product currently has.
func (r *Repository) CountVariants(ctx context.Context, productID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.Variant{}).
		Where("product_id = ?", productID).
		Count(&n).
		Error
	return n, err
}

// CountJoins reports how many modifier groups are linked to the product.
func (r *Repository) CountJoins(ctx context.Context, productID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.ProductModifierGroup{}).
		Where("product_id = ?", productID).
		Count(&n).
		Error
	return n, err
}
