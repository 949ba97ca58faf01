package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/comandahq/backoffice-backend/internal/modifiergroups"
	"github.com/comandahq/backoffice-backend/internal/reconcile"
	"github.com/comandahq/backoffice-backend/pkg/db"
	"github.com/comandahq/backoffice-backend/pkg/db/models"
	pkgerrors "github.com/comandahq/backoffice-backend/pkg/errors"
	"github.com/comandahq/backoffice-backend/pkg/pagination"
)

// VariantInput describes one variant inside a product write. A Nil ID
// requests a create; a known ID patches the existing row; an unknown ID is
// treated as a create with a fresh identifier.
type VariantInput struct {
	ID    uuid.UUID
	Name  string
	SKU   *string
	Price *decimal.Decimal
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	CompanyID      *uuid.UUID
	CategoryID     *uuid.UUID
	TaxID          *uuid.UUID
	Code           string
	Name           string
	Description    *string
	Price          decimal.Decimal
	ImageURL       *string
	IsActive       *bool
	Variants       *[]VariantInput
	ModifierGroups *[]modifiergroups.GroupInput
}

// UpdateProductInput holds optional mutation values for a product. A nil
// collection pointer leaves that collection untouched; an empty slice clears
// it.
type UpdateProductInput struct {
	CategoryID     *uuid.UUID
	TaxID          *uuid.UUID
	Code           *string
	Name           *string
	Description    *string
	Price          *decimal.Decimal
	ImageURL       *string
	IsActive       *bool
	Variants       *[]VariantInput
	ModifierGroups *[]modifiergroups.GroupInput
}

// ListParams narrows and paginates the product listing.
type ListParams struct {
	CategoryID *uuid.UUID
	ActiveOnly bool
	Pagination pagination.Params
}

// Service exposes product management operations.
type Service interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, productID uuid.UUID) error
	GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, error)
	ListProducts(ctx context.Context, params ListParams) (*ProductPageDTO, error)
}

type service struct {
	client           *db.Client
	repo             *Repository
	groups           *modifiergroups.Reconciler
	defaultCompanyID uuid.UUID
}

// NewService constructs a product service instance.
func NewService(client *db.Client, repo *Repository, groups *modifiergroups.Reconciler, defaultCompanyID uuid.UUID) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("db client required")
	}
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if groups == nil {
		return nil, fmt.Errorf("modifier group reconciler required")
	}
	if defaultCompanyID == uuid.Nil {
		return nil, fmt.Errorf("default company id required")
	}
	return &service{
		client:           client,
		repo:             repo,
		groups:           groups,
		defaultCompanyID: defaultCompanyID,
	}, nil
}

func variantHooks(productID uuid.UUID) reconcile.Hooks[models.Variant, VariantInput] {
	return reconcile.Hooks[models.Variant, VariantInput]{
		Key: func(v models.Variant) uuid.UUID { return v.ID },
		Make: func(in VariantInput, order int) models.Variant {
			v := models.Variant{
				ProductID:    productID,
				Name:         in.Name,
				SKU:          in.SKU,
				Price:        decimal.Zero,
				DisplayOrder: order,
			}
			if in.Price != nil {
				v.Price = *in.Price
			}
			return v
		},
		Merge: func(existing models.Variant, in VariantInput, order int) models.Variant {
			existing.Name = in.Name
			existing.DisplayOrder = order
			if in.SKU != nil {
				existing.SKU = in.SKU
			}
			if in.Price != nil {
				existing.Price = *in.Price
			}
			return existing
		},
	}
}

func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}
	if err := validateVariantPrices(input.Variants); err != nil {
		return nil, err
	}

	companyID := s.defaultCompanyID
	if input.CompanyID != nil {
		companyID = *input.CompanyID
	}

	product := &models.Product{
		CompanyID:   companyID,
		CategoryID:  input.CategoryID,
		TaxID:       input.TaxID,
		Code:        strings.TrimSpace(input.Code),
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Price:       input.Price,
		ImageURL:    input.ImageURL,
		IsActive:    true,
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if _, err := repo.Create(ctx, product); err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.New(pkgerrors.CodeConflict, "product code already in use")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
		}

		if input.Variants != nil {
			if err := s.reconcileVariants(ctx, repo, product.ID, *input.Variants); err != nil {
				return err
			}
		}
		if input.ModifierGroups != nil {
			if err := s.reconcileGroups(ctx, tx, repo, product.ID, *input.ModifierGroups); err != nil {
				return err
			}
		}

		return s.refreshDerivedFlags(ctx, repo, product)
	})
	if err != nil {
		return nil, err
	}
	return s.GetProduct(ctx, product.ID)
}

// UpdateProduct applies a full product write in one transaction: scalar patch,
// variant reconciliation, and modifier-group reconciliation. Any failure rolls
// back the whole write.
func (s *service) UpdateProduct(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	if input.Price != nil && input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}
	if err := validateVariantPrices(input.Variants); err != nil {
		return nil, err
	}

	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		product, err := repo.FindByIDForUpdate(ctx, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: lock product")
		}

		applyUpdateToProduct(product, input)
		if _, err := repo.Update(ctx, product); err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.New(pkgerrors.CodeConflict, "product code already in use")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update product")
		}

		if input.Variants != nil {
			if err := s.reconcileVariants(ctx, repo, product.ID, *input.Variants); err != nil {
				return err
			}
		}
		if input.ModifierGroups != nil {
			if err := s.reconcileGroups(ctx, tx, repo, product.ID, *input.ModifierGroups); err != nil {
				return err
			}
		}

		return s.refreshDerivedFlags(ctx, repo, product)
	})
	if err != nil {
		return nil, err
	}
	return s.GetProduct(ctx, productID)
}

func applyUpdateToProduct(product *models.Product, input UpdateProductInput) {
	if input.CategoryID != nil {
		if *input.CategoryID == uuid.Nil {
			product.CategoryID = nil
		} else {
			product.CategoryID = input.CategoryID
		}
	}
	if input.TaxID != nil {
		if *input.TaxID == uuid.Nil {
			product.TaxID = nil
		} else {
			product.TaxID = input.TaxID
		}
	}
	if input.Code != nil {
		product.Code = strings.TrimSpace(*input.Code)
	}
	if input.Name != nil {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.ImageURL != nil {
		product.ImageURL = input.ImageURL
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
}

func validateVariantPrices(variants *[]VariantInput) error {
	if variants == nil {
		return nil
	}
	for _, v := range *variants {
		if v.Price != nil && v.Price.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeValidation, "variant price must not be negative")
		}
	}
	return nil
}

func (s *service) reconcileVariants(ctx context.Context, repo *Repository, productID uuid.UUID, inputs []VariantInput) error {
	existing, err := repo.ListVariants(ctx, productID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list variants")
	}

	incoming := make([]reconcile.Record[VariantInput], 0, len(inputs))
	for _, in := range inputs {
		incoming = append(incoming, reconcile.Record[VariantInput]{ID: in.ID, Fields: in})
	}

	plan := reconcile.Diff(existing, incoming, variantHooks(productID))

	for i := range plan.Create {
		if err := repo.CreateVariant(ctx, &plan.Create[i]); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: create variant")
		}
	}
	for i := range plan.Update {
		if err := repo.UpdateVariant(ctx, &plan.Update[i]); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update variant")
		}
	}
	for i := range plan.Delete {
		if err := repo.DeleteVariant(ctx, plan.Delete[i].ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete variant")
		}
	}
	return nil
}

// reconcileGroups upserts each referenced group, reconciles its modifiers
// when items were submitted, links the group to the product at its index, and
// finally unlinks groups no longer referenced. Unlinking removes join rows
// only; the shared groups survive for other products.
func (s *service) reconcileGroups(ctx context.Context, tx *gorm.DB, repo *Repository, productID uuid.UUID, inputs []modifiergroups.GroupInput) error {
	keep := make([]uuid.UUID, 0, len(inputs))

	for idx, in := range inputs {
		group, err := s.groups.UpsertGroup(ctx, tx, in)
		if err != nil {
			return err
		}
		if in.Items != nil {
			if err := s.groups.ReconcileModifiers(ctx, tx, group.ID, *in.Items); err != nil {
				return err
			}
		}
		if err := repo.UpsertJoin(ctx, productID, group.ID, idx); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: upsert product modifier group")
		}
		keep = append(keep, group.ID)
	}

	if err := repo.DeleteJoinsExcept(ctx, productID, keep); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: prune product modifier groups")
	}
	return nil
}

// refreshDerivedFlags recomputes HasVariants and HasModifiers from the child
// tables after a write.
func (s *service) refreshDerivedFlags(ctx context.Context, repo *Repository, product *models.Product) error {
	variants, err := repo.CountVariants(ctx, product.ID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count variants")
	}
	joins, err := repo.CountJoins(ctx, product.ID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count modifier groups")
	}

	hasVariants := variants > 0
	hasModifiers := joins > 0
	if product.HasVariants == hasVariants && product.HasModifiers == hasModifiers {
		return nil
	}

	product.HasVariants = hasVariants
	product.HasModifiers = hasModifiers
	if _, err := repo.Update(ctx, product); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update derived flags")
	}
	return nil
}

func (s *service) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	if _, err := s.loadProduct(ctx, productID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete product")
	}
	return nil
}

func (s *service) GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, error) {
	product, err := s.repo.GetDetail(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}
	return NewProductDTO(product), nil
}

func (s *service) ListProducts(ctx context.Context, params ListParams) (*ProductPageDTO, error) {
	filter := ListFilter{
		CompanyID:  s.defaultCompanyID,
		CategoryID: params.CategoryID,
		ActiveOnly: params.ActiveOnly,
	}
	if _, err := pagination.ParseCursor(params.Pagination.Cursor); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}

	rows, err := s.repo.List(ctx, filter, params.Pagination)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list products")
	}

	limit := pagination.NormalizeLimit(params.Pagination.Limit)
	page := &ProductPageDTO{Products: make([]ProductSummaryDTO, 0, len(rows))}

	for i := range rows {
		if i == limit {
			last := rows[limit-1]
			cursor := pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
			page.NextCursor = &cursor
			break
		}
		page.Products = append(page.Products, NewProductSummaryDTO(&rows[i]))
	}
	return page, nil
}

func (s *service) loadProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}
