package categories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/comandahq/backoffice-backend/pkg/db/models"
	pkgerrors "github.com/comandahq/backoffice-backend/pkg/errors"
)

// Service exposes category management operations.
type Service interface {
	CreateCategory(ctx context.Context, companyID uuid.UUID, input CreateCategoryInput) (*CategoryDTO, error)
	UpdateCategory(ctx context.Context, companyID, categoryID uuid.UUID, input UpdateCategoryInput) (*CategoryDTO, error)
	DeleteCategory(ctx context.Context, companyID, categoryID uuid.UUID) error
	GetCategory(ctx context.Context, companyID, categoryID uuid.UUID) (*CategoryDTO, error)
	ListCategories(ctx context.Context, companyID uuid.UUID) ([]CategoryDTO, error)
}

// CreateCategoryInput holds the validated payload to create a category.
type CreateCategoryInput struct {
	Name     string
	Position int
}

// UpdateCategoryInput holds optional mutation values for a category.
type UpdateCategoryInput struct {
	Name     *string
	Position *int
}

type companyLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Company, error)
}

type service struct {
	repo        *Repository
	companyRepo companyLoader
}

// NewService constructs a category service instance.
func NewService(repo *Repository, companyRepo companyLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("category repository required")
	}
	if companyRepo == nil {
		return nil, fmt.Errorf("company repository required")
	}
	return &service{repo: repo, companyRepo: companyRepo}, nil
}

func (s *service) CreateCategory(ctx context.Context, companyID uuid.UUID, input CreateCategoryInput) (*CategoryDTO, error) {
	if err := s.ensureCompany(ctx, companyID); err != nil {
		return nil, err
	}

	category := &models.Category{
		CompanyID: companyID,
		Name:      strings.TrimSpace(input.Name),
		Position:  input.Position,
	}
	created, err := s.repo.Create(ctx, category)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert category")
	}
	return NewCategoryDTO(created), nil
}

func (s *service) UpdateCategory(ctx context.Context, companyID, categoryID uuid.UUID, input UpdateCategoryInput) (*CategoryDTO, error) {
	category, err := s.loadScoped(ctx, companyID, categoryID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		category.Name = strings.TrimSpace(*input.Name)
	}
	if input.Position != nil {
		category.Position = *input.Position
	}

	updated, err := s.repo.Update(ctx, category)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update category")
	}
	return NewCategoryDTO(updated), nil
}

func (s *service) DeleteCategory(ctx context.Context, companyID, categoryID uuid.UUID) error {
	if _, err := s.loadScoped(ctx, companyID, categoryID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, categoryID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete category")
	}
	return nil
}

func (s *service) GetCategory(ctx context.Context, companyID, categoryID uuid.UUID) (*CategoryDTO, error) {
	category, err := s.loadScoped(ctx, companyID, categoryID)
	if err != nil {
		return nil, err
	}
	return NewCategoryDTO(category), nil
}

func (s *service) ListCategories(ctx context.Context, companyID uuid.UUID) ([]CategoryDTO, error) {
	rows, err := s.repo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list categories")
	}
	dtos := make([]CategoryDTO, len(rows))
	for i := range rows {
		dtos[i] = *NewCategoryDTO(&rows[i])
	}
	return dtos, nil
}

func (s *service) ensureCompany(ctx context.Context, companyID uuid.UUID) error {
	if _, err := s.companyRepo.FindByID(ctx, companyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "company not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load company")
	}
	return nil
}

func (s *service) loadScoped(ctx context.Context, companyID, categoryID uuid.UUID) (*models.Category, error) {
	category, err := s.repo.FindByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}
	if category.CompanyID != companyID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
	}
	return category, nil
}
