package taxes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/comandahq/backoffice-backend/pkg/db/models"
	pkgerrors "github.com/comandahq/backoffice-backend/pkg/errors"
)

// Service exposes tax management operations.
type Service interface {
	CreateTax(ctx context.Context, companyID uuid.UUID, input CreateTaxInput) (*TaxDTO, error)
	UpdateTax(ctx context.Context, companyID, taxID uuid.UUID, input UpdateTaxInput) (*TaxDTO, error)
	DeleteTax(ctx context.Context, companyID, taxID uuid.UUID) error
	GetTax(ctx context.Context, companyID, taxID uuid.UUID) (*TaxDTO, error)
	ListTaxes(ctx context.Context, companyID uuid.UUID) ([]TaxDTO, error)
}

// CreateTaxInput holds the validated payload to create a tax.
type CreateTaxInput struct {
	Name string
	Rate decimal.Decimal
}

// UpdateTaxInput holds optional mutation values for a tax.
type UpdateTaxInput struct {
	Name *string
	Rate *decimal.Decimal
}

type companyLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Company, error)
}

type service struct {
	repo        *Repository
	companyRepo companyLoader
}

// NewService constructs a tax service instance.
func NewService(repo *Repository, companyRepo companyLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("tax repository required")
	}
	if companyRepo == nil {
		return nil, fmt.Errorf("company repository required")
	}
	return &service{repo: repo, companyRepo: companyRepo}, nil
}

func (s *service) CreateTax(ctx context.Context, companyID uuid.UUID, input CreateTaxInput) (*TaxDTO, error) {
	if input.Rate.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rate must be non-negative")
	}
	if err := s.ensureCompany(ctx, companyID); err != nil {
		return nil, err
	}

	tax := &models.Tax{
		CompanyID: companyID,
		Name:      strings.TrimSpace(input.Name),
		Rate:      input.Rate,
	}
	created, err := s.repo.Create(ctx, tax)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert tax")
	}
	return NewTaxDTO(created), nil
}

func (s *service) UpdateTax(ctx context.Context, companyID, taxID uuid.UUID, input UpdateTaxInput) (*TaxDTO, error) {
	if input.Rate != nil && input.Rate.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rate must be non-negative")
	}

	tax, err := s.loadScoped(ctx, companyID, taxID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		tax.Name = strings.TrimSpace(*input.Name)
	}
	if input.Rate != nil {
		tax.Rate = *input.Rate
	}

	updated, err := s.repo.Update(ctx, tax)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update tax")
	}
	return NewTaxDTO(updated), nil
}

func (s *service) DeleteTax(ctx context.Context, companyID, taxID uuid.UUID) error {
	if _, err := s.loadScoped(ctx, companyID, taxID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, taxID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete tax")
	}
	return nil
}

func (s *service) GetTax(ctx context.Context, companyID, taxID uuid.UUID) (*TaxDTO, error) {
	tax, err := s.loadScoped(ctx, companyID, taxID)
	if err != nil {
		return nil, err
	}
	return NewTaxDTO(tax), nil
}

func (s *service) ListTaxes(ctx context.Context, companyID uuid.UUID) ([]TaxDTO, error) {
	rows, err := s.repo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list taxes")
	}
	dtos := make([]TaxDTO, len(rows))
	for i := range rows {
		dtos[i] = *NewTaxDTO(&rows[i])
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

func (s *service) loadScoped(ctx context.Context, companyID, taxID uuid.UUID) (*models.Tax, error) {
	tax, err := s.repo.FindByID(ctx, taxID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "tax not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load tax")
	}
	if tax.CompanyID != companyID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "tax not found")
	}
	return tax, nil
}
