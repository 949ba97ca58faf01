package companies

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

// Service exposes company management operations.
type Service interface {
	CreateCompany(ctx context.Context, input CreateCompanyInput) (*CompanyDTO, error)
	UpdateCompany(ctx context.Context, companyID uuid.UUID, input UpdateCompanyInput) (*CompanyDTO, error)
	DeleteCompany(ctx context.Context, companyID uuid.UUID) error
	GetCompany(ctx context.Context, companyID uuid.UUID) (*CompanyDTO, error)
	ListCompanies(ctx context.Context) ([]CompanyDTO, error)
}

// CreateCompanyInput holds the validated payload to create a company.
type CreateCompanyInput struct {
	Name      string
	LegalName *string
	Phone     *string
	Email     *string
}

// UpdateCompanyInput holds optional mutation values for a company.
type UpdateCompanyInput struct {
	Name      *string
	LegalName *string
	Phone     *string
	Email     *string
}

type service struct {
	repo *Repository
}

// NewService constructs a company service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("company repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) CreateCompany(ctx context.Context, input CreateCompanyInput) (*CompanyDTO, error) {
	company := &models.Company{
		Name:      strings.TrimSpace(input.Name),
		LegalName: input.LegalName,
		Phone:     input.Phone,
		Email:     input.Email,
	}
	created, err := s.repo.Create(ctx, company)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert company")
	}
	return NewCompanyDTO(created), nil
}

func (s *service) UpdateCompany(ctx context.Context, companyID uuid.UUID, input UpdateCompanyInput) (*CompanyDTO, error) {
	company, err := s.loadCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		company.Name = strings.TrimSpace(*input.Name)
	}
	if input.LegalName != nil {
		company.LegalName = input.LegalName
	}
	if input.Phone != nil {
		company.Phone = input.Phone
	}
	if input.Email != nil {
		company.Email = input.Email
	}

	updated, err := s.repo.Update(ctx, company)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update company")
	}
	return NewCompanyDTO(updated), nil
}

func (s *service) DeleteCompany(ctx context.Context, companyID uuid.UUID) error {
	if _, err := s.loadCompany(ctx, companyID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, companyID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete company")
	}
	return nil
}

func (s *service) GetCompany(ctx context.Context, companyID uuid.UUID) (*CompanyDTO, error) {
	company, err := s.loadCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return NewCompanyDTO(company), nil
}

func (s *service) ListCompanies(ctx context.Context) ([]CompanyDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list companies")
	}
	dtos := make([]CompanyDTO, len(rows))
	for i := range rows {
		dtos[i] = *NewCompanyDTO(&rows[i])
	}
	return dtos, nil
}

func (s *service) loadCompany(ctx context.Context, companyID uuid.UUID) (*models.Company, error) {
	company, err := s.repo.FindByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "company not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load company")
	}
	return company, nil
}
