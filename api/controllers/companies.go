package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/comandahq/backoffice-backend/api/responses"
	"github.com/comandahq/backoffice-backend/api/validators"
	companysvc "github.com/comandahq/backoffice-backend/internal/companies"
	pkgerrors "github.com/comandahq/backoffice-backend/pkg/errors"
	"github.com/comandahq/backoffice-backend/pkg/logger"
)

type createCompanyRequest struct {
	Name      string  `json:"name" validate:"required"`
	LegalName *string `json:"legal_name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
}

type updateCompanyRequest struct {
	Name      *string `json:"name,omitempty"`
	LegalName *string `json:"legal_name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
}

// CreateCompany handles POST /api/v1/companies.
func CreateCompany(svc companysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "company service unavailable"))
			return
		}

		var payload createCompanyRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		company, err := svc.CreateCompany(r.Context(), companysvc.CreateCompanyInput{
			Name:      payload.Name,
			LegalName: payload.LegalName,
			Phone:     payload.Phone,
			Email:     payload.Email,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, company)
	}
}

// UpdateCompany handles PATCH /api/v1/companies/{companyID}.
func UpdateCompany(svc companysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		companyID, err := validators.ParsePathUUID(chi.URLParam(r, "companyID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateCompanyRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		company, err := svc.UpdateCompany(r.Context(), companyID, companysvc.UpdateCompanyInput{
			Name:      payload.Name,
			LegalName: payload.LegalName,
			Phone:     payload.Phone,
			Email:     payload.Email,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, company)
	}
}

// DeleteCompany handles DELETE /api/v1/companies/{companyID}.
func DeleteCompany(svc companysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		companyID, err := validators.ParsePathUUID(chi.URLParam(r, "companyID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteCompany(r.Context(), companyID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// GetCompany handles GET /api/v1/companies/{companyID}.
func GetCompany(svc companysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		companyID, err := validators.ParsePathUUID(chi.URLParam(r, "companyID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		company, err := svc.GetCompany(r.Context(), companyID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, company)
	}
}

// ListCompanies handles GET /api/v1/companies.
func ListCompanies(svc companysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		companies, err := svc.ListCompanies(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, companies)
	}
}
