package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/comandahq/backoffice-backend/api/responses"
	"github.com/comandahq/backoffice-backend/api/validators"
	taxsvc "github.com/comandahq/backoffice-backend/internal/taxes"
	"github.com/comandahq/backoffice-backend/pkg/logger"
)

type createTaxRequest struct {
	Name string          `json:"name" validate:"required"`
	Rate decimal.Decimal `json:"rate" validate:"required"`
}

type updateTaxRequest struct {
	Name *string          `json:"name,omitempty"`
	Rate *decimal.Decimal `json:"rate,omitempty"`
}

// CreateTax handles POST /api/v1/taxes.
func CreateTax(svc taxsvc.Service, defaultCompany uuid.UUID, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createTaxRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tax, err := svc.CreateTax(r.Context(), defaultCompany, taxsvc.CreateTaxInput{
			Name: payload.Name,
			Rate: payload.Rate,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, tax)
	}
}

// UpdateTax handles PATCH /api/v1/taxes/{taxID}.
func UpdateTax(svc taxsvc.Service, defaultCompany uuid.UUID, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		taxID, err := validators.ParsePathUUID(chi.URLParam(r, "taxID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateTaxRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tax, err := svc.UpdateTax(r.Context(), defaultCompany, taxID, taxsvc.UpdateTaxInput{
			Name: payload.Name,
			Rate: payload.Rate,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, tax)
	}
}

// DeleteTax handles DELETE /api/v1/taxes/{taxID}.
func DeleteTax(svc taxsvc.Service, defaultCompany uuid.UUID, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		taxID, err := validators.ParsePathUUID(chi.URLParam(r, "taxID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteTax(r.Context(), defaultCompany, taxID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// GetTax handles GET /api/v1/taxes/{taxID}.
func GetTax(svc taxsvc.Service, defaultCompany uuid.UUID, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		taxID, err := validators.ParsePathUUID(chi.URLParam(r, "taxID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tax, err := svc.GetTax(r.Context(), defaultCompany, taxID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, tax)
	}
}

// ListTaxes handles GET /api/v1/taxes. An optional company_id query
// parameter overrides the configured default company scope.
func ListTaxes(svc taxsvc.Service, defaultCompany uuid.UUID, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		companyID := defaultCompany
		if override, err := validators.ParseQueryUUID(r, "company_id"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		} else if override != nil {
			companyID = *override
		}

		taxes, err := svc.ListTaxes(r.Context(), companyID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, taxes)
	}
}
