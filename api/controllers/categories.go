package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/comandahq/backoffice-backend/api/responses"
	"github.com/comandahq/backoffice-backend/api/validators"
	categorysvc "github.com/comandahq/backoffice-backend/internal/categories"
	"github.com/comandahq/backoffice-backend/pkg/logger"
)

type createCategoryRequest struct {
	Name     string `json:"name" validate:"required"`
	Position int    `json:"position" validate:"omitempty,min=0"`
}

type updateCategoryRequest struct {
	Name     *string `json:"name,omitempty"`
	Position *int    `json:"position,omitempty" validate:"omitempty,min=0"`
}

// CreateCategory handles POST /api/v1/categories.
func CreateCategory(svc categorysvc.Service, defaultCompany uuid.UUID, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createCategoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := svc.CreateCategory(r.Context(), defaultCompany, categorysvc.CreateCategoryInput{
			Name:     payload.Name,
			Position: payload.Position,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, category)
	}
}

// UpdateCategory handles PATCH /api/v1/categories/{categoryID}.
func UpdateCategory(svc categorysvc.Service, defaultCompany uuid.UUID, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := validators.ParsePathUUID(chi.URLParam(r, "categoryID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateCategoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := svc.UpdateCategory(r.Context(), defaultCompany, categoryID, categorysvc.UpdateCategoryInput{
			Name:     payload.Name,
			Position: payload.Position,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, category)
	}
}

// DeleteCategory handles DELETE /api/v1/categories/{categoryID}.
func DeleteCategory(svc categorysvc.Service, defaultCompany uuid.UUID, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := validators.ParsePathUUID(chi.URLParam(r, "categoryID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteCategory(r.Context(), defaultCompany, categoryID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// GetCategory handles GET /api/v1/categories/{categoryID}.
func GetCategory(svc categorysvc.Service, defaultCompany uuid.UUID, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := validators.ParsePathUUID(chi.URLParam(r, "categoryID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := svc.GetCategory(r.Context(), defaultCompany, categoryID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, category)
	}
}

// ListCategories handles GET /api/v1/categories. An optional company_id
// query parameter overrides the configured default company scope.
func ListCategories(svc categorysvc.Service, defaultCompany uuid.UUID, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		companyID := defaultCompany
		if override, err := validators.ParseQueryUUID(r, "company_id"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		} else if override != nil {
			companyID = *override
		}

		categories, err := svc.ListCategories(r.Context(), companyID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, categories)
	}
}
