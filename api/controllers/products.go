package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/comandahq/backoffice-backend/api/responses"
	"github.com/comandahq/backoffice-backend/api/validators"
	groupsvc "github.com/comandahq/backoffice-backend/internal/modifiergroups"
	productsvc "github.com/comandahq/backoffice-backend/internal/products"
	pkgerrors "github.com/comandahq/backoffice-backend/pkg/errors"
	"github.com/comandahq/backoffice-backend/pkg/logger"
	"github.com/comandahq/backoffice-backend/pkg/pagination"
)

type variantRequest struct {
	ID    *uuid.UUID       `json:"id,omitempty"`
	Name  string           `json:"name" validate:"required"`
	SKU   *string          `json:"sku,omitempty"`
	Price *decimal.Decimal `json:"price,omitempty"`
}

func (r variantRequest) toInput() productsvc.VariantInput {
	input := productsvc.VariantInput{
		Name:  r.Name,
		SKU:   r.SKU,
		Price: r.Price,
	}
	if r.ID != nil {
		input.ID = *r.ID
	}
	return input
}

func toVariantInputs(reqs *[]variantRequest) *[]productsvc.VariantInput {
	if reqs == nil {
		return nil
	}
	inputs := make([]productsvc.VariantInput, 0, len(*reqs))
	for _, req := range *reqs {
		inputs = append(inputs, req.toInput())
	}
	return &inputs
}

func toGroupInputs(reqs *[]modifierGroupRequest) *[]groupsvc.GroupInput {
	if reqs == nil {
		return nil
	}
	inputs := make([]groupsvc.GroupInput, 0, len(*reqs))
	for _, req := range *reqs {
		inputs = append(inputs, req.toInput())
	}
	return &inputs
}

type createProductRequest struct {
	CategoryID     *uuid.UUID              `json:"category_id,omitempty"`
	TaxID          *uuid.UUID              `json:"tax_id,omitempty"`
	Code           string                  `json:"code" validate:"required"`
	Name           string                  `json:"name" validate:"required"`
	Description    *string                 `json:"description,omitempty"`
	Price          decimal.Decimal         `json:"price" validate:"required"`
	ImageURL       *string                 `json:"image_url,omitempty"`
	IsActive       *bool                   `json:"is_active,omitempty"`
	Variants       *[]variantRequest       `json:"variants,omitempty"`
	ModifierGroups *[]modifierGroupRequest `json:"modifier_groups,omitempty"`
}

type updateProductRequest struct {
	CategoryID     *uuid.UUID              `json:"category_id,omitempty"`
	TaxID          *uuid.UUID              `json:"tax_id,omitempty"`
	Code           *string                 `json:"code,omitempty"`
	Name           *string                 `json:"name,omitempty"`
	Description    *string                 `json:"description,omitempty"`
	Price          *decimal.Decimal        `json:"price,omitempty"`
	ImageURL       *string                 `json:"image_url,omitempty"`
	IsActive       *bool                   `json:"is_active,omitempty"`
	Variants       *[]variantRequest       `json:"variants,omitempty"`
	ModifierGroups *[]modifierGroupRequest `json:"modifier_groups,omitempty"`
}

// CreateProduct handles POST /api/v1/products.
func CreateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), productsvc.CreateProductInput{
			CategoryID:     payload.CategoryID,
			TaxID:          payload.TaxID,
			Code:           payload.Code,
			Name:           payload.Name,
			Description:    payload.Description,
			Price:          payload.Price,
			ImageURL:       payload.ImageURL,
			IsActive:       payload.IsActive,
			Variants:       toVariantInputs(payload.Variants),
			ModifierGroups: toGroupInputs(payload.ModifierGroups),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// UpdateProduct handles PATCH /api/v1/products/{productID}. It carries the
// full write surface: scalar fields plus the variant and modifier-group
// collections. Omitted collections stay untouched; empty arrays clear them.
func UpdateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := validators.ParsePathUUID(chi.URLParam(r, "productID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.UpdateProduct(r.Context(), productID, productsvc.UpdateProductInput{
			CategoryID:     payload.CategoryID,
			TaxID:          payload.TaxID,
			Code:           payload.Code,
			Name:           payload.Name,
			Description:    payload.Description,
			Price:          payload.Price,
			ImageURL:       payload.ImageURL,
			IsActive:       payload.IsActive,
			Variants:       toVariantInputs(payload.Variants),
			ModifierGroups: toGroupInputs(payload.ModifierGroups),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// DeleteProduct handles DELETE /api/v1/products/{productID}.
func DeleteProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := validators.ParsePathUUID(chi.URLParam(r, "productID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteProduct(r.Context(), productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// GetProduct handles GET /api/v1/products/{productID}.
func GetProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := validators.ParsePathUUID(chi.URLParam(r, "productID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.GetProduct(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// ListProducts handles GET /api/v1/products.
func ListProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", 0, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		activeOnly, err := validators.ParseQueryBool(r, "active")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		categoryID, err := validators.ParseQueryUUID(r, "category_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.ListProducts(r.Context(), productsvc.ListParams{
			CategoryID: categoryID,
			ActiveOnly: activeOnly,
			Pagination: pagination.Params{
				Limit:  limit,
				Cursor: r.URL.Query().Get("cursor"),
			},
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}
