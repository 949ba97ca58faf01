package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/comandahq/backoffice-backend/api/responses"
	"github.com/comandahq/backoffice-backend/api/validators"
	groupsvc "github.com/comandahq/backoffice-backend/internal/modifiergroups"
	"github.com/comandahq/backoffice-backend/pkg/logger"
)

type modifierItemRequest struct {
	ID          *uuid.UUID       `json:"id,omitempty"`
	Name        string           `json:"name" validate:"required"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	MaxQuantity *int             `json:"max_quantity,omitempty" validate:"omitempty,min=1"`
	IsActive    *bool            `json:"is_active,omitempty"`
}

type modifierGroupRequest struct {
	ID           *uuid.UUID             `json:"id,omitempty"`
	Name         string                 `json:"name" validate:"required"`
	MinSelection *int                   `json:"min_selection,omitempty" validate:"omitempty,min=0"`
	MaxSelection *int                   `json:"max_selection,omitempty" validate:"omitempty,min=0"`
	Items        *[]modifierItemRequest `json:"items,omitempty"`
}

func (r modifierItemRequest) toInput() groupsvc.ModifierItemInput {
	input := groupsvc.ModifierItemInput{
		Name:        r.Name,
		Price:       r.Price,
		MaxQuantity: r.MaxQuantity,
		IsActive:    r.IsActive,
	}
	if r.ID != nil {
		input.ID = *r.ID
	}
	return input
}

func (r modifierGroupRequest) toInput() groupsvc.GroupInput {
	input := groupsvc.GroupInput{
		Name:         r.Name,
		MinSelection: r.MinSelection,
		MaxSelection: r.MaxSelection,
	}
	if r.ID != nil {
		input.ID = *r.ID
	}
	if r.Items != nil {
		items := make([]groupsvc.ModifierItemInput, 0, len(*r.Items))
		for _, item := range *r.Items {
			items = append(items, item.toInput())
		}
		input.Items = &items
	}
	return input
}

// CreateModifierGroup handles POST /api/v1/modifier-groups.
func CreateModifierGroup(svc groupsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload modifierGroupRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		group, err := svc.CreateGroup(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, group)
	}
}

// UpdateModifierGroup handles PUT /api/v1/modifier-groups/{groupID}.
func UpdateModifierGroup(svc groupsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groupID, err := validators.ParsePathUUID(chi.URLParam(r, "groupID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload modifierGroupRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		group, err := svc.UpdateGroup(r.Context(), groupID, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, group)
	}
}

// DeleteModifierGroup handles DELETE /api/v1/modifier-groups/{groupID}.
func DeleteModifierGroup(svc groupsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groupID, err := validators.ParsePathUUID(chi.URLParam(r, "groupID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteGroup(r.Context(), groupID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// GetModifierGroup handles GET /api/v1/modifier-groups/{groupID}.
func GetModifierGroup(svc groupsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groupID, err := validators.ParsePathUUID(chi.URLParam(r, "groupID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		group, err := svc.GetGroup(r.Context(), groupID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, group)
	}
}

// ListModifierGroups handles GET /api/v1/modifier-groups.
func ListModifierGroups(svc groupsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groups, err := svc.ListGroups(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, groups)
	}
}
