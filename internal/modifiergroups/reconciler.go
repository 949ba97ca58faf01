package modifiergroups

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/comandahq/backoffice-backend/internal/reconcile"
	"github.com/comandahq/backoffice-backend/pkg/db/models"
	pkgerrors "github.com/comandahq/backoffice-backend/pkg/errors"
)

// ModifierItemInput describes one modifier inside a group write. A Nil ID
// requests a create; a known ID patches the existing row; an unknown ID is
// treated as a create with a fresh identifier.
type ModifierItemInput struct {
	ID          uuid.UUID
	Name        string
	Price       *decimal.Decimal
	MaxQuantity *int
	IsActive    *bool
}

// GroupInput describes a modifier-group upsert. A Nil ID creates a new group;
// a set ID must reference an existing group. Items is nil when the caller
// leaves the modifier collection untouched.
type GroupInput struct {
	ID           uuid.UUID
	Name         string
	MinSelection *int
	MaxSelection *int
	Items        *[]ModifierItemInput
}

// Reconciler applies group and modifier writes inside a caller-owned
// transaction. The product write path and the standalone group endpoints
// share it so nested and direct edits behave identically.
type Reconciler struct {
	repo *Repository
}

// NewReconciler builds a reconciler over the given repository.
func NewReconciler(repo *Repository) *Reconciler {
	return &Reconciler{repo: repo}
}

func modifierHooks(groupID uuid.UUID) reconcile.Hooks[models.Modifier, ModifierItemInput] {
	return reconcile.Hooks[models.Modifier, ModifierItemInput]{
		Key: func(m models.Modifier) uuid.UUID { return m.ID },
		Make: func(in ModifierItemInput, order int) models.Modifier {
			m := models.Modifier{
				ModifierGroupID: groupID,
				Name:            in.Name,
				Price:           decimal.Zero,
				MaxQuantity:     1,
				DisplayOrder:    order,
				IsActive:        true,
			}
			applyModifierPatch(&m, in)
			return m
		},
		Merge: func(existing models.Modifier, in ModifierItemInput, order int) models.Modifier {
			existing.Name = in.Name
			existing.DisplayOrder = order
			applyModifierPatch(&existing, in)
			return existing
		},
	}
}

func applyModifierPatch(m *models.Modifier, in ModifierItemInput) {
	if in.Price != nil {
		m.Price = *in.Price
	}
	if in.MaxQuantity != nil {
		m.MaxQuantity = *in.MaxQuantity
	}
	if in.IsActive != nil {
		m.IsActive = *in.IsActive
	}
}

// UpsertGroup creates or patches a group's scalar fields inside tx. A set ID
// that matches no group aborts with a not-found error. Required is derived
// from MinSelection, never taken from the caller.
func (rc *Reconciler) UpsertGroup(ctx context.Context, tx *gorm.DB, in GroupInput) (*models.ModifierGroup, error) {
	repo := rc.repo.WithTx(tx)

	if in.ID == uuid.Nil {
		group := &models.ModifierGroup{Name: in.Name}
		if in.MinSelection != nil {
			group.MinSelection = *in.MinSelection
		}
		if in.MaxSelection != nil {
			group.MaxSelection = *in.MaxSelection
		}
		group.Required = group.MinSelection > 0
		created, err := repo.Create(ctx, group)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: create modifier group")
		}
		return created, nil
	}

	group, err := repo.FindBare(ctx, in.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("modifier group %s not found", in.ID))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load modifier group")
	}

	group.Name = in.Name
	if in.MinSelection != nil {
		group.MinSelection = *in.MinSelection
	}
	if in.MaxSelection != nil {
		group.MaxSelection = *in.MaxSelection
	}
	group.Required = group.MinSelection > 0

	updated, err := repo.Update(ctx, group)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update modifier group")
	}
	return updated, nil
}

// ReconcileModifiers diffs the group's stored modifiers against items and
// applies the resulting creates, updates, and hard deletes inside tx.
func (rc *Reconciler) ReconcileModifiers(ctx context.Context, tx *gorm.DB, groupID uuid.UUID, items []ModifierItemInput) error {
	repo := rc.repo.WithTx(tx)

	existing, err := repo.ListModifiers(ctx, groupID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list modifiers")
	}

	incoming := make([]reconcile.Record[ModifierItemInput], 0, len(items))
	for _, item := range items {
		incoming = append(incoming, reconcile.Record[ModifierItemInput]{ID: item.ID, Fields: item})
	}

	plan := reconcile.Diff(existing, incoming, modifierHooks(groupID))

	for i := range plan.Create {
		if err := repo.CreateModifier(ctx, &plan.Create[i]); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: create modifier")
		}
	}
	for i := range plan.Update {
		if err := repo.UpdateModifier(ctx, &plan.Update[i]); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update modifier")
		}
	}
	for i := range plan.Delete {
		if err := repo.DeleteModifier(ctx, plan.Delete[i].ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete modifier")
		}
	}
	return nil
}
