package modifiergroups

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/comandahq/backoffice-backend/pkg/db"
	"github.com/comandahq/backoffice-backend/pkg/db/models"
	pkgerrors "github.com/comandahq/backoffice-backend/pkg/errors"
)

// Service exposes standalone modifier-group management operations.
type Service interface {
	CreateGroup(ctx context.Context, input GroupInput) (*ModifierGroupDTO, error)
	UpdateGroup(ctx context.Context, groupID uuid.UUID, input GroupInput) (*ModifierGroupDTO, error)
	DeleteGroup(ctx context.Context, groupID uuid.UUID) error
	GetGroup(ctx context.Context, groupID uuid.UUID) (*ModifierGroupDTO, error)
	ListGroups(ctx context.Context) ([]ModifierGroupDTO, error)
}

type service struct {
	client     *db.Client
	repo       *Repository
	reconciler *Reconciler
}

// NewService constructs a modifier-group service instance.
func NewService(client *db.Client, repo *Repository) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("db client required")
	}
	if repo == nil {
		return nil, fmt.Errorf("modifier group repository required")
	}
	return &service{client: client, repo: repo, reconciler: NewReconciler(repo)}, nil
}

func (s *service) CreateGroup(ctx context.Context, input GroupInput) (*ModifierGroupDTO, error) {
	input.ID = uuid.Nil
	input.Name = strings.TrimSpace(input.Name)

	var groupID uuid.UUID
	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		group, err := s.reconciler.UpsertGroup(ctx, tx, input)
		if err != nil {
			return err
		}
		groupID = group.ID
		if input.Items != nil {
			return s.reconciler.ReconcileModifiers(ctx, tx, group.ID, *input.Items)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetGroup(ctx, groupID)
}

func (s *service) UpdateGroup(ctx context.Context, groupID uuid.UUID, input GroupInput) (*ModifierGroupDTO, error) {
	input.ID = groupID
	input.Name = strings.TrimSpace(input.Name)

	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		group, err := s.reconciler.UpsertGroup(ctx, tx, input)
		if err != nil {
			return err
		}
		if input.Items != nil {
			return s.reconciler.ReconcileModifiers(ctx, tx, group.ID, *input.Items)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetGroup(ctx, groupID)
}

func (s *service) DeleteGroup(ctx context.Context, groupID uuid.UUID) error {
	if _, err := s.loadGroup(ctx, groupID); err != nil {
		return err
	}
	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).Delete(ctx, groupID)
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete modifier group")
	}
	return nil
}

func (s *service) GetGroup(ctx context.Context, groupID uuid.UUID) (*ModifierGroupDTO, error) {
	group, err := s.loadGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return NewModifierGroupDTO(group), nil
}

func (s *service) ListGroups(ctx context.Context) ([]ModifierGroupDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list modifier groups")
	}
	dtos := make([]ModifierGroupDTO, len(rows))
	for i := range rows {
		dtos[i] = *NewModifierGroupDTO(&rows[i])
	}
	return dtos, nil
}

func (s *service) loadGroup(ctx context.Context, groupID uuid.UUID) (*models.ModifierGroup, error) {
	group, err := s.repo.FindByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "modifier group not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load modifier group")
	}
	return group, nil
}
