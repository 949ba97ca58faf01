// Package reconcile computes the create/update/delete operations needed to
// make a persisted, identifier-keyed child collection match a caller-submitted
// ordered collection. Planning is pure; callers apply the resulting plan
// inside their own transaction.
package reconcile

import "github.com/google/uuid"

// Record is one entry of an incoming collection. ID is uuid.Nil for brand-new
// records. An ID that matches no persisted row is also treated as new: the
// client cannot resurrect rows it does not own.
type Record[F any] struct {
	ID     uuid.UUID
	Fields F
}

// Plan groups the operations that synchronize the persisted collection.
// Entities in Update and Create carry display order equal to their index in
// the incoming sequence.
type Plan[E any] struct {
	Create []E
	Update []E
	Delete []E
}

// Hooks adapt the entity and record types to the planner.
type Hooks[E any, F any] struct {
	// Key returns the identifier of a persisted entity.
	Key func(E) uuid.UUID
	// Make builds a new entity from record fields at the given display order.
	Make func(fields F, order int) E
	// Merge folds record fields into a kept entity at the given display order.
	Merge func(entity E, fields F, order int) E
}

// Diff plans the synchronization of existing against incoming. Every incoming
// record yields exactly one create or update at its index; every existing
// entity not referenced by an incoming record yields a delete. The kept
// identifier set of the resulting collection is exactly {matched existing ids}
// plus the ids generated for created rows.
func Diff[E any, F any](existing []E, incoming []Record[F], hooks Hooks[E, F]) Plan[E] {
	byID := make(map[uuid.UUID]E, len(existing))
	for _, entity := range existing {
		byID[hooks.Key(entity)] = entity
	}

	kept := make(map[uuid.UUID]struct{}, len(incoming))
	var plan Plan[E]

	for idx, record := range incoming {
		if record.ID != uuid.Nil {
			if entity, ok := byID[record.ID]; ok {
				kept[record.ID] = struct{}{}
				plan.Update = append(plan.Update, hooks.Merge(entity, record.Fields, idx))
				continue
			}
		}
		plan.Create = append(plan.Create, hooks.Make(record.Fields, idx))
	}

	for _, entity := range existing {
		if _, ok := kept[hooks.Key(entity)]; !ok {
			plan.Delete = append(plan.Delete, entity)
		}
	}

	return plan
}
