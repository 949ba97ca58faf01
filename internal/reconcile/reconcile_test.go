package reconcile

import (
	"testing"

	"github.com/google/uuid"
)

type rowEntity struct {
	ID    uuid.UUID
	Name  string
	Order int
}

type rowFields struct {
	Name string
}

func testHooks() Hooks[rowEntity, rowFields] {
	return Hooks[rowEntity, rowFields]{
		Key: func(e rowEntity) uuid.UUID { return e.ID },
		Make: func(f rowFields, order int) rowEntity {
			return rowEntity{ID: uuid.New(), Name: f.Name, Order: order}
		},
		Merge: func(e rowEntity, f rowFields, order int) rowEntity {
			e.Name = f.Name
			e.Order = order
			return e
		},
	}
}

func TestDiffKeepsUpdatesCreatesAndDeletes(t *testing.T) {
	small := rowEntity{ID: uuid.New(), Name: "S", Order: 0}
	medium := rowEntity{ID: uuid.New(), Name: "M", Order: 1}
	existing := []rowEntity{small, medium}

	incoming := []Record[rowFields]{
		{ID: medium.ID, Fields: rowFields{Name: "M"}},
		{Fields: rowFields{Name: "L"}},
	}

	plan := Diff(existing, incoming, testHooks())

	if len(plan.Update) != 1 || plan.Update[0].ID != medium.ID {
		t.Fatalf("expected medium to be updated, got %+v", plan.Update)
	}
	if plan.Update[0].Order != 0 {
		t.Fatalf("expected updated row at order 0, got %d", plan.Update[0].Order)
	}
	if len(plan.Create) != 1 || plan.Create[0].Name != "L" {
		t.Fatalf("expected one create for L, got %+v", plan.Create)
	}
	if plan.Create[0].Order != 1 {
		t.Fatalf("expected created row at order 1, got %d", plan.Create[0].Order)
	}
	if len(plan.Delete) != 1 || plan.Delete[0].ID != small.ID {
		t.Fatalf("expected small to be deleted, got %+v", plan.Delete)
	}
}

func TestDiffOrderFollowsIncomingIndex(t *testing.T) {
	first := rowEntity{ID: uuid.New(), Name: "A", Order: 0}
	second := rowEntity{ID: uuid.New(), Name: "B", Order: 1}

	// Reversed, with a new row wedged in the middle.
	incoming := []Record[rowFields]{
		{ID: second.ID, Fields: rowFields{Name: "B"}},
		{Fields: rowFields{Name: "C"}},
		{ID: first.ID, Fields: rowFields{Name: "A"}},
	}

	plan := Diff([]rowEntity{first, second}, incoming, testHooks())

	if len(plan.Delete) != 0 {
		t.Fatalf("expected no deletes, got %+v", plan.Delete)
	}
	orders := map[string]int{}
	for _, row := range plan.Update {
		orders[row.Name] = row.Order
	}
	for _, row := range plan.Create {
		orders[row.Name] = row.Order
	}
	if orders["B"] != 0 || orders["C"] != 1 || orders["A"] != 2 {
		t.Fatalf("expected orders B=0 C=1 A=2, got %v", orders)
	}
}

func TestDiffUnknownIDBecomesCreate(t *testing.T) {
	existing := []rowEntity{{ID: uuid.New(), Name: "A", Order: 0}}

	stray := uuid.New()
	incoming := []Record[rowFields]{
		{ID: stray, Fields: rowFields{Name: "ghost"}},
	}

	plan := Diff(existing, incoming, testHooks())

	if len(plan.Create) != 1 {
		t.Fatalf("expected stray id to plan a create, got %+v", plan)
	}
	if plan.Create[0].ID == stray {
		t.Fatal("created entity must get a fresh identifier, not the stray one")
	}
	if len(plan.Delete) != 1 {
		t.Fatalf("existing row was not referenced and must be deleted, got %+v", plan.Delete)
	}
}

func TestDiffEmptyIncomingDeletesEverything(t *testing.T) {
	existing := []rowEntity{
		{ID: uuid.New(), Name: "A"},
		{ID: uuid.New(), Name: "B"},
	}

	plan := Diff(existing, nil, testHooks())

	if len(plan.Create) != 0 || len(plan.Update) != 0 {
		t.Fatalf("expected only deletes, got %+v", plan)
	}
	if len(plan.Delete) != len(existing) {
		t.Fatalf("expected %d deletes, got %d", len(existing), len(plan.Delete))
	}
}

func TestDiffIsIdempotentOnKeptCollection(t *testing.T) {
	a := rowEntity{ID: uuid.New(), Name: "A", Order: 0}
	b := rowEntity{ID: uuid.New(), Name: "B", Order: 1}
	existing := []rowEntity{a, b}

	incoming := []Record[rowFields]{
		{ID: a.ID, Fields: rowFields{Name: "A"}},
		{ID: b.ID, Fields: rowFields{Name: "B"}},
	}

	first := Diff(existing, incoming, testHooks())
	if len(first.Create) != 0 || len(first.Delete) != 0 {
		t.Fatalf("expected pure updates, got %+v", first)
	}

	// Feed the updated state back through: still no creates or deletes.
	second := Diff(first.Update, incoming, testHooks())
	if len(second.Create) != 0 || len(second.Delete) != 0 {
		t.Fatalf("reconciling twice must not create duplicates, got %+v", second)
	}
	if len(second.Update) != 2 {
		t.Fatalf("expected both rows updated in place, got %d", len(second.Update))
	}
}

func TestDiffSetEquality(t *testing.T) {
	a := rowEntity{ID: uuid.New(), Name: "A", Order: 0}
	b := rowEntity{ID: uuid.New(), Name: "B", Order: 1}
	c := rowEntity{ID: uuid.New(), Name: "C", Order: 2}
	existing := []rowEntity{a, b, c}

	incoming := []Record[rowFields]{
		{ID: c.ID, Fields: rowFields{Name: "C2"}},
		{Fields: rowFields{Name: "D"}},
		{ID: a.ID, Fields: rowFields{Name: "A2"}},
	}

	plan := Diff(existing, incoming, testHooks())

	result := map[uuid.UUID]struct{}{}
	for _, row := range plan.Update {
		result[row.ID] = struct{}{}
	}
	for _, row := range plan.Create {
		result[row.ID] = struct{}{}
	}

	if len(result) != 3 {
		t.Fatalf("expected resulting set of 3 ids, got %d", len(result))
	}
	if _, ok := result[a.ID]; !ok {
		t.Fatal("kept id A missing from result set")
	}
	if _, ok := result[c.ID]; !ok {
		t.Fatal("kept id C missing from result set")
	}
	if _, ok := result[b.ID]; ok {
		t.Fatal("dropped id B must not be in result set")
	}
	if len(plan.Delete) != 1 || plan.Delete[0].ID != b.ID {
		t.Fatalf("expected exactly B deleted, got %+v", plan.Delete)
	}
}
