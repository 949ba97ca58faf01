package products

import (
	"context"
	"io"
	"log"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/comandahq/backoffice-backend/internal/modifiergroups"
	"github.com/comandahq/backoffice-backend/pkg/db"
	"github.com/comandahq/backoffice-backend/pkg/db/models"
	pkgerrors "github.com/comandahq/backoffice-backend/pkg/errors"
	"github.com/comandahq/backoffice-backend/pkg/pagination"
)

func newTestService(t *testing.T) (Service, *gorm.DB, uuid.UUID) {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.New(log.New(io.Discard, "", 0), gormlogger.Config{LogLevel: gormlogger.Silent}),
	})
	if err != nil {
		t.Fatalf("opening sqlite: %v", err)
	}
	if err := conn.AutoMigrate(
		&models.Company{},
		&models.Category{},
		&models.Tax{},
		&models.Product{},
		&models.Variant{},
		&models.ModifierGroup{},
		&models.Modifier{},
		&models.ProductModifierGroup{},
	); err != nil {
		t.Fatalf("migrating schema: %v", err)
	}

	company := models.Company{Name: "Test Kitchen"}
	if err := conn.Create(&company).Error; err != nil {
		t.Fatalf("seeding company: %v", err)
	}

	groupRepo := modifiergroups.NewRepository(conn)
	svc, err := NewService(db.NewWithConn(conn), NewRepository(conn), modifiergroups.NewReconciler(groupRepo), company.ID)
	if err != nil {
		t.Fatalf("building service: %v", err)
	}
	return svc, conn, company.ID
}

func dec(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func decPtr(v string) *decimal.Decimal {
	d := dec(v)
	return &d
}

func strPtr(v string) *string { return &v }

func intPtr(v int) *int { return &v }

func boolPtr(v bool) *bool { return &v }

func variantsPtr(v ...VariantInput) *[]VariantInput { return &v }

func groupsPtr(g ...modifiergroups.GroupInput) *[]modifiergroups.GroupInput { return &g }

func itemsPtr(m ...modifiergroups.ModifierItemInput) *[]modifiergroups.ModifierItemInput {
	return &m
}

func TestCreateProductWithChildren(t *testing.T) {
	svc, _, companyID := newTestService(t)
	ctx := context.Background()

	dto, err := svc.CreateProduct(ctx, CreateProductInput{
		Code:  "BURGER-01",
		Name:  "Classic Burger",
		Price: dec("9.90"),
		Variants: variantsPtr(
			VariantInput{Name: "Single", Price: decPtr("9.90")},
			VariantInput{Name: "Double", Price: decPtr("12.90"), SKU: strPtr("BRG-2")},
		),
		ModifierGroups: groupsPtr(modifiergroups.GroupInput{
			Name:         "Extras",
			MinSelection: intPtr(0),
			MaxSelection: intPtr(3),
			Items:        itemsPtr(modifiergroups.ModifierItemInput{Name: "Cheese", Price: decPtr("1.00")}),
		}),
	})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}

	if dto.CompanyID != companyID {
		t.Errorf("expected default company %s, got %s", companyID, dto.CompanyID)
	}
	if !dto.IsActive {
		t.Error("products default to active")
	}
	if !dto.HasVariants || !dto.HasModifiers {
		t.Errorf("derived flags not set: hasVariants=%v hasModifiers=%v", dto.HasVariants, dto.HasModifiers)
	}
	if len(dto.Variants) != 2 {
		t.Fatalf("expected 2 variants, got %d", len(dto.Variants))
	}
	if dto.Variants[0].Name != "Single" || dto.Variants[0].DisplayOrder != 0 {
		t.Errorf("unexpected first variant: %+v", dto.Variants[0])
	}
	if dto.Variants[1].DisplayOrder != 1 {
		t.Errorf("variant order must follow payload index, got %d", dto.Variants[1].DisplayOrder)
	}
	if len(dto.ModifierGroups) != 1 {
		t.Fatalf("expected 1 modifier group, got %d", len(dto.ModifierGroups))
	}
	group := dto.ModifierGroups[0]
	if group.Required {
		t.Error("min selection 0 must not mark the group required")
	}
	if len(group.Items) != 1 || group.Items[0].Name != "Cheese" {
		t.Errorf("unexpected group items: %+v", group.Items)
	}
}

func TestCreateProductDuplicateCodeConflicts(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	input := CreateProductInput{Code: "SODA", Name: "Soda", Price: dec("2.50")}
	if _, err := svc.CreateProduct(ctx, input); err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}

	_, err := svc.CreateProduct(ctx, input)
	if got := pkgerrors.As(err); got == nil || got.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestUpdateProductDuplicateCodeConflicts(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.CreateProduct(ctx, CreateProductInput{Code: "SODA", Name: "Soda", Price: dec("2.50")}); err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	other, err := svc.CreateProduct(ctx, CreateProductInput{Code: "WATER", Name: "Water", Price: dec("1.50")})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}

	_, err = svc.UpdateProduct(ctx, other.ID, UpdateProductInput{Code: strPtr("SODA")})
	if got := pkgerrors.As(err); got == nil || got.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestCreateProductRejectsNegativePrice(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Code: "BAD", Name: "Bad", Price: dec("-1.00"),
	})
	if got := pkgerrors.As(err); got == nil || got.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateProductReconcilesVariants(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, CreateProductInput{
		Code: "PIZZA", Name: "Pizza", Price: dec("15.00"),
		Variants: variantsPtr(
			VariantInput{Name: "Small", Price: decPtr("12.00")},
			VariantInput{Name: "Medium", Price: decPtr("15.00")},
			VariantInput{Name: "Large", Price: decPtr("18.00")},
		),
	})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}

	// Keep Medium with a new price at index 0, drop Small and Large, add XL.
	mediumID := created.Variants[1].ID
	updated, err := svc.UpdateProduct(ctx, created.ID, UpdateProductInput{
		Variants: variantsPtr(
			VariantInput{ID: mediumID, Name: "Medium", Price: decPtr("16.00")},
			VariantInput{Name: "XL", Price: decPtr("21.00")},
		),
	})
	if err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}

	if len(updated.Variants) != 2 {
		t.Fatalf("expected 2 variants after reconcile, got %d", len(updated.Variants))
	}
	if updated.Variants[0].ID != mediumID {
		t.Error("kept variant lost its identifier")
	}
	if !updated.Variants[0].Price.Equal(dec("16.00")) {
		t.Errorf("kept variant price not patched: %s", updated.Variants[0].Price)
	}
	if updated.Variants[0].DisplayOrder != 0 || updated.Variants[1].DisplayOrder != 1 {
		t.Error("display order must follow payload index")
	}
	if updated.Variants[1].Name != "XL" || updated.Variants[1].ID == uuid.Nil {
		t.Errorf("unexpected created variant: %+v", updated.Variants[1])
	}
}

func TestUpdateProductNilVariantsUntouchedEmptyClears(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, CreateProductInput{
		Code: "WINE", Name: "House Wine", Price: dec("6.00"),
		Variants: variantsPtr(VariantInput{Name: "Glass"}, VariantInput{Name: "Bottle"}),
	})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}

	// Scalar-only patch leaves the collection alone.
	patched, err := svc.UpdateProduct(ctx, created.ID, UpdateProductInput{Name: strPtr("Red Wine")})
	if err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}
	if len(patched.Variants) != 2 || !patched.HasVariants {
		t.Fatalf("nil variants pointer must leave variants untouched: %+v", patched.Variants)
	}

	// Empty slice deletes every variant and clears the flag.
	cleared, err := svc.UpdateProduct(ctx, created.ID, UpdateProductInput{Variants: variantsPtr()})
	if err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}
	if len(cleared.Variants) != 0 {
		t.Errorf("expected no variants, got %d", len(cleared.Variants))
	}
	if cleared.HasVariants {
		t.Error("hasVariants must be recomputed to false")
	}
}

func TestUpdateProductDetachKeepsSharedGroup(t *testing.T) {
	svc, conn, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, CreateProductInput{
		Code: "FRIES", Name: "Fries", Price: dec("4.00"),
		ModifierGroups: groupsPtr(modifiergroups.GroupInput{
			Name:  "Dips",
			Items: itemsPtr(modifiergroups.ModifierItemInput{Name: "Aioli"}),
		}),
	})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	groupID := created.ModifierGroups[0].ID

	detached, err := svc.UpdateProduct(ctx, created.ID, UpdateProductInput{
		ModifierGroups: groupsPtr(),
	})
	if err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}

	if len(detached.ModifierGroups) != 0 || detached.HasModifiers {
		t.Errorf("expected no attached groups, got %+v", detached.ModifierGroups)
	}

	// The shared group and its modifiers survive the detach.
	var groups int64
	conn.Model(&models.ModifierGroup{}).Where("id = ?", groupID).Count(&groups)
	if groups != 1 {
		t.Error("detaching must remove the join row only, not the group")
	}
	var modifiers int64
	conn.Model(&models.Modifier{}).Where("modifier_group_id = ?", groupID).Count(&modifiers)
	if modifiers != 1 {
		t.Error("detaching must not delete the group's modifiers")
	}
}

func TestUpdateProductSharedGroupEditVisibleAcrossProducts(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.CreateProduct(ctx, CreateProductInput{
		Code: "TACO", Name: "Taco", Price: dec("3.50"),
		ModifierGroups: groupsPtr(modifiergroups.GroupInput{
			Name:  "Salsas",
			Items: itemsPtr(modifiergroups.ModifierItemInput{Name: "Verde"}),
		}),
	})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	groupID := first.ModifierGroups[0].ID

	second, err := svc.CreateProduct(ctx, CreateProductInput{
		Code: "BURRITO", Name: "Burrito", Price: dec("8.00"),
		ModifierGroups: groupsPtr(modifiergroups.GroupInput{ID: groupID, Name: "Salsas"}),
	})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if second.ModifierGroups[0].ID != groupID {
		t.Fatal("attaching by id must reuse the shared group")
	}

	// Renaming the group through one product is visible through the other.
	if _, err := svc.UpdateProduct(ctx, second.ID, UpdateProductInput{
		ModifierGroups: groupsPtr(modifiergroups.GroupInput{
			ID:           groupID,
			Name:         "Hot Salsas",
			MinSelection: intPtr(1),
		}),
	}); err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}

	reloaded, err := svc.GetProduct(ctx, first.ID)
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	got := reloaded.ModifierGroups[0]
	if got.Name != "Hot Salsas" || !got.Required {
		t.Errorf("shared group edit not visible across products: %+v", got)
	}
	if len(got.Items) != 1 || got.Items[0].Name != "Verde" {
		t.Errorf("untouched modifier collection must survive: %+v", got.Items)
	}
}

func TestUpdateProductUnknownGroupIDAbortsWholeWrite(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, CreateProductInput{
		Code: "SALAD", Name: "Salad", Price: dec("7.00"),
	})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}

	_, err = svc.UpdateProduct(ctx, created.ID, UpdateProductInput{
		Name:           strPtr("Caesar Salad"),
		ModifierGroups: groupsPtr(modifiergroups.GroupInput{ID: uuid.New(), Name: "Dressings"}),
	})
	if got := pkgerrors.As(err); got == nil || got.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}

	// The scalar patch from the failed write must be rolled back too.
	reloaded, err := svc.GetProduct(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	if reloaded.Name != "Salad" {
		t.Errorf("failed write leaked a partial update: %s", reloaded.Name)
	}
}

func TestUpdateProductIsIdempotent(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, CreateProductInput{
		Code: "RAMEN", Name: "Ramen", Price: dec("11.00"),
		Variants: variantsPtr(VariantInput{Name: "Regular"}, VariantInput{Name: "Spicy"}),
	})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}

	input := UpdateProductInput{
		Variants: variantsPtr(
			VariantInput{ID: created.Variants[0].ID, Name: "Regular", Price: decPtr("11.00")},
			VariantInput{ID: created.Variants[1].ID, Name: "Spicy", Price: decPtr("12.00")},
		),
	}

	first, err := svc.UpdateProduct(ctx, created.ID, input)
	if err != nil {
		t.Fatalf("first UpdateProduct: %v", err)
	}
	second, err := svc.UpdateProduct(ctx, created.ID, input)
	if err != nil {
		t.Fatalf("second UpdateProduct: %v", err)
	}

	if len(first.Variants) != len(second.Variants) {
		t.Fatalf("variant count drifted: %d vs %d", len(first.Variants), len(second.Variants))
	}
	for i := range first.Variants {
		if first.Variants[i].ID != second.Variants[i].ID {
			t.Errorf("variant %d identifier drifted between identical writes", i)
		}
	}
}

func TestDeleteProductSoftDeletes(t *testing.T) {
	svc, conn, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, CreateProductInput{
		Code: "CAKE", Name: "Cake", Price: dec("5.00"),
	})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}

	if err := svc.DeleteProduct(ctx, created.ID); err != nil {
		t.Fatalf("DeleteProduct: %v", err)
	}

	if _, err := svc.GetProduct(ctx, created.ID); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found after delete, got %v", err)
	}

	var rows int64
	conn.Unscoped().Model(&models.Product{}).Where("id = ?", created.ID).Count(&rows)
	if rows != 1 {
		t.Error("soft delete must keep the row in place")
	}

	if err := svc.DeleteProduct(ctx, created.ID); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found on repeat delete, got %v", err)
	}
}

func TestListProductsPaginatesWithCursor(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	codes := []string{"P-1", "P-2", "P-3"}
	for _, code := range codes {
		if _, err := svc.CreateProduct(ctx, CreateProductInput{Code: code, Name: code, Price: dec("1.00")}); err != nil {
			t.Fatalf("CreateProduct %s: %v", code, err)
		}
	}

	first, err := svc.ListProducts(ctx, ListParams{Pagination: pagination.Params{Limit: 2}})
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if len(first.Products) != 2 {
		t.Fatalf("expected 2 products on first page, got %d", len(first.Products))
	}
	if first.NextCursor == nil {
		t.Fatal("expected a next cursor")
	}

	second, err := svc.ListProducts(ctx, ListParams{
		Pagination: pagination.Params{Limit: 2, Cursor: *first.NextCursor},
	})
	if err != nil {
		t.Fatalf("ListProducts page 2: %v", err)
	}
	if len(second.Products) != 1 {
		t.Fatalf("expected 1 product on second page, got %d", len(second.Products))
	}
	if second.NextCursor != nil {
		t.Error("last page must not carry a cursor")
	}

	seen := map[uuid.UUID]bool{}
	for _, p := range append(first.Products, second.Products...) {
		if seen[p.ID] {
			t.Fatalf("product %s appeared on both pages", p.ID)
		}
		seen[p.ID] = true
	}

	if _, err := svc.ListProducts(ctx, ListParams{Pagination: pagination.Params{Cursor: "not-base64"}}); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatal("expected validation error for malformed cursor")
	}
}
