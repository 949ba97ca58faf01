package categories

import (
	"context"
	"io"
	"log"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/comandahq/backoffice-backend/internal/companies"
	"github.com/comandahq/backoffice-backend/pkg/db/models"
	pkgerrors "github.com/comandahq/backoffice-backend/pkg/errors"
)

func newTestService(t *testing.T) (Service, uuid.UUID) {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.New(log.New(io.Discard, "", 0), gormlogger.Config{LogLevel: gormlogger.Silent}),
	})
	if err != nil {
		t.Fatalf("opening sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.Company{}, &models.Category{}); err != nil {
		t.Fatalf("migrating schema: %v", err)
	}

	company := models.Company{Name: "Test Kitchen"}
	if err := conn.Create(&company).Error; err != nil {
		t.Fatalf("seeding company: %v", err)
	}

	svc, err := NewService(NewRepository(conn), companies.NewRepository(conn))
	if err != nil {
		t.Fatalf("building service: %v", err)
	}
	return svc, company.ID
}

func strPtr(v string) *string { return &v }

func intPtr(v int) *int { return &v }

func TestCreateCategoryScopedToCompany(t *testing.T) {
	svc, companyID := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateCategory(ctx, companyID, CreateCategoryInput{Name: "Drinks", Position: 2})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	if created.CompanyID != companyID {
		t.Errorf("category bound to wrong company: %s", created.CompanyID)
	}
	if created.Position != 2 {
		t.Errorf("position not stored: %d", created.Position)
	}
}

func TestCreateCategoryUnknownCompanyFails(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateCategory(context.Background(), uuid.New(), CreateCategoryInput{Name: "Ghost"})
	if got := pkgerrors.As(err); got == nil || got.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListCategoriesOrdersByPositionThenName(t *testing.T) {
	svc, companyID := newTestService(t)
	ctx := context.Background()

	for _, c := range []CreateCategoryInput{
		{Name: "Sides", Position: 1},
		{Name: "Mains", Position: 0},
		{Name: "Desserts", Position: 1},
	} {
		if _, err := svc.CreateCategory(ctx, companyID, c); err != nil {
			t.Fatalf("CreateCategory %s: %v", c.Name, err)
		}
	}

	list, err := svc.ListCategories(ctx, companyID)
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 categories, got %d", len(list))
	}
	got := []string{list[0].Name, list[1].Name, list[2].Name}
	want := []string{"Mains", "Desserts", "Sides"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected order %v, want %v", got, want)
		}
	}
}

func TestUpdateCategoryRejectsForeignCompany(t *testing.T) {
	svc, companyID := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateCategory(ctx, companyID, CreateCategoryInput{Name: "Breakfast"})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}

	_, err = svc.UpdateCategory(ctx, uuid.New(), created.ID, UpdateCategoryInput{Name: strPtr("Brunch")})
	if got := pkgerrors.As(err); got == nil || got.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for foreign company, got %v", err)
	}

	updated, err := svc.UpdateCategory(ctx, companyID, created.ID, UpdateCategoryInput{Position: intPtr(5)})
	if err != nil {
		t.Fatalf("UpdateCategory: %v", err)
	}
	if updated.Name != "Breakfast" || updated.Position != 5 {
		t.Errorf("unexpected patch result: %+v", updated)
	}
}

func TestDeleteCategory(t *testing.T) {
	svc, companyID := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateCategory(ctx, companyID, CreateCategoryInput{Name: "Seasonal"})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}

	if err := svc.DeleteCategory(ctx, companyID, created.ID); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}
	if _, err := svc.GetCategory(ctx, companyID, created.ID); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}
