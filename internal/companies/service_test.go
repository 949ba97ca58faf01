package companies

import (
	"context"
	"io"
	"log"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/comandahq/backoffice-backend/pkg/db/models"
	pkgerrors "github.com/comandahq/backoffice-backend/pkg/errors"
)

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.New(log.New(io.Discard, "", 0), gormlogger.Config{LogLevel: gormlogger.Silent}),
	})
	if err != nil {
		t.Fatalf("opening sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.Company{}); err != nil {
		t.Fatalf("migrating schema: %v", err)
	}

	svc, err := NewService(NewRepository(conn))
	if err != nil {
		t.Fatalf("building service: %v", err)
	}
	return svc, conn
}

func strPtr(v string) *string { return &v }

func TestCreateAndGetCompany(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateCompany(ctx, CreateCompanyInput{
		Name:  "  Cantina Roja  ",
		Email: strPtr("hola@cantinaroja.mx"),
	})
	if err != nil {
		t.Fatalf("CreateCompany: %v", err)
	}
	if created.Name != "Cantina Roja" {
		t.Errorf("name not trimmed: %q", created.Name)
	}
	if created.ID == uuid.Nil {
		t.Error("created company missing identifier")
	}

	got, err := svc.GetCompany(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetCompany: %v", err)
	}
	if got.Email == nil || *got.Email != "hola@cantinaroja.mx" {
		t.Errorf("unexpected email: %v", got.Email)
	}
}

func TestUpdateCompanyPatchesOnlyProvidedFields(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateCompany(ctx, CreateCompanyInput{
		Name:  "Bistro",
		Phone: strPtr("+52 55 0000 0000"),
	})
	if err != nil {
		t.Fatalf("CreateCompany: %v", err)
	}

	updated, err := svc.UpdateCompany(ctx, created.ID, UpdateCompanyInput{
		LegalName: strPtr("Bistro SA de CV"),
	})
	if err != nil {
		t.Fatalf("UpdateCompany: %v", err)
	}
	if updated.Name != "Bistro" {
		t.Errorf("untouched name changed: %q", updated.Name)
	}
	if updated.Phone == nil || *updated.Phone != "+52 55 0000 0000" {
		t.Errorf("untouched phone changed: %v", updated.Phone)
	}
	if updated.LegalName == nil || *updated.LegalName != "Bistro SA de CV" {
		t.Errorf("legal name not patched: %v", updated.LegalName)
	}
}

func TestGetCompanyNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetCompany(context.Background(), uuid.New())
	if got := pkgerrors.As(err); got == nil || got.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeleteCompanySoftDeletes(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateCompany(ctx, CreateCompanyInput{Name: "Pop-up"})
	if err != nil {
		t.Fatalf("CreateCompany: %v", err)
	}

	if err := svc.DeleteCompany(ctx, created.ID); err != nil {
		t.Fatalf("DeleteCompany: %v", err)
	}

	if _, err := svc.GetCompany(ctx, created.ID); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found after delete, got %v", err)
	}

	var rows int64
	conn.Unscoped().Model(&models.Company{}).Where("id = ?", created.ID).Count(&rows)
	if rows != 1 {
		t.Error("soft delete must keep the row in place")
	}

	list, err := svc.ListCompanies(ctx)
	if err != nil {
		t.Fatalf("ListCompanies: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("deleted company leaked into listing: %d rows", len(list))
	}
}
