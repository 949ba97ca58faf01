package db

import (
	"errors"
	"testing"
)

func TestIsUniqueViolation(t *testing.T) {
	pgErr := errors.New(`duplicate key value violates unique constraint "idx_products_company_code"`)
	sqliteErr := errors.New("UNIQUE constraint failed: products.company_id, products.code")

	tests := []struct {
		name       string
		err        error
		constraint string
		want       bool
	}{
		{"nil error", nil, "", false},
		{"unrelated error", errors.New("connection refused"), "", false},
		{"postgres duplicate key", pgErr, "", true},
		{"sqlite unique constraint", sqliteErr, "", true},
		{"named constraint match", pgErr, "idx_products_company_code", true},
		{"named constraint mismatch", pgErr, "idx_other", false},
	}

	for _, tt := range tests {
		if got := IsUniqueViolation(tt.err, tt.constraint); got != tt.want {
			t.Errorf("%s: expected %v got %v", tt.name, tt.want, got)
		}
	}
}
