package errors

import (
	stdErrors "errors"
	"net/http"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code      Code
		status    int
		publicMsg string
		retryable bool
		detailsOK bool
	}{
		{code: CodeValidation, status: http.StatusBadRequest, publicMsg: "validation failed", detailsOK: true},
		{code: CodeNotFound, status: http.StatusNotFound, publicMsg: "resource not found"},
		{code: CodeConflict, status: http.StatusConflict, publicMsg: "conflict detected", detailsOK: true},
		{code: CodeIdempotency, status: http.StatusConflict, publicMsg: "idempotency key reused", detailsOK: true},
		{code: CodeInternal, status: http.StatusInternalServerError, publicMsg: "internal server error", retryable: true},
		{code: CodeDependency, status: http.StatusServiceUnavailable, publicMsg: "dependency unavailable", retryable: true, detailsOK: true},
	}

	for _, tt := range tests {
		meta := MetadataFor(tt.code)
		if meta.HTTPStatus != tt.status {
			t.Fatalf("code %s expected status %d got %d", tt.code, tt.status, meta.HTTPStatus)
		}
		if meta.PublicMessage != tt.publicMsg {
			t.Fatalf("code %s expected public message %q got %q", tt.code, tt.publicMsg, meta.PublicMessage)
		}
		if meta.Retryable != tt.retryable {
			t.Fatalf("code %s expected retryable %v got %v", tt.code, tt.retryable, meta.Retryable)
		}
		if meta.DetailsAllowed != tt.detailsOK {
			t.Fatalf("code %s expected details allowed %v got %v", tt.code, tt.detailsOK, meta.DetailsAllowed)
		}
	}
}

func TestMetadataForUnknownCodeDefaultsToInternal(t *testing.T) {
	meta := MetadataFor("SOMETHING_UNKNOWN")
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal status, got %d", meta.HTTPStatus)
	}
}

func TestErrorConstructors(t *testing.T) {
	base := New(CodeValidation, "missing name")
	if base.Code() != CodeValidation {
		t.Fatalf("expected validation code, got %s", base.Code())
	}
	if base.Message() != "missing name" {
		t.Fatalf("unexpected message %q", base.Message())
	}
	if base.Details() != nil {
		t.Fatalf("details should be nil by default")
	}

	detail := map[string]any{"field": "name"}
	base.WithDetails(detail)
	if base.Details() == nil {
		t.Fatalf("details should be preserved")
	}

	cause := stdErrors.New("boom")
	wrapped := Wrap(CodeConflict, cause, "ctx")
	if wrapped.Code() != CodeConflict {
		t.Fatalf("expected conflict code, got %s", wrapped.Code())
	}
	if !stdErrors.Is(wrapped, cause) {
		t.Fatalf("wrapped error should unwrap to cause")
	}
	if Wrap(CodeConflict, nil, "no cause").Unwrap() != nil {
		t.Fatalf("wrap without cause should behave like New")
	}
}

func TestAsExtractsTypedError(t *testing.T) {
	cause := New(CodeNotFound, "product not found")
	wrapped := Wrap(CodeDependency, cause, "load product")

	typed := As(wrapped)
	if typed == nil {
		t.Fatal("expected typed error")
	}
	if typed.Code() != CodeDependency {
		t.Fatalf("expected outermost code, got %s", typed.Code())
	}

	if As(stdErrors.New("plain")) != nil {
		t.Fatal("plain errors should not match")
	}
	if As(nil) != nil {
		t.Fatal("nil should not match")
	}
}

func TestDumpCollectsChain(t *testing.T) {
	cause := stdErrors.New("duplicate key value violates unique constraint \"products_company_code_key\"")
	err := Wrap(CodeConflict, cause, "insert product")

	d := Dump(err)
	if d.Code != CodeConflict {
		t.Fatalf("expected conflict code, got %s", d.Code)
	}
	if len(d.Chain) < 2 {
		t.Fatalf("expected full chain, got %v", d.Chain)
	}
}
