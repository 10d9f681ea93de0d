package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestMetadataForKnownCodes(t *testing.T) {
	cases := []struct {
		code   Code
		status int
	}{
		{CodeValidation, http.StatusBadRequest},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeForbidden, http.StatusForbidden},
		{CodeNotFound, http.StatusNotFound},
		{CodeConflict, http.StatusConflict},
		{CodeInternal, http.StatusInternalServerError},
		{CodeDependency, http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		t.Run(string(tc.code), func(t *testing.T) {
			if got := MetadataFor(tc.code).HTTPStatus; got != tc.status {
				t.Fatalf("expected status %d for %s, got %d", tc.status, tc.code, got)
			}
		})
	}
}

func TestMetadataForUnknownCodeFallsBackToInternal(t *testing.T) {
	meta := MetadataFor(Code("SOMETHING_ELSE"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal fallback, got %d", meta.HTTPStatus)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stdErrors.New("boom")
	err := Wrap(CodeDependency, cause, "redis unavailable")

	if !stdErrors.Is(err, cause) {
		t.Fatal("expected wrapped cause to be reachable via errors.Is")
	}
	if err.Code() != CodeDependency {
		t.Fatalf("expected dependency code, got %s", err.Code())
	}
}

func TestAsFindsTypedErrorThroughChain(t *testing.T) {
	inner := New(CodeNotFound, "product missing")
	outer := fmt.Errorf("list products: %w", inner)

	typed := As(outer)
	if typed == nil {
		t.Fatal("expected typed error through wrap chain")
	}
	if typed.Code() != CodeNotFound {
		t.Fatalf("expected not found code, got %s", typed.Code())
	}
}

func TestAsReturnsNilForPlainErrors(t *testing.T) {
	if As(stdErrors.New("plain")) != nil {
		t.Fatal("expected nil for untyped error")
	}
	if As(nil) != nil {
		t.Fatal("expected nil for nil error")
	}
}

func TestDumpExtractsPGXError(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		ConstraintName: "products_sku_key",
		TableName:      "products",
		Detail:         "duplicate key",
	}
	err := Wrap(CodeConflict, pgErr, "insert product")

	dump := Dump(err)
	if dump.Code != CodeConflict {
		t.Fatalf("expected conflict code, got %s", dump.Code)
	}
	if dump.PGCode != "23505" || dump.PGConstraint != "products_sku_key" {
		t.Fatalf("expected pg details, got %+v", dump)
	}
	if len(dump.Chain) < 2 {
		t.Fatalf("expected chain with wrapper and cause, got %v", dump.Chain)
	}
}
