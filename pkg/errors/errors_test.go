package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestWrapPreservesCodeAndCause(t *testing.T) {
	cause := stderrors.New("row not found")
	err := Wrap(CodeNotFound, cause, "order missing")

	if got := err.Code(); got != CodeNotFound {
		t.Fatalf("code = %q, want %q", got, CodeNotFound)
	}
	if !stderrors.Is(err, cause) {
		t.Fatalf("expected wrapped cause to survive errors.Is")
	}

	te := As(err)
	if te == nil {
		t.Fatalf("As returned nil for a typed error")
	}
	if te.Message() != "order missing" {
		t.Fatalf("message = %q", te.Message())
	}
}

func TestMetadataForUnknownCodeFallsBack(t *testing.T) {
	md := MetadataFor(Code("no_such_code"))
	if md.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", md.HTTPStatus)
	}
}

func TestDumpExtractsPGFields(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		ConstraintName: "orders_order_number_key",
		TableName:      "orders",
		Message:        "duplicate key value violates unique constraint",
	}
	err := Wrap(CodeConflict, pgErr, "insert order")

	d := Dump(err)
	if d.Code != CodeConflict {
		t.Fatalf("code = %q", d.Code)
	}
	if d.PGCode != "23505" || d.PGConstraint != "orders_order_number_key" {
		t.Fatalf("pg fields not extracted: %+v", d)
	}
	if len(d.Chain) < 2 {
		t.Fatalf("chain too short: %v", d.Chain)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "orders_order_number_key"}
	wrapped := Wrap(CodeConflict, pgErr, "insert order")

	if !IsUniqueViolation(wrapped, "orders_order_number_key") {
		t.Fatalf("expected match on constraint name")
	}
	if IsUniqueViolation(wrapped, "other_constraint") {
		t.Fatalf("unexpected match on wrong constraint")
	}
	if IsUniqueViolation(stderrors.New("boom"), "") {
		t.Fatalf("plain error should not match")
	}
}
