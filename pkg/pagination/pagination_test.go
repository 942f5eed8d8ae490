package pagination

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNormalizeLimit(t *testing.T) {
	if got := NormalizeLimit(0); got != DefaultLimit {
		t.Fatalf("NormalizeLimit(0) = %d, want %d", got, DefaultLimit)
	}
	if got := NormalizeLimit(-3); got != DefaultLimit {
		t.Fatalf("NormalizeLimit(-3) = %d, want %d", got, DefaultLimit)
	}
	if got := NormalizeLimit(1000); got != MaxLimit {
		t.Fatalf("NormalizeLimit(1000) = %d, want %d", got, MaxLimit)
	}
	if got := NormalizeLimit(10); got != 10 {
		t.Fatalf("NormalizeLimit(10) = %d, want 10", got)
	}
	if got := LimitWithBuffer(10); got != 11 {
		t.Fatalf("LimitWithBuffer(10) = %d, want 11", got)
	}
}

func TestCursorRoundTrip(t *testing.T) {
	in := Cursor{
		CreatedAt: time.Date(2025, 6, 1, 12, 30, 0, 123456789, time.UTC),
		ID:        uuid.New(),
	}

	out, err := DecodeCursor(in.Encode())
	if err != nil {
		t.Fatalf("DecodeCursor returned error: %v", err)
	}
	if out == nil {
		t.Fatal("expected cursor, got nil")
	}
	if !out.CreatedAt.Equal(in.CreatedAt) || out.ID != in.ID {
		t.Fatalf("round trip mismatch: got %+v want %+v", out, in)
	}
}

func TestDecodeCursorEmptyAndInvalid(t *testing.T) {
	out, err := DecodeCursor("  ")
	if err != nil || out != nil {
		t.Fatalf("blank cursor: got %v, %v", out, err)
	}

	if _, err := DecodeCursor("not-base64!!"); err == nil {
		t.Fatal("expected decode error")
	}
}
