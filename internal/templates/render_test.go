package templates

import "testing"

func TestRenderSubstitutesKnownKeys(t *testing.T) {
	body := "Kedves {{company_name}}! Rendelése: {{order_number}}."
	got := Render(body, map[string]string{
		"company_name": "Acme Kft.",
		"order_number": "ORD-123456-7",
	})

	want := "Kedves Acme Kft.! Rendelése: ORD-123456-7."
	if got != want {
		t.Fatalf("Render = %q, want %q", got, want)
	}
}

func TestRenderLeavesUnknownPlaceholders(t *testing.T) {
	body := "Hello {{name}}, total {{missing}} Ft"
	got := Render(body, map[string]string{"name": "Anna"})

	want := "Hello Anna, total {{missing}} Ft"
	if got != want {
		t.Fatalf("Render = %q, want %q", got, want)
	}
}

func TestRenderHandlesEdgeInputs(t *testing.T) {
	if got := Render("", map[string]string{"a": "b"}); got != "" {
		t.Fatalf("empty body: %q", got)
	}
	if got := Render("no placeholders", nil); got != "no placeholders" {
		t.Fatalf("nil data: %q", got)
	}
	// unterminated placeholder stays as-is
	if got := Render("broken {{tail", map[string]string{"tail": "x"}); got != "broken {{tail" {
		t.Fatalf("unterminated: %q", got)
	}
	// whitespace inside braces still resolves
	if got := Render("{{ key }}", map[string]string{"key": "v"}); got != "v" {
		t.Fatalf("padded key: %q", got)
	}
}

func TestRenderRepeatedKeys(t *testing.T) {
	got := Render("{{x}}-{{x}}-{{x}}", map[string]string{"x": "1"})
	if got != "1-1-1" {
		t.Fatalf("repeated: %q", got)
	}
}
