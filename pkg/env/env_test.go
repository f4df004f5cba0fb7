package env

import "testing"

func TestGet(t *testing.T) {
	t.Setenv("APERTURE_TEST_VALUE", " set ")
	if got := Get("APERTURE_TEST_VALUE", "fallback"); got != "set" {
		t.Fatalf("expected trimmed value, got %q", got)
	}
	if got := Get("APERTURE_TEST_MISSING", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}
}

func TestBool(t *testing.T) {
	t.Setenv("APERTURE_TEST_BOOL", "true")
	if !Bool("APERTURE_TEST_BOOL", false) {
		t.Fatal("expected true")
	}
	t.Setenv("APERTURE_TEST_BOOL", "nope")
	if !Bool("APERTURE_TEST_BOOL", true) {
		t.Fatal("expected fallback for invalid value")
	}
}
