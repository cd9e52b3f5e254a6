package envutil

import (
	"testing"
	"time"
)

func TestString(t *testing.T) {
	t.Setenv("ENVUTIL_TEST_STRING", "  value  ")
	if got := String("ENVUTIL_TEST_STRING", "fallback"); got != "value" {
		t.Fatalf("String: expected trimmed value, got %q", got)
	}
	if got := String("ENVUTIL_TEST_STRING_MISSING", "fallback"); got != "fallback" {
		t.Fatalf("String: expected fallback, got %q", got)
	}
}

func TestInt(t *testing.T) {
	t.Setenv("ENVUTIL_TEST_INT", "12")
	if got := Int("ENVUTIL_TEST_INT", 8); got != 12 {
		t.Fatalf("Int: expected 12, got %d", got)
	}
	t.Setenv("ENVUTIL_TEST_INT", "twelve")
	if got := Int("ENVUTIL_TEST_INT", 8); got != 8 {
		t.Fatalf("Int: expected fallback on garbage, got %d", got)
	}
}

func TestDuration(t *testing.T) {
	t.Setenv("ENVUTIL_TEST_DURATION", "90s")
	if got := Duration("ENVUTIL_TEST_DURATION", 30*time.Second); got != 90*time.Second {
		t.Fatalf("Duration: expected 90s, got %s", got)
	}
	t.Setenv("ENVUTIL_TEST_DURATION", "soon")
	if got := Duration("ENVUTIL_TEST_DURATION", 30*time.Second); got != 30*time.Second {
		t.Fatalf("Duration: expected fallback on garbage, got %s", got)
	}
	if got := Duration("ENVUTIL_TEST_DURATION_MISSING", 30*time.Second); got != 30*time.Second {
		t.Fatalf("Duration: expected fallback when unset, got %s", got)
	}
}
